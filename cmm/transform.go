package cmm

import (
	"errors"
	"fmt"
	"math"
)

// Color space signatures as they appear in ICC headers.
const (
	sigRGB  = "RGB "
	sigCMYK = "CMYK"
	sigLab  = "Lab "
	sigXYZ  = "XYZ "
)

// basicTransform converts between uncalibrated device spaces with the naive
// formulas.
type basicTransform struct {
	src, dst Profile
}

func (t *basicTransform) Convert(in []float64) ([]float64, error) {
	srcSpace, dstSpace := t.src.ColorSpace(), t.dst.ColorSpace()
	if n := numChannels(srcSpace); len(in) != n {
		return nil, fmt.Errorf("input channels mismatch: expected %d, got %d", n, len(in))
	}
	if f, ok := deviceFormulas[[2]string{srcSpace, dstSpace}]; ok {
		return f(in), nil
	}
	if srcSpace == dstSpace {
		out := make([]float64, len(in))
		copy(out, in)
		return out, nil
	}
	return nil, fmt.Errorf("unsupported color conversion %q -> %q", srcSpace, dstSpace)
}

var deviceFormulas = map[[2]string]func([]float64) []float64{
	{sigRGB, sigCMYK}: rgbToCMYK,
	{sigCMYK, sigRGB}: cmykToRGB,
}

// rgbToCMYK is the textbook formula with full black generation.
func rgbToCMYK(in []float64) []float64 {
	r, g, b := in[0], in[1], in[2]
	out := make([]float64, 4)
	k := 1 - max(r, g, b)
	if k < 1 {
		out[0] = (1 - r - k) / (1 - k)
		out[1] = (1 - g - k) / (1 - k)
		out[2] = (1 - b - k) / (1 - k)
	}
	out[3] = k
	return out
}

func cmykToRGB(in []float64) []float64 {
	c, m, y, k := in[0], in[1], in[2], in[3]
	return []float64{
		(1 - c) * (1 - k),
		(1 - m) * (1 - k),
		(1 - y) * (1 - k),
	}
}

type matrixTRCTransform struct {
	gamma  [3]float64
	matrix [9]float64 // rX, gX, bX, rY, gY, bY, rZ, gZ, bZ
}

func (t *matrixTRCTransform) Convert(in []float64) ([]float64, error) {
	if len(in) < 3 {
		return nil, errors.New("input too short")
	}
	r := math.Pow(in[0], t.gamma[0])
	g := math.Pow(in[1], t.gamma[1])
	b := math.Pow(in[2], t.gamma[2])
	return mulMatrix(t.matrix, r, g, b), nil
}

// Inverse returns the PCS -> device direction of t.
func (t *matrixTRCTransform) Inverse() (Transform, error) {
	inv, err := invertMatrix(t.matrix)
	if err != nil {
		return nil, err
	}
	return &inverseMatrixTRCTransform{gamma: t.gamma, matrix: inv}, nil
}

type inverseMatrixTRCTransform struct {
	gamma  [3]float64
	matrix [9]float64 // XYZ -> linear RGB
}

func (t *inverseMatrixTRCTransform) Convert(in []float64) ([]float64, error) {
	if len(in) < 3 {
		return nil, errors.New("input too short")
	}
	lin := mulMatrix(t.matrix, in[0], in[1], in[2])
	out := make([]float64, 3)
	for i, v := range lin {
		out[i] = math.Pow(math.Max(0, v), 1/t.gamma[i])
	}
	return out, nil
}

func tryCreateMatrixTRC(p *ICCProfile) (*matrixTRCTransform, error) {
	var cols [3][3]float64
	for i, sig := range []string{"rXYZ", "gXYZ", "bXYZ"} {
		xyz, err := p.ReadXYZTag(sig)
		if err != nil {
			return nil, err
		}
		cols[i] = xyz
	}
	var gamma [3]float64
	for i, sig := range []string{"rTRC", "gTRC", "bTRC"} {
		g, err := p.ReadCurveTag(sig)
		if err != nil {
			return nil, err
		}
		gamma[i] = g
	}

	t := &matrixTRCTransform{gamma: gamma}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			t.matrix[3*row+col] = cols[col][row]
		}
	}
	return t, nil
}

func numChannels(cs string) int {
	switch cs {
	case sigRGB, sigLab, sigXYZ:
		return 3
	case sigCMYK:
		return 4
	}
	return 0
}

// iccTransform connects two ICC profiles through their profile connection
// spaces.
type iccTransform struct {
	channels int
	toPCS    Transform
	connect  func([]float64) []float64
	fromPCS  Transform
}

func newICCTransform(src, dst *ICCProfile, intent RenderingIntent) (*iccTransform, error) {
	toPCS, err := createToPCS(src, intent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name(), err)
	}
	connect, err := connectPCS(src, dst, intent)
	if err != nil {
		return nil, err
	}
	fromPCS, err := createFromPCS(dst, intent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dst.Name(), err)
	}
	return &iccTransform{
		channels: numChannels(src.ColorSpace()),
		toPCS:    toPCS,
		connect:  connect,
		fromPCS:  fromPCS,
	}, nil
}

func (t *iccTransform) Convert(in []float64) ([]float64, error) {
	if len(in) != t.channels {
		return nil, fmt.Errorf("input channels mismatch: expected %d, got %d", t.channels, len(in))
	}
	pcs, err := t.toPCS.Convert(in)
	if err != nil {
		return nil, err
	}
	return t.fromPCS.Convert(t.connect(pcs))
}

// connectPCS maps PCS values of src to PCS values of dst. The absolute
// colorimetric intent rescales XYZ by the ratio of the media white points.
func connectPCS(src, dst *ICCProfile, intent RenderingIntent) (func([]float64) []float64, error) {
	for _, p := range []*ICCProfile{src, dst} {
		if pcs := p.PCS(); pcs != sigXYZ && pcs != sigLab {
			return nil, fmt.Errorf("%s: unsupported PCS %q", p.Name(), pcs)
		}
	}

	var scale [3]float64
	absolute := intent == IntentAbsoluteColorimetric
	if absolute {
		sw, dw := mediaWhite(src), mediaWhite(dst)
		for i := range scale {
			scale[i] = sw[i] / dw[i]
		}
	}
	srcPCS, dstPCS := src.PCS(), dst.PCS()

	return func(v []float64) []float64 {
		if srcPCS == dstPCS && !absolute {
			return v
		}
		xyz := v
		if srcPCS == sigLab {
			xyz = LabToXYZ(v)
		}
		if absolute {
			xyz = []float64{xyz[0] * scale[0], xyz[1] * scale[1], xyz[2] * scale[2]}
		}
		if dstPCS == sigLab {
			return XYZToLab(xyz)
		}
		return xyz
	}, nil
}

// mediaWhite reads the 'wtpt' tag, defaulting to the D50 PCS white.
func mediaWhite(p *ICCProfile) [3]float64 {
	if w, err := p.ReadXYZTag("wtpt"); err == nil && w[0] > 0 && w[1] > 0 && w[2] > 0 {
		return w
	}
	return [3]float64{D50X, D50Y, D50Z}
}

// lutTags lists the AToB or BToA tags to try for intent. Absolute
// colorimetric uses the colorimetric tables; every intent falls back to
// the perceptual ones.
func lutTags(prefix string, intent RenderingIntent) []string {
	n := intent
	if n == IntentAbsoluteColorimetric {
		n = IntentRelativeColorimetric
	}
	if n == IntentPerceptual {
		return []string{prefix + "0"}
	}
	return []string{fmt.Sprintf("%s%d", prefix, n), prefix + "0"}
}

func createToPCS(p *ICCProfile, intent RenderingIntent) (Transform, error) {
	for _, sig := range lutTags("A2B", intent) {
		if lut, err := p.ReadLUTTag(sig); err == nil {
			return &pcsLUT{lut: lut, pcs: p.PCS(), output: true}, nil
		}
	}
	return tryCreateMatrixTRC(p)
}

func createFromPCS(p *ICCProfile, intent RenderingIntent) (Transform, error) {
	for _, sig := range lutTags("B2A", intent) {
		if lut, err := p.ReadLUTTag(sig); err == nil {
			return &pcsLUT{lut: lut, pcs: p.PCS()}, nil
		}
	}
	mat, err := tryCreateMatrixTRC(p)
	if err != nil {
		return nil, err
	}
	return mat.Inverse()
}

// pcsLUT runs a LUT with the PCS on one side, translating between PCS
// values and the LUT's [0, 1] encoding. output is set for AToB tables.
type pcsLUT struct {
	lut    *LUT
	pcs    string
	output bool
}

func (t *pcsLUT) Convert(in []float64) ([]float64, error) {
	if !t.output {
		if len(in) != 3 {
			return nil, fmt.Errorf("PCS input needs 3 channels, got %d", len(in))
		}
		in = encodePCS(t.pcs, t.lut.precision, in)
	}
	out, err := t.lut.Convert(in)
	if err != nil {
		return nil, err
	}
	if t.output {
		if len(out) != 3 {
			return nil, fmt.Errorf("PCS output needs 3 channels, got %d", len(out))
		}
		out = decodePCS(t.pcs, t.lut.precision, out)
	}
	return out, nil
}

const (
	// lut16Type uses the legacy Lab encoding where 0xFF00 is L* 100.
	legacyLab16 = 65280.0 / 65535.0
	// XYZ is u1Fixed15: 0x8000 is 1.0.
	xyzEncoding = 32768.0 / 65535.0
)

func encodePCS(pcs string, precision int, v []float64) []float64 {
	out := make([]float64, 3)
	if pcs == sigXYZ {
		for i := range out {
			out[i] = v[i] * xyzEncoding
		}
		return out
	}
	out[0] = v[0] / 100
	out[1] = (v[1] + 128) / 255
	out[2] = (v[2] + 128) / 255
	if precision == 2 {
		for i := range out {
			out[i] *= legacyLab16
		}
	}
	return out
}

func decodePCS(pcs string, precision int, v []float64) []float64 {
	out := make([]float64, 3)
	if pcs == sigXYZ {
		for i := range out {
			out[i] = v[i] / xyzEncoding
		}
		return out
	}
	copy(out, v)
	if precision == 2 {
		for i := range out {
			out[i] /= legacyLab16
		}
	}
	out[0] *= 100
	out[1] = out[1]*255 - 128
	out[2] = out[2]*255 - 128
	return out
}

func mulMatrix(m [9]float64, a, b, c float64) []float64 {
	return []float64{
		m[0]*a + m[1]*b + m[2]*c,
		m[3]*a + m[4]*b + m[5]*c,
		m[6]*a + m[7]*b + m[8]*c,
	}
}

func invertMatrix(m [9]float64) ([9]float64, error) {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if math.Abs(det) < 1e-10 {
		return [9]float64{}, errors.New("matrix is singular")
	}
	inv := 1 / det

	return [9]float64{
		(e*i - f*h) * inv, (c*h - b*i) * inv, (b*f - c*e) * inv,
		(f*g - d*i) * inv, (a*i - c*g) * inv, (c*d - a*f) * inv,
		(d*h - e*g) * inv, (g*b - a*h) * inv, (a*e - b*d) * inv,
	}, nil
}
