package cmm

import (
	"encoding/binary"
	"fmt"
	"math"
	"testing"
)

// makeLUT builds an mft1 (width 1) or mft2 (width 2) tag with an identity
// matrix and identity curves around clut.
func makeLUT(width, in, out, grid int, clut []float64) []byte {
	header, typ := 48, "mft1"
	if width == 2 {
		header, typ = 52, "mft2"
	}
	tag := make([]byte, header)
	copy(tag[0:4], typ)
	tag[8], tag[9], tag[10] = byte(in), byte(out), byte(grid)
	for i := 0; i < 3; i++ {
		binary.BigEndian.PutUint32(tag[12+16*i:], floatToS15Fixed16(1))
	}
	if width == 2 {
		binary.BigEndian.PutUint16(tag[48:50], 2)
		binary.BigEndian.PutUint16(tag[50:52], 2)
	}

	put := func(v float64) {
		if width == 1 {
			tag = append(tag, byte(math.Round(v*255)))
			return
		}
		tag = binary.BigEndian.AppendUint16(tag, uint16(math.Round(v*65535)))
	}
	curve := func() {
		if width == 2 {
			put(0)
			put(1)
			return
		}
		for i := 0; i < 256; i++ {
			tag = append(tag, byte(i))
		}
	}
	for range in {
		curve()
	}
	for _, v := range clut {
		put(v)
	}
	for range out {
		curve()
	}
	return tag
}

// sampleCLUT evaluates f at every grid node, first input slowest.
func sampleCLUT(in, grid int, f func(x []float64) []float64) []float64 {
	n := 1
	for range in {
		n *= grid
	}
	var clut []float64
	x := make([]float64, in)
	for i := 0; i < n; i++ {
		rem := i
		for c := in - 1; c >= 0; c-- {
			x[c] = float64(rem%grid) / float64(grid-1)
			rem /= grid
		}
		clut = append(clut, f(x)...)
	}
	return clut
}

func constantLUT(width int, out ...float64) []byte {
	return makeLUT(width, 3, 4, 2, sampleCLUT(3, 2, func([]float64) []float64 { return out }))
}

// labCMYKProfile is a Lab PCS printer profile. A2B0 maps K to L* with
// neutral a* and b*; B2A0 puts |a*| on cyan and 100 - L* on black.
func labCMYKProfile(width int, extra ...testTag) []byte {
	lMax, neutral := 1.0, 128.0/255
	if width == 2 {
		lMax, neutral = 65280.0/65535, 32768.0/65535
	}
	a2b := sampleCLUT(4, 2, func(x []float64) []float64 {
		return []float64{(1 - x[3]) * lMax, neutral, neutral}
	})
	b2a := sampleCLUT(3, 3, func(x []float64) []float64 {
		return []float64{2 * math.Abs(x[1]-0.5), 0, 0, 1 - x[0]}
	})
	tags := []testTag{
		{"A2B0", makeLUT(width, 4, 3, 2, a2b)},
		{"B2A0", makeLUT(width, 3, 4, 3, b2a)},
	}
	return buildProfile(sigCMYK, sigLab, append(tags, extra...))
}

// d50RGBProfile has linear channels whose white is exactly the PCS white.
func d50RGBProfile() []byte {
	return makeRGBProfile(1.0, D50X, 0, 0, 0, D50Y, 0, 0, 0, D50Z)
}

func TestEncodePCS(t *testing.T) {
	tests := []struct {
		name      string
		pcs       string
		precision int
		in, want  []float64
	}{
		{"lab8 white", sigLab, 1, []float64{100, 0, 0}, []float64{1, 128.0 / 255, 128.0 / 255}},
		{"lab8 corners", sigLab, 1, []float64{0, -128, 127}, []float64{0, 0, 1}},
		{"lab16 white", sigLab, 2, []float64{100, 0, 0}, []float64{65280.0 / 65535, 32768.0 / 65535, 32768.0 / 65535}},
		{"xyz d50", sigXYZ, 2, []float64{1, 0.5, 0}, []float64{32768.0 / 65535, 16384.0 / 65535, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encodePCS(tt.pcs, tt.precision, tt.in)
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("encoded[%d]: got %f, want %f", i, got[i], tt.want[i])
				}
			}
			back := decodePCS(tt.pcs, tt.precision, got)
			for i := range tt.in {
				if math.Abs(back[i]-tt.in[i]) > 1e-9 {
					t.Errorf("decoded[%d]: got %f, want %f", i, back[i], tt.in[i])
				}
			}
		})
	}
}

func TestLUTProfileConverter(t *testing.T) {
	for _, width := range []int{1, 2} {
		t.Run(fmt.Sprintf("mft%d", width), func(t *testing.T) {
			f := NewFactory()
			rgb, err := f.NewProfile(d50RGBProfile())
			if err != nil {
				t.Fatalf("NewProfile rgb failed: %v", err)
			}
			cmyk, err := f.NewProfile(labCMYKProfile(width))
			if err != nil {
				t.Fatalf("NewProfile cmyk failed: %v", err)
			}
			c, err := NewProfileConverter(f, rgb, cmyk, IntentPerceptual)
			if err != nil {
				t.Fatalf("NewProfileConverter failed: %v", err)
			}

			tests := []struct {
				src, dst Space
				in, want []float64
			}{
				{SpaceRGB, SpaceCMYK, []float64{255, 255, 255}, []float64{0, 0, 0, 0}},
				{SpaceRGB, SpaceCMYK, []float64{0, 0, 0}, []float64{0, 0, 0, 100}},
				{SpaceRGB, SpaceCMYK, []float64{255, 0, 0}, []float64{100, 0, 0, 100}},
				{SpaceCMYK, SpaceRGB, []float64{0, 0, 0, 0}, []float64{255, 255, 255}},
				{SpaceCMYK, SpaceRGB, []float64{0, 0, 0, 100}, []float64{0, 0, 0}},
			}
			for _, tt := range tests {
				got, err := c.ConvertColor(tt.src, tt.dst, tt.in)
				if err != nil {
					t.Fatalf("ConvertColor(%v) failed: %v", tt.in, err)
				}
				if len(got) != len(tt.want) {
					t.Fatalf("ConvertColor(%v) = %v, want %v", tt.in, got, tt.want)
				}
				for i := range tt.want {
					if math.Abs(got[i]-tt.want[i]) > 1 {
						t.Errorf("ConvertColor(%v)[%d] = %f, want %f", tt.in, i, got[i], tt.want[i])
					}
				}
			}
		})
	}
}

func TestLUTProfileIntent(t *testing.T) {
	f := NewFactory()
	rgb, _ := f.NewProfile(d50RGBProfile())
	cmyk, err := f.NewProfile(labCMYKProfile(2,
		testTag{"B2A1", constantLUT(2, 0, 1, 0, 0)},
		testTag{"B2A2", constantLUT(2, 1, 0, 0, 0)},
	))
	if err != nil {
		t.Fatalf("NewProfile failed: %v", err)
	}

	tests := []struct {
		intent RenderingIntent
		want   []float64
	}{
		{IntentPerceptual, []float64{0, 0, 0, 0}},
		{IntentRelativeColorimetric, []float64{0, 100, 0, 0}},
		{IntentSaturation, []float64{100, 0, 0, 0}},
		{IntentAbsoluteColorimetric, []float64{0, 100, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.intent.String(), func(t *testing.T) {
			c, err := NewProfileConverter(f, rgb, cmyk, tt.intent)
			if err != nil {
				t.Fatalf("NewProfileConverter failed: %v", err)
			}
			got, err := c.ConvertColor(SpaceRGB, SpaceCMYK, []float64{255, 255, 255})
			if err != nil {
				t.Fatalf("ConvertColor failed: %v", err)
			}
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 1 {
					t.Errorf("channel %d: got %f, want %f", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLUTTagsFallback(t *testing.T) {
	tests := []struct {
		intent RenderingIntent
		want   []string
	}{
		{IntentPerceptual, []string{"B2A0"}},
		{IntentRelativeColorimetric, []string{"B2A1", "B2A0"}},
		{IntentSaturation, []string{"B2A2", "B2A0"}},
		{IntentAbsoluteColorimetric, []string{"B2A1", "B2A0"}},
	}
	for _, tt := range tests {
		got := lutTags("B2A", tt.intent)
		if fmt.Sprint(got) != fmt.Sprint(tt.want) {
			t.Errorf("lutTags(%s) = %v, want %v", tt.intent, got, tt.want)
		}
	}
}

func TestConnectPCS(t *testing.T) {
	white := makeXYZ(D50X/2, D50Y/2, D50Z/2)
	src, err := NewICCProfile(buildProfile(sigRGB, sigXYZ, []testTag{{"wtpt", white}}))
	if err != nil {
		t.Fatalf("NewICCProfile failed: %v", err)
	}
	xyzDst, _ := NewICCProfile(buildProfile(sigRGB, sigXYZ, nil))
	labDst, _ := NewICCProfile(buildProfile(sigCMYK, sigLab, nil))

	tests := []struct {
		name     string
		dst      *ICCProfile
		intent   RenderingIntent
		in, want []float64
	}{
		{"relative xyz", xyzDst, IntentRelativeColorimetric, []float64{0.4, 0.6, 0.2}, []float64{0.4, 0.6, 0.2}},
		{"absolute xyz", xyzDst, IntentAbsoluteColorimetric, []float64{0.4, 0.6, 0.2}, []float64{0.2, 0.3, 0.1}},
		{"xyz to lab", labDst, IntentPerceptual, []float64{D50X, D50Y, D50Z}, []float64{100, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			connect, err := connectPCS(src, tt.dst, tt.intent)
			if err != nil {
				t.Fatalf("connectPCS failed: %v", err)
			}
			got := connect(tt.in)
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 0.001 {
					t.Errorf("channel %d: got %f, want %f", i, got[i], tt.want[i])
				}
			}
		})
	}

	bad, _ := NewICCProfile(buildProfile(sigCMYK, sigRGB, nil))
	if _, err := connectPCS(src, bad, IntentPerceptual); err == nil {
		t.Error("expected error for a device space PCS")
	}
}
