package cmm

import "math"

// D50 white point, the ICC PCS illuminant.
const (
	D50X = 0.9642
	D50Y = 1.0000
	D50Z = 0.8249
)

const (
	labEpsilon = 216.0 / 24389.0
	labKappa   = 24389.0 / 27.0
)

func XYZToLab(xyz []float64) []float64 {
	if len(xyz) < 3 {
		return xyz
	}
	f := func(t float64) float64 {
		if t > labEpsilon {
			return math.Cbrt(t)
		}
		return (labKappa*t + 16) / 116
	}
	fx := f(xyz[0] / D50X)
	fy := f(xyz[1] / D50Y)
	fz := f(xyz[2] / D50Z)
	return []float64{116*fy - 16, 500 * (fx - fy), 200 * (fy - fz)}
}

func LabToXYZ(lab []float64) []float64 {
	if len(lab) < 3 {
		return lab
	}
	fy := (lab[0] + 16) / 116
	fx := lab[1]/500 + fy
	fz := fy - lab[2]/200

	finv := func(t float64) float64 {
		if t3 := t * t * t; t3 > labEpsilon {
			return t3
		}
		return (116*t - 16) / labKappa
	}
	return []float64{D50X * finv(fx), D50Y * finv(fy), D50Z * finv(fz)}
}

// Bradford-adapted XYZ (D50) to linear sRGB (D65).
var xyzD50ToLinearSRGB = [9]float64{
	3.1338561, -1.6168667, -0.4906146,
	-0.9787684, 1.9161415, 0.0334540,
	0.0719453, -0.2289914, 1.4052427,
}

// LabToRGB converts CIE L*a*b* (D50) to 8-bit sRGB, clipping colors that
// fall outside the sRGB gamut.
func LabToRGB(l, a, b float64) (r, g, bl uint8) {
	xyz := LabToXYZ([]float64{l, a, b})
	lin := mulMatrix(xyzD50ToLinearSRGB, xyz[0], xyz[1], xyz[2])
	var out [3]uint8
	for i, v := range lin {
		v = math.Min(1, math.Max(0, v))
		if v <= 0.0031308 {
			v *= 12.92
		} else {
			v = 1.055*math.Pow(v, 1/2.4) - 0.055
		}
		out[i] = uint8(math.Round(v * 255))
	}
	return out[0], out[1], out[2]
}
