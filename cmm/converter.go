package cmm

import (
	"fmt"
	"strings"
)

// Space names a device color space on the Converter seam.
type Space string

const (
	SpaceRGB  Space = "RGB"
	SpaceCMYK Space = "CMYK"
)

// ParseSpace accepts "RGB" or "CMYK" in any case.
func ParseSpace(s string) (Space, error) {
	switch Space(strings.ToUpper(strings.TrimSpace(s))) {
	case SpaceRGB:
		return SpaceRGB, nil
	case SpaceCMYK:
		return SpaceCMYK, nil
	}
	return "", fmt.Errorf("unknown color space %q", s)
}

// Channels returns the number of channels of s.
func (s Space) Channels() int {
	switch s {
	case SpaceRGB:
		return 3
	case SpaceCMYK:
		return 4
	}
	return 0
}

// Scale returns the channel maximum on the Converter seam: 255 for RGB,
// 100 for CMYK.
func (s Space) Scale() float64 {
	if s == SpaceCMYK {
		return 100
	}
	return 255
}

// Converter translates channel values between device color spaces.
//
// RGB channels are on the 0-255 scale and CMYK channels on the 0-100 scale,
// both for input and output. Implementations must be safe for concurrent use.
type Converter interface {
	ConvertColor(src, dst Space, channels []float64) ([]float64, error)
}

// TransformConverter implements Converter on top of a pair of Transforms.
type TransformConverter struct {
	name   string
	toCMYK Transform
	toRGB  Transform
}

// NewDeviceConverter returns a Converter using the standard formulas
// (k = 1 - max(r, g, b), ...). No profile is involved.
func NewDeviceConverter() *TransformConverter {
	return &TransformConverter{
		name:   "device",
		toCMYK: &basicTransform{src: DeviceRGB, dst: DeviceCMYK},
		toRGB:  &basicTransform{src: DeviceCMYK, dst: DeviceRGB},
	}
}

// NewProfileConverter returns a Converter that maps between an RGB and a
// CMYK profile. Profiles without usable ICC tags fall back to the formulas.
func NewProfileConverter(f Factory, rgb, cmyk Profile, intent RenderingIntent) (*TransformConverter, error) {
	if rgb == nil || cmyk == nil {
		return nil, fmt.Errorf("rgb and cmyk profiles required")
	}
	if rgb.ColorSpace() != sigRGB {
		return nil, fmt.Errorf("profile %q is %q, want RGB", rgb.Name(), rgb.ColorSpace())
	}
	if cmyk.ColorSpace() != sigCMYK {
		return nil, fmt.Errorf("profile %q is %q, want CMYK", cmyk.Name(), cmyk.ColorSpace())
	}
	toCMYK, err := f.NewTransform(rgb, cmyk, intent)
	if err != nil {
		return nil, fmt.Errorf("rgb->cmyk transform: %w", err)
	}
	toRGB, err := f.NewTransform(cmyk, rgb, intent)
	if err != nil {
		return nil, fmt.Errorf("cmyk->rgb transform: %w", err)
	}
	return &TransformConverter{
		name:   fmt.Sprintf("profile(%s, %s, %s)", rgb.Name(), cmyk.Name(), intent),
		toCMYK: toCMYK,
		toRGB:  toRGB,
	}, nil
}

func (c *TransformConverter) Name() string { return c.name }

func (c *TransformConverter) ConvertColor(src, dst Space, channels []float64) ([]float64, error) {
	if n := src.Channels(); n == 0 || len(channels) != n {
		return nil, fmt.Errorf("%s: expected %d channels, got %d", src, n, len(channels))
	}

	var tr Transform
	switch {
	case src == dst:
		tr = identityTransform{}
	case src == SpaceRGB && dst == SpaceCMYK:
		tr = c.toCMYK
	case src == SpaceCMYK && dst == SpaceRGB:
		tr = c.toRGB
	default:
		return nil, fmt.Errorf("unsupported conversion %s -> %s", src, dst)
	}

	in := make([]float64, len(channels))
	for i, v := range channels {
		in[i] = v / src.Scale()
	}
	out, err := tr.Convert(in)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i] *= dst.Scale()
	}
	return out, nil
}
