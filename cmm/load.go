package cmm

import (
	"fmt"
	"os"

	"seehuhn.de/go/icc"
)

// DecodeProfile decodes data as an ICC profile for an RGB or CMYK device.
func DecodeProfile(data []byte) (*ICCProfile, error) {
	p, err := NewICCProfile(data)
	if err != nil {
		return nil, err
	}
	switch p.profile.ColorSpace {
	case icc.RGBSpace, icc.CMYKSpace:
	default:
		return nil, fmt.Errorf("unsupported profile color space %q", p.ColorSpace())
	}
	return p, nil
}

// LoadProfile reads and validates an ICC profile file.
func LoadProfile(path string) (*ICCProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	p, err := DecodeProfile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
