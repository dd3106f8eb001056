package cmm

import (
	"bytes"
	"errors"
)

type factoryImpl struct{}

// NewFactory returns a default CMM factory.
func NewFactory() Factory {
	return &factoryImpl{}
}

func (f *factoryImpl) NewProfile(data []byte) (Profile, error) {
	return DecodeProfile(data)
}

func (f *factoryImpl) NewTransform(src, dst Profile, intent RenderingIntent) (Transform, error) {
	if src == nil || dst == nil {
		return nil, errors.New("source and destination profiles required")
	}

	if src.ColorSpace() == dst.ColorSpace() && bytes.Equal(src.Data(), dst.Data()) {
		return identityTransform{}, nil
	}

	// Profiles without usable tags fall back to the device formulas.
	if srcICC, ok := src.(*ICCProfile); ok {
		if dstICC, ok := dst.(*ICCProfile); ok {
			if t, err := newICCTransform(srcICC, dstICC, intent); err == nil {
				return t, nil
			}
		}
	}
	return &basicTransform{src: src, dst: dst}, nil
}

type identityTransform struct{}

func (identityTransform) Convert(src []float64) ([]float64, error) {
	dst := make([]float64, len(src))
	copy(dst, src)
	return dst, nil
}
