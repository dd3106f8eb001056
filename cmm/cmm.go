// Package cmm is a small color-management module. It models color profiles
// and transforms between them, and exposes the Converter seam the color
// engine uses for device-accurate RGB and CMYK conversion.
package cmm

import (
	"fmt"
	"strings"
)

// Profile represents a color profile (e.g., ICC).
type Profile interface {
	// Name returns the profile description or name.
	Name() string
	// ColorSpace returns the color space signature (e.g., "RGB ", "CMYK").
	ColorSpace() string
	// Class returns the profile class (e.g., "mntr", "prtr").
	Class() string
	// Data returns the raw profile bytes.
	Data() []byte
}

// Transform represents a color transformation between two profiles.
// Channel values are normalized to [0, 1].
type Transform interface {
	// Convert transforms a color value from source to destination space.
	Convert(src []float64) ([]float64, error)
}

// Factory creates profiles and transforms.
type Factory interface {
	NewProfile(data []byte) (Profile, error)
	NewTransform(src, dst Profile, intent RenderingIntent) (Transform, error)
}

// RenderingIntent specifies the rendering intent for color conversion.
type RenderingIntent int

const (
	IntentPerceptual RenderingIntent = iota
	IntentRelativeColorimetric
	IntentSaturation
	IntentAbsoluteColorimetric
)

func (i RenderingIntent) String() string {
	switch i {
	case IntentPerceptual:
		return "perceptual"
	case IntentRelativeColorimetric:
		return "relative"
	case IntentSaturation:
		return "saturation"
	case IntentAbsoluteColorimetric:
		return "absolute"
	}
	return fmt.Sprintf("RenderingIntent(%d)", int(i))
}

// ParseIntent maps a config value such as "relative" to a RenderingIntent.
func ParseIntent(s string) (RenderingIntent, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "perceptual":
		return IntentPerceptual, nil
	case "relative", "relative-colorimetric":
		return IntentRelativeColorimetric, nil
	case "saturation":
		return IntentSaturation, nil
	case "absolute", "absolute-colorimetric":
		return IntentAbsoluteColorimetric, nil
	}
	return 0, fmt.Errorf("unknown rendering intent %q", s)
}
