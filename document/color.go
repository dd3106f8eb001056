// Package document models the color objects of an Illustrator-style document
// and reduces them to canonical color records.
package document

import "fmt"

// Type names used as discriminators, matching the host object model.
const (
	TypeRGB      = "RGBColor"
	TypeCMYK     = "CMYKColor"
	TypeGray     = "GrayColor"
	TypeSpot     = "SpotColor"
	TypeNone     = "NoColor"
	TypePattern  = "PatternColor"
	TypeGradient = "GradientColor"
)

// Color is a document color object.
type Color interface {
	TypeName() string
}

type RGBColor struct {
	Red, Green, Blue float64
}

type CMYKColor struct {
	Cyan, Magenta, Yellow, Black float64
}

type GrayColor struct {
	Gray float64
}

// Spot is a named swatch; Color is its process definition.
type Spot struct {
	Name  string
	Color Color
}

// SpotColor is an application of a Spot at a tint percentage.
type SpotColor struct {
	Spot *Spot
	Tint float64
}

type NoColor struct{}

type PatternColor struct {
	Pattern string
}

type GradientColor struct {
	Gradient string
}

func (*RGBColor) TypeName() string      { return TypeRGB }
func (*CMYKColor) TypeName() string     { return TypeCMYK }
func (*GrayColor) TypeName() string     { return TypeGray }
func (*SpotColor) TypeName() string     { return TypeSpot }
func (NoColor) TypeName() string        { return TypeNone }
func (*PatternColor) TypeName() string  { return TypePattern }
func (*GradientColor) TypeName() string { return TypeGradient }

// Describe returns a short human form of c for logs and reports.
func Describe(c Color) string {
	if isNil(c) {
		if c == nil {
			return "<nil>"
		}
		return c.TypeName() + " <nil>"
	}
	switch c := c.(type) {
	case *RGBColor:
		return fmt.Sprintf("RGB %g/%g/%g", c.Red, c.Green, c.Blue)
	case *CMYKColor:
		return fmt.Sprintf("CMYK %g/%g/%g/%g", c.Cyan, c.Magenta, c.Yellow, c.Black)
	case *GrayColor:
		return fmt.Sprintf("Gray %g", c.Gray)
	case *SpotColor:
		if c.Spot == nil {
			return fmt.Sprintf("Spot <nil> %g%%", c.Tint)
		}
		return fmt.Sprintf("Spot %q %g%% of %s", c.Spot.Name, c.Tint, Describe(c.Spot.Color))
	}
	return c.TypeName()
}

// isNil reports whether c is nil or holds a nil pointer.
func isNil(c Color) bool {
	switch c := c.(type) {
	case nil:
		return true
	case *RGBColor:
		return c == nil
	case *CMYKColor:
		return c == nil
	case *GrayColor:
		return c == nil
	case *SpotColor:
		return c == nil
	case *PatternColor:
		return c == nil
	case *GradientColor:
		return c == nil
	}
	return false
}
