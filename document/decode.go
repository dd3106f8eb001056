package document

import (
	"fmt"

	"github.com/wudi/colorkit/color"
)

// FromMap builds a Color from a typename-discriminated map, the shape host
// objects take once exported from a script or read from a swatch file:
//
//	{"typename": "SpotColor", "tint": 40,
//	 "spot": {"name": "Brand", "color": {"typename": "CMYKColor", "cyan": 100, ...}}}
//
// Missing channel fields are zero. An unknown typename wraps
// color.ErrUnsupportedColorVariant.
func FromMap(m map[string]any) (Color, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil color object", color.ErrUnsupportedColorVariant)
	}
	typ, _ := m["typename"].(string)

	var err error
	num := func(key string) float64 {
		v, ok := m[key]
		if !ok || err != nil {
			return 0
		}
		f, ok := toFloat(v)
		if !ok {
			err = fmt.Errorf("%s.%s: %T is not a number", typ, key, v)
		}
		return f
	}

	var c Color
	switch typ {
	case TypeRGB:
		c = &RGBColor{Red: num("red"), Green: num("green"), Blue: num("blue")}
	case TypeCMYK:
		c = &CMYKColor{Cyan: num("cyan"), Magenta: num("magenta"), Yellow: num("yellow"), Black: num("black")}
	case TypeGray:
		c = &GrayColor{Gray: num("gray")}
	case TypeSpot:
		sc := &SpotColor{Tint: 100}
		if _, ok := m["tint"]; ok {
			sc.Tint = num("tint")
		}
		spot, serr := spotFromMap(m["spot"])
		if serr != nil {
			return nil, serr
		}
		sc.Spot = spot
		c = sc
	case TypeNone:
		c = NoColor{}
	case TypePattern:
		name, _ := m["pattern"].(string)
		c = &PatternColor{Pattern: name}
	case TypeGradient:
		name, _ := m["gradient"].(string)
		c = &GradientColor{Gradient: name}
	default:
		return nil, fmt.Errorf("%w: typename %q", color.ErrUnsupportedColorVariant, typ)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func spotFromMap(v any) (*Spot, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: spot color without spot definition", color.ErrUnsupportedColorVariant)
	}
	name, _ := m["name"].(string)
	def, ok := m["color"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: spot %q has no color", color.ErrUnsupportedColorVariant, name)
	}
	c, err := FromMap(def)
	if err != nil {
		return nil, fmt.Errorf("spot %q: %w", name, err)
	}
	return &Spot{Name: name, Color: c}, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
