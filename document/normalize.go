package document

import (
	"fmt"
	"math"

	"github.com/wudi/colorkit/color"
	"github.com/wudi/colorkit/observability"
)

// Normalizer reduces document colors to canonical records.
type Normalizer struct {
	engine    *color.Engine
	logger    observability.Logger
	applyTint bool
}

type Option func(*Normalizer)

func WithEngine(e *color.Engine) Option {
	return func(n *Normalizer) {
		if e != nil {
			n.engine = e
		}
	}
}

func WithLogger(l observability.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithSpotTint applies a spot color's tint to its process definition.
// Without it the tint is ignored and a spot normalizes like its full-strength
// definition, which is what the host scripts have always produced.
func WithSpotTint() Option {
	return func(n *Normalizer) { n.applyTint = true }
}

func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		engine: color.Default,
		logger: observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Normalizer) Engine() *color.Engine { return n.engine }

// FromRGBColor rounds the channels and delegates to Engine.FromRGB.
func (n *Normalizer) FromRGBColor(c *RGBColor) (color.Record, error) {
	if c == nil {
		return color.Record{}, errNilColor(TypeRGB)
	}
	return n.engine.FromRGB(round(c.Red), round(c.Green), round(c.Blue))
}

// FromCMYKColor rounds the channels and delegates to Engine.FromCMYK.
func (n *Normalizer) FromCMYKColor(c *CMYKColor) (color.Record, error) {
	if c == nil {
		return color.Record{}, errNilColor(TypeCMYK)
	}
	return n.engine.FromCMYK(round(c.Cyan), round(c.Magenta), round(c.Yellow), round(c.Black))
}

// FromGrayColor treats the gray value as R = G = B.
func (n *Normalizer) FromGrayColor(c *GrayColor) (color.Record, error) {
	if c == nil {
		return color.Record{}, errNilColor(TypeGray)
	}
	g := round(c.Gray)
	return n.engine.FromRGB(g, g, g)
}

// FromSpotColor normalizes the spot's RGB or CMYK definition.
func (n *Normalizer) FromSpotColor(c *SpotColor) (color.Record, error) {
	if c == nil {
		return color.Record{}, errNilColor(TypeSpot)
	}
	if c.Spot == nil || isNil(c.Spot.Color) {
		return color.Record{}, fmt.Errorf("%w: spot color without definition", color.ErrUnsupportedColorVariant)
	}
	switch def := c.Spot.Color.(type) {
	case *CMYKColor:
		if n.applyTint {
			def = tintCMYK(def, c.Tint)
		}
		return n.FromCMYKColor(def)
	case *RGBColor:
		if n.applyTint {
			def = tintRGB(def, c.Tint)
		}
		return n.FromRGBColor(def)
	default:
		return color.Record{}, fmt.Errorf("%w: spot %q defined as %s",
			color.ErrUnsupportedColorVariant, c.Spot.Name, def.TypeName())
	}
}

// Normalize dispatches on the color's type.
func (n *Normalizer) Normalize(c Color) (color.Record, error) {
	var (
		rec color.Record
		err error
	)
	switch c := c.(type) {
	case nil:
		err = errNilColor("")
	case *RGBColor:
		rec, err = n.FromRGBColor(c)
	case *CMYKColor:
		rec, err = n.FromCMYKColor(c)
	case *GrayColor:
		rec, err = n.FromGrayColor(c)
	case *SpotColor:
		rec, err = n.FromSpotColor(c)
	default:
		err = fmt.Errorf("%w: %s", color.ErrUnsupportedColorVariant, c.TypeName())
	}
	if err != nil {
		n.logger.Debug("color normalization failed",
			observability.String(observability.KeyVariant, Describe(c)),
			observability.Error("error", err))
		return color.Record{}, err
	}
	return rec, nil
}

// ToHex returns the hex form of a document color. Every failure is returned;
// nothing is swallowed.
func (n *Normalizer) ToHex(c Color) (string, error) {
	rec, err := n.Normalize(c)
	if err != nil {
		name := "<nil>"
		if c != nil {
			name = c.TypeName()
		}
		return "", fmt.Errorf("%s to hex: %w", name, err)
	}
	return rec.Hex, nil
}

func errNilColor(typename string) error {
	if typename == "" {
		return fmt.Errorf("%w: nil color", color.ErrUnsupportedColorVariant)
	}
	return fmt.Errorf("%w: nil %s", color.ErrUnsupportedColorVariant, typename)
}

func round(v float64) int {
	return int(math.Round(v))
}

func tintCMYK(c *CMYKColor, tint float64) *CMYKColor {
	f := tint / 100
	return &CMYKColor{Cyan: c.Cyan * f, Magenta: c.Magenta * f, Yellow: c.Yellow * f, Black: c.Black * f}
}

// tintRGB blends toward white, the RGB equivalent of reducing ink.
func tintRGB(c *RGBColor, tint float64) *RGBColor {
	f := tint / 100
	mix := func(v float64) float64 { return 255 - (255-v)*f }
	return &RGBColor{Red: mix(c.Red), Green: mix(c.Green), Blue: mix(c.Blue)}
}
