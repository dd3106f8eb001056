package color

import (
	"fmt"
	"math"
	"strings"

	"github.com/wudi/colorkit/cmm"
	"github.com/wudi/colorkit/observability"
)

// Engine converts colors through an injected cmm.Converter. An Engine holds
// no mutable state and is safe for concurrent use.
type Engine struct {
	conv   cmm.Converter
	logger observability.Logger
	upper  bool
}

type Option func(*Engine)

// WithConverter sets the device conversion service.
func WithConverter(c cmm.Converter) Option {
	return func(e *Engine) {
		if c != nil {
			e.conv = c
		}
	}
}

func WithLogger(l observability.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithUpperHex makes records carry "#RRGGBB" instead of "#rrggbb".
func WithUpperHex() Option {
	return func(e *Engine) { e.upper = true }
}

// NewEngine returns an Engine. Without options it uses the device formula
// converter and discards log output.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		conv:   cmm.NewDeviceConverter(),
		logger: observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Converter() cmm.Converter { return e.conv }

// RGBToCMYK rounds the channels, checks them against [0, 255] and converts.
func (e *Engine) RGBToCMYK(r, g, b float64) (CMYK, error) {
	out, err := e.convert(cmm.SpaceRGB, cmm.SpaceCMYK, r, g, b)
	if err != nil {
		return CMYK{}, err
	}
	return CMYK{C: out[0], M: out[1], Y: out[2], K: out[3]}, nil
}

// CMYKToRGB rounds the channels, checks them against [0, 100] and converts.
func (e *Engine) CMYKToRGB(c, m, y, k float64) (RGB, error) {
	out, err := e.convert(cmm.SpaceCMYK, cmm.SpaceRGB, c, m, y, k)
	if err != nil {
		return RGB{}, err
	}
	return RGB{R: out[0], G: out[1], B: out[2]}, nil
}

func (e *Engine) convert(src, dst cmm.Space, channels ...float64) ([]int, error) {
	in := make([]float64, len(channels))
	for i, v := range channels {
		in[i] = math.Round(v)
	}
	if err := checkRange(src, in...); err != nil {
		for _, ce := range channelErrors(err) {
			e.logger.Debug("input channel out of range",
				observability.String(observability.KeySpace, string(src)),
				observability.String(observability.KeyChannel, ce.Channel),
				observability.Float64(observability.KeyValue, ce.Value))
		}
		return nil, err
	}

	raw, err := e.conv.ConvertColor(src, dst, in)
	if err != nil {
		e.logger.Debug("converter failed",
			observability.String(observability.KeyConverter, fmt.Sprintf("%T", e.conv)),
			observability.Error("error", err))
		return nil, fmt.Errorf("%w: %s -> %s: %w", ErrConversionServiceFailure, src, dst, err)
	}
	if len(raw) != dst.Channels() {
		e.logger.Debug("converter returned wrong arity",
			observability.String(observability.KeySpace, string(dst)),
			observability.Int("channels", len(raw)))
		return nil, fmt.Errorf("%w: %s -> %s returned %d channels, want %d",
			ErrConversionServiceFailure, src, dst, len(raw), dst.Channels())
	}

	out := make([]int, len(raw))
	for i, v := range raw {
		rv := math.Round(v)
		if math.IsNaN(v) || rv < 0 || rv > dst.Scale() {
			e.logger.Debug("converter output out of range",
				observability.String(observability.KeySpace, string(dst)),
				observability.String(observability.KeyChannel, channelNames[dst][i]),
				observability.Float64(observability.KeyValue, v))
			return nil, fmt.Errorf("%w: %s -> %s returned %s %g outside [0, %g]",
				ErrConversionServiceFailure, src, dst, channelNames[dst][i], v, dst.Scale())
		}
		out[i] = int(rv)
	}
	return out, nil
}

func (e *Engine) hex(rgb RGB) (string, error) {
	h, err := RGBToHex(rgb.R, rgb.G, rgb.B)
	if err != nil {
		return "", err
	}
	if e.upper {
		h = strings.ToUpper(h)
	}
	return h, nil
}
