package scripting

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/wudi/colorkit/cmm"
	"github.com/wudi/colorkit/observability"
)

// DefaultFunction is the routine a conversion script must define:
//
//	function convertSampleColor(srcSpace, channels, dstSpace) { return [...]; }
//
// Channels follow the cmm.Converter scales: RGB 0-255, CMYK 0-100.
const DefaultFunction = "convertSampleColor"

const defaultTimeout = time.Second

// Converter implements cmm.Converter by calling a JavaScript routine.
type Converter struct {
	mu       sync.Mutex
	engine   *GojaEngine
	function string
	timeout  time.Duration
	logger   observability.Logger
}

type ConverterOption func(*Converter)

// WithTimeout bounds every conversion call. Zero disables the bound.
func WithTimeout(d time.Duration) ConverterOption {
	return func(c *Converter) { c.timeout = d }
}

// WithFunction names the conversion routine instead of DefaultFunction.
func WithFunction(name string) ConverterOption {
	return func(c *Converter) { c.function = name }
}

func WithLogger(l observability.Logger) ConverterOption {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewConverter evaluates script and checks that it defines the conversion
// routine. Script alerts go to the logger at warn level.
func NewConverter(ctx context.Context, script string, opts ...ConverterOption) (*Converter, error) {
	c := &Converter{
		engine:   NewEngine(),
		function: DefaultFunction,
		timeout:  defaultTimeout,
		logger:   observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.engine.RegisterHost(logHost{c.logger}); err != nil {
		return nil, fmt.Errorf("register host: %w", err)
	}
	if _, err := c.engine.Execute(ctx, script); err != nil {
		return nil, fmt.Errorf("evaluate conversion script: %w", err)
	}
	if !c.engine.HasFunction(c.function) {
		return nil, fmt.Errorf("conversion script does not define %s()", c.function)
	}
	return c, nil
}

func (c *Converter) ConvertColor(src, dst cmm.Space, channels []float64) ([]float64, error) {
	src, err := cmm.ParseSpace(string(src))
	if err != nil {
		return nil, err
	}
	dst, err = cmm.ParseSpace(string(dst))
	if err != nil {
		return nil, err
	}
	if n := src.Channels(); len(channels) != n {
		return nil, fmt.Errorf("%s: expected %d channels, got %d", src, n, len(channels))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	val, err := c.engine.Call(ctx, c.function, string(src), channels, string(dst))
	if err != nil {
		return nil, fmt.Errorf("%s(%s -> %s): %w", c.function, src, dst, err)
	}

	var out []float64
	if err := c.engine.vm.ExportTo(val, &out); err != nil {
		c.logger.Debug("malformed conversion result",
			observability.String(observability.KeyConverter, c.function),
			observability.Any(observability.KeyValue, val.Export()))
		return nil, fmt.Errorf("%s returned %v: %w", c.function, val, err)
	}
	if len(out) != dst.Channels() {
		c.logger.Debug("malformed conversion result",
			observability.String(observability.KeyConverter, c.function),
			observability.Any(observability.KeyValue, out))
		return nil, fmt.Errorf("%s returned %d channels for %s, want %d", c.function, len(out), dst, dst.Channels())
	}
	for i, v := range out {
		if math.IsNaN(v) {
			return nil, fmt.Errorf("%s returned NaN for channel %d", c.function, i)
		}
	}
	return out, nil
}

type logHost struct {
	logger observability.Logger
}

func (h logHost) Alert(message string) {
	h.logger.Warn("script alert", observability.String("message", message))
}
