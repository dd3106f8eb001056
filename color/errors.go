package color

import (
	"errors"
	"fmt"

	"github.com/wudi/colorkit/cmm"
)

var (
	// ErrChannelOutOfRange reports an RGB or CMYK input outside its scale.
	// The concrete errors are *ChannelError values.
	ErrChannelOutOfRange = errors.New("channel out of range")
	// ErrInvalidHexFormat reports hex input that is not 3 or 6 hex digits.
	ErrInvalidHexFormat = errors.New("invalid hex format")
	// ErrUnsupportedColorVariant reports a document color of unknown type.
	ErrUnsupportedColorVariant = errors.New("unsupported color variant")
	// ErrConversionServiceFailure reports a converter error or a malformed
	// converter result.
	ErrConversionServiceFailure = errors.New("color conversion service failure")
	// ErrUnknownColorName reports a name that is not a CSS/SVG color keyword.
	ErrUnknownColorName = errors.New("unknown color name")
)

// ChannelError describes one channel that is outside its valid scale.
type ChannelError struct {
	Space   cmm.Space
	Channel string
	Value   float64
	Min     float64
	Max     float64
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("%s %s value %g outside [%g, %g]", e.Space, e.Channel, e.Value, e.Min, e.Max)
}

func (e *ChannelError) Unwrap() error { return ErrChannelOutOfRange }

var channelNames = map[cmm.Space][]string{
	cmm.SpaceRGB:  {"red", "green", "blue"},
	cmm.SpaceCMYK: {"cyan", "magenta", "yellow", "black"},
}

// checkRange returns one *ChannelError per offending value, joined, or nil.
func checkRange(space cmm.Space, values ...float64) error {
	var errs []error
	for i, v := range values {
		if v < 0 || v > space.Scale() {
			errs = append(errs, &ChannelError{
				Space:   space,
				Channel: channelNames[space][i],
				Value:   v,
				Min:     0,
				Max:     space.Scale(),
			})
		}
	}
	return errors.Join(errs...)
}

// channelErrors unpacks the errors joined by checkRange.
func channelErrors(err error) []*ChannelError {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return nil
	}
	var out []*ChannelError
	for _, e := range joined.Unwrap() {
		var ce *ChannelError
		if errors.As(e, &ce) {
			out = append(out, ce)
		}
	}
	return out
}
