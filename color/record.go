package color

import "github.com/wudi/colorkit/observability"

// FromRGB builds a record from RGB channels.
func (e *Engine) FromRGB(r, g, b int) (Record, error) {
	rgb := RGB{R: r, G: g, B: b}
	hex, err := e.hex(rgb)
	if err != nil {
		return Record{}, err
	}
	cmyk, err := e.RGBToCMYK(float64(r), float64(g), float64(b))
	if err != nil {
		return Record{}, err
	}
	return newRecord(rgb, hex, cmyk), nil
}

// FromHex decodes hex to RGB and derives CMYK from that RGB. The record
// carries the normalized hex, not the input spelling.
func (e *Engine) FromHex(hex string) (Record, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		e.logger.Debug("invalid hex", observability.String(observability.KeyHex, hex))
		return Record{}, err
	}
	return e.FromRGB(rgb.R, rgb.G, rgb.B)
}

// FromCMYK converts to RGB and derives hex from that RGB. The input CMYK is
// kept as given.
func (e *Engine) FromCMYK(c, m, y, k int) (Record, error) {
	rgb, err := e.CMYKToRGB(float64(c), float64(m), float64(y), float64(k))
	if err != nil {
		return Record{}, err
	}
	hex, err := e.hex(rgb)
	if err != nil {
		return Record{}, err
	}
	return newRecord(rgb, hex, CMYK{C: c, M: m, Y: y, K: k}), nil
}

func newRecord(rgb RGB, hex string, cmyk CMYK) Record {
	return Record{
		R:   rgb.R,
		G:   rgb.G,
		B:   rgb.B,
		Hex: hex,
		C:   cmyk.C,
		M:   cmyk.M,
		Y:   cmyk.Y,
		K:   cmyk.K,
	}
}
