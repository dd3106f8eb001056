// Package color converts colors between RGB, hexadecimal and CMYK and builds
// canonical records that carry all three at once.
//
// RGB is the pivot: hex and CMYK are always derived from RGB, never from
// each other. Device CMYK conversion is delegated to a cmm.Converter.
package color

import "fmt"

// RGB holds 8-bit channels, 0-255.
type RGB struct {
	R, G, B int
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// CMYK holds percentage channels, 0-100.
type CMYK struct {
	C, M, Y, K int
}

func (c CMYK) String() string {
	return fmt.Sprintf("cmyk(%d, %d, %d, %d)", c.C, c.M, c.Y, c.K)
}

// Record is the canonical color record produced by every From function.
type Record struct {
	R   int    `json:"r"`
	G   int    `json:"g"`
	B   int    `json:"b"`
	Hex string `json:"hex"`
	C   int    `json:"c"`
	M   int    `json:"m"`
	Y   int    `json:"y"`
	K   int    `json:"k"`
}

func (r Record) RGB() RGB   { return RGB{R: r.R, G: r.G, B: r.B} }
func (r Record) CMYK() CMYK { return CMYK{C: r.C, M: r.M, Y: r.Y, K: r.K} }

func (r Record) String() string {
	return fmt.Sprintf("%s %s %s", r.Hex, r.RGB(), r.CMYK())
}
