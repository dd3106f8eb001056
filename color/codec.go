package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wudi/colorkit/cmm"
)

// DecimalToHex formats n in lowercase base 16 without padding.
func DecimalToHex(n int) string {
	return strconv.FormatInt(int64(n), 16)
}

// HexToDecimal parses s in base 16 the way a lenient parseInt does: leading
// whitespace, a sign and a 0x prefix are accepted, and parsing stops at the
// first non-hex character. ok is false when no hex digit leads the input.
func HexToDecimal(s string) (n int, ok bool) {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	end := 0
	for end < len(s) && isHexDigit(s[end]) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseInt(s[:end], 16, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return int(v), true
}

// PadPrefix left-pads s with pad until it is at least width long. A pad
// longer than one character is repeated whole, so the result may overshoot.
func PadPrefix(s string, width int, pad string) string {
	if len(s) >= width || pad == "" {
		return s
	}
	return strings.Repeat(pad, width-len(s)) + s
}

// RGBToHex returns "#rrggbb". Channels outside [0, 255] yield an error
// wrapping ErrChannelOutOfRange, one *ChannelError per bad channel.
func RGBToHex(r, g, b int) (string, error) {
	if err := checkRange(cmm.SpaceRGB, float64(r), float64(g), float64(b)); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteByte('#')
	for _, v := range []int{r, g, b} {
		sb.WriteString(PadPrefix(DecimalToHex(v), 2, "0"))
	}
	return sb.String(), nil
}

// HexToRGB decodes "#rrggbb", "rrggbb", "#rgb" or "rgb" in any case.
func HexToRGB(hex string) (RGB, error) {
	h := hex
	if (len(h) == 4 || len(h) == 7) && h[0] == '#' {
		h = h[1:]
	}
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 || !isHexString(h) {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHexFormat, hex)
	}

	var ch [3]int
	for i := range ch {
		ch[i], _ = HexToDecimal(h[2*i : 2*i+2])
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// NormalizeHex returns hex in canonical "#rrggbb" form.
func NormalizeHex(hex string) (string, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return "", err
	}
	return RGBToHex(rgb.R, rgb.G, rgb.B)
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func isHexString(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}
