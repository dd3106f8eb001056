package color

import (
	"fmt"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/text/cases"
)

// FromName builds a record from an SVG 1.1 / CSS color keyword such as
// "navy" or "Light Sea Green". Case and spaces are ignored.
func (e *Engine) FromName(name string) (Record, error) {
	key := strings.ReplaceAll(cases.Fold().String(strings.TrimSpace(name)), " ", "")
	c, ok := colornames.Map[key]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownColorName, name)
	}
	return e.FromRGB(int(c.R), int(c.G), int(c.B))
}
