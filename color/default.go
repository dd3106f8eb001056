package color

// Default is the device-formula engine behind the package-level functions.
var Default = NewEngine()

func RGBToCMYK(r, g, b float64) (CMYK, error)   { return Default.RGBToCMYK(r, g, b) }
func CMYKToRGB(c, m, y, k float64) (RGB, error) { return Default.CMYKToRGB(c, m, y, k) }
func FromRGB(r, g, b int) (Record, error)       { return Default.FromRGB(r, g, b) }
func FromHex(hex string) (Record, error)        { return Default.FromHex(hex) }
func FromCMYK(c, m, y, k int) (Record, error)   { return Default.FromCMYK(c, m, y, k) }
func FromName(name string) (Record, error)      { return Default.FromName(name) }
