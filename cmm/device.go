package cmm

import "strings"

// deviceProfile stands in for an uncalibrated device space. Transforms
// between device profiles use the plain formulas.
type deviceProfile struct {
	space string
}

var (
	DeviceRGB  Profile = deviceProfile{space: sigRGB}
	DeviceCMYK Profile = deviceProfile{space: sigCMYK}
)

func (p deviceProfile) Name() string       { return "Device" + strings.TrimSpace(p.space) }
func (p deviceProfile) ColorSpace() string { return p.space }
func (p deviceProfile) Class() string      { return "abst" }
func (p deviceProfile) Data() []byte       { return []byte("device:" + p.space) }
