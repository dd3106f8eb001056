package cmm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf16"

	"seehuhn.de/go/icc"
)

// ICCProfile implements Profile for ICC data. The header and tag table are
// decoded by seehuhn.de/go/icc; tag bodies are read here.
type ICCProfile struct {
	data    []byte
	profile *icc.Profile
}

// NewICCProfile decodes data as an ICC profile of any class or color space.
func NewICCProfile(data []byte) (*ICCProfile, error) {
	// icc.Decode zeroes header fields while it verifies the profile ID.
	p, err := icc.Decode(bytes.Clone(data))
	if err != nil {
		return nil, fmt.Errorf("decode ICC profile: %w", err)
	}
	return &ICCProfile{data: data, profile: p}, nil
}

// Name returns the profile description from the 'desc' tag, if present.
func (p *ICCProfile) Name() string {
	if name, err := p.readTextTag("desc"); err == nil && name != "" {
		return name
	}
	return "ICC Profile"
}

func (p *ICCProfile) ColorSpace() string {
	return signature(uint32(p.profile.ColorSpace))
}

func (p *ICCProfile) Class() string {
	return signature(uint32(p.profile.Class))
}

// PCS returns the profile connection space signature ("XYZ " or "Lab ").
func (p *ICCProfile) PCS() string {
	return signature(uint32(p.profile.PCS))
}

func (p *ICCProfile) Data() []byte {
	return p.data
}

// GetTag returns the raw bytes of the tag with the given signature.
func (p *ICCProfile) GetTag(sig string) ([]byte, bool) {
	if len(sig) != 4 {
		return nil, false
	}
	data, ok := p.profile.TagData[icc.TagType(binary.BigEndian.Uint32([]byte(sig)))]
	return data, ok
}

func signature(v uint32) string {
	return string(binary.BigEndian.AppendUint32(nil, v))
}

// ReadXYZTag decodes an XYZType tag such as "rXYZ".
func (p *ICCProfile) ReadXYZTag(sig string) ([3]float64, error) {
	var xyz [3]float64
	data, ok := p.GetTag(sig)
	if !ok {
		return xyz, fmt.Errorf("tag %q not found", sig)
	}
	if len(data) < 20 || string(data[0:4]) != "XYZ " {
		return xyz, fmt.Errorf("tag %q is not an XYZ tag", sig)
	}
	for i := range xyz {
		xyz[i] = s15Fixed16ToFloat(binary.BigEndian.Uint32(data[8+4*i : 12+4*i]))
	}
	return xyz, nil
}

// ReadCurveTag returns the gamma of a tone reproduction curve. Sampled
// curves are reduced to the gamma that matches their midpoint.
func (p *ICCProfile) ReadCurveTag(sig string) (float64, error) {
	data, ok := p.GetTag(sig)
	if !ok {
		return 0, fmt.Errorf("tag %q not found", sig)
	}
	if len(data) < 12 {
		return 0, fmt.Errorf("tag %q too short", sig)
	}
	switch string(data[0:4]) {
	case "curv":
		n := int(binary.BigEndian.Uint32(data[8:12]))
		if len(data) < 12+2*n {
			return 0, fmt.Errorf("curve %q truncated", sig)
		}
		switch n {
		case 0:
			return 1, nil
		case 1:
			return float64(binary.BigEndian.Uint16(data[12:14])) / 256.0, nil
		}
		mid := (n - 1) / 2
		x := float64(mid) / float64(n-1)
		y := float64(binary.BigEndian.Uint16(data[12+2*mid:14+2*mid])) / 65535.0
		if y <= 0 || y >= 1 || x <= 0 {
			return 1, nil
		}
		return math.Log(y) / math.Log(x), nil
	case "para":
		if len(data) < 16 {
			return 0, fmt.Errorf("parametric curve %q truncated", sig)
		}
		return s15Fixed16ToFloat(binary.BigEndian.Uint32(data[12:16])), nil
	}
	return 0, fmt.Errorf("tag %q has unsupported curve type %q", sig, data[0:4])
}

func (p *ICCProfile) readTextTag(sig string) (string, error) {
	data, ok := p.GetTag(sig)
	if !ok || len(data) < 12 {
		return "", fmt.Errorf("tag %q not found", sig)
	}
	switch string(data[0:4]) {
	case "desc":
		n := int(binary.BigEndian.Uint32(data[8:12]))
		if n <= 0 || 12+n > len(data) {
			return "", errors.New("desc tag truncated")
		}
		return strings.TrimRight(string(data[12:12+n]), "\x00"), nil
	case "mluc":
		if len(data) < 28 {
			return "", errors.New("mluc tag truncated")
		}
		size := int(binary.BigEndian.Uint32(data[20:24]))
		offset := int(binary.BigEndian.Uint32(data[24:28]))
		if offset+size > len(data) || size%2 != 0 {
			return "", errors.New("mluc record out of range")
		}
		units := make([]uint16, size/2)
		for i := range units {
			units[i] = binary.BigEndian.Uint16(data[offset+2*i:])
		}
		return string(utf16.Decode(units)), nil
	case "text":
		return strings.TrimRight(string(data[8:]), "\x00"), nil
	}
	return "", fmt.Errorf("tag %q is not a text tag", sig)
}

func s15Fixed16ToFloat(v uint32) float64 {
	return float64(int32(v)) / 65536.0
}
