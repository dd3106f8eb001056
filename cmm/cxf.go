package cmm

import (
	"encoding/xml"
	"fmt"
)

// CxF is the root of a Color Exchange Format (ISO 17972) document. Only the
// object collection with Lab and sRGB values is decoded.
type CxF struct {
	XMLName   xml.Name  `xml:"CxF"`
	Resources Resources `xml:"Resources"`
}

type Resources struct {
	ObjectCollection ObjectCollection `xml:"ObjectCollection"`
}

type ObjectCollection struct {
	Objects []Object `xml:"Object"`
}

type Object struct {
	Name        string      `xml:"Name,attr"`
	ObjectType  string      `xml:"ObjectType,attr"`
	ColorValues ColorValues `xml:"ColorValues"`
}

type ColorValues struct {
	ColorCIELab *ColorCIELab `xml:"ColorCIELab"`
	ColorSRGB   *ColorSRGB   `xml:"ColorSRGB"`
}

type ColorCIELab struct {
	L float64 `xml:"L"`
	A float64 `xml:"A"`
	B float64 `xml:"B"`
}

type ColorSRGB struct {
	R float64 `xml:"R"`
	G float64 `xml:"G"`
	B float64 `xml:"B"`
}

// ParseCxF parses CxF XML data.
func ParseCxF(data []byte) (*CxF, error) {
	var cxf CxF
	if err := xml.Unmarshal(data, &cxf); err != nil {
		return nil, err
	}
	return &cxf, nil
}

// RGB returns the object's 8-bit sRGB value. An explicit ColorSRGB wins over
// a Lab measurement.
func (o Object) RGB() (r, g, b uint8, err error) {
	switch v := o.ColorValues; {
	case v.ColorSRGB != nil:
		return clamp8(v.ColorSRGB.R), clamp8(v.ColorSRGB.G), clamp8(v.ColorSRGB.B), nil
	case v.ColorCIELab != nil:
		r, g, b = LabToRGB(v.ColorCIELab.L, v.ColorCIELab.A, v.ColorCIELab.B)
		return r, g, b, nil
	}
	return 0, 0, 0, fmt.Errorf("object %q has no Lab or sRGB value", o.Name)
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}
