// Package swatch loads named color lists and renders them as conversion
// reports.
package swatch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/wudi/colorkit/cmm"
	"github.com/wudi/colorkit/document"
)

// Entry is one named swatch. Exactly one of Color and Hex is set.
type Entry struct {
	Name  string
	Color document.Color
	Hex   string
}

// TypeName reports the document variant, or "Hex" for a hex shortcut.
func (e Entry) TypeName() string {
	if e.Color == nil {
		return "Hex"
	}
	return e.Color.TypeName()
}

// file is the on-disk shape shared by the YAML and TOML loaders.
type file struct {
	Swatches []map[string]any `yaml:"swatches" toml:"swatches"`
}

// Load reads a swatch list, choosing the decoder by file extension:
// .yaml/.yml, .toml, or .cxf/.xml.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading swatches %s: %w", path, err)
	}

	var entries []Entry
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		entries, err = ParseYAML(data)
	case ".toml":
		entries, err = ParseTOML(data)
	case ".cxf", ".xml":
		entries, err = ParseCxF(data)
	default:
		return nil, fmt.Errorf("unsupported swatch file type %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing swatches %s: %w", path, err)
	}
	return entries, nil
}

func ParseYAML(data []byte) ([]Entry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.entries()
}

func ParseTOML(data []byte) ([]Entry, error) {
	var f file
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, err
	}
	return f.entries()
}

// ParseCxF turns every CxF object into a full-strength spot color whose
// process definition is the object's sRGB value. Lab-only objects are
// converted with cmm.LabToRGB.
func ParseCxF(data []byte) ([]Entry, error) {
	doc, err := cmm.ParseCxF(data)
	if err != nil {
		return nil, err
	}
	objects := doc.Resources.ObjectCollection.Objects
	entries := make([]Entry, 0, len(objects))
	for _, obj := range objects {
		r, g, b, err := obj.RGB()
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Name: obj.Name,
			Color: &document.SpotColor{
				Spot: &document.Spot{
					Name:  obj.Name,
					Color: &document.RGBColor{Red: float64(r), Green: float64(g), Blue: float64(b)},
				},
				Tint: 100,
			},
		})
	}
	return entries, nil
}

func (f file) entries() ([]Entry, error) {
	entries := make([]Entry, 0, len(f.Swatches))
	for i, m := range f.Swatches {
		e, err := entryFromMap(m)
		if err != nil {
			return nil, fmt.Errorf("swatch %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func entryFromMap(m map[string]any) (Entry, error) {
	name, _ := m["name"].(string)
	if hex, ok := m["hex"]; ok {
		if _, typed := m["typename"]; !typed {
			s, ok := hex.(string)
			if !ok {
				return Entry{}, fmt.Errorf("%q: hex must be a string, got %T", name, hex)
			}
			return Entry{Name: name, Hex: s}, nil
		}
	}
	c, err := document.FromMap(m)
	if err != nil {
		return Entry{}, fmt.Errorf("%q: %w", name, err)
	}
	if name == "" {
		if sc, ok := c.(*document.SpotColor); ok {
			name = sc.Spot.Name
		}
	}
	return Entry{Name: name, Color: c}, nil
}
