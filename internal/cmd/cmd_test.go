package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/colorkit/color"
	"github.com/wudi/colorkit/swatch"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConvertCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"rgb", []string{"rgb", "0", "128", "255"}, "#0080ff rgb(0, 128, 255) cmyk(100, 50, 0, 0)"},
		{"hex shorthand", []string{"hex", "#FC0"}, "#ffcc00 rgb(255, 204, 0) cmyk(0, 20, 100, 0)"},
		{"cmyk", []string{"cmyk", "0", "0", "0", "50"}, "#808080 rgb(128, 128, 128) cmyk(0, 0, 0, 50)"},
		{"name", []string{"name", "Light", "Sea", "Green"}, "#20b2aa"},
		{"upper", []string{"--upper", "hex", "0080ff"}, "#0080FF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestConvertJSON(t *testing.T) {
	out, err := run(t, "--json", "rgb", "255", "0", "0")
	require.NoError(t, err)

	var rec color.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, color.Record{R: 255, Hex: "#ff0000", M: 100, Y: 100}, rec)
}

func TestConvertErrors(t *testing.T) {
	_, err := run(t, "rgb", "300", "0", "256")
	require.ErrorIs(t, err, color.ErrChannelOutOfRange)
	assert.Contains(t, err.Error(), "red")
	assert.Contains(t, err.Error(), "blue")

	_, err = run(t, "rgb", "a", "0", "0")
	assert.ErrorContains(t, err, "invalid red value")

	_, err = run(t, "hex", "12345")
	assert.ErrorIs(t, err, color.ErrInvalidHexFormat)

	_, err = run(t, "name", "notacolor")
	assert.ErrorIs(t, err, color.ErrUnknownColorName)

	_, err = run(t, "cmyk", "0", "0", "0")
	assert.Error(t, err)
}

func TestConverterSelection(t *testing.T) {
	_, err := run(t, "--converter", "lab", "rgb", "1", "2", "3")
	assert.ErrorContains(t, err, "unknown converter")

	_, err = run(t, "--converter", "profile", "rgb", "1", "2", "3")
	assert.ErrorContains(t, err, "--rgb-profile")

	_, err = run(t, "--converter", "profile", "--rgb-profile", "missing.icc", "--cmyk-profile", "missing.icc", "rgb", "1", "2", "3")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = run(t, "--converter", "script", "rgb", "1", "2", "3")
	assert.ErrorContains(t, err, "--script")
}

func TestScriptConverter(t *testing.T) {
	script := writeFile(t, "convert.js", `
function convertSampleColor(src, channels, dst) {
	if (src === "RGB") {
		return [10, 20, 30, 40];
	}
	return [1, 2, 3];
}`)

	out, err := run(t, "--converter", "script", "--script", script, "rgb", "0", "128", "255")
	require.NoError(t, err)
	assert.Contains(t, out, "cmyk(10, 20, 30, 40)")

	out, err = run(t, "--converter", "script", "--script", script, "cmyk", "5", "5", "5", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "#010203")
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "colorkit.yaml", "upper: true\njson: false\n")
	out, err := run(t, "--config", cfg, "hex", "abc")
	require.NoError(t, err)
	assert.Contains(t, out, "#AABBCC")

	bad := writeFile(t, "bad.yaml", "converter: pantone\n")
	_, err = run(t, "--config", bad, "hex", "abc")
	assert.ErrorContains(t, err, "unknown converter")

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "hex", "abc")
	assert.ErrorContains(t, err, "reading config")
}

func TestEnvironment(t *testing.T) {
	t.Setenv("COLORKIT_UPPER", "true")
	out, err := run(t, "hex", "0080ff")
	require.NoError(t, err)
	assert.Contains(t, out, "#0080FF")
}

const swatchYAML = `
swatches:
  - name: Brand Red
    typename: CMYKColor
    magenta: 100
    yellow: 100
  - name: Broken
    typename: RGBColor
    red: 300
  - name: Cyan Spot
    typename: SpotColor
    tint: 50
    spot:
      name: Process Cyan
      color:
        typename: CMYKColor
        cyan: 100
`

func TestSwatches(t *testing.T) {
	list := writeFile(t, "list.yaml", swatchYAML)

	out, err := run(t, "swatches", list)
	require.NoError(t, err)
	assert.Contains(t, out, "| Brand Red | CMYKColor | `#ff0000` |")
	assert.Contains(t, out, "| Cyan Spot | SpotColor | `#00ffff` |")
	assert.Contains(t, out, "| Broken | RGBColor | | | |")

	out, err = run(t, "--json", "swatches", "--spot-tint", list)
	require.NoError(t, err)
	var report swatch.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Rows, 3)
	assert.Equal(t, 50, report.Rows[2].Record.C)
	assert.Equal(t, 1, report.Failed())

	html := filepath.Join(t.TempDir(), "report.html")
	out, err = run(t, "swatches", list, "-o", html)
	require.NoError(t, err)
	assert.Empty(t, out)
	data, err := os.ReadFile(html)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "<table>"))

	_, err = run(t, "swatches", filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
