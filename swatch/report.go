package swatch

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/wudi/colorkit/color"
	"github.com/wudi/colorkit/document"
)

// MaxNameLength is the widest name a report row shows before truncating.
const MaxNameLength = 32

const timestampLayout = "2006-01-02 15:04"

var now = time.Now

// Row is one converted swatch. Err is empty when Record is valid.
type Row struct {
	Name   string       `json:"name"`
	Type   string       `json:"type"`
	Record color.Record `json:"record"`
	Err    string       `json:"error,omitempty"`
}

type Report struct {
	ID        string `json:"id"`
	Generated string `json:"generated"`
	Rows      []Row  `json:"rows"`
}

// Failed counts rows that could not be converted.
func (r *Report) Failed() int {
	n := 0
	for _, row := range r.Rows {
		if row.Err != "" {
			n++
		}
	}
	return n
}

// Build converts every entry. A failing entry becomes a row carrying its
// error; it never aborts the report.
func Build(entries []Entry, n *document.Normalizer) *Report {
	r := &Report{
		ID:        uuid.NewString(),
		Generated: now().Format(timestampLayout),
		Rows:      make([]Row, 0, len(entries)),
	}
	for _, e := range entries {
		row := Row{Name: e.Name, Type: e.TypeName()}
		var err error
		if e.Color == nil {
			row.Record, err = n.Engine().FromHex(e.Hex)
		} else {
			row.Record, err = n.Normalize(e.Color)
		}
		if err != nil {
			row.Record = color.Record{}
			row.Err = err.Error()
		}
		r.Rows = append(r.Rows, row)
	}
	return r
}

// WriteMarkdown writes the report as a Markdown table.
func (r *Report) WriteMarkdown(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Swatch report\n\n")
	fmt.Fprintf(&b, "Report %s, generated %s.\n\n", r.ID, r.Generated)
	b.WriteString("| Name | Type | Hex | RGB | CMYK | Note |\n")
	b.WriteString("|------|------|-----|-----|------|------|\n")
	for _, row := range r.Rows {
		name := escapeCell(truncate(row.Name, MaxNameLength))
		if row.Err != "" {
			fmt.Fprintf(&b, "| %s | %s | | | | %s |\n", name, row.Type, escapeCell(row.Err))
			continue
		}
		rec := row.Record
		fmt.Fprintf(&b, "| %s | %s | `%s` | %d, %d, %d | %d, %d, %d, %d | |\n",
			name, row.Type, rec.Hex, rec.R, rec.G, rec.B, rec.C, rec.M, rec.Y, rec.K)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteHTML renders the Markdown table to HTML.
func (r *Report) WriteHTML(w io.Writer) error {
	var src bytes.Buffer
	if err := r.WriteMarkdown(&src); err != nil {
		return err
	}
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	return md.Convert(src.Bytes(), w)
}

// SaveReport writes r to path as UTF-8 with a trailing newline. A .html or
// .htm extension selects HTML, anything else Markdown.
func SaveReport(path string, r *Report) error {
	var buf bytes.Buffer
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		err = r.WriteHTML(&buf)
	default:
		err = r.WriteMarkdown(&buf)
	}
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// truncate keeps the first limit runes of s and marks the cut with "...".
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
