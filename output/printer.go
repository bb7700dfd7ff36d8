package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/opencamara/camara-go/camara"
)

// DefaultMaxWidth caps the width of a single table cell.
const DefaultMaxWidth = 60

// Printer renders tables in one of the supported formats.
type Printer struct {
	w        io.Writer
	format   Format
	colors   *ColorScheme
	maxWidth int
}

// Option configures a Printer
type Option func(*Printer)

// WithColors sets the color scheme used by the table format.
func WithColors(scheme *ColorScheme) Option {
	return func(p *Printer) {
		if scheme != nil {
			p.colors = scheme
		}
	}
}

// WithMaxWidth sets the cell width limit. Zero or less disables truncation.
func WithMaxWidth(n int) Option {
	return func(p *Printer) {
		p.maxWidth = n
	}
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, format Format, opts ...Option) *Printer {
	p := &Printer{
		w:        w,
		format:   format,
		colors:   NoColorScheme(),
		maxWidth: DefaultMaxWidth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Print renders t.
func (p *Printer) Print(t *Table) error {
	switch p.format {
	case FormatJSON:
		return p.printJSON(t)
	case FormatYAML:
		return p.printYAML(t)
	case FormatTable, "":
		return p.printTable(t)
	default:
		return fmt.Errorf("invalid output format: %s", p.format)
	}
}

// printJSON writes rows as objects whose keys follow the column order.
func (p *Printer) printJSON(t *Table) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range t.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range t.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, _ := json.Marshal(col)
			val, err := json.Marshal(row[col])
			if err != nil {
				return fmt.Errorf("failed to encode field %s: %w", col, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("failed to format JSON: %w", err)
	}
	out.WriteByte('\n')
	_, err := p.w.Write(out.Bytes())
	return err
}

// printYAML builds the document as nodes so mappings keep the column order.
func (p *Printer) printYAML(t *Table) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range t.Rows {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, col := range t.Columns {
			var val yaml.Node
			if err := val.Encode(row[col]); err != nil {
				return fmt.Errorf("failed to encode field %s: %w", col, err)
			}
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col},
				&val,
			)
		}
		seq.Content = append(seq.Content, m)
	}

	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

func (p *Printer) printTable(t *Table) error {
	if len(t.Rows) == 0 {
		_, err := p.colors.Summary.Fprintln(p.w, "(no records)")
		return err
	}

	cells := make([][]string, len(t.Rows))
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = cellWidth.StringWidth(col)
	}
	for r, row := range t.Rows {
		cells[r] = make([]string, len(t.Columns))
		for c, col := range t.Columns {
			s := p.truncate(Cell(row[col]))
			cells[r][c] = s
			widths[c] = max(widths[c], cellWidth.StringWidth(s))
		}
	}

	var sb strings.Builder
	for c, col := range t.Columns {
		if c > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(p.colors.Header.Sprint(pad(strings.ToUpper(col), widths[c], c == len(t.Columns)-1)))
	}
	sb.WriteByte('\n')

	for r, row := range t.Rows {
		for c, col := range t.Columns {
			if c > 0 {
				sb.WriteString("  ")
			}
			s := pad(cells[r][c], widths[c], c == len(t.Columns)-1)
			switch row[col].(type) {
			case nil:
				sb.WriteString(p.colors.Null.Sprint(s))
			case float64, int, int64:
				sb.WriteString(p.colors.Number.Sprint(s))
			default:
				sb.WriteString(s)
			}
		}
		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(p.w, sb.String()); err != nil {
		return err
	}
	_, err := p.colors.Summary.Fprintf(p.w, "%d record(s)\n", len(t.Rows))
	return err
}

// cellWidth measures terminal cells without the locale's East Asian
// ambiguous-width rules, so output is the same on every host.
var cellWidth = &runewidth.Condition{StrictEmojiNeutral: true}

func (p *Printer) truncate(s string) string {
	if p.maxWidth <= 0 {
		return s
	}
	if p.maxWidth <= 3 {
		return cellWidth.Truncate(s, p.maxWidth, "")
	}
	return cellWidth.Truncate(s, p.maxWidth, "...")
}

// pad right-pads s to width cells. The last column is left unpadded.
func pad(s string, width int, last bool) string {
	if last {
		return s
	}
	return cellWidth.FillRight(s, width)
}

// Cell formats a single value for the table format.
func Cell(v any) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case string:
		return strings.Join(strings.Fields(tv), " ")
	case bool:
		return strconv.FormatBool(tv)
	case float64:
		if tv == math.Trunc(tv) && math.Abs(tv) < 1e15 {
			return strconv.FormatInt(int64(tv), 10)
		}
		return strconv.FormatFloat(tv, 'f', -1, 64)
	case camara.Record, map[string]any, []any:
		b, err := json.Marshal(tv)
		if err != nil {
			return fmt.Sprint(tv)
		}
		return string(b)
	default:
		return fmt.Sprint(tv)
	}
}
