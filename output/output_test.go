package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencamara/camara-go/camara"
)

type deputado struct {
	ID      int     `json:"id"`
	Nome    string  `json:"nome"`
	SiglaUF string  `json:"siglaUf"`
	Email   *string `json:"email"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "table", want: FormatTable},
		{in: " JSON ", want: FormatJSON},
		{in: "yaml", want: FormatYAML},
		{in: "", want: FormatTable},
		{in: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid output format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("structs keep field order", func(t *testing.T) {
		tbl, err := Normalize([]deputado{{ID: 1, Nome: "Ana", SiglaUF: "SP"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "nome", "siglaUf", "email"}, tbl.Columns)
		require.Len(t, tbl.Rows, 1)
		assert.Equal(t, float64(1), tbl.Rows[0]["id"])
		assert.Nil(t, tbl.Rows[0]["email"])
	})

	t.Run("single object", func(t *testing.T) {
		tbl, err := Normalize(deputado{ID: 7})
		require.NoError(t, err)
		assert.Len(t, tbl.Rows, 1)
	})

	t.Run("records with differing keys", func(t *testing.T) {
		tbl, err := Normalize([]camara.Record{{"b": 1}, {"a": 2, "b": 3}})
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, tbl.Columns)
	})

	t.Run("scalars", func(t *testing.T) {
		tbl, err := Normalize([]string{"AC", "AL"})
		require.NoError(t, err)
		assert.Equal(t, []string{"value"}, tbl.Columns)
		assert.Equal(t, "AL", tbl.Rows[1]["value"])
	})

	t.Run("nil", func(t *testing.T) {
		rows, err := Records(nil)
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})
}

func TestTable_Select(t *testing.T) {
	tbl, err := Normalize([]deputado{{ID: 1, Nome: "Ana", SiglaUF: "SP"}})
	require.NoError(t, err)

	tbl.Select([]string{"nome", "id", "partido"})
	assert.Equal(t, []string{"nome", "id", "partido"}, tbl.Columns)
	assert.Equal(t, camara.Record{"nome": "Ana", "id": float64(1), "partido": nil}, tbl.Rows[0])

	tbl.Select(nil)
	assert.Equal(t, []string{"nome", "id", "partido"}, tbl.Columns)
}

func TestCell(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: ""},
		{name: "integral float", in: float64(204554), want: "204554"},
		{name: "fraction", in: 1250.75, want: "1250.75"},
		{name: "bool", in: true, want: "true"},
		{name: "whitespace collapsed", in: "Frente\n  Parlamentar", want: "Frente Parlamentar"},
		{name: "nested", in: map[string]any{"a": float64(1)}, want: `{"a":1}`},
		{name: "list", in: []any{"x", float64(2)}, want: `["x",2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Cell(tt.in))
		})
	}
}

func sample(t *testing.T) *Table {
	t.Helper()
	tbl, err := Normalize([]deputado{
		{ID: 1, Nome: "Ana", SiglaUF: "SP"},
		{ID: 204554, Nome: "José Bezerra", SiglaUF: "CE"},
	})
	require.NoError(t, err)
	return tbl
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatTable).Print(sample(t)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID      NOME          SIGLAUF  EMAIL", lines[0])
	assert.Equal(t, "1       Ana           SP       ", lines[1])
	assert.Equal(t, "204554  José Bezerra  CE       ", lines[2])
	assert.Equal(t, "2 record(s)", lines[3])
}

func TestPrinter_TableTruncatesAndHandlesEmpty(t *testing.T) {
	var buf bytes.Buffer
	tbl := &Table{Columns: []string{"txt"}, Rows: []camara.Record{{"txt": "abcdefghij"}}}
	require.NoError(t, NewPrinter(&buf, FormatTable, WithMaxWidth(6)).Print(tbl))
	assert.Contains(t, buf.String(), "abc...\n")

	buf.Reset()
	require.NoError(t, NewPrinter(&buf, FormatTable).Print(&Table{}))
	assert.Equal(t, "(no records)\n", buf.String())
}

func TestPrinter_TableAlignsWideCharacters(t *testing.T) {
	var buf bytes.Buffer
	tbl := &Table{
		Columns: []string{"a", "b"},
		Rows: []camara.Record{
			{"a": "日本", "b": "x"},
			{"a": "ab", "b": "y"},
		},
	}
	require.NoError(t, NewPrinter(&buf, FormatTable).Print(tbl))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "A     B", lines[0])
	assert.Equal(t, "日本  x", lines[1])
	assert.Equal(t, "ab    y", lines[2])

	buf.Reset()
	tbl = &Table{Columns: []string{"txt"}, Rows: []camara.Record{{"txt": "日本語テキスト"}}}
	require.NoError(t, NewPrinter(&buf, FormatTable, WithMaxWidth(5)).Print(tbl))
	assert.Contains(t, buf.String(), "日...\n")
}

func TestPrinter_TableColors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatTable, WithColors(DefaultColorScheme())).Print(sample(t)))
	assert.Contains(t, buf.String(), "\x1b[")

	buf.Reset()
	require.NoError(t, NewPrinter(&buf, FormatTable, WithColors(NoColorScheme())).Print(sample(t)))
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatJSON).Print(sample(t)))

	out := buf.String()
	assert.True(t, strings.Index(out, `"nome"`) < strings.Index(out, `"siglaUf"`), "keys keep column order")
	assert.JSONEq(t, `[
		{"id": 1, "nome": "Ana", "siglaUf": "SP", "email": null},
		{"id": 204554, "nome": "José Bezerra", "siglaUf": "CE", "email": null}
	]`, out)

	buf.Reset()
	require.NoError(t, NewPrinter(&buf, FormatJSON).Print(&Table{}))
	assert.Equal(t, "[]\n", buf.String())
}

func TestPrinter_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatYAML).Print(sample(t)))

	assert.Equal(t, `- id: 1
  nome: Ana
  siglaUf: SP
  email: null
- id: 204554
  nome: José Bezerra
  siglaUf: CE
  email: null
`, buf.String())
}

func TestShouldColor(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))
	assert.False(t, ShouldColor(&buf, false))
	assert.False(t, ShouldColor(&buf, true))
}
