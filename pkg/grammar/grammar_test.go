package grammar

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/errors"
)

func TestIndexLeftmost(t *testing.T) {
	ix := Demo().Index()

	tests := []struct {
		in   string
		want int
	}{
		{"S", 0},
		{"0A", 1},
		{"00AB", 2},
		{"0101", -1},
		{"", -1},
	}

	for _, tt := range tests {
		if got := ix.Leftmost(tt.in); got != tt.want {
			t.Errorf("Leftmost(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	g := Demo()
	if !g.IsTerminal("0110") {
		t.Error("0110 should be terminal")
	}
	if g.IsTerminal("01S") {
		t.Error("01S should not be terminal")
	}
	// bytes that are not keys are terminal, even uppercase ones
	if !g.IsTerminal("XYZ") {
		t.Error("XYZ should be terminal for the demo grammar")
	}
}

func TestSymbolsSorted(t *testing.T) {
	got := Demo().Symbols()
	want := []byte{'A', 'B', 'S'}
	if !bytes.Equal(got, want) {
		t.Errorf("Symbols() = %q, want %q", got, want)
	}
}

func TestLen(t *testing.T) {
	if got := Demo().Len(); got != 8 {
		t.Errorf("Len() = %d, want 8", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := Demo()
	c := g.Clone()
	c['S'][0] = "changed"
	if g['S'][0] != "0A" {
		t.Error("Clone shares production storage with the original")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g := Demo()
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.HasPrefix(string(data), `{"A":`) {
		t.Errorf("keys should be sorted one-byte strings: %s", data)
	}

	var back Grammar
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, g) {
		t.Errorf("round trip = %v, want %v", back, g)
	}
}

func TestUnmarshalRejectsLongKeys(t *testing.T) {
	var g Grammar
	err := json.Unmarshal([]byte(`{"Expr": ["x"]}`), &g)
	if !errors.Is(err, errors.ErrCodeInvalidGrammar) {
		t.Errorf("expected INVALID_GRAMMAR, got %v", err)
	}
}

func TestDecodeTOML(t *testing.T) {
	src := `
[rules]
S = ["0A", "1B"]
A = ["0AA", "1S", "1"]
B = ["1BB", "0S", "0"]
`
	g, err := Decode(strings.NewReader(src), FormatTOML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(g, Demo()) {
		t.Errorf("Decode = %v, want demo grammar", g)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		format Format
		code   errors.Code
	}{
		{"toml syntax", "[rules\nS = 1", FormatTOML, errors.ErrCodeInvalidGrammar},
		{"toml unknown key", "start = 'S'\n[rules]\nS = ['a']", FormatTOML, errors.ErrCodeInvalidGrammar},
		{"json unknown field", `{"rules": {"S": ["a"]}, "start": "S"}`, FormatJSON, errors.ErrCodeInvalidGrammar},
		{"no rules", `{"rules": {}}`, FormatJSON, errors.ErrCodeInvalidGrammar},
		{"long key", `{"rules": {"SS": ["a"]}}`, FormatJSON, errors.ErrCodeInvalidGrammar},
		{"bad format", `{}`, Format("yaml"), errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("Decode() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, Demo(), format); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			g, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(g, Demo()) {
				t.Errorf("round trip = %v", g)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "binary.json")
	if err := os.WriteFile(path, []byte(`{"rules": {"S": ["ab", "aSb"]}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(g['S']) != 2 {
		t.Errorf("Load = %v", g)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := Load(filepath.Join(dir, "grammar.yaml")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("yaml error = %v, want INVALID_FORMAT", err)
	}
}

func TestCanonicalStable(t *testing.T) {
	a := Canonical(Demo())
	b := Canonical(Demo().Clone())
	if !bytes.Equal(a, b) {
		t.Error("Canonical should not depend on map iteration order")
	}
}

func TestExampleGrammars(t *testing.T) {
	tests := []struct {
		file string
		want Grammar
	}{
		{"binary.toml", Demo()},
		{"sums.toml", Grammar{'S': {"S+S", "a"}}},
		{"parens.json", Grammar{'S': {"(S)S", ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			g, err := Load(filepath.Join("..", "..", "examples", "grammars", tt.file))
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if !reflect.DeepEqual(g, tt.want) {
				t.Errorf("Load() = %v, want %v", g, tt.want)
			}
		})
	}
}
