package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/derive"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/errors"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/io"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []Format
		wantErr bool
	}{
		{"", []Format{FormatText}, false},
		{"text", []Format{FormatText}, false},
		{"json, SVG", []Format{FormatJSON, FormatSVG}, false},
		{"dot,dot,text", []Format{FormatDOT, FormatText}, false},
		{"png", nil, true},
		{"text,", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseFormats(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormats(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ParseFormats(%q) code = %s", tt.in, errors.GetCode(err))
			}
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		}
	}
}

func TestFormatExt(t *testing.T) {
	if FormatText.Ext() != "txt" || FormatSVG.Ext() != "svg" {
		t.Errorf("Ext: %s %s", FormatText.Ext(), FormatSVG.Ext())
	}
}

func text(t *testing.T, g grammar.Grammar, depth int, opts derive.Options) string {
	t.Helper()
	res, err := derive.Generate(g, depth, opts)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, res); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestWriteText(t *testing.T) {
	ambiguous := grammar.Grammar{'S': {"S+S", "a"}}

	tests := []struct {
		name  string
		g     grammar.Grammar
		depth int
		opts  derive.Options
		want  string
	}{
		{
			name:  "set",
			g:     grammar.Demo(),
			depth: 2,
			want:  "01\n10\n",
		},
		{
			name:  "counts",
			g:     ambiguous,
			depth: 5,
			opts:  derive.Options{Repetition: derive.Counted},
			want:  "a -> 1\na+a -> 1\na+a+a -> 2\n",
		},
		{
			name:  "derivations",
			g:     grammar.Demo(),
			depth: 2,
			opts:  derive.Options{Derivations: true},
			want:  "01 ->\n(0, 0A), (1, 1)\n\n10 ->\n(0, 1B), (1, 0)\n",
		},
		{
			name:  "low memory",
			g:     grammar.Demo(),
			depth: 2,
			opts:  derive.Options{Derivations: true, LowMemory: true},
			want:  "01 ->\n(0A), (1)\n\n10 ->\n(1B), (0)\n",
		},
		{
			name:  "empty",
			g:     grammar.Demo(),
			depth: 1,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text(t, tt.g, tt.depth, tt.opts); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestWriteTextList(t *testing.T) {
	out := text(t, grammar.Grammar{'S': {"S+S", "a"}}, 5, derive.Options{Repetition: derive.Enabled})
	if n := strings.Count(out, "a+a+a\n"); n != 2 {
		t.Errorf("a+a+a listed %d times, want 2:\n%s", n, out)
	}
}

func TestFormatPathEmpty(t *testing.T) {
	if got := FormatPath(derive.Path[derive.Step]{}); got != "()" {
		t.Errorf("FormatPath(empty) = %q", got)
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	g := grammar.Demo()
	res, err := derive.Generate(g, 2, derive.Options{Derivations: true})
	if err != nil {
		t.Fatal(err)
	}

	out, err := Render(ctx, g, res, FormatText)
	if err != nil || !strings.HasPrefix(string(out), "01 ->") {
		t.Errorf("text: %q, %v", out, err)
	}

	out, err = Render(ctx, g, res, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	back, err := io.ReadJSON(bytes.NewReader(out))
	if err != nil || back.Total() != res.Total() {
		t.Errorf("json round trip: %v", err)
	}

	out, err = Render(ctx, g, res, FormatDOT)
	if err != nil || !strings.HasPrefix(string(out), "digraph G {") {
		t.Errorf("dot: %q, %v", out, err)
	}

	if _, err := Render(ctx, g, res, Format("png")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown format error = %v", err)
	}
}
