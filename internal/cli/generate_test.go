package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/derive"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/errors"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
	resultio "github.com/FlyingWolFox/cfg-string-generator/pkg/io"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/observability"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/pipeline"
)

func TestVerify(t *testing.T) {
	g := grammar.Grammar{'S': {"S+S", "a"}}

	tests := []struct {
		name string
		opts derive.Options
		want int
	}{
		{"no derivations", derive.Options{Repetition: derive.Counted}, 0},
		{"one per string", derive.Options{Derivations: true}, 3},
		{"all derivations", derive.Options{Derivations: true, Repetition: derive.Enabled}, 4},
		{"low memory", derive.Options{Derivations: true, Repetition: derive.Enabled, LowMemory: true}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := derive.Generate(g, 5, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			n, err := verify(g, res)
			if err != nil {
				t.Fatalf("verify() error: %v", err)
			}
			if n != tt.want {
				t.Errorf("verify() checked %d paths, want %d", n, tt.want)
			}
		})
	}
}

func TestVerifyDetectsMismatch(t *testing.T) {
	g := grammar.Demo()
	res, err := derive.Generate(g, 2, derive.Options{Derivations: true})
	if err != nil {
		t.Fatal(err)
	}
	// swap the paths of the two strings
	res.Steps["01"], res.Steps["10"] = res.Steps["10"], res.Steps["01"]

	if _, err := verify(g, res); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("verify() error = %v, want INTERNAL_ERROR", err)
	}
}

func TestRunGenerateWritesFiles(t *testing.T) {
	defer observability.Reset()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	c := New(io.Discard, LogInfo)
	err := c.runGenerate(withLogger(context.Background(), c.Logger), "", generateOpts{
		depth:       4,
		derivations: true,
		repetition:  pipeline.DefaultRepetition,
		formats:     "text,json",
		output:      filepath.Join(dir, "binary"),
		noCache:     true,
		verify:      true,
	})
	if err != nil {
		t.Fatalf("runGenerate() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "binary.txt")); err != nil {
		t.Errorf("text output missing: %v", err)
	}
	res, err := resultio.ImportJSON(filepath.Join(dir, "binary.json"))
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if res.Shape != derive.ShapeDerivations || len(res.Strings()) != 8 {
		t.Errorf("shape = %s, strings = %d, want derivations with 8 strings", res.Shape, len(res.Strings()))
	}
}

func TestRunGenerateSingleOutput(t *testing.T) {
	defer observability.Reset()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "sums.toml")
	if err := writeGrammar(path, grammar.Grammar{'S': {"S+S", "a"}}); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "counts.out")

	c := New(io.Discard, LogInfo)
	err := c.runGenerate(context.Background(), path, generateOpts{
		depth:      5,
		repetition: "counted",
		formats:    "text",
		output:     out,
		noCache:    true,
	})
	if err != nil {
		t.Fatalf("runGenerate() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := "a -> 1\na+a -> 1\na+a+a -> 2\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}
}

func TestRunGenerateRejectsBadInput(t *testing.T) {
	defer observability.Reset()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)

	tests := []struct {
		name string
		path string
		opts generateOpts
		code errors.Code
	}{
		{"negative depth", "", generateOpts{depth: -1, noCache: true}, errors.ErrCodeInvalidDepth},
		{"bad repetition", "", generateOpts{depth: 2, repetition: "twice", noCache: true}, errors.ErrCodeInvalidMode},
		{"bad format", "", generateOpts{depth: 2, formats: "pdf", noCache: true}, errors.ErrCodeInvalidFormat},
		{"missing grammar", filepath.Join(t.TempDir(), "nope.toml"), generateOpts{depth: 2, noCache: true}, errors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.runGenerate(context.Background(), tt.path, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("runGenerate() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRunGenerateToStdout(t *testing.T) {
	defer observability.Reset()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	out, _ := captureUI(t)

	c := New(io.Discard, LogInfo)
	err := c.runGenerate(context.Background(), "", generateOpts{
		depth:      2,
		repetition: "disabled",
		noCache:    true,
	})
	if err != nil {
		t.Fatalf("runGenerate() error: %v", err)
	}
	if got, want := out.String(), "01\n10\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}
