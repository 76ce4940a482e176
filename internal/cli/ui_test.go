package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
)

func captureUI(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	prevOut, prevErr := uiOut, uiErr
	uiOut, uiErr = out, errOut
	t.Cleanup(func() { uiOut, uiErr = prevOut, prevErr })
	return out, errOut
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name    string
		strs    int
		total   uint64
		cached  bool
		want    []string
		notWant string
	}{
		{"unambiguous", 8, 8, false, []string{"8 strings", "fresh"}, "derivations"},
		{"ambiguous", 3, 4, false, []string{"3 strings", "4 derivations", "fresh"}, "cached"},
		{"cached", 2, 2, true, []string{"2 strings", "cached"}, "fresh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := captureUI(t)
			printStats(tt.strs, tt.total, tt.cached)
			got := out.String()
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("printStats() = %q, missing %q", got, w)
				}
			}
			if strings.Contains(got, tt.notWant) {
				t.Errorf("printStats() = %q, should not contain %q", got, tt.notWant)
			}
		})
	}
}

func TestPrintErrorGoesToStderr(t *testing.T) {
	out, errOut := captureUI(t)
	printError("Generation %s", "failed")
	if out.Len() != 0 {
		t.Errorf("stdout = %q, want empty", out.String())
	}
	if !strings.Contains(errOut.String(), "Generation failed") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestPrintFileAndNextStep(t *testing.T) {
	out, _ := captureUI(t)
	printFile("binary.svg")
	printNextStep("Enumerate it", "cfggen generate binary.toml")
	got := out.String()
	for _, w := range []string{"binary.svg", "Enumerate it:", "cfggen generate binary.toml"} {
		if !strings.Contains(got, w) {
			t.Errorf("output %q missing %q", got, w)
		}
	}
}

func TestGrammarSummary(t *testing.T) {
	tests := []struct {
		g    grammar.Grammar
		want string
	}{
		{grammar.Demo(), "3 nonterminals · 8 productions · start S"},
		{grammar.Grammar{'S': {"S+S", "a"}}, "1 nonterminals · 2 productions · start S"},
	}
	for _, tt := range tests {
		if got := grammarSummary(tt.g); got != tt.want {
			t.Errorf("grammarSummary() = %q, want %q", got, tt.want)
		}
	}
}
