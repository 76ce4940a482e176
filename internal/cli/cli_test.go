package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
)

// execute runs the root command with args and returns what it wrote.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	for _, name := range []string{"generate", "demo", "grammar", "cache", "serve", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, appName+" version ") {
		t.Errorf("version output = %q", out)
	}
}

func TestDemoCommand(t *testing.T) {
	out, err := execute(t, "demo", "-d", "2")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Strings with count:") || !strings.Contains(out, "01 -> 1") {
		t.Errorf("demo output = %q", out)
	}
}

func TestGrammarShowCommand(t *testing.T) {
	out, err := execute(t, "grammar", "show")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Symbol", "0A | 1B", "0AA | 1S | 1", "1BB | 0S | 0", "3 nonterminals · 8 productions · start S"} {
		if !strings.Contains(out, want) {
			t.Errorf("grammar show output missing %q:\n%s", want, out)
		}
	}
}

func TestGrammarInitCommand(t *testing.T) {
	out, err := execute(t, "grammar", "init")
	if err != nil {
		t.Fatal(err)
	}
	g, err := grammar.Decode(strings.NewReader(out), grammar.FormatTOML)
	if err != nil {
		t.Fatalf("init output is not a grammar document: %v", err)
	}
	if g.Len() != grammar.Demo().Len() {
		t.Errorf("decoded %d productions, want %d", g.Len(), grammar.Demo().Len())
	}

	path := filepath.Join(t.TempDir(), "binary.json")
	if _, err := execute(t, "grammar", "init", "-o", path); err != nil {
		t.Fatal(err)
	}
	if _, err := grammar.Load(path); err != nil {
		t.Errorf("written grammar does not load: %v", err)
	}
	if _, err := execute(t, "grammar", "init", "-o", path); err == nil {
		t.Error("init should refuse to overwrite an existing file")
	}
}

func TestCachePathCommand(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != filepath.Join(cacheHome, appName) {
		t.Errorf("cache path = %q, want %q", out, filepath.Join(cacheHome, appName))
	}
}

func TestCacheClearCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Errorf("cache clear error: %v", err)
	}
}

func TestGenerateCommandArgs(t *testing.T) {
	if _, err := execute(t, "generate", "a.toml", "b.toml"); err == nil {
		t.Error("generate should accept at most one grammar file")
	}
}
