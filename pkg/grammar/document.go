package grammar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/errors"
)

// Format identifies a grammar document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// document is the on-disk shape shared by both encodings.
type document struct {
	Rules map[string][]string `json:"rules" toml:"rules"`
}

// FormatFromPath picks the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported grammar file %q (want .toml or .json)", filepath.Base(path))
}

// Load reads a grammar document from path.
func Load(path string) (Grammar, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "grammar file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return Decode(f, format)
}

// Decode reads a grammar document in the given format.
func Decode(r io.Reader, format Format) (Grammar, error) {
	var doc document
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGrammar, err, "decode TOML grammar")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidGrammar, "unknown key %q in grammar document", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGrammar, err, "decode JSON grammar")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported grammar format %q", format)
	}

	if len(doc.Rules) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGrammar, "grammar document has no rules")
	}
	return fromTable(doc.Rules)
}

// Encode writes g as a document in the given format.
func Encode(w io.Writer, g Grammar, format Format) error {
	doc := document{Rules: g.table()}
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported grammar format %q", format)
}

// Canonical returns the canonical JSON encoding of g, suitable as a cache key input.
func Canonical(g Grammar) []byte {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(g.table())
	return buf.Bytes()
}
