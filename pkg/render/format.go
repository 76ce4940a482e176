package render

import (
	"slices"
	"strings"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/errors"
)

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatDOT, FormatSVG}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Validate reports whether f is supported.
func (f Format) Validate() error {
	if !slices.Contains(Formats, f) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: text, json, dot, svg)", f)
	}
	return nil
}

// ParseFormats parses a comma-separated format list. Duplicates are dropped
// and order is kept. An empty string yields text.
func ParseFormats(s string) ([]Format, error) {
	if strings.TrimSpace(s) == "" {
		return []Format{FormatText}, nil
	}
	var out []Format
	for _, part := range strings.Split(s, ",") {
		f := Format(strings.ToLower(strings.TrimSpace(part)))
		if err := f.Validate(); err != nil {
			return nil, err
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}
