package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/derive"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/io"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/render/nodelink"
)

// Render produces r in format f. The grammar is needed to replay
// derivations for the graph formats.
func Render(ctx context.Context, g grammar.Grammar, r *derive.Result, f Format) ([]byte, error) {
	var buf bytes.Buffer
	switch f {
	case FormatText:
		if err := WriteText(&buf, r); err != nil {
			return nil, err
		}
	case FormatJSON:
		if err := io.WriteJSON(r, &buf); err != nil {
			return nil, err
		}
	case FormatDOT, FormatSVG:
		dot, err := nodelink.ToDOT(g, r, nodelink.Options{})
		if err != nil {
			return nil, fmt.Errorf("dot: %w", err)
		}
		if f == FormatDOT {
			return []byte(dot), nil
		}
		return nodelink.RenderSVG(ctx, dot)
	default:
		return nil, f.Validate()
	}
	return buf.Bytes(), nil
}
