package render

import (
	"errors"
	"fmt"
	"iter"

	"github.com/ThomasCrouzet/compose-ports/internal/model"
)

// Output formats accepted by New.
const (
	FormatSparse = "sparse"
	FormatFlat   = "flat"
)

// ErrUnknownFormat is returned by New for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Renderer turns report records into chunks of output text.
type Renderer interface {
	Render(files iter.Seq[model.ExposedFile]) iter.Seq[string]
}

// New returns the renderer for format.
func New(format string) (Renderer, error) {
	switch format {
	case "", FormatSparse:
		return SparseRenderer{}, nil
	case FormatFlat:
		return FlatRenderer{}, nil
	}
	return nil, fmt.Errorf("%w: %q (use %s or %s)", ErrUnknownFormat, format, FormatSparse, FormatFlat)
}
