package render

import (
	"iter"
	"strings"

	"github.com/ThomasCrouzet/compose-ports/internal/model"
)

// SparseRenderer writes one self-contained CSV block per compose file, each
// with its own header row. Values are written as-is without CSV escaping.
type SparseRenderer struct{}

// Render yields one block per file.
func (SparseRenderer) Render(files iter.Seq[model.ExposedFile]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for f := range files {
			if !yield(SparseBlock(f)) {
				return
			}
		}
	}
}

// SparseBlock formats a single file's block.
func SparseBlock(f model.ExposedFile) string {
	var b strings.Builder
	if f.Err != nil {
		b.WriteString("PATH,ERROR\n")
		b.WriteString(f.Path + `,"` + f.Err.Error() + "\"\n")
		return b.String()
	}

	b.WriteString("PATH,SERVICE,PORTS\n")
	b.WriteString(f.Path + ",,\n")
	for _, svc := range f.Services {
		b.WriteString("," + svc.Name + "," + svc.Ports + "\n")
	}
	b.WriteString("\n")
	return b.String()
}
