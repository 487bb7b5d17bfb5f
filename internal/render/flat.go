package render

import (
	"encoding/csv"
	"iter"
	"strings"

	"github.com/ThomasCrouzet/compose-ports/internal/model"
)

var flatHeader = []string{"PATH", "SERVICE", "PORTS", "ERROR"}

// FlatRenderer writes a single CSV document: one header, then one row per
// exposed service and one row per failed file. Files without exposed
// services produce no rows.
type FlatRenderer struct{}

// Render yields the header first, then the rows of each file as one chunk.
func (FlatRenderer) Render(files iter.Seq[model.ExposedFile]) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield(csvRows([][]string{flatHeader})) {
			return
		}
		for f := range files {
			rows := FlatRows(f)
			if len(rows) == 0 {
				continue
			}
			if !yield(csvRows(rows)) {
				return
			}
		}
	}
}

// FlatRows returns the rows describing one file.
func FlatRows(f model.ExposedFile) [][]string {
	if f.Err != nil {
		return [][]string{{f.Path, "", "", f.Err.Error()}}
	}
	rows := make([][]string, 0, len(f.Services))
	for _, svc := range f.Services {
		rows = append(rows, []string{f.Path, svc.Name, svc.Ports, ""})
	}
	return rows
}

func csvRows(rows [][]string) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	// writes to a strings.Builder do not fail
	_ = w.WriteAll(rows)
	return b.String()
}
