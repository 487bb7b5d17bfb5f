package collector

import (
	"context"
	"iter"
	"log/slog"
	"regexp"

	"github.com/go-git/go-billy/v5"

	"github.com/ThomasCrouzet/compose-ports/internal/model"
)

// FS is the part of a billy filesystem the pipeline reads from.
type FS interface {
	billy.Basic
	billy.Dir
}

// Pipeline wires the walk, filter, parse and extract stages together.
type Pipeline struct {
	FS          FS
	Root        string
	Pattern     *regexp.Regexp // nil means DefaultPattern
	SkipDirs    []string
	HaltOnError bool
	Logger      *slog.Logger
}

// Run returns the lazily evaluated report records for every compose file
// under Root. Nothing is read until the sequence is iterated.
func (p *Pipeline) Run(ctx context.Context) iter.Seq[model.ExposedFile] {
	paths := Walk(ctx, p.FS, p.Root, WalkOptions{SkipDirs: p.SkipDirs}, p.Logger)
	files := Parse(Filter(paths, p.Pattern), p.FS, ParseOptions{HaltOnError: p.HaltOnError}, p.Logger)
	return Extract(files, ExtractOptions{HaltOnError: p.HaltOnError}, p.Logger)
}

// Stats summarizes a pipeline run.
type Stats struct {
	Files    int
	Failed   int
	Services int
}

// Count passes files through unchanged while tallying them into stats.
func Count(files iter.Seq[model.ExposedFile], stats *Stats) iter.Seq[model.ExposedFile] {
	return func(yield func(model.ExposedFile) bool) {
		for f := range files {
			stats.Files++
			if f.Err != nil {
				stats.Failed++
			}
			stats.Services += len(f.Services)
			if !yield(f) {
				return
			}
		}
	}
}
