package collector

import (
	"context"
	"iter"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// WalkOptions tunes directory traversal.
type WalkOptions struct {
	// SkipDirs lists directory names that are never descended into.
	SkipDirs []string
}

type dirFrame struct {
	dir     string
	entries []os.FileInfo
	next    int
}

// Walk yields the path of every non-directory entry below root, depth-first
// in directory listing order. Paths are built by appending entry names to
// root, so a root of "." yields paths like "./a/docker-compose.yml".
//
// Directories that cannot be listed are logged and skipped along with
// everything below them. Symbolic links are reported as entries and never
// followed.
func Walk(ctx context.Context, fsys billy.Dir, root string, opts WalkOptions, logger *slog.Logger) iter.Seq[string] {
	logger = orDiscard(logger)

	return func(yield func(string) bool) {
		var stack []dirFrame

		push := func(dir string) {
			entries, err := fsys.ReadDir(dir)
			if err != nil {
				logger.Warn("cannot list directory", "dir", dir, "error", err)
				return
			}
			stack = append(stack, dirFrame{dir: dir, entries: entries})
		}

		push(root)
		for len(stack) > 0 {
			if ctx.Err() != nil {
				logger.Debug("walk cancelled", "error", ctx.Err())
				return
			}

			top := &stack[len(stack)-1]
			if top.next == len(top.entries) {
				stack = stack[:len(stack)-1]
				continue
			}
			entry := top.entries[top.next]
			top.next++
			p := joinPath(top.dir, entry.Name())

			if entry.IsDir() {
				if slices.Contains(opts.SkipDirs, entry.Name()) {
					logger.Debug("skipping directory", "dir", p)
					continue
				}
				// push may grow the stack; top is not used past this point.
				push(p)
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// joinPath appends name to dir with a single slash.
func joinPath(dir, name string) string {
	return strings.TrimSuffix(dir, "/") + "/" + name
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
