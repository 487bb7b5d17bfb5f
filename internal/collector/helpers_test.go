package collector

import (
	"errors"
	"iter"
	"os"
	"slices"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
)

// memTree builds an in-memory filesystem from path -> content pairs.
// A path ending in "/" creates an empty directory.
func memTree(t *testing.T, files map[string]string) FS {
	t.Helper()
	fsys := memfs.New()
	for p, content := range files {
		if p[len(p)-1] == '/' {
			require.NoError(t, fsys.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, util.WriteFile(fsys, p, []byte(content), 0o644))
	}
	return fsys
}

// failingFS refuses to list the directories in fail.
type failingFS struct {
	FS
	fail []string
}

func (f failingFS) ReadDir(path string) ([]os.FileInfo, error) {
	if slices.Contains(f.fail, path) {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrPermission}
	}
	return f.FS.ReadDir(path)
}

func seqOf[T any](items ...T) iter.Seq[T] {
	return slices.Values(items)
}

var errBoom = errors.New("boom")
