package collector

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkYieldsFilesOnly(t *testing.T) {
	fsys := memTree(t, map[string]string{
		"a.txt":                 "a",
		"empty/":                "",
		"sub/b.txt":             "b",
		"sub/deeper/c.yml":      "c",
		"sub/z.txt":             "z",
		"zz/docker-compose.yml": "services: {}",
	})

	got := slices.Collect(Walk(context.Background(), fsys, "/", WalkOptions{}, nil))
	assert.Equal(t, []string{
		"/a.txt",
		"/sub/b.txt",
		"/sub/deeper/c.yml",
		"/sub/z.txt",
		"/zz/docker-compose.yml",
	}, got)
}

func TestWalkKeepsRootPrefix(t *testing.T) {
	fsys := memTree(t, map[string]string{
		"docker-compose.yml":   "",
		"a/docker-compose.yml": "",
	})

	got := slices.Collect(Walk(context.Background(), fsys, ".", WalkOptions{}, nil))
	assert.Equal(t, []string{"./a/docker-compose.yml", "./docker-compose.yml"}, got)
}

func TestWalkSkipsUnreadableDirectory(t *testing.T) {
	fsys := failingFS{
		FS: memTree(t, map[string]string{
			"a/one.yml":    "",
			"b/two.yml":    "",
			"b/c/four.yml": "",
			"c/three.yml":  "",
		}),
		fail: []string{"/b"},
	}

	got := slices.Collect(Walk(context.Background(), fsys, "/", WalkOptions{}, nil))
	assert.Equal(t, []string{"/a/one.yml", "/c/three.yml"}, got)
}

func TestWalkUnreadableRoot(t *testing.T) {
	fsys := failingFS{FS: memTree(t, map[string]string{"a.yml": ""}), fail: []string{"/"}}

	got := slices.Collect(Walk(context.Background(), fsys, "/", WalkOptions{}, nil))
	assert.Empty(t, got)
}

func TestWalkSkipDirs(t *testing.T) {
	fsys := memTree(t, map[string]string{
		"app/docker-compose.yml":              "",
		"node_modules/x/docker-compose.yml":   "",
		"app/node_modules/docker-compose.yml": "",
		".git/docker-compose.yml":             "",
	})

	got := slices.Collect(Walk(context.Background(), fsys, "/", WalkOptions{SkipDirs: []string{"node_modules", ".git"}}, nil))
	assert.Equal(t, []string{"/app/docker-compose.yml"}, got)
}

func TestWalkStopsWhenConsumerBreaks(t *testing.T) {
	fsys := memTree(t, map[string]string{"a": "", "b": "", "c": ""})

	var got []string
	for p := range Walk(context.Background(), fsys, "/", WalkOptions{}, nil) {
		got = append(got, p)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"/a", "/b"}, got)
}

func TestWalkCancelled(t *testing.T) {
	fsys := memTree(t, map[string]string{"a": "", "b": ""})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := slices.Collect(Walk(ctx, fsys, "/", WalkOptions{}, nil))
	assert.Empty(t, got)
}

func TestWalkDoesNotFollowSymlinks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "docker-compose.yml"), nil, 0o644))
	if err := os.Symlink(dir, filepath.Join(dir, "sub", "loop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got := slices.Collect(Walk(context.Background(), osfs.Default, dir, WalkOptions{}, nil))
	assert.Equal(t, []string{
		dir + "/sub/docker-compose.yml",
		dir + "/sub/loop",
	}, got)
}
