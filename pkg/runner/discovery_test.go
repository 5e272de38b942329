package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/synlex/pkg/runner"
)

var sourceExts = []string{".rs", ".go"}

// writeFiles creates files (slash-separated, relative to dir) with content.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func relAll(t *testing.T, dir string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"main.rs":          "fn main() {}",
		"src/lib.RS":       "",
		"cmd/tool/main.go": "package main",
		"README.md":        "# x",
		"notes.txt":        "",
		".hidden/a.rs":     "",
		"src/.secret.rs":   "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir}, sourceExts)
	require.NoError(t, err)

	assert.Equal(t, []string{"cmd/tool/main.go", "main.rs", "src/lib.RS"}, relAll(t, dir, files))
}

func TestDiscover_ExplicitFileIgnoresExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"script": "#!/usr/bin/env run-cargo-script\nfn main() {}"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"script"},
		WorkingDir: dir,
	}, sourceExts)
	require.NoError(t, err)
	assert.Equal(t, []string{"script"}, relAll(t, dir, files))
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"main.rs":                "",
		"vendor/dep/lib.rs":      "",
		"src/gen/types.gen.rs":   "",
		"src/lib.rs":             "",
		"pkg/testdata/bad.rs":    "",
		"pkg/testdata/more/x.rs": "",
	})

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "directory prefix",
			patterns: []string{"vendor/**"},
			want:     []string{"main.rs", "pkg/testdata/bad.rs", "pkg/testdata/more/x.rs", "src/gen/types.gen.rs", "src/lib.rs"},
		},
		{
			name:     "base name",
			patterns: []string{"*.gen.rs"},
			want:     []string{"main.rs", "pkg/testdata/bad.rs", "pkg/testdata/more/x.rs", "src/lib.rs", "vendor/dep/lib.rs"},
		},
		{
			name:     "nested directory anywhere",
			patterns: []string{"**/testdata/**", "vendor/**"},
			want:     []string{"main.rs", "src/gen/types.gen.rs", "src/lib.rs"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:   dir,
				ExcludeGlobs: testCase.patterns,
			}, sourceExts)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, relAll(t, dir, files))
		})
	}
}

func TestDiscover_BadGlob(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"[unclosed"},
	}, sourceExts)
	require.ErrorIs(t, err, runner.ErrBadGlob)
}

func TestDiscover_Deduplication(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.rs": "", "sub/b.rs": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{".", "a.rs", "sub", "./sub/b.rs"},
		WorkingDir: dir,
	}, sourceExts)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.rs", "sub/b.rs"}, relAll(t, dir, files))
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	}, sourceExts)
	require.Error(t, err)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.rs": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir}, sourceExts)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeFiles(t, dir, map[string]string{"main.rs": ""})
	writeFiles(t, outside, map[string]string{"lib.rs": ""})

	if err := os.Symlink(outside, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir}, sourceExts)
	require.NoError(t, err)
	assert.Len(t, files, 1, "directory symlinks are not followed by default")

	files, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:     dir,
		FollowSymlinks: true,
	}, sourceExts)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestMatcher(t *testing.T) {
	t.Parallel()

	m, err := runner.NewMatcher([]string{"target/**", "*.min.rs"})
	require.NoError(t, err)

	assert.True(t, m.Match("target"))
	assert.True(t, m.Match("target/debug/build.rs"))
	assert.True(t, m.Match("src/app.min.rs"))
	assert.False(t, m.Match("src/target.rs"))
	assert.False(t, (*runner.Matcher)(nil).Match("anything"))
}
