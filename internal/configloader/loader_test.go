package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/synlex/pkg/config"
	"github.com/yaklabco/synlex/pkg/grammar"
)

const toyGrammar = `name: toy
extensions: [.toy]
keywords: [let, print]
operators:
  "=": assignment
`

func isolated(workDir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         workDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Format != config.FormatText {
		t.Errorf("expected format %q, got %q", config.FormatText, result.Config.Format)
	}
	if result.Config.Color != config.ColorAuto {
		t.Errorf("expected color %q, got %q", config.ColorAuto, result.Config.Color)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no files loaded, got %v", result.LoadedFrom)
	}
	if got := result.Registry.Names(); len(got) != 2 {
		t.Errorf("expected builtin grammars only, got %v", got)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".synlex.yml"), `
grammar: rust
exclude: ["target/**"]
jobs: 3
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Grammar != grammar.NameRust {
		t.Errorf("expected grammar rust, got %q", result.Config.Grammar)
	}
	if result.Config.Jobs != 3 {
		t.Errorf("expected jobs 3, got %d", result.Config.Jobs)
	}
	if len(result.Config.Exclude) != 1 || result.Config.Exclude[0] != "target/**" {
		t.Errorf("unexpected exclude %v", result.Config.Exclude)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected one loaded file, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfigSearchStopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".synlex.yml"), "grammar: go\n")

	repo := filepath.Join(outer, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	sub := filepath.Join(repo, "src", "deep")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, err := FindProjectConfig(context.Background(), sub)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("search crossed the VCS root and found %s", path)
	}

	writeFile(t, filepath.Join(repo, "synlex.yaml"), "grammar: go\n")
	path, err = FindProjectConfig(context.Background(), sub)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != filepath.Join(repo, "synlex.yaml") {
		t.Errorf("expected repo config, got %q", path)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".synlex.yml"), "format: table\njobs: 2\n")

	explicit := filepath.Join(t.TempDir(), "custom.yml")
	writeFile(t, explicit, "format: json\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Format != config.FormatJSON {
		t.Errorf("explicit config should win, got format %q", result.Config.Format)
	}
	if result.Config.Jobs != 2 {
		t.Errorf("project settings not overridden should remain, got jobs %d", result.Config.Jobs)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != explicit {
		t.Errorf("unexpected load order %v", result.LoadedFrom)
	}
}

func TestLoad_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.ExplicitPath = filepath.Join(t.TempDir(), "missing.yml")

	if _, err := Load(context.Background(), opts); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".synlex.yml"), "format: table\n")

	t.Setenv("SYNLEX_FORMAT", "summary")
	t.Setenv("SYNLEX_EXCLUDE", "a/**, b/**")
	t.Setenv("SYNLEX_MARKDOWN", "true")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Format != config.FormatSummary {
		t.Errorf("expected env format summary, got %q", result.Config.Format)
	}
	if strings.Join(result.Config.Exclude, "|") != "a/**|b/**" {
		t.Errorf("unexpected exclude %v", result.Config.Exclude)
	}
	if !result.Config.Markdown {
		t.Error("expected markdown enabled from env")
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".synlex.yml"), "format: table\ngrammar: go\n")

	t.Setenv("SYNLEX_FORMAT", "summary")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{Format: config.FormatJSON, Strict: true}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Format != config.FormatJSON {
		t.Errorf("CLI format should win, got %q", result.Config.Format)
	}
	if result.Config.Grammar != grammar.NameGo {
		t.Errorf("file grammar should survive, got %q", result.Config.Grammar)
	}
	if !result.Config.Strict {
		t.Error("CLI-only field lost in merge")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"bad format", "format: sarif\n", "format"},
		{"bad color", "color: rainbow\n", "color"},
		{"negative jobs", "jobs: -1\n", "jobs"},
		{"unknown grammar", "grammar: cobol\n", "grammar"},
		{"bad glob", "exclude: [\"[oops\"]\n", "exclude[0]"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeFile(t, filepath.Join(tmpDir, ".synlex.yml"), testCase.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			if err == nil {
				t.Fatal("expected validation error")
			}

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if validationErr.Field != testCase.field {
				t.Errorf("expected field %q, got %q", testCase.field, validationErr.Field)
			}
		})
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".synlex.yml"), "flavor: gfm\n")

	if _, err := Load(context.Background(), isolated(tmpDir)); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoad_GrammarFiles(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "grammars", "toy.yml"), toyGrammar)
	writeFile(t, filepath.Join(tmpDir, ".synlex.yml"), "grammar_files: [grammars/toy.yml]\ngrammar: toy\n")

	sub := filepath.Join(tmpDir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(sub))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	g, ok := result.Registry.Lookup("toy")
	if !ok {
		t.Fatal("toy grammar not registered")
	}
	if !g.IsKeyword("print") {
		t.Error("toy grammar lost its keywords")
	}
	if want := filepath.Join(tmpDir, "grammars", "toy.yml"); result.Config.GrammarFiles[0] != want {
		t.Errorf("grammar file not resolved against config dir: %q", result.Config.GrammarFiles[0])
	}
}

func TestLoad_BadGrammarFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "bad.yml"), "keywords: [x]\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{GrammarFiles: []string{"bad.yml"}}

	_, err := Load(context.Background(), opts)
	if !errors.Is(err, grammar.ErrNoName) {
		t.Fatalf("expected ErrNoName, got %v", err)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoad_WarningsForExtensionsWithoutDot(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".synlex.yml"), "extensions: [rlib]\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "extensions[0]") {
		t.Errorf("unexpected warnings %v", result.Warnings)
	}
}

func TestWriteConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".synlex.yml")

	if err := WriteConfigFile(context.Background(), path, []byte("jobs: 1\n"), false); err != nil {
		t.Fatalf("WriteConfigFile() error = %v", err)
	}
	if err := WriteConfigFile(context.Background(), path, []byte("jobs: 2\n"), false); !errors.Is(err, ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists, got %v", err)
	}
	if err := WriteConfigFile(context.Background(), path, []byte("jobs: 2\n"), true); err != nil {
		t.Fatalf("overwrite error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(content) != "jobs: 2\n" {
		t.Errorf("unexpected content %q", content)
	}
}
