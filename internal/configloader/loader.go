// Package configloader resolves the effective configuration from defaults,
// config files, the environment and CLI flags, and builds the grammar
// registry it names.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/synlex/pkg/config"
	"github.com/yaklabco/synlex/pkg/fsutil"
	"github.com/yaklabco/synlex/pkg/grammar"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// ErrConfigExists is returned when writing a config file that already exists.
var ErrConfigExists = errors.New("config file already exists")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// It is applied on top of any discovered project config.
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Registry holds the builtin grammars plus Config.GrammarFiles.
	Registry *grammar.Registry

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (SYNLEX_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.synlex.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/synlex/config.yaml)
//  6. System config (/etc/synlex/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name   string
		path   string
		ignore bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, layer := range layers {
		if layer.ignore || layer.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	reg, err := BuildRegistry(cfg, workDir)
	if err != nil {
		return nil, err
	}

	validation := Validate(cfg, reg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	result.Registry = reg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file. Relative grammar
// file paths are resolved against the file's directory.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i, file := range cfg.GrammarFiles {
		if !filepath.IsAbs(file) {
			cfg.GrammarFiles[i] = filepath.Join(dir, file)
		}
	}

	return cfg, nil
}

// BuildRegistry returns the builtin grammars plus every grammar pack named
// by cfg. Relative pack paths resolve against workDir.
func BuildRegistry(cfg *config.Config, workDir string) (*grammar.Registry, error) {
	reg := grammar.NewDefaultRegistry()

	for _, file := range cfg.GrammarFiles {
		path := file
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}

		g, err := loadGrammarFile(path)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(g); err != nil {
			return nil, fmt.Errorf("register grammar from %s: %w", path, err)
		}
	}

	return reg, nil
}

func loadGrammarFile(path string) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	g, err := grammar.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// WriteConfigFile writes content to path, refusing to replace an existing
// file unless overwrite is set.
func WriteConfigFile(ctx context.Context, path string, content []byte, overwrite bool) error {
	if !overwrite && fileExists(path) {
		return fmt.Errorf("%s: %w", path, ErrConfigExists)
	}

	if err := fsutil.WriteAtomic(ctx, path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
