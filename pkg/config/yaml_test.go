package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/synlex/pkg/config"
)

func TestNewConfig(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.ColorAuto, cfg.Color)
	assert.Zero(t, cfg.Jobs)
	assert.Empty(t, cfg.Grammar)
}

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies slices", func(t *testing.T) {
		original := &config.Config{
			Exclude:      []string{"target/**"},
			Extensions:   []string{".rlib"},
			GrammarFiles: []string{"toy.yml"},
			Strict:       true,
		}

		clone := original.Clone()
		clone.Exclude[0] = "changed"
		clone.Extensions[0] = "changed"
		clone.GrammarFiles[0] = "changed"

		assert.Equal(t, "target/**", original.Exclude[0])
		assert.Equal(t, ".rlib", original.Extensions[0])
		assert.Equal(t, "toy.yml", original.GrammarFiles[0])
		assert.True(t, clone.Strict, "CLI-only fields are copied")
	})
}

func TestFromYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *config.Config
		wantErr bool
	}{
		{
			name:  "empty document",
			input: "",
			want:  &config.Config{},
		},
		{
			name:  "comments only",
			input: "# nothing here\n",
			want:  &config.Config{},
		},
		{
			name: "all fields",
			input: `
grammar: rust
grammar_files: [toy.yml]
extensions: [.rlib]
exclude: ["target/**"]
markdown: true
follow_symlinks: true
include_whitespace: true
jobs: 4
format: json
color: never
`,
			want: &config.Config{
				Grammar:           "rust",
				GrammarFiles:      []string{"toy.yml"},
				Extensions:        []string{".rlib"},
				Exclude:           []string{"target/**"},
				Markdown:          true,
				FollowSymlinks:    true,
				IncludeWhitespace: true,
				Jobs:              4,
				Format:            config.FormatJSON,
				Color:             config.ColorNever,
			},
		},
		{
			name:    "unknown key",
			input:   "rules: {}\n",
			wantErr: true,
		},
		{
			name:    "CLI-only field is not a key",
			input:   "strict: true\n",
			wantErr: true,
		},
		{
			name:    "malformed",
			input:   "jobs: [\n",
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := config.FromYAML([]byte(testCase.input))
			if testCase.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestToYAML(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		var c *config.Config
		out, err := c.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, out)
	})

	t.Run("round trip", func(t *testing.T) {
		original := &config.Config{
			Grammar: "go",
			Exclude: []string{"vendor/**"},
			Jobs:    2,
			Format:  config.FormatSummary,
			Strict:  true,
		}

		out, err := original.ToYAML()
		require.NoError(t, err)
		assert.NotContains(t, string(out), "strict")
		assert.Contains(t, string(out), "grammar: go\n")

		parsed, err := config.FromYAML(out)
		require.NoError(t, err)

		original.Strict = false
		assert.Equal(t, original, parsed)
	})

	t.Run("with header", func(t *testing.T) {
		out, err := (&config.Config{Jobs: 1}).ToYAMLWithHeader("# header")
		require.NoError(t, err)
		assert.Equal(t, "# header\n\njobs: 1\n", string(out))
	})
}

func TestGenerateTemplate(t *testing.T) {
	minimal := config.GenerateTemplate(config.TemplateOptions{Grammars: []string{"go", "rust"}})
	assert.Contains(t, string(minimal), "# Available: go, rust")
	assert.NotContains(t, string(minimal), "include_whitespace")

	cfg, err := config.FromYAML(minimal)
	require.NoError(t, err)
	assert.Equal(t, []string{"target/**", "vendor/**"}, cfg.Exclude)

	full := config.GenerateTemplate(config.TemplateOptions{Full: true})
	assert.Contains(t, string(full), "# include_whitespace: false")
	assert.Contains(t, string(full), "# format: text")

	_, err = config.FromYAML(full)
	require.NoError(t, err)
}
