package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/synlex/pkg/config"
)

// envVarPrefix is the prefix for all synlex environment variables.
const envVarPrefix = "SYNLEX_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
var envMappings = map[string]envMapping{
	"GRAMMAR":            {field: "grammar", typ: envTypeString, help: "Force one grammar for every file"},
	"GRAMMAR_FILES":      {field: "grammar_files", typ: envTypeSlice, help: "Comma-separated YAML grammar packs"},
	"EXTENSIONS":         {field: "extensions", typ: envTypeSlice, help: "Comma-separated extra file extensions"},
	"EXCLUDE":            {field: "exclude", typ: envTypeSlice, help: "Comma-separated exclude globs"},
	"MARKDOWN":           {field: "markdown", typ: envTypeBool, help: "Tokenize Markdown code fences: true or false"},
	"FOLLOW_SYMLINKS":    {field: "follow_symlinks", typ: envTypeBool, help: "Walk symlinked directories: true or false"},
	"INCLUDE_WHITESPACE": {field: "include_whitespace", typ: envTypeBool, help: "Keep whitespace tokens: true or false"},
	"JOBS":               {field: "jobs", typ: envTypeInt, help: "Number of parallel workers (0 = auto)"},
	"MAX_FILE_SIZE":      {field: "max_file_size", typ: envTypeInt, help: "Skip files larger than this many bytes (0 = 32 MiB)"},
	"FORMAT":             {field: "format", typ: envTypeString, help: "Output format: text, table, json or summary"},
	"COLOR":              {field: "color", typ: envTypeString, help: "Color mode: auto, always or never"},
	"STRICT":             {field: "strict", typ: envTypeBool, help: "Fail when tokens carry lexical errors: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SYNLEX_ (e.g., SYNLEX_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "grammar":
		cfg.Grammar = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "color":
		cfg.Color = config.ColorMode(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "markdown":
		cfg.Markdown = value
	case "follow_symlinks":
		cfg.FollowSymlinks = value
	case "include_whitespace":
		cfg.IncludeWhitespace = value
	case "strict":
		cfg.Strict = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "max_file_size":
		cfg.MaxFileSize = int64(value)
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "grammar_files":
		cfg.GrammarFiles = value
	case "extensions":
		cfg.Extensions = value
	case "exclude":
		cfg.Exclude = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		out[envVarPrefix+suffix] = mapping.help
	}
	return out
}
