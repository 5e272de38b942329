package configloader

import "github.com/yaklabco/synlex/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Booleans: only true overrides, so a lower layer cannot be switched off
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Grammar != "" {
		result.Grammar = override.Grammar
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.MaxFileSize != 0 {
		result.MaxFileSize = override.MaxFileSize
	}

	if override.Markdown {
		result.Markdown = true
	}
	if override.FollowSymlinks {
		result.FollowSymlinks = true
	}
	if override.IncludeWhitespace {
		result.IncludeWhitespace = true
	}
	if override.Strict {
		result.Strict = true
	}
	if override.Compact {
		result.Compact = true
	}
	if override.Quiet {
		result.Quiet = true
	}

	if override.GrammarFiles != nil {
		result.GrammarFiles = override.GrammarFiles
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Exclude != nil {
		result.Exclude = override.Exclude
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
