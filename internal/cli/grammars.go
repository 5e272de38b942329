package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/synlex/internal/logging"
	"github.com/yaklabco/synlex/pkg/config"
	"github.com/yaklabco/synlex/pkg/grammar"
)

type grammarsFlags struct {
	format string
	export string
}

const formatJSON = "json"

// grammarInfo represents a grammar in JSON output.
type grammarInfo struct {
	Name       string   `json:"name"`
	Aliases    []string `json:"aliases,omitempty"`
	Extensions []string `json:"extensions,omitempty"`
	Keywords   int      `json:"keywords"`
}

func newGrammarsCommand() *cobra.Command {
	flags := &grammarsFlags{}

	cmd := &cobra.Command{
		Use:   "grammars",
		Short: "List available grammars",
		Long: `List the builtin grammars and those loaded through grammar_files,
with their aliases and claimed file extensions.

With --export, print one grammar as a YAML grammar pack that can be edited
and loaded back through grammar_files.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGrammars(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.export, "export", "", "print the named grammar as YAML")

	return cmd
}

func runGrammars(cmd *cobra.Command, flags *grammarsFlags) error {
	if flags.format != "text" && flags.format != formatJSON {
		return usageError(fmt.Errorf("invalid format %q: must be text or json", flags.format))
	}

	loadResult, err := loadConfig(cmd, &config.Config{})
	if err != nil {
		return err
	}
	reg := loadResult.Registry
	out := cmd.OutOrStdout()

	if flags.export != "" {
		g, ok := reg.Lookup(flags.export)
		if !ok {
			return usageError(fmt.Errorf("unknown grammar %q (available: %s)",
				flags.export, strings.Join(reg.Names(), ", ")))
		}
		data, err := g.ToYAML()
		if err != nil {
			return fmt.Errorf("export grammar: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	grammars := make([]*grammar.Grammar, 0, len(reg.Names()))
	for _, name := range reg.Names() {
		if g, ok := reg.Lookup(name); ok {
			grammars = append(grammars, g)
		}
	}

	if flags.format == formatJSON {
		infos := make([]grammarInfo, 0, len(grammars))
		for _, g := range grammars {
			infos = append(infos, grammarInfo{
				Name:       g.Name,
				Aliases:    g.Aliases,
				Extensions: g.Extensions,
				Keywords:   len(g.Keywords()),
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(infos); err != nil {
			return fmt.Errorf("encoding grammars: %w", err)
		}
		return nil
	}

	logger := logging.NewInteractive(out)
	logger.Info("available grammars")
	for _, g := range grammars {
		logger.Info(g.Name,
			"aliases", strings.Join(g.Aliases, ","),
			"extensions", strings.Join(g.Extensions, ","),
		)
	}

	return nil
}
