package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/synlex/internal/configloader"
	"github.com/yaklabco/synlex/internal/logging"
	"github.com/yaklabco/synlex/pkg/config"
	"github.com/yaklabco/synlex/pkg/grammar"
)

// defaultConfigName is the file init writes when --output is not given.
const defaultConfigName = ".synlex.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new synlex configuration file",
		Long: `Create a new .synlex.yml configuration file in the current directory
with sensible defaults.

Examples:
  synlex init                       Create minimal .synlex.yml
  synlex init --full                Document every option with its default
  synlex init --output custom.yml   Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all options documented")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .synlex.yml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive(cmd.ErrOrStderr())

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultConfigName
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content := config.GenerateTemplate(config.TemplateOptions{
		Grammars: grammar.NewDefaultRegistry().Names(),
		Full:     flags.full,
	})

	if err := configloader.WriteConfigFile(commandContext(cmd), absPath, content, flags.force); err != nil {
		if errors.Is(err, configloader.ErrConfigExists) {
			return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		return &ExitError{Code: ExitIOError, Err: err}
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'synlex grammars' to see the available grammars")

	return nil
}
