// internal/cli/generate.go
package cli

import (
	"github.com/spf13/cobra"
)

var generateForce bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Locate CUDA, emit linker directives and generate bindings",
	Long: `Run the full sequence once: locate the toolkit, emit linker directives,
run the translator and write the bindings with their cgo flags.

Generation is skipped when neither the config file, the environment nor the
resolved toolkit changed since the last run.

Examples:
  cudabind generate
  cudabind generate --out internal/cuda
  CUDA_LIBRARY_PATH=/opt/cuda-12.4 cudabind generate --force`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateForce, "force", false, "regenerate even if up to date")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	_, err := newDirector(cmd, generateForce).Run(cmd.Context())
	return err
}
