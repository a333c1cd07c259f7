// internal/cli/export.go
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arc-language/cudabind/pkg/bundle"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Pack generated bindings into a .tar.xz bundle",
	Long: `Pack the generated bindings into a reproducible .tar.xz archive so they
can be vendored on machines without a CUDA toolkit.

Examples:
  cudabind export
  cudabind export --out internal/cuda bindings.tar.xz`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	dir := newDirector(cmd, false).OutputDir()

	dest := config.PackageName + bundle.Extension
	if len(args) == 1 {
		dest = args[0]
	}

	if err := bundle.WriteFile(dest, dir); err != nil {
		return fmt.Errorf("exporting %s: %w", dir, err)
	}

	abs, err := filepath.Abs(dest)
	if err != nil {
		abs = dest
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", abs)
	return nil
}
