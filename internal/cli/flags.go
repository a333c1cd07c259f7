// internal/cli/flags.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arc-language/cudabind/pkg/directive"
	"github.com/arc-language/cudabind/pkg/env"
)

var flagsFormat string

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Print linker directives or compiler flags",
	Long: `Print how to link against the located toolkit.

Formats:
  directives  cudabind:link-search=... lines (default)
  cflags      -I flags
  ldflags     -L and -l flags
  cgo         a Go source file carrying #cgo directives`,
	Args: cobra.NoArgs,
	RunE: runFlags,
}

func init() {
	flagsCmd.Flags().StringVar(&flagsFormat, "format", "directives", "output format: directives, cflags, ldflags, cgo")
}

func runFlags(cmd *cobra.Command, args []string) error {
	root, tgt, err := newDirector(cmd, false).Locate()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	flags := env.New(root, tgt).GetCompilerFlags(config.Library)

	switch flagsFormat {
	case "directives":
		return directive.NewEmitter(out).Emit(directive.ForToolkit(root, tgt, config.Library)...)
	case "cflags":
		fmt.Fprintln(out, strings.Join(flags.CFLAGS(), " "))
	case "ldflags":
		fmt.Fprintln(out, strings.Join(flags.LDFLAGS(), " "))
	case "cgo":
		src, err := directive.RenderCgoFlags(config.PackageName, root, tgt, config.Library)
		if err != nil {
			return err
		}
		_, err = out.Write(src)
		return err
	default:
		return fmt.Errorf("unknown format %q", flagsFormat)
	}
	return nil
}
