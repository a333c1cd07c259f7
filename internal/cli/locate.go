// internal/cli/locate.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print the CUDA toolkit installation root",
	Args:  cobra.NoArgs,
	RunE:  runLocate,
}

func runLocate(cmd *cobra.Command, args []string) error {
	root, tgt, err := newDirector(cmd, false).Locate()
	if err != nil {
		return err
	}

	logger.WithField("target", tgt.String()).Debug("resolved target")
	fmt.Fprintln(cmd.OutOrStdout(), root)
	return nil
}
