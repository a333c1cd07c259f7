// internal/cli/init.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/cudabind/pkg/core"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Write the default settings to the config file (./cudabind.yaml unless
--config is given) so they can be edited. An existing file is left alone
unless --force is set.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if err := core.SaveConfig(core.DefaultConfig(), path, initForce); err != nil {
		return err
	}
	logger.WithField("path", path).Debug("wrote default config")
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
