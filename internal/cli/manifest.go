// internal/cli/manifest.go
package cli

import (
	"github.com/spf13/cobra"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Print the translator manifest without running it",
	Args:  cobra.NoArgs,
	RunE:  runManifest,
}

func runManifest(cmd *cobra.Command, args []string) error {
	d := newDirector(cmd, false)

	root, tgt, err := d.Locate()
	if err != nil {
		return err
	}

	m, err := d.Manifest(root, tgt)
	if err != nil {
		return err
	}
	data, err := m.Marshal()
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
