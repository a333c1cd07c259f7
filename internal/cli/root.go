// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arc-language/cudabind"
	"github.com/arc-language/cudabind/internal/logging"
	"github.com/arc-language/cudabind/pkg/core"
)

var (
	cfgFile string
	target  string
	outDir  string
	debug   bool
	config  *core.Config
	logger  *logrus.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cudabind",
	Short: "CUDA driver API binding generator",
	Long: `cudabind - CUDA driver API binding generator

Locates the CUDA toolkit, emits the linker flags for the driver library
and runs the header translator to produce cgo bindings.

Typical use from a go:generate line:
  //go:generate cudabind generate --out .`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+core.DefaultConfigFile+")")
	rootCmd.PersistentFlags().StringVar(&target, "target", "", "target triple (default: $TARGET, then $GOOS/$GOARCH)")
	rootCmd.PersistentFlags().StringVar(&outDir, "out", "", "output directory (default: $OUT_DIR, then config output_dir)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(flagsCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if debug {
		config.Debug = true
	}

	level := "info"
	if config.Debug {
		level = "debug"
	}
	logger = logging.Init(level, os.Stderr)
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return core.DefaultConfigFile
}

// newDirector builds a Director from flags and config, writing directives
// to the command's output
func newDirector(cmd *cobra.Command, force bool) *cudabind.Director {
	return cudabind.New(&cudabind.Config{
		Settings:   config,
		ConfigPath: configPath(),
		Target:     target,
		OutputDir:  outDir,
		Force:      force,
		Directives: cmd.OutOrStdout(),
		Logger:     logger,
	})
}
