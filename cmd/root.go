package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/berth-dev/berth/internal/logging"
	"github.com/berth-dev/berth/internal/manifest"
)

var log = logging.For("cli")

var (
	cfgFile string
	verbose bool

	// stack holds the loaded manifest, populated by PersistentPreRunE for
	// every command that operates on one.
	stack *manifest.Stack
)

var rootCmd = &cobra.Command{
	Use:          "berth",
	Short:        "Berth: declarative local service stacks on the Docker daemon",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.SetVerbose(verbose)

		// init creates the manifest, version and help don't need one.
		switch cmd.Name() {
		case "init", "version", "help", "completion":
			return nil
		}

		loaded, err := manifest.Load(cfgFile)
		if err != nil {
			return err
		}
		stack = loaded
		log.WithField("stack", stack.Name).Debug("manifest loaded")
		return nil
	},
}

// Execute runs the root command and with it the whole CLI.
func Execute() error {
	return rootCmd.Execute()
}

// projectDir is the directory holding the manifest; relative volume host
// paths resolve against it.
func projectDir() (string, error) {
	abs, err := filepath.Abs(cfgFile)
	if err != nil {
		return "", err
	}
	return filepath.Dir(abs), nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", manifest.DefaultFileName, "path to the stack manifest")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
