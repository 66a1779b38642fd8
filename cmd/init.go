package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/berth-dev/berth/internal/manifest"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter manifest and its host directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		abs, err := filepath.Abs(cfgFile)
		if err != nil {
			return err
		}
		if err := manifest.WriteStarter(filepath.Dir(abs), filepath.Base(abs)); err != nil {
			return err
		}
		fmt.Printf("wrote %s, start the stack with 'berth up'\n", cfgFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
