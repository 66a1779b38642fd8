package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/berth-dev/berth/internal/docker"
)

var logsFollow bool

var logsCmd = &cobra.Command{
	Use:   "logs <service>",
	Short: "Print a service's container logs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		svc, ok := stack.Lookup(name)
		if !ok {
			return fmt.Errorf("service %q is not declared in the manifest", name)
		}
		if svc.Disabled {
			return fmt.Errorf("service %q is disabled", name)
		}

		mgr, err := docker.NewManager()
		if err != nil {
			return err
		}
		return mgr.StreamLogs(context.Background(), stack.Name, svc.Name, logsFollow, os.Stdout)
	},
}

func init() {
	// No -f shorthand, the root command already uses it for --config.
	logsCmd.Flags().BoolVar(&logsFollow, "follow", false, "follow log output")
	rootCmd.AddCommand(logsCmd)
}
