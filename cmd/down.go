package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/berth-dev/berth/internal/docker"
)

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop and remove the stack's services and network",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := docker.NewManager()
		if err != nil {
			return err
		}
		ctx := context.Background()

		// Cleanup failures are reported but don't stop the teardown.
		for _, svc := range stack.Active() {
			if err := mgr.StopAndRemoveContainer(ctx, stack.Name, svc.Name); err != nil {
				log.WithField("service", svc.Name).WithField("error", err).Warn("failed to clean up service")
			}
		}

		if err := mgr.RemoveNetwork(ctx, docker.NetworkName(stack.Name)); err != nil {
			log.WithField("error", err).Warn("failed to remove network")
		}

		log.Info("stack is down, volume data kept")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downCmd)
}
