package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/berth-dev/berth/internal/docker"
	"github.com/berth-dev/berth/internal/manifest"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Start every active service of the stack",
	RunE: func(cmd *cobra.Command, args []string) error {
		if issues := stack.Validate(); len(issues) > 0 {
			for _, issue := range issues {
				fmt.Fprintln(os.Stderr, " -", issue.String())
			}
			return fmt.Errorf("manifest failed validation with %d issue(s)", len(issues))
		}

		mgr, err := docker.NewManager()
		if err != nil {
			return err
		}
		dir, err := projectDir()
		if err != nil {
			return err
		}

		ctx := context.Background()
		networkName := docker.NetworkName(stack.Name)
		if err := mgr.EnsureNetwork(ctx, networkName); err != nil {
			return err
		}

		active := stack.Active()
		for _, svc := range active {
			if err := mgr.EnsureImage(ctx, svc.Image); err != nil {
				return err
			}

			binds, err := resolveBinds(dir, svc)
			if err != nil {
				return err
			}

			if err := mgr.StartContainer(ctx, docker.ContainerSpec{
				Project: stack.Name,
				Service: svc.Name,
				Image:   svc.Image,
				Network: networkName,
				Ports:   svc.Ports,
				Command: svc.Command,
				Env:     svc.Environment,
				Binds:   binds,
			}); err != nil {
				return err
			}
		}

		log.WithField("services", len(active)).Info("stack is up")
		return nil
	},
}

// resolveBinds turns the declaration's project-relative volume bindings into
// the absolute binds the daemon requires, creating missing host directories.
// Host-side config files (prometheus.yml and friends) must already exist;
// 'berth init' writes them.
func resolveBinds(dir string, svc manifest.Service) ([]string, error) {
	binds := make([]string, 0, len(svc.Volumes))
	for _, vol := range svc.Volumes {
		hostPath, containerPath, err := manifest.SplitVolume(vol)
		if err != nil {
			return nil, fmt.Errorf("service %s: %w", svc.Name, err)
		}

		hostAbs := filepath.Join(dir, filepath.FromSlash(hostPath))
		if _, err := os.Stat(hostAbs); os.IsNotExist(err) {
			if err := os.MkdirAll(hostAbs, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create volume directory %s: %w", hostAbs, err)
			}
		}
		binds = append(binds, hostAbs+":"+containerPath)
	}
	return binds, nil
}

func init() {
	rootCmd.AddCommand(upCmd)
}
