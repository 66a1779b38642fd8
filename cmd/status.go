package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/berth-dev/berth/internal/docker"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List the stack's containers",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := docker.NewManager()
		if err != nil {
			return err
		}

		containers, err := mgr.ListContainers(context.Background(), stack.Name)
		if err != nil {
			return err
		}
		if len(containers) == 0 {
			fmt.Printf("no containers found for stack %q\n", stack.Name)
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetBorder(false)
		table.SetHeader([]string{"name", "image", "status", "ports"})
		for _, c := range containers {
			// Names come back as "/berth-indexer-postgres".
			name := strings.TrimPrefix(c.Names[0], "/")

			var ports []string
			for _, p := range c.Ports {
				if p.PublicPort != 0 {
					ports = append(ports, fmt.Sprintf("%d->%d/%s", p.PublicPort, p.PrivatePort, p.Type))
				}
			}

			table.Append([]string{name, c.Image, c.Status, strings.Join(ports, " ")})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
