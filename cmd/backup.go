package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/berth-dev/berth/internal/backup"
)

var (
	backupBucket string
	backupPrefix string
)

var backupCmd = &cobra.Command{
	Use:   "backup <service>",
	Short: "Upload a snapshot of a service's volume data to S3",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		svc, ok := stack.Lookup(name)
		if !ok {
			return fmt.Errorf("service %q is not declared in the manifest", name)
		}
		if svc.Disabled {
			return fmt.Errorf("service %q is disabled, nothing to back up", name)
		}

		dir, err := projectDir()
		if err != nil {
			return err
		}

		ctx := context.Background()
		uploader, err := backup.NewUploader(ctx, backupBucket, backupPrefix)
		if err != nil {
			return err
		}

		key, err := uploader.Snapshot(ctx, dir, stack.Name, svc)
		if err != nil {
			return err
		}
		fmt.Printf("uploaded s3://%s/%s\n", backupBucket, key)
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVar(&backupBucket, "bucket", "", "S3 bucket to upload to")
	backupCmd.Flags().StringVar(&backupPrefix, "prefix", "", "key prefix inside the bucket")
	_ = backupCmd.MarkFlagRequired("bucket")
	rootCmd.AddCommand(backupCmd)
}
