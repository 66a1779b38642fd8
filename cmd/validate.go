package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the manifest's structural invariants",
	RunE: func(cmd *cobra.Command, args []string) error {
		issues := stack.Validate()
		if len(issues) == 0 {
			active := len(stack.Active())
			fmt.Printf("%s: OK (%d active services, %d disabled)\n", cfgFile, active, len(stack.Services)-active)
			return nil
		}

		for _, issue := range issues {
			fmt.Println(" -", issue.String())
		}
		return fmt.Errorf("%d issue(s) found in %s", len(issues), cfgFile)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
