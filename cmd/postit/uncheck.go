package main

import (
	"context"

	"github.com/postit-dev/postit/internal/model"
	"github.com/postit-dev/postit/internal/ops"
	"github.com/spf13/cobra"
)

var uncheckCmd = &cobra.Command{
	Use:   "uncheck <ids>...",
	Short: "Mark tasks as not done",
	Long: `Mark one or more checked tasks as unchecked again.

Examples:
  postit uncheck 2
  postit uncheck 2,5`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runUncheck,
	ValidArgsFunction: completeTaskIDs,
}

func init() {
	rootCmd.AddCommand(uncheckCmd)
}

func runUncheck(cmd *cobra.Command, args []string) error {
	return runEdit(cmd, args, "Unchecked", "", func(ctx context.Context, _ *env, s ops.Store, ids []uint32) (model.EditResult, error) {
		return ops.Uncheck(ctx, s, ids)
	})
}
