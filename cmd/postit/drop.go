package main

import (
	"context"

	"github.com/postit-dev/postit/internal/model"
	"github.com/postit-dev/postit/internal/ops"
	"github.com/spf13/cobra"
)

var dropForce bool

var dropCmd = &cobra.Command{
	Use:   "drop <ids>...",
	Short: "Delete tasks",
	Long: `Delete tasks from the list.

Only checked tasks are dropped unless --force is passed or force_drop is
set in the config file. Unchecked tasks are skipped and reported.

Examples:
  postit drop 2
  postit drop 1,3 --force`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runDrop,
	ValidArgsFunction: completeTaskIDs,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "drop unchecked tasks too")
	rootCmd.AddCommand(dropCmd)
}

func runDrop(cmd *cobra.Command, args []string) error {
	return runEdit(cmd, args, "Dropped", "not checked; use --force", func(ctx context.Context, e *env, s ops.Store, ids []uint32) (model.EditResult, error) {
		return ops.Drop(ctx, s, ids, dropForce || e.cfg.ForceDrop)
	})
}
