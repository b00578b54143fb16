package main

import (
	"context"
	"os"

	"github.com/postit-dev/postit/internal/cli"
	"github.com/postit-dev/postit/internal/model"
	"github.com/postit-dev/postit/internal/ops"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <ids>...",
	Short: "Mark tasks as done",
	Long: `Mark one or more tasks as checked.

IDs may be passed as separate arguments or as a comma separated list.
Tasks that are already checked and ids that match no task are reported
without failing the command.

Examples:
  postit check 1
  postit check 1,2,3
  postit check 4 5 -p work.db`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runCheck,
	ValidArgsFunction: completeTaskIDs,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	return runEdit(cmd, args, "Checked", "", func(ctx context.Context, _ *env, s ops.Store, ids []uint32) (model.EditResult, error) {
		return ops.Check(ctx, s, ids)
	})
}

// editFunc applies a batch edit to the tasks of s.
type editFunc func(ctx context.Context, e *env, s ops.Store, ids []uint32) (model.EditResult, error)

// runEdit runs a batch edit over the ids in args and prints its summary
// followed by the task list.
func runEdit(cmd *cobra.Command, args []string, verb, skippedHint string, edit editFunc) error {
	ids, err := parseIDArgs(args)
	if err != nil {
		return err
	}

	e, p, err := openPersister()
	if err != nil {
		return err
	}
	defer closePersister(e, p)

	result, err := edit(commandContext(cmd), e, p, ids)
	if err != nil {
		return err
	}

	cli.RenderEditResult(os.Stdout, verb, result, skippedHint)
	return renderPersister(cmd, p)
}

// parseIDArgs parses task ids from command arguments.
func parseIDArgs(args []string) ([]uint32, error) {
	ids, err := model.ParseIDs(args...)
	if err != nil {
		return nil, &cli.ValidationError{Field: "ids", Message: err.Error()}
	}
	return ids, nil
}
