package main

import (
	"fmt"
	"strings"

	"github.com/postit-dev/postit/internal/cli"
	"github.com/postit-dev/postit/internal/ops"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <priority> <content>...",
	Short: "Add a task",
	Long: `Add a new unchecked task with the next free id.

The priority is required and is one of high, medium, low or none. Any
unambiguous prefix works, so "h" means high and "n" means none. The
remaining arguments are joined with spaces to form the content.

The persister is created if it does not exist yet.

Examples:
  postit add high "Pay the rent"
  postit add l water the plants
  postit add none "Read a book" -p books.json`,
	Args:              cobra.MinimumNArgs(2),
	RunE:              runAdd,
	ValidArgsFunction: completeAddArgs,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	priority, err := cli.ParsePriority(args[0])
	if err != nil {
		return err
	}

	content := strings.Join(args[1:], " ")
	if err := ops.ValidateContent(content); err != nil {
		return &cli.ValidationError{Field: "content", Message: err.Error()}
	}

	e, p, err := openPersister()
	if err != nil {
		return err
	}
	defer closePersister(e, p)

	ctx := commandContext(cmd)
	task, err := ops.Add(ctx, p, content, priority)
	if err != nil {
		return err
	}

	fmt.Printf("Added task %d\n", task.ID)
	return renderPersister(cmd, p)
}
