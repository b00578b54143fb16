package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/postit-dev/postit/internal/cli"
	"github.com/postit-dev/postit/internal/model"
	"github.com/postit-dev/postit/internal/ops"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the content or priority of tasks",
	Long: `Change the content or the priority of one or more tasks.

Examples:
  postit set content 2 "Buy oat milk"
  postit set content 2
  postit set priority 1,3 high`,
}

var setContentCmd = &cobra.Command{
	Use:   "content <ids> [content]...",
	Short: "Replace the content of tasks",
	Long: `Replace the content of the given tasks.

When no content is passed, $VISUAL or $EDITOR is opened with the current
content of the first task.

Examples:
  postit set content 2 "Buy oat milk"
  postit set content 1,2 call the bank
  postit set content 3`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runSetContent,
	ValidArgsFunction: completeFirstTaskID,
}

var setPriorityCmd = &cobra.Command{
	Use:   "priority <ids> <priority>",
	Short: "Change the priority of tasks",
	Long: `Change the priority of the given tasks to high, medium, low or none.
Any unambiguous prefix of the priority works.

Examples:
  postit set priority 1 high
  postit set priority 2,3 l`,
	Args:              cobra.ExactArgs(2),
	RunE:              runSetPriority,
	ValidArgsFunction: completeSetPriorityArgs,
}

func init() {
	setCmd.AddCommand(setContentCmd)
	setCmd.AddCommand(setPriorityCmd)
	rootCmd.AddCommand(setCmd)
}

func runSetContent(cmd *cobra.Command, args []string) error {
	content := strings.Join(args[1:], " ")
	if len(args) > 1 {
		if err := ops.ValidateContent(content); err != nil {
			return &cli.ValidationError{Field: "content", Message: err.Error()}
		}
	}

	return runEdit(cmd, args[:1], "Updated", "", func(ctx context.Context, _ *env, s ops.Store, ids []uint32) (model.EditResult, error) {
		if len(ids) == 0 {
			return model.EditResult{}, nil
		}
		if content == "" {
			var err error
			if content, err = editTaskContent(ctx, s, ids[0]); err != nil {
				return model.EditResult{}, err
			}
		}
		return ops.SetContent(ctx, s, ids, content)
	})
}

// editTaskContent opens the editor with the current content of task id.
func editTaskContent(ctx context.Context, s ops.Store, id uint32) (string, error) {
	ok, err := s.Exists(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ops.ErrNoPersister
	}

	l, err := s.Read(ctx)
	if err != nil {
		return "", err
	}
	task, ok := l.Get(id)
	if !ok {
		return "", &cli.NotFoundError{Type: "task", ID: fmt.Sprint(id)}
	}
	return cli.EditContent(task.Content)
}

func runSetPriority(cmd *cobra.Command, args []string) error {
	priority, err := cli.ParsePriority(args[1])
	if err != nil {
		return err
	}

	return runEdit(cmd, args[:1], "Updated", "", func(ctx context.Context, _ *env, s ops.Store, ids []uint32) (model.EditResult, error) {
		return ops.SetPriority(ctx, s, ids, priority)
	})
}
