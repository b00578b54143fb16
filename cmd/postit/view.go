package main

import (
	"fmt"
	"os"

	"github.com/postit-dev/postit/internal/cli"
	"github.com/postit-dev/postit/internal/ops"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the tasks",
	Long: `Show every task of the persister as a table of id, priority and content.

Tasks are colored by priority and checked tasks are struck through when
the output is a terminal. A persister that does not exist yet has no tasks.

Examples:
  postit view
  postit view -p work.json
  postit view -p sqlite://tasks.db`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	e, p, err := openPersister()
	if err != nil {
		return err
	}
	defer closePersister(e, p)

	l, err := ops.View(commandContext(cmd), p)
	if err != nil {
		return err
	}

	cli.RenderTasks(os.Stdout, l)
	return nil
}

// renderPersister prints the current tasks of p below a blank line. Mutating
// commands call it after saving.
func renderPersister(cmd *cobra.Command, p ops.Store) error {
	l, err := ops.View(commandContext(cmd), p)
	if err != nil {
		return err
	}

	fmt.Println()
	cli.RenderTasks(os.Stdout, l)
	return nil
}
