package main

import (
	"fmt"
	"os"

	"github.com/postit-dev/postit/internal/cli"
	"github.com/postit-dev/postit/internal/ops"
	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Fill the persister with sample tasks",
	Long: `Replace the tasks of the persister with a small set of sample tasks.
Existing tasks are lost.

Examples:
  postit sample
  postit sample -p demo.xml`,
	Args: cobra.NoArgs,
	RunE: runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	e, p, err := openPersister()
	if err != nil {
		return err
	}
	defer closePersister(e, p)

	l, err := ops.Sample(commandContext(cmd), p)
	if err != nil {
		return err
	}

	fmt.Printf("Sample generated at '%s'\n\n", p)
	cli.RenderTasks(os.Stdout, l)
	return nil
}
