package main

import (
	"fmt"

	"github.com/postit-dev/postit/internal/ops"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete every task",
	Long: `Delete every task but keep the persister: the file stays empty, the
table or collection stays in place.

Examples:
  postit clean
  postit clean -p sqlite://tasks.db`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	e, p, err := openPersister()
	if err != nil {
		return err
	}
	defer closePersister(e, p)

	if err := ops.Clean(commandContext(cmd), p); err != nil {
		return err
	}

	fmt.Printf("Cleaned the tasks of '%s'\n", p)
	return nil
}
