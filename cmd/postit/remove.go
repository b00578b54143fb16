package main

import (
	"fmt"

	"github.com/postit-dev/postit/internal/ops"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Delete the persister",
	Long: `Delete the persister itself: the file, the SQLite table or the MongoDB
collection. Removing a persister that does not exist is not an error.

Examples:
  postit remove -p old.csv`,
	Args: cobra.NoArgs,
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	e, p, err := openPersister()
	if err != nil {
		return err
	}
	defer closePersister(e, p)

	if err := ops.Remove(commandContext(cmd), p); err != nil {
		return err
	}

	fmt.Printf("Removed '%s'\n", p)
	return nil
}
