package main

import (
	"fmt"

	"github.com/postit-dev/postit/internal/ops"
	"github.com/spf13/cobra"
)

var (
	copyForce     bool
	copyDropAfter bool
)

var copyCmd = &cobra.Command{
	Use:   "copy <source> <target>",
	Short: "Copy the tasks of a persister to another",
	Long: `Copy every task from the source persister to the target persister.
Source and target may be any mix of files and databases.

The copy is refused when source and target are the same, when the source
has no tasks, or when the target already has tasks. Pass --force (or set
force_copy) to overwrite a populated target. Pass --drop-after (or set
drop_after_copy) to remove the source once the target was saved.

Examples:
  postit copy tasks.csv tasks.json
  postit copy tasks.json sqlite://tasks.db --force
  postit copy tasks.db mongodb://localhost:27017/postit --drop-after`,
	Args: cobra.ExactArgs(2),
	RunE: runCopy,
}

func init() {
	copyCmd.Flags().BoolVarP(&copyForce, "force", "f", false, "overwrite a target that already has tasks")
	copyCmd.Flags().BoolVar(&copyDropAfter, "drop-after", false, "remove the source after copying")
	rootCmd.AddCommand(copyCmd)
}

func runCopy(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	src, err := e.resolve(args[0])
	if err != nil {
		return err
	}
	defer closePersister(e, src)

	dst, err := e.resolve(args[1])
	if err != nil {
		return err
	}
	defer closePersister(e, dst)

	opts := ops.CopyOptions{
		Force:     copyForce || e.cfg.ForceCopy,
		DropAfter: copyDropAfter || e.cfg.DropAfterCopy,
	}
	result, err := ops.Copy(commandContext(cmd), src, dst, opts)
	if err != nil {
		return err
	}

	fmt.Printf("The tasks of '%s' have been copied to '%s'\n", args[0], args[1])
	if result.SourceRemoved {
		fmt.Printf("Removed '%s'\n", src)
	}
	return renderPersister(cmd, dst)
}
