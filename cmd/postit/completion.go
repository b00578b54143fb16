package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/postit-dev/postit/internal/cli"
	"github.com/postit-dev/postit/internal/ops"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Print a shell completion script",
	Long: `Print the completion script for bash, zsh or fish. Task ids and
priorities are completed from the selected persister.

Load it for the current shell:
  bash: source <(postit completion bash)
  zsh:  source <(postit completion zsh)
  fish: postit completion fish | source

Or install it once:
  bash: postit completion bash > /etc/bash_completion.d/postit
  zsh:  postit completion zsh > "${fpath[1]}/_postit"
  fish: postit completion fish > ~/.config/fish/completions/postit.fish`,
}

var (
	completionBashCmd = shellCompletionCmd("bash", func(w io.Writer) error { return rootCmd.GenBashCompletion(w) })
	completionZshCmd  = shellCompletionCmd("zsh", func(w io.Writer) error { return rootCmd.GenZshCompletion(w) })
	completionFishCmd = shellCompletionCmd("fish", func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) })
)

// shellCompletionCmd builds the subcommand printing the script of one shell.
func shellCompletionCmd(shell string, gen func(w io.Writer) error) *cobra.Command {
	return &cobra.Command{
		Use:   shell,
		Short: "Print the " + shell + " completion script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return gen(os.Stdout)
		},
	}
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// priorityNames lists the priorities in completion order.
var priorityNames = []string{"high", "medium", "low", "none"}

// completeTaskIDs returns the ids of the tasks of the selected persister,
// described by their content.
func completeTaskIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	e, p, err := openPersister()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer closePersister(e, p)

	l, err := ops.View(context.Background(), p)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, t := range l.Tasks {
		id := fmt.Sprint(t.ID)
		if strings.HasPrefix(id, toComplete) {
			completions = append(completions, id+"\t"+cli.Truncate(strings.ReplaceAll(t.Content, "\n", " "), 40))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeFirstTaskID completes task ids for the first argument only.
func completeFirstTaskID(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeTaskIDs(cmd, args, toComplete)
}

// completePriorities returns the priority names matching toComplete.
func completePriorities(toComplete string) ([]string, cobra.ShellCompDirective) {
	var completions []string
	for _, name := range priorityNames {
		if strings.HasPrefix(name, strings.ToLower(toComplete)) {
			completions = append(completions, name)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

func completeAddArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return completePriorities(toComplete)
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func completeSetPriorityArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return completeTaskIDs(cmd, args, toComplete)
	case 1:
		return completePriorities(toComplete)
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}
