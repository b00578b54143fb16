// Package main is the entry point for the postit CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/postit-dev/postit/internal/cli"
	"github.com/postit-dev/postit/internal/config"
	"github.com/postit-dev/postit/internal/logging"
	"github.com/postit-dev/postit/internal/persist"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// persisterFlag overrides the persister of the config file.
var persisterFlag string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "postit",
	Short: "postit - a task list kept in files or databases",
	Long: `postit manages a simple task list. Tasks have an id, a content, a
priority and a checked flag.

The list lives in a persister: a CSV, JSON, XML or YAML file, a SQLite
database or a MongoDB collection. The kind of persister is taken from the
file extension or the connection string, so the same commands work on
every backend and 'postit copy' moves tasks between them.

The default persister comes from the config file (see 'postit config').
Use --persister to work on another one for a single command.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	// Show help when no subcommand is provided
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("postit version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVarP(&persisterFlag, "persister", "p", "",
		"file path or connection string (default from the config file)")
}

// env holds what a command needs from the config file.
type env struct {
	cfg    *config.Config
	root   string
	logger *log.Logger
}

// loadEnv loads the config file and builds the logger.
func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	root, err := config.Root()
	if err != nil {
		return nil, err
	}

	opts := logging.DefaultOptions()
	opts.Level = logging.ParseLevel(cfg.EffectiveLogLevel())
	opts.Formatter = logging.ParseFormatter(cfg.LogFormat)

	return &env{
		cfg:    cfg,
		root:   root,
		logger: logging.New(os.Stderr, opts),
	}, nil
}

// resolve returns the persister for target, or the configured one when target
// is empty. Callers must Close it.
func (e *env) resolve(target string) (persist.Persister, error) {
	if target == "" {
		target = e.cfg.Persister
	}
	p, err := persist.Resolve(target, persist.WithRoot(e.root), persist.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}
	e.logger.Debug("resolved persister", "target", target, "kind", p.Kind(), "persister", p.String())
	return p, nil
}

// openPersister loads the config and resolves the persister selected by
// --persister.
func openPersister() (*env, persist.Persister, error) {
	e, err := loadEnv()
	if err != nil {
		return nil, nil, err
	}
	p, err := e.resolve(persisterFlag)
	if err != nil {
		return nil, nil, err
	}
	return e, p, nil
}

// commandContext returns the context of cmd, falling back to Background for
// direct calls in tests.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

// closePersister closes p and logs a failure instead of masking the result
// of the command.
func closePersister(e *env, p persist.Persister) {
	if err := p.Close(); err != nil {
		e.logger.Warn("failed to close persister", "persister", p.String(), "err", err)
	}
}
