package main

import (
	"fmt"
	"path/filepath"

	"github.com/postit-dev/postit/internal/config"
	"github.com/spf13/cobra"
)

var (
	configSetPersister     string
	configSetForceDrop     bool
	configSetForceCopy     bool
	configSetDropAfterCopy bool
	configSetLogLevel      string
	configSetLogFormat     string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
	Long: `Manage the config file.

The config file is .postit.toml inside $POSTIT_ROOT, or inside ~/.postit
when POSTIT_ROOT is not set. POSTIT_ROOT must be an absolute path.
Relative persister paths are placed in the same directory.

Keys:
  persister        default file path or connection string (tasks.csv)
  force_drop       drop unchecked tasks without --force (false)
  force_copy       copy over a target that has tasks (false)
  drop_after_copy  remove the source after a copy (false)
  log_level        debug, info, warn or error (warn)
  log_format       text, json or logfmt (text)

POSTIT_LOG_LEVEL overrides log_level for a single run and is never saved.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file with default values",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of the config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the value of POSTIT_ROOT",
	Args:  cobra.NoArgs,
	RunE:  runConfigEnv,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the config values",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change config values",
	Long: `Change one or more config values. Only the keys passed as flags change.

Examples:
  postit config set --persister tasks.json
  postit config set --force-drop true --force-copy false
  postit config set --log-level debug --log-format json`,
	Args: cobra.NoArgs,
	RunE: runConfigSet,
}

var configRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Delete the config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigRemove,
}

func init() {
	configSetCmd.Flags().StringVar(&configSetPersister, "persister", "", "default file path or connection string")
	configSetCmd.Flags().BoolVar(&configSetForceDrop, "force-drop", false, "drop unchecked tasks without --force")
	configSetCmd.Flags().BoolVar(&configSetForceCopy, "force-copy", false, "copy over a target that has tasks")
	configSetCmd.Flags().BoolVar(&configSetDropAfterCopy, "drop-after-copy", false, "remove the source after a copy")
	configSetCmd.Flags().StringVar(&configSetLogLevel, "log-level", "", "debug, info, warn or error")
	configSetCmd.Flags().StringVar(&configSetLogFormat, "log-format", "", "text, json or logfmt")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEnvCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configRemoveCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := config.Init()
	if err != nil {
		return err
	}
	fmt.Printf("Config file created at '%s'\n", path)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	if err := config.RequireExists(); err != nil {
		return err
	}
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runConfigEnv(cmd *cobra.Command, args []string) error {
	v, err := config.Env()
	if err != nil {
		return err
	}
	fmt.Println(v)
	return nil
}

func runConfigList(cmd *cobra.Command, args []string) error {
	if err := config.RequireExists(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	fmt.Println(cfg)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := config.RequireExists(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	changes, err := cfg.Set(configChanges(cmd))
	if err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	for _, c := range changes {
		fmt.Println(c)
	}
	return nil
}

// configChanges collects the flags that were passed to config set.
func configChanges(cmd *cobra.Command) config.Changes {
	var ch config.Changes
	flags := cmd.Flags()
	if flags.Changed("persister") {
		ch.Persister = &configSetPersister
	}
	if flags.Changed("force-drop") {
		ch.ForceDrop = &configSetForceDrop
	}
	if flags.Changed("force-copy") {
		ch.ForceCopy = &configSetForceCopy
	}
	if flags.Changed("drop-after-copy") {
		ch.DropAfterCopy = &configSetDropAfterCopy
	}
	if flags.Changed("log-level") {
		ch.LogLevel = &configSetLogLevel
	}
	if flags.Changed("log-format") {
		ch.LogFormat = &configSetLogFormat
	}
	return ch
}

func runConfigRemove(cmd *cobra.Command, args []string) error {
	path, err := config.Remove()
	if err != nil {
		return err
	}
	fmt.Printf("Config file removed from '%s'\n", filepath.Dir(path))
	return nil
}
