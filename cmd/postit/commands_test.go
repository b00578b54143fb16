package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/postit-dev/postit/internal/cli"
	"github.com/postit-dev/postit/internal/codec"
	"github.com/postit-dev/postit/internal/config"
	"github.com/postit-dev/postit/internal/model"
	"github.com/postit-dev/postit/internal/ops"
	"github.com/postit-dev/postit/internal/persist"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRoot points POSTIT_ROOT at a fresh directory and resets all flags.
func setupRoot(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv(config.RootEnv, dir)
	t.Setenv(config.LogLevelEnv, "")

	old := cli.ColorEnabled()
	cli.SetColorEnabled(false)
	t.Cleanup(func() { cli.SetColorEnabled(old) })

	resetFlags()
	t.Cleanup(resetFlags)
	return dir
}

func resetFlags() {
	persisterFlag = ""
	dropForce = false
	copyForce = false
	copyDropAfter = false
	configSetPersister = ""
	configSetForceDrop = false
	configSetForceCopy = false
	configSetDropAfterCopy = false
	configSetLogLevel = ""
	configSetLogFormat = ""
	configSetCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
}

// capture runs fn with os.Stdout redirected and returns what it printed.
func capture(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	os.Stdout = old

	return buf.String(), runErr
}

func run(t *testing.T, fn func() error) string {
	t.Helper()
	out, err := capture(t, fn)
	require.NoError(t, err)
	return out
}

func TestAddViewCheckDrop(t *testing.T) {
	dir := setupRoot(t)

	out := run(t, func() error { return runAdd(nil, []string{"high", "Buy", "milk"}) })
	assert.Contains(t, out, "Added task 1")
	assert.Contains(t, out, "Buy milk")

	out = run(t, func() error { return runAdd(nil, []string{"l", "Walk the dog"}) })
	assert.Contains(t, out, "Added task 2")

	data, err := os.ReadFile(filepath.Join(dir, config.DefaultPersister))
	require.NoError(t, err)
	assert.Equal(t, "1,Buy milk,high,false\n2,Walk the dog,low,false\n", string(data))

	out = run(t, func() error { return runCheck(nil, []string{"1", "9"}) })
	assert.Contains(t, out, "Checked: 1")
	assert.Contains(t, out, "Not found: 9")

	out = run(t, func() error { return runDrop(nil, []string{"1,2"}) })
	assert.Contains(t, out, "Dropped: 1")
	assert.Contains(t, out, "Skipped: 2 (not checked; use --force)")

	out = run(t, func() error { return runView(nil, nil) })
	assert.Contains(t, out, "Walk the dog")
	assert.NotContains(t, out, "Buy milk")

	out = run(t, func() error { return runUncheck(nil, []string{"2"}) })
	assert.Contains(t, out, "Unchanged: 2")

	dropForce = true
	out = run(t, func() error { return runDrop(nil, []string{"2"}) })
	assert.Contains(t, out, "Dropped: 2")
	assert.Contains(t, out, "No tasks")
}

func TestEditWithoutPersister(t *testing.T) {
	setupRoot(t)

	for name, fn := range map[string]func() error{
		"check":   func() error { return runCheck(nil, []string{"1"}) },
		"uncheck": func() error { return runUncheck(nil, []string{"1"}) },
		"drop":    func() error { return runDrop(nil, []string{"1"}) },
		"set":     func() error { return runSetPriority(nil, []string{"1", "high"}) },
	} {
		t.Run(name, func(t *testing.T) {
			_, err := capture(t, fn)
			assert.ErrorIs(t, err, ops.ErrNoPersister)
		})
	}

	out := run(t, func() error { return runView(nil, nil) })
	assert.Contains(t, out, "No tasks")
}

func TestAddValidation(t *testing.T) {
	setupRoot(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown priority", []string{"urgent", "Do it"}},
		{"blank content", []string{"high", "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := capture(t, func() error { return runAdd(nil, tt.args) })
			var ve *cli.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}

	_, err := capture(t, func() error { return runCheck(nil, []string{"one"}) })
	var ve *cli.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestPersisterFlag(t *testing.T) {
	dir := setupRoot(t)

	for _, target := range []string{"work.json", "work.xml", "work.yaml", "work.db"} {
		t.Run(target, func(t *testing.T) {
			persisterFlag = target
			out := run(t, func() error { return runAdd(nil, []string{"m", "Plan", "sprint"}) })
			assert.Contains(t, out, "Plan sprint")
			assert.FileExists(t, filepath.Join(dir, target))
		})
	}

	assert.NoFileExists(t, filepath.Join(dir, config.DefaultPersister))
}

func TestUnsupportedTarget(t *testing.T) {
	dir := setupRoot(t)
	persisterFlag = "tasks.xyz"

	_, err := capture(t, func() error { return runAdd(nil, []string{"high", "x"}) })
	require.Error(t, err)
	assert.True(t, persist.IsUnsupported(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSetCommands(t *testing.T) {
	setupRoot(t)
	run(t, func() error { return runSample(nil, nil) })

	out := run(t, func() error { return runSetContent(nil, []string{"1,3", "Call", "the", "bank"}) })
	assert.Contains(t, out, "Updated: 1, 3")

	out = run(t, func() error { return runSetPriority(nil, []string{"4", "h"}) })
	assert.Contains(t, out, "Updated: 4")

	l := readTasks(t, "")
	task, ok := l.Get(3)
	require.True(t, ok)
	assert.Equal(t, "Call the bank", task.Content)
	task, _ = l.Get(4)
	assert.Equal(t, "high", task.Priority.String())

	_, err := capture(t, func() error { return runSetPriority(nil, []string{"4", "urgent"}) })
	var ve *cli.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestSetContentWithEditor(t *testing.T) {
	setupRoot(t)
	run(t, func() error { return runSample(nil, nil) })

	script := filepath.Join(t.TempDir(), "editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nprintf 'Water the cactus\\n' > \"$1\"\n"), 0755))
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", script)

	out := run(t, func() error { return runSetContent(nil, []string{"3"}) })
	assert.Contains(t, out, "Updated: 3")
	task, _ := readTasks(t, "").Get(3)
	assert.Equal(t, "Water the cactus", task.Content)

	_, err := capture(t, func() error { return runSetContent(nil, []string{"42"}) })
	var nf *cli.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestSampleCleanRemove(t *testing.T) {
	dir := setupRoot(t)
	path := filepath.Join(dir, config.DefaultPersister)

	out := run(t, func() error { return runSample(nil, nil) })
	assert.Contains(t, out, "Sample generated at '"+path+"'")
	assert.Contains(t, out, "Write the quarterly report")

	out = run(t, func() error { return runClean(nil, nil) })
	assert.Contains(t, out, "Cleaned")
	assert.FileExists(t, path)
	assert.True(t, readTasks(t, "").IsEmpty())

	out = run(t, func() error { return runRemove(nil, nil) })
	assert.Contains(t, out, "Removed")
	assert.NoFileExists(t, path)
}

func TestCopyCommand(t *testing.T) {
	dir := setupRoot(t)
	run(t, func() error { return runSample(nil, nil) })

	out := run(t, func() error { return runCopy(nil, []string{"tasks.csv", "tasks.db"}) })
	assert.Contains(t, out, "The tasks of 'tasks.csv' have been copied to 'tasks.db'")
	assert.Contains(t, out, "Renew the car insurance")
	assert.Equal(t, 5, readTasks(t, "tasks.db").Len())

	persisterFlag = "other.json"
	run(t, func() error { return runAdd(nil, []string{"n", "Keep me"}) })
	persisterFlag = ""
	before, err := os.ReadFile(filepath.Join(dir, "other.json"))
	require.NoError(t, err)

	t.Run("populated target is a conflict", func(t *testing.T) {
		_, err := capture(t, func() error { return runCopy(nil, []string{"tasks.db", "other.json"}) })
		assert.True(t, persist.IsConflict(err))
		assert.Contains(t, cli.FormatError(err), "--force")

		after, err := os.ReadFile(filepath.Join(dir, "other.json"))
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("force overwrites and drop-after removes the source", func(t *testing.T) {
		copyForce = true
		copyDropAfter = true
		out := run(t, func() error { return runCopy(nil, []string{"tasks.csv", "other.json"}) })
		assert.Contains(t, out, "Removed")
		assert.Equal(t, 5, readTasks(t, "other.json").Len())
		assert.NoFileExists(t, filepath.Join(dir, "tasks.csv"))
	})

	t.Run("same persister", func(t *testing.T) {
		_, err := capture(t, func() error { return runCopy(nil, []string{"other.json", "other.json"}) })
		assert.ErrorIs(t, err, persist.ErrSamePersister)
	})
}

func TestCorruptFile(t *testing.T) {
	dir := setupRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.csv"), []byte("1,Task,urgent,false\n"), 0644))

	_, err := capture(t, func() error { return runView(nil, nil) })
	require.Error(t, err)
	assert.True(t, codec.IsFormatError(err))
}

func TestConfigCommands(t *testing.T) {
	dir := setupRoot(t)

	out := run(t, func() error { return runConfigEnv(nil, nil) })
	assert.Equal(t, dir+"\n", out)

	_, err := capture(t, func() error { return runConfigList(nil, nil) })
	var missing *config.MissingError
	require.ErrorAs(t, err, &missing)

	out = run(t, func() error { return runConfigInit(nil, nil) })
	assert.Contains(t, out, "Config file created at '"+filepath.Join(dir, config.FileName)+"'")

	_, err = capture(t, func() error { return runConfigInit(nil, nil) })
	var exists *config.ExistsError
	require.ErrorAs(t, err, &exists)

	out = run(t, func() error { return runConfigPath(nil, nil) })
	assert.Equal(t, filepath.Join(dir, config.FileName)+"\n", out)

	_, err = capture(t, func() error { return runConfigSet(configSetCmd, nil) })
	assert.ErrorIs(t, err, config.ErrNoChanges)

	require.NoError(t, configSetCmd.Flags().Set("force-drop", "true"))
	require.NoError(t, configSetCmd.Flags().Set("persister", "list.json"))
	out = run(t, func() error { return runConfigSet(configSetCmd, nil) })
	assert.Equal(t, "persister: tasks.csv -> list.json\nforce_drop: false -> true\n", out)

	out = run(t, func() error { return runConfigList(nil, nil) })
	assert.Contains(t, out, "persister: list.json")
	assert.Contains(t, out, "force_drop: true")

	// force_drop from the config drops unchecked tasks
	run(t, func() error { return runAdd(nil, []string{"high", "Unchecked"}) })
	assert.FileExists(t, filepath.Join(dir, "list.json"))
	out = run(t, func() error { return runDrop(nil, []string{"1"}) })
	assert.Contains(t, out, "Dropped: 1")

	out = run(t, func() error { return runConfigRemove(nil, nil) })
	assert.Equal(t, "Config file removed from '"+dir+"'\n", out)
	assert.NoFileExists(t, filepath.Join(dir, config.FileName))
}

func TestConfigEnvEmpty(t *testing.T) {
	setupRoot(t)
	t.Setenv(config.RootEnv, "")

	_, err := capture(t, func() error { return runConfigEnv(nil, nil) })
	assert.True(t, errors.Is(err, config.ErrEmptyEnv))
}

func TestCompletion(t *testing.T) {
	setupRoot(t)
	run(t, func() error { return runSample(nil, nil) })

	got, directive := completeTaskIDs(nil, nil, "")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	require.Len(t, got, 5)
	assert.Equal(t, "1\tWrite the quarterly report", got[0])

	got, _ = completeFirstTaskID(nil, []string{"1"}, "")
	assert.Empty(t, got)

	got, _ = completeAddArgs(nil, nil, "m")
	assert.Equal(t, []string{"medium"}, got)

	got, _ = completeSetPriorityArgs(nil, []string{"1"}, "")
	assert.Equal(t, []string{"high", "medium", "low", "none"}, got)

	out := run(t, func() error { return completionBashCmd.RunE(completionBashCmd, nil) })
	assert.Contains(t, out, "postit")
}

// readTasks reads the tasks of target, or of the default persister when
// target is empty, without going through a command.
func readTasks(t *testing.T, target string) *model.TaskList {
	t.Helper()

	e, err := loadEnv()
	require.NoError(t, err)
	p, err := e.resolve(target)
	require.NoError(t, err)
	defer p.Close()

	l, err := p.Read(context.Background())
	require.NoError(t, err)
	return l
}
