package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEditor sets VISUAL and EDITOR for the duration of a test.
func setEditor(t *testing.T, visual, editor string) {
	t.Helper()
	t.Setenv("VISUAL", visual)
	t.Setenv("EDITOR", editor)
}

// writeScript creates an executable shell script acting as an editor.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "editor.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func TestGetEditor(t *testing.T) {
	setEditor(t, "code --wait", "vim")
	assert.Equal(t, "code --wait", getEditor())

	setEditor(t, "", "vim")
	assert.Equal(t, "vim", getEditor())

	setEditor(t, "", "")
	assert.Equal(t, "", getEditor())
}

func TestEditInEditorNoEditor(t *testing.T) {
	setEditor(t, "", "")

	_, err := EditInEditor([]byte("test"), ".txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EDITOR not set")
}

func TestEditInEditorWithTrueCommand(t *testing.T) {
	// 'true' exits with 0 without touching the file
	setEditor(t, "", "true")

	content := []byte("test content")
	result, err := EditInEditor(content, ".txt")
	require.NoError(t, err)
	assert.Equal(t, content, result)
}

func TestEditInEditorNonZeroExit(t *testing.T) {
	setEditor(t, "", "false")

	_, err := EditInEditor([]byte("test"), ".txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "editor exited with status")
}

func TestEditContent(t *testing.T) {
	t.Run("returns trimmed edited content", func(t *testing.T) {
		setEditor(t, "", writeScript(t, `printf '  Buy oat milk  \n\n' > "$1"`))

		got, err := EditContent("Buy milk")
		require.NoError(t, err)
		assert.Equal(t, "Buy oat milk", got)
	})

	t.Run("editor sees the current content", func(t *testing.T) {
		// Appends to the file so the original text must still be there
		setEditor(t, "", writeScript(t, `printf 'and bread' >> "$1"`))

		got, err := EditContent("Buy milk")
		require.NoError(t, err)
		assert.Equal(t, "Buy milk\nand bread", got)
	})

	t.Run("empty result is rejected", func(t *testing.T) {
		setEditor(t, "", writeScript(t, `: > "$1"`))

		_, err := EditContent("Buy milk")
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}

func TestRunEditorEmptyCommand(t *testing.T) {
	err := runEditor("", "/tmp/test.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty editor command")
}

func TestRunEditorNonExistentCommand(t *testing.T) {
	err := runEditor("nonexistent-editor-command-12345", "/tmp/test.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run editor")
}
