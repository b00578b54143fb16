package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EditInEditor writes content to a temporary file named with suffix, opens
// it in the user's editor and returns the saved bytes.
func EditInEditor(content []byte, suffix string) ([]byte, error) {
	editor := getEditor()
	if editor == "" {
		return nil, fmt.Errorf("EDITOR not set. Set it or pass the content as an argument")
	}

	path, err := writeTemp(content, suffix)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	if err := runEditor(editor, path); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited content: %w", err)
	}
	return edited, nil
}

// EditContent lets the user edit a task's content. Surrounding whitespace
// is trimmed and an empty result is an error.
func EditContent(initial string) (string, error) {
	data, err := EditInEditor([]byte(initial+"\n"), ".txt")
	if err != nil {
		return "", err
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", &ValidationError{Field: "content", Message: "edited content is empty"}
	}
	return content, nil
}

// writeTemp stores content in a new temporary file and returns its path.
func writeTemp(content []byte, suffix string) (string, error) {
	f, err := os.CreateTemp("", "postit-*"+suffix)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	_, werr := f.Write(content)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	return f.Name(), nil
}

// getEditor prefers VISUAL over EDITOR.
func getEditor() string {
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	return os.Getenv("EDITOR")
}

// runEditor runs editor on path. The editor value may carry arguments,
// e.g. "code --wait".
func runEditor(editor, path string) error {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return fmt.Errorf("empty editor command")
	}

	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
	default:
		return fmt.Errorf("failed to run editor: %w", err)
	}
}
