package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// editTextFunc edits text interactively, allowing it to be mocked in tests.
var editTextFunc = editText

// getEditor returns the user's preferred editor from environment variables.
// It checks EDITOR, then VISUAL, and defaults to vi if neither is set.
func getEditor() string {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = strings.TrimSpace(os.Getenv("VISUAL"))
	}
	if editor == "" {
		editor = "vi"
	}
	return editor
}

// openEditor opens the specified file in the user's editor.
// It returns an error if the editor cannot be started or exits with a non-zero status.
func openEditor(filePath string) error {
	editor := getEditor()

	// EDITOR may carry arguments, e.g. "code --wait".
	fields := strings.Fields(editor)
	// #nosec G204 - the editor comes from the user's own environment
	cmd := exec.Command(fields[0], append(fields[1:], filePath)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", editor, err)
	}

	return nil
}

// editText writes initial to a temporary file, opens it in the editor and
// returns the saved content without its trailing newline.
func editText(initial string) (string, error) {
	dir, err := os.MkdirTemp("", "ironjira-")
	if err != nil {
		return "", err
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "DESCRIPTION.md")
	if err := os.WriteFile(path, []byte(initial), 0o600); err != nil {
		return "", err
	}
	if err := openEditor(path); err != nil {
		return "", err
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(content), "\n"), nil
}
