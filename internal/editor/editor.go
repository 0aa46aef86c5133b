package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

func editorCmd() string {
	for _, v := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(v); strings.TrimSpace(e) != "" {
			return e
		}
	}
	return "vi"
}

// Open runs the user's editor on path, attached to the terminal. The
// editor variable may carry arguments, e.g. "code --wait".
func Open(path string) error {
	fields := strings.Fields(editorCmd())
	if len(fields) == 0 {
		return fmt.Errorf("no editor configured")
	}
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q: %w", fields[0], err)
	}
	return nil
}

// Edit writes content to a temp file named after pattern, opens it in the
// editor and returns what the user saved.
func Edit(content []byte, pattern string) ([]byte, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(content); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := Open(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
