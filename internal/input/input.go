// Package input reads command input documents from files or stdin.
package input

import (
	"fmt"
	"io"
	"os"
)

// Stdin is the file name that selects standard input.
const Stdin = "-"

// Read returns the contents of name, or of stdin when name is "-".
// A nil stdin falls back to os.Stdin.
func Read(name string, stdin io.Reader) (string, error) {
	if name == Stdin {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

// DisplayName returns name for messages, "stdin" for "-".
func DisplayName(name string) string {
	if name == Stdin {
		return "stdin"
	}
	return name
}
