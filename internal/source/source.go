// Package source retrieves the raw AI output to be parsed.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"editflow/internal/ui"
)

// ErrEmpty reports that the source held no usable content.
var ErrEmpty = errors.New("no content to process")

// Provider determines and retrieves the source content.
type Provider struct{}

// New creates a new Provider.
func New() *Provider {
	return &Provider{}
}

// GetContent retrieves content from stdin (if piped) or the clipboard. A
// source carrying nothing but whitespace returns ErrEmpty.
func (p *Provider) GetContent() (string, error) {
	stat, _ := os.Stdin.Stat()
	isPiped := (stat.Mode() & os.ModeCharDevice) == 0

	if isPiped {
		ui.Header("--- Reading from stdin ---")
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return normalize(string(data))
	}

	ui.Header("--- Reading from clipboard ---")
	content, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read from clipboard: %w", err)
	}
	content, err = normalize(content)
	if err != nil {
		ui.Warning("Clipboard is empty. Nothing to process.")
	}
	return content, err
}

// normalize gives callers a typed signal for an empty source instead of a
// "" they would have to sniff.
func normalize(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmpty
	}
	return content, nil
}
