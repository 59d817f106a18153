// Package clip writes text to the system clipboard.
package clip

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard not available (install xclip, xsel or wl-clipboard)")

// Writer copies text somewhere. Tests and the TUI swap in their own.
type Writer func(string) error

// System writes to the OS clipboard.
func System(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// Copy writes text with w, or with the system clipboard when w is nil.
func Copy(w Writer, text string) error {
	if w == nil {
		w = System
	}
	return w(text)
}
