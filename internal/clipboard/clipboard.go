// Package clipboard provides cross-platform clipboard support.
package clipboard

import (
	"errors"

	sys "github.com/atotto/clipboard"
)

// ErrEmpty is returned when there is nothing to copy.
var ErrEmpty = errors.New("nothing to copy")

// ErrUnavailable is returned when no clipboard backend is installed.
var ErrUnavailable = errors.New("no clipboard utility available (install xclip, xsel or wl-clipboard)")

// Write copies text to the system clipboard.
func Write(text string) error {
	if text == "" {
		return ErrEmpty
	}
	if !Available() {
		return ErrUnavailable
	}
	return sys.WriteAll(text)
}

// Available reports whether a clipboard backend was found.
func Available() bool {
	return !sys.Unsupported
}
