// Package clipboard copies text to the system clipboard, falling back to an
// OSC52 escape sequence when no system clipboard tool is available (for
// example over SSH).
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"

	"github.com/andareed/siftly-covid/logging"
)

var ErrUnavailable = errors.New("clipboard unavailable")

// systemWrite is swapped out in tests.
var systemWrite = clipboard.WriteAll

// Copy tries the system clipboard first and OSC52 second.
func Copy(text string) error {
	if !clipboard.Unsupported {
		err := systemWrite(text)
		if err == nil {
			logging.Infof("Clipboard: copied %d bytes via system clipboard", len(text))
			return nil
		}
		logging.Warnf("Clipboard: system clipboard failed: %v", err)
	}
	if err := copyOSC52(text); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}
