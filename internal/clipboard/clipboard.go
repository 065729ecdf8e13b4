// Package clipboard delivers final text to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Writer copies text to a clipboard. The pipeline depends on this
// interface so tests can substitute a mock.
type Writer interface {
	Write(text string) error
}

type systemWriter struct{}

// System returns a Writer backed by the OS clipboard.
func System() Writer {
	return systemWriter{}
}

func (systemWriter) Write(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write to system clipboard: %w", err)
	}

	return nil
}
