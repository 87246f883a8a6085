// Package clipboard copies rendered reports to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier on top of github.com/atotto/clipboard.
type Service struct {
	writeAll func(text string) error
}

// NewService returns a Service bound to the system clipboard.
func NewService() *Service {
	return &Service{writeAll: clipboard.WriteAll}
}

// Copy writes text to the clipboard.
func (service *Service) Copy(text string) error {
	if clipboard.Unsupported && service.writeAll == nil {
		return fmt.Errorf("copy to clipboard: no clipboard utility available")
	}
	writeAll := service.writeAll
	if writeAll == nil {
		writeAll = clipboard.WriteAll
	}
	if err := writeAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

var _ Copier = (*Service)(nil)
