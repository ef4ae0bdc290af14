// Package clipboard copies rendered directory trees to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

const errorWriteClipboardFormat = "write clipboard: %w"

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	writeAll func(text string) error
}

// NewService returns a Service bound to the platform clipboard utility.
func NewService() *Service {
	return &Service{writeAll: clipboard.WriteAll}
}

// Copy replaces the clipboard contents with text.
func (service *Service) Copy(text string) error {
	if writeError := service.writeAll(text); writeError != nil {
		return fmt.Errorf(errorWriteClipboardFormat, writeError)
	}
	return nil
}

var _ Copier = (*Service)(nil)
