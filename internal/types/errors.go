package types

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceMissing means the file to rename no longer exists
	ErrSourceMissing = errors.New("source file does not exist")
	// ErrDestinationExists means another file already has the new name
	ErrDestinationExists = errors.New("destination already exists")
	// ErrInvalidName means the rendered name is not a plain file name
	ErrInvalidName = errors.New("invalid file name")
	// ErrBusy is returned when a scan or rename is already running
	ErrBusy = errors.New("another task is already running")
)

// ErrInvalidConfig is returned when a project config cannot be used
type ErrInvalidConfig struct {
	Path   string
	Reason string
}

func (e ErrInvalidConfig) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid config: %s", e.Reason)
	}
	return fmt.Sprintf("invalid config %s: %s", e.Path, e.Reason)
}
