package hwrename

import (
	"time"

	"github.com/go-git/go-billy/v5"
)

// EventType classifies an Event
type EventType string

const (
	EventInfo     EventType = "INFO"
	EventSuccess  EventType = "SUCCESS"
	EventWarning  EventType = "WARN"
	EventError    EventType = "ERROR"
	EventProgress EventType = "PROGRESS"
)

// Event is a notification emitted while scanning or renaming
type Event struct {
	Type     EventType
	Message  string
	Progress *Progress // set for EventProgress
}

// EventHandler receives events synchronously
type EventHandler func(Event)

// Option configures Scan and Rename
type Option func(*options)

type options struct {
	events EventHandler
	pacing time.Duration
	dryRun bool
	fs     billy.Filesystem
}

// WithEvents registers a handler for progress and result events
func WithEvents(h EventHandler) Option {
	return func(o *options) { o.events = h }
}

// WithPacing waits a random delay up to d before each rename
func WithPacing(d time.Duration) Option {
	return func(o *options) { o.pacing = d }
}

// WithDryRun checks every rename without applying it
func WithDryRun() Option {
	return func(o *options) { o.dryRun = true }
}

// WithFilesystem operates on fs instead of the working directory on disk
func WithFilesystem(fs billy.Filesystem) Option {
	return func(o *options) { o.fs = fs }
}

func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) emit(e Event) {
	if o.events != nil {
		o.events(e)
	}
}
