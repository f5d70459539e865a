package services

import (
	"sync"

	"github.com/carlosrabelo/portlabel/domain/entities"
)

// EventKind tells which field of an Event is set
type EventKind int

const (
	EventState EventKind = iota
	EventProgress
)

// Event is one structured notification from a running batch
type Event struct {
	Kind     EventKind
	State    entities.RunState
	Progress entities.Progress
}

// ChannelSink forwards run events to a buffered channel so that a
// presentation layer on another goroutine can render them.
type ChannelSink struct {
	events chan Event
	once   sync.Once
}

// NewChannelSink creates a sink with the given channel buffer
func NewChannelSink(buffer int) *ChannelSink {
	if buffer < 0 {
		buffer = 0
	}
	return &ChannelSink{events: make(chan Event, buffer)}
}

func (c *ChannelSink) StateChanged(state entities.RunState) {
	c.events <- Event{Kind: EventState, State: state}
}

func (c *ChannelSink) Progress(p entities.Progress) {
	c.events <- Event{Kind: EventProgress, Progress: p}
}

// Events returns the receive side of the sink
func (c *ChannelSink) Events() <-chan Event {
	return c.events
}

// Close ends the event stream. The producer must not emit afterwards.
func (c *ChannelSink) Close() {
	c.once.Do(func() { close(c.events) })
}

// NopSink discards every event
type NopSink struct{}

func (NopSink) StateChanged(entities.RunState) {}

func (NopSink) Progress(entities.Progress) {}
