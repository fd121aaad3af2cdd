// Package events carries optional observability notifications out of the
// pipeline stages. Components emit through a Hook handed to them at
// construction time instead of writing to process-wide output, so callers
// and tests decide what happens to the stream.
package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// Event is one notification emitted by a pipeline stage.
type Event struct {
	// Stage names the emitting component, e.g. "feed" or "transcript".
	Stage string
	// Name says what happened, e.g. "feed_parsed" or "crosscheck_done".
	Name string
	// Fields holds event-specific values.
	Fields map[string]any
}

// Hook receives events. A nil Hook is valid and discards everything.
type Hook func(Event)

// Emit sends an event through the hook. Safe to call on a nil Hook.
func (h Hook) Emit(stage, name string, fields map[string]any) {
	if h == nil {
		return
	}
	h(Event{Stage: stage, Name: name, Fields: fields})
}

// Nop returns a hook that discards every event.
func Nop() Hook {
	return func(Event) {}
}

// LogHook forwards events to log as debug entries, one field per key.
func LogHook(log *zerolog.Logger) Hook {
	return func(ev Event) {
		e := log.Debug().Str("stage", ev.Stage)
		for k, v := range ev.Fields {
			e = e.Interface(k, v)
		}
		e.Msg(ev.Name)
	}
}

// Recorder collects emitted events so tests can assert on them. Safe for
// concurrent emitters.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Hook returns a hook that appends every event to the recorder.
func (r *Recorder) Hook() Hook {
	return func(ev Event) {
		r.mu.Lock()
		r.events = append(r.events, ev)
		r.mu.Unlock()
	}
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Named returns the recorded events with the given name.
func (r *Recorder) Named(name string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []Event
	for _, ev := range r.events {
		if ev.Name == name {
			matched = append(matched, ev)
		}
	}
	return matched
}
