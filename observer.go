package hybrid

import (
	"sync"
	"time"
)

// TransitionKind classifies a storage transition.
type TransitionKind string

const (
	// Promote is the inline to heap migration triggered by an append.
	Promote TransitionKind = "promote"
	// Grow is a heap reallocation to double the previous capacity.
	Grow TransitionKind = "grow"
	// Demote is the heap to inline migration triggered by a removal.
	Demote TransitionKind = "demote"
)

// TransitionEvent describes a completed storage transition. Stats reflect
// the vector once the operation that triggered the transition has finished.
type TransitionEvent struct {
	ContainerID      string
	Kind             TransitionKind
	From             Mode
	To               Mode
	PreviousCapacity int
	Stats            Stats
	OccurredAt       time.Time
}

// Observer receives storage transition events. Observers run synchronously
// and must not mutate the vector that notified them.
type Observer interface {
	ObserveTransition(TransitionEvent)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(TransitionEvent)

// ObserveTransition implements Observer.
func (f ObserverFunc) ObserveTransition(event TransitionEvent) {
	if f != nil {
		f(event)
	}
}

// Observers fans out events to zero or more observers.
type Observers []Observer

// Enabled reports whether there are any observers to notify.
func (o Observers) Enabled() bool {
	return len(o) > 0
}

// ObserveTransition forwards the event to every observer in order.
func (o Observers) ObserveTransition(event TransitionEvent) {
	for _, observer := range o {
		if observer == nil {
			continue
		}
		observer.ObserveTransition(event)
	}
}

// Recorder captures events for assertions in tests.
type Recorder struct {
	Events []TransitionEvent
	mu     sync.Mutex
}

// ObserveTransition records the event.
func (r *Recorder) ObserveTransition(event TransitionEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
}

// Kinds returns the recorded transition kinds in order.
func (r *Recorder) Kinds() []TransitionKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]TransitionKind, 0, len(r.Events))
	for _, event := range r.Events {
		kinds = append(kinds, event.Kind)
	}
	return kinds
}

// Reset discards recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = nil
}

func (v *Vector[T]) notify(t transition) {
	if !v.cfg.observers.Enabled() {
		return
	}
	stats := v.Stats()
	v.cfg.observers.ObserveTransition(TransitionEvent{
		ContainerID:      v.cfg.id,
		Kind:             t.kind,
		From:             t.from,
		To:               stats.Mode,
		PreviousCapacity: t.previous,
		Stats:            stats,
		OccurredAt:       time.Now(),
	})
}
