package hybrid

import "fmt"

// Option configures a Vector at construction.
type Option func(*settings)

type settings struct {
	observers   Observers
	maxCapacity int
	id          string
	copier      any
	drop        any
}

type config[T any] struct {
	observers   Observers
	maxCapacity int
	id          string
	copier      func(T) (T, error)
	drop        func(T)
}

func applyOptions(opts []Option) settings {
	s := settings{}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

func resolveConfig[T any](s settings) (config[T], error) {
	cfg := config[T]{
		observers:   s.observers,
		maxCapacity: s.maxCapacity,
		id:          s.id,
	}
	if s.copier != nil {
		fn, ok := s.copier.(func(T) (T, error))
		if !ok {
			var zero T
			return config[T]{}, fmt.Errorf("hybrid: copier %T does not match element type %T", s.copier, zero)
		}
		cfg.copier = fn
	}
	if s.drop != nil {
		fn, ok := s.drop.(func(T))
		if !ok {
			var zero T
			return config[T]{}, fmt.Errorf("hybrid: drop hook %T does not match element type %T", s.drop, zero)
		}
		cfg.drop = fn
	}
	return cfg, nil
}

// WithObserver attaches an observer notified on every storage transition.
func WithObserver(observer Observer) Option {
	return func(s *settings) {
		if observer == nil {
			return
		}
		s.observers = append(s.observers, observer)
	}
}

// WithObservers attaches several observers at once.
func WithObservers(observers ...Observer) Option {
	return func(s *settings) {
		for _, observer := range observers {
			if observer != nil {
				s.observers = append(s.observers, observer)
			}
		}
	}
}

// WithMaxCapacity caps the slot count of any single allocation. Growth past
// the limit fails with ErrAllocation. Zero disables the limit.
func WithMaxCapacity(limit int) Option {
	return func(s *settings) {
		s.maxCapacity = limit
	}
}

// WithID names the vector in transition events. Without it, vectors that
// have observers get a random UUID.
func WithID(id string) Option {
	return func(s *settings) {
		s.id = id
	}
}

// WithCopier sets the element copy operation used by Clone and Assign.
func WithCopier[T any](fn func(T) (T, error)) Option {
	return func(s *settings) {
		if fn == nil {
			s.copier = nil
			return
		}
		s.copier = fn
	}
}

// WithDrop registers a hook run exactly once for every element whose
// lifetime ends inside the vector. Migrations and moves never run it.
func WithDrop[T any](fn func(T)) Option {
	return func(s *settings) {
		if fn == nil {
			s.drop = nil
			return
		}
		s.drop = fn
	}
}
