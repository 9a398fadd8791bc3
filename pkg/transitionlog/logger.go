// Package transitionlog adapts a zap logger into a hybrid.Observer that
// records storage transitions as structured log entries.
package transitionlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	hybrid "github.com/goliatone/go-hybrid"
)

// Message is the log message used for every transition entry.
const Message = "hybrid storage transition"

// Option configures the observer.
type Option func(*zapObserver)

// WithLevel sets the level transitions are logged at. Defaults to debug.
func WithLevel(level zapcore.Level) Option {
	return func(o *zapObserver) {
		o.level = level
	}
}

// WithFields attaches constant fields to every entry.
func WithFields(fields ...zap.Field) Option {
	return func(o *zapObserver) {
		o.fields = append(o.fields, fields...)
	}
}

type zapObserver struct {
	logger *zap.Logger
	level  zapcore.Level
	fields []zap.Field
}

// New returns an observer logging through logger. A nil logger yields a
// no-op observer.
func New(logger *zap.Logger, opts ...Option) hybrid.Observer {
	o := &zapObserver{logger: logger, level: zapcore.DebugLevel}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *zapObserver) ObserveTransition(event hybrid.TransitionEvent) {
	ce := o.logger.Check(o.level, Message)
	if ce == nil {
		return
	}
	fields := make([]zap.Field, 0, len(o.fields)+7)
	fields = append(fields, o.fields...)
	fields = append(fields,
		zap.String("container", event.ContainerID),
		zap.String("kind", string(event.Kind)),
		zap.Stringer("from", event.From),
		zap.Stringer("to", event.To),
		zap.Int("size", event.Stats.Size),
		zap.Int("capacity", event.Stats.Capacity),
		zap.Int("previous_capacity", event.PreviousCapacity),
	)
	ce.Write(fields...)
}
