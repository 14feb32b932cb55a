// Package diag provides a non-blocking diagnostics sink for renderers.
//
// Log emission is serialized through a buffered channel drained by a single
// goroutine, so renders invoked from multiple goroutines never interleave
// output and logging never blocks or reorders a render. Entries are dropped
// when the buffer is full.
package diag

import (
	"sync"

	"go.uber.org/zap"
)

const bufferSize = 64

type entry struct {
	msg    string
	fields []zap.Field
}

// Sink serializes warning diagnostics onto a zap logger.
type Sink struct {
	log     *zap.Logger
	ch      chan entry
	done    chan struct{}
	once    sync.Once
	dropped int
}

// New returns a running sink. A nil logger yields a sink that discards
// everything without starting a goroutine.
func New(log *zap.Logger) *Sink {
	s := &Sink{log: log}
	if log == nil {
		return s
	}
	s.ch = make(chan entry, bufferSize)
	s.done = make(chan struct{})
	go s.drain()
	return s
}

func (s *Sink) drain() {
	defer close(s.done)
	for e := range s.ch {
		s.log.Warn(e.msg, e.fields...)
	}
}

// Warn queues a warning. It never blocks; when the buffer is full the entry
// is dropped and counted.
func (s *Sink) Warn(msg string, fields ...zap.Field) {
	if s.ch == nil {
		return
	}
	select {
	case s.ch <- entry{msg: msg, fields: fields}:
	default:
		s.dropped++
	}
}

// Close flushes queued entries and stops the drain goroutine. It is safe to
// call more than once.
func (s *Sink) Close() {
	if s.ch == nil {
		return
	}
	s.once.Do(func() {
		close(s.ch)
		<-s.done
		if s.dropped > 0 {
			s.log.Warn("diagnostics dropped", zap.Int("count", s.dropped))
		}
	})
}
