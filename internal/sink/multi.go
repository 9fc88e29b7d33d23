package sink

import (
	marketv1 "github.com/muhammadchandra19/tickpulse/internal/domain/market/v1"
)

// Multi fans one event out to every child sink in order.
type Multi struct {
	sinks []marketv1.SignalSink
}

// NewMulti creates a fan-out sink. Nil children are skipped.
func NewMulti(sinks ...marketv1.SignalSink) *Multi {
	out := make([]marketv1.SignalSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return &Multi{sinks: out}
}

// Publish delivers the event to every child.
func (m *Multi) Publish(event marketv1.SignalEvent) {
	for _, s := range m.sinks {
		s.Publish(event)
	}
}

// Len returns the number of child sinks.
func (m *Multi) Len() int {
	return len(m.sinks)
}
