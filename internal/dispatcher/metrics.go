package dispatcher

import (
	"sync"
	"time"

	"github.com/dshills/marksearch/internal/dispatcher/handler"
	"github.com/dshills/marksearch/internal/input"
)

// Metrics counts dispatches. Rewrites count movement coerced by an
// interceptor; Consumed counts commands a search prompt swallowed.
type Metrics struct {
	mu       sync.RWMutex
	commands map[input.Command]*ActionMetrics
	totals   MetricsSnapshot
}

// ActionMetrics holds the counters of one command.
type ActionMetrics struct {
	Name          input.Command
	DispatchCount uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	LastStatus    handler.ResultStatus
}

// MetricsSnapshot is a copy of the global counters.
type MetricsSnapshot struct {
	TotalDispatches uint64
	TotalErrors     uint64
	TotalPanics     uint64
	TotalRewrites   uint64
	TotalConsumed   uint64
	TotalDuration   time.Duration
	ActionCount     int
}

// NewMetrics creates an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{commands: make(map[input.Command]*ActionMetrics)}
}

// RecordDispatch counts one dispatch of name, after rewriting.
func (m *Metrics) RecordDispatch(name input.Command, d time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totals.TotalDispatches++
	m.totals.TotalDuration += d

	am := m.commands[name]
	if am == nil {
		am = &ActionMetrics{Name: name}
		m.commands[name] = am
	}
	am.DispatchCount++
	am.TotalDuration += d
	am.LastStatus = status

	switch status {
	case handler.StatusError:
		m.totals.TotalErrors++
		am.ErrorCount++
	case handler.StatusConsumed:
		m.totals.TotalConsumed++
	}
}

// RecordRewrites adds the rewrites one dispatch went through.
func (m *Metrics) RecordRewrites(n int) {
	if n <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totals.TotalRewrites += uint64(n)
}

// RecordPanic counts a recovered panic.
func (m *Metrics) RecordPanic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totals.TotalPanics++
}

// ActionStats returns a copy of the counters of name, or nil if it never
// ran.
func (m *Metrics) ActionStats(name input.Command) *ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	am := m.commands[name]
	if am == nil {
		return nil
	}
	cp := *am
	return &cp
}

// Snapshot returns the global counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.totals
	s.ActionCount = len(m.commands)
	return s
}

// Reset clears every counter.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = make(map[input.Command]*ActionMetrics)
	m.totals = MetricsSnapshot{}
}
