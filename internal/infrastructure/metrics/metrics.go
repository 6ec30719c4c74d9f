// Package metrics provides a small instrumentation interface with a no-op
// default and a Prometheus-backed implementation.
package metrics

import (
	"sync"
	"time"
)

// Query outcomes recorded by the kinship service.
const (
	OutcomeResolved    = "resolved"
	OutcomeApproximate = "approximate"
	OutcomeNotFound    = "not_found"
	OutcomeInvalid     = "invalid"
	OutcomeError       = "error"
)

// Recorder defines the metrics surface used across the codebase.
type Recorder interface {
	IncStoreOpTotal(op string, success bool)
	ObserveStoreOpSeconds(op string, success bool, seconds float64)
	IncQueryTotal(kind, outcome string)
	ObserveQuerySeconds(outcome string, seconds float64)
	ObservePathHops(hops int)
}

// noopRecorder implements Recorder with no-ops.
type noopRecorder struct{}

func (n *noopRecorder) IncStoreOpTotal(string, bool)                {}
func (n *noopRecorder) ObserveStoreOpSeconds(string, bool, float64) {}
func (n *noopRecorder) IncQueryTotal(string, string)                {}
func (n *noopRecorder) ObserveQuerySeconds(string, float64)         {}
func (n *noopRecorder) ObservePathHops(int)                         {}

var (
	recMu    sync.RWMutex
	recorder Recorder = &noopRecorder{}
)

// Default returns the current recorder.
func Default() Recorder {
	recMu.RLock()
	defer recMu.RUnlock()
	return recorder
}

// SetRecorder swaps the global recorder implementation.
// Passing nil restores the no-op recorder.
func SetRecorder(r Recorder) {
	recMu.Lock()
	defer recMu.Unlock()
	if r == nil {
		r = &noopRecorder{}
	}
	recorder = r
}

// TimeStoreOp is a helper to time family store operations.
func TimeStoreOp(op string) func(success bool) {
	start := time.Now()
	return func(success bool) {
		dur := time.Since(start).Seconds()
		Default().IncStoreOpTotal(op, success)
		Default().ObserveStoreOpSeconds(op, success, dur)
	}
}

// TimeQuery is a helper to time relationship queries. The returned func
// takes the classified relation kind (empty when the query failed) and the
// outcome.
func TimeQuery() func(kind, outcome string) {
	start := time.Now()
	return func(kind, outcome string) {
		dur := time.Since(start).Seconds()
		if kind == "" {
			kind = "none"
		}
		Default().IncQueryTotal(kind, outcome)
		Default().ObserveQuerySeconds(outcome, dur)
	}
}
