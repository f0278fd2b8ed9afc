package observability

import (
	"strconv"
	"sync"
	"time"
)

// requestKey identifies one counter bucket; label holds the status
// code for requests and the error kind for errors.
type requestKey struct {
	path   string
	method string
	label  string
}

// Metrics keeps per-route request and error counters in memory. Nil
// receivers are safe so callers can pass metrics through optionally.
type Metrics struct {
	mu       sync.Mutex
	requests map[requestKey]int64
	errors   map[requestKey]int64
}

// NewMetrics returns empty counters.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[requestKey]int64),
		errors:   make(map[requestKey]int64),
	}
}

// RecordRequest counts one finished request for its route and status.
func (m *Metrics) RecordRequest(path, method string, status int, _ time.Duration) {
	if m == nil {
		return
	}
	key := requestKey{path: path, method: method, label: strconv.Itoa(status)}
	m.mu.Lock()
	m.requests[key]++
	m.mu.Unlock()
}

// RecordError counts one failed request under its error kind.
func (m *Metrics) RecordError(path, method, kind string) {
	if m == nil {
		return
	}
	key := requestKey{path: path, method: method, label: kind}
	m.mu.Lock()
	m.errors[key]++
	m.mu.Unlock()
}
