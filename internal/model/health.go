package model

import "time"

// DatabaseHealth is a point-in-time liveness snapshot of the backing stores.
// It is never persisted.
type DatabaseHealth struct {
	// Stores maps store name (postgres, mongodb, sqlite) to probe success.
	Stores    map[string]bool
	CheckedAt time.Time
	// Errors holds probe failure details for server-side logging only.
	Errors map[string]string
}

// Healthy returns the number of stores that answered their probe.
func (h DatabaseHealth) Healthy() int {
	n := 0
	for _, ok := range h.Stores {
		if ok {
			n++
		}
	}
	return n
}

// Total returns the number of probed stores.
func (h DatabaseHealth) Total() int { return len(h.Stores) }
