// Package search runs company searches against the backend and keeps only the
// results of the newest request when several are in flight.
package search

import "sync"

// Ticket identifies one search request. Tickets increase monotonically.
type Ticket uint64

// Sequencer hands out tickets and decides whether a finished request may
// still publish its results.
type Sequencer struct {
	mu        sync.Mutex
	issued    Ticket
	committed Ticket
}

// Next issues a ticket newer than every ticket issued before it.
func (s *Sequencer) Next() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Current reports whether t is the newest ticket issued.
func (s *Sequencer) Current(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t == s.issued
}

// Commit runs publish and returns true when t is still the newest ticket and
// no newer result has been committed. publish runs under the sequencer lock
// so a stale request can never interleave with a fresh one.
func (s *Sequencer) Commit(t Ticket, publish func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.issued || t <= s.committed {
		return false
	}
	s.committed = t
	if publish != nil {
		publish()
	}
	return true
}
