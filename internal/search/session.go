package search

import (
	"context"
	"errors"
	"sync"

	"companycrm/internal/company"
	"companycrm/internal/searchclient"
)

// ErrStale is returned for a search whose results arrived after a newer
// search was started. Its results are discarded.
var ErrStale = errors.New("search superseded by a newer request")

// Backend is the search backend used by a Session.
type Backend interface {
	Search(ctx context.Context, query string, limit int) ([]company.CompanyRecord, error)
	AdvancedSearch(ctx context.Context, filters searchclient.Filters) ([]company.CompanyRecord, error)
}

// Result is a published result set.
type Result struct {
	Ticket    Ticket
	Query     string
	Companies []company.CompanyViewModel
}

// Session runs searches for one consumer (a terminal, a browser tab) and
// publishes results only for its newest request. In-flight requests are not
// cancelled; their late responses are dropped.
type Session struct {
	backend   Backend
	assembler *company.Assembler
	seq       Sequencer

	mu     sync.RWMutex
	latest *Result
}

// NewSession creates a Session.
func NewSession(backend Backend, assembler *company.Assembler) *Session {
	return &Session{backend: backend, assembler: assembler}
}

// Search runs a semantic search.
func (s *Session) Search(ctx context.Context, query string, limit int) (*Result, error) {
	t := s.seq.Next()
	records, err := s.backend.Search(ctx, query, limit)
	return s.finish(t, query, records, err)
}

// AdvancedSearch runs a filtered search.
func (s *Session) AdvancedSearch(ctx context.Context, filters searchclient.Filters) (*Result, error) {
	t := s.seq.Next()
	records, err := s.backend.AdvancedSearch(ctx, filters)
	return s.finish(t, filters.Values().Encode(), records, err)
}

// Outcome is the result of an asynchronous search.
type Outcome struct {
	Result *Result
	Err    error
}

// SearchAsync issues the ticket before returning and runs the search in the
// background, so searches started in sequence are ordered by call order
// regardless of goroutine scheduling. The channel receives exactly one value.
func (s *Session) SearchAsync(ctx context.Context, query string, limit int) <-chan Outcome {
	t := s.seq.Next()
	out := make(chan Outcome, 1)
	go func() {
		records, err := s.backend.Search(ctx, query, limit)
		result, err := s.finish(t, query, records, err)
		out <- Outcome{Result: result, Err: err}
	}()
	return out
}

// Latest returns the most recently published result, or nil.
func (s *Session) Latest() *Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func (s *Session) finish(t Ticket, query string, records []company.CompanyRecord, err error) (*Result, error) {
	if !s.seq.Current(t) {
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}

	result := &Result{
		Ticket:    t,
		Query:     query,
		Companies: s.assembler.AssembleAll(records),
	}
	published := s.seq.Commit(t, func() {
		s.mu.Lock()
		s.latest = result
		s.mu.Unlock()
	})
	if !published {
		return nil, ErrStale
	}
	return result, nil
}
