package services

import (
	"context"
	"errors"
	"strings"

	"companycrm/internal/company"
	apperrors "companycrm/internal/errors"
	"companycrm/internal/search"
	"companycrm/internal/searchclient"
)

// searchService proxies searches to the search backend and assembles view models.
type searchService struct {
	backend   search.Backend
	assembler *company.Assembler
}

// NewSearchService creates a new SearchServicer.
func NewSearchService(backend search.Backend, assembler *company.Assembler) SearchServicer {
	return &searchService{backend: backend, assembler: assembler}
}

// Search runs a semantic search.
func (s *searchService) Search(ctx context.Context, query string, limit int) ([]company.CompanyViewModel, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "search query is required")
	}

	records, err := s.backend.Search(ctx, query, limit)
	if err != nil {
		return nil, backendError(err)
	}
	return s.assembler.AssembleAll(records), nil
}

// AdvancedSearch runs a filtered search. Filters left empty are not sent.
func (s *searchService) AdvancedSearch(ctx context.Context, filters searchclient.Filters) ([]company.CompanyViewModel, error) {
	records, err := s.backend.AdvancedSearch(ctx, filters)
	if err != nil {
		return nil, backendError(err)
	}
	return s.assembler.AssembleAll(records), nil
}

// backendError maps a backend failure onto a 502 carrying a readable reason.
func backendError(err error) error {
	var transportErr *searchclient.TransportError
	if errors.As(err, &transportErr) {
		appErr := apperrors.Wrap(apperrors.ErrSearchBackendUnavailable, err)
		appErr.Message = "Search backend is unavailable: " + transportErr.Error()
		return appErr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.Wrap(apperrors.ErrSearchBackendUnavailable, err)
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
