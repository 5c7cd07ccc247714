package services

import (
	"context"
	"sync"

	apperrors "companycrm/internal/errors"
	"companycrm/internal/logger"
	"companycrm/internal/sheets"
)

// syncService copies the sheet into the snapshot store. Runs are serialized so
// a scheduled sync and a manual one never overlap.
type syncService struct {
	source    sheets.RowSource
	companies CompanyServicer
	mu        sync.Mutex
}

// NewSyncService creates a new SyncServicer. source may be nil when no sheet
// is configured; Sync then reports the source as unavailable.
func NewSyncService(source sheets.RowSource, companies CompanyServicer) SyncServicer {
	return &syncService{source: source, companies: companies}
}

// Sync reads every sheet row and upserts it into the snapshot store.
func (s *syncService) Sync(ctx context.Context) (*SyncResult, error) {
	if s.source == nil {
		return nil, apperrors.ErrSyncSourceUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.source.Rows(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrSyncSourceUnavailable, err)
	}
	if len(records) == 0 {
		logger.Get().Warn("sheet returned no company rows")
	}

	result, err := s.companies.SyncRecords(records)
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("sheet sync complete",
		"received", result.Received,
		"upserted", result.Upserted,
		"skipped", result.Skipped,
		"invalid_json", result.InvalidJSON,
	)
	return result, nil
}
