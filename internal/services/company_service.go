package services

import (
	"errors"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"companycrm/internal/company"
	apperrors "companycrm/internal/errors"
	"companycrm/internal/logger"
	"companycrm/internal/models"
	"companycrm/internal/pagination"
)

const syncBatchSize = 100

// companyService handles the company snapshot store.
type companyService struct {
	db        *gorm.DB
	assembler *company.Assembler
	now       func() time.Time
}

// NewCompanyService creates a new CompanyServicer.
func NewCompanyService(db *gorm.DB, assembler *company.Assembler) CompanyServicer {
	return &companyService{db: db, assembler: assembler, now: time.Now}
}

// SyncRecords upserts records by name. Records without a name are skipped.
// Embedded history fields that are not a JSON array are stored as NULL. When
// a name appears more than once the last occurrence wins.
func (s *companyService) SyncRecords(records []company.CompanyRecord) (*SyncResult, error) {
	result := &SyncResult{Received: len(records)}
	syncedAt := s.now().UTC()

	index := map[string]int{}
	rows := make([]models.Company, 0, len(records))
	for _, r := range records {
		if r.Name == nil || strings.TrimSpace(*r.Name) == "" {
			result.Skipped++
			continue
		}
		name := strings.TrimSpace(*r.Name)
		r.Name = &name

		for _, field := range []struct {
			label string
			raw   **string
		}{
			{company.FieldFundingHistory, &r.FundingHistory},
			{company.FieldPriceHistory, &r.PriceHistory},
		} {
			if !validHistory(*field.raw) {
				logger.Get().Warnw("invalid embedded JSON, storing NULL",
					"company", name, "field", field.label)
				*field.raw = nil
				result.InvalidJSON++
			}
		}

		row := models.NewCompany(r, syncedAt)
		if i, ok := index[name]; ok {
			rows[i] = row
			continue
		}
		index[name] = len(rows)
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return result, nil
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns(models.SnapshotColumns),
	}).CreateInBatches(&rows, syncBatchSize).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result.Upserted = len(rows)
	return result, nil
}

// validHistory reports whether raw is absent, blank, or a JSON array.
func validHistory(raw *string) bool {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return true
	}
	return gjson.Valid(*raw) && gjson.Parse(*raw).IsArray()
}

// ListCompanies returns a page of stored companies ordered by name.
func (s *companyService) ListCompanies(page pagination.PageRequest) (*pagination.PageResponse[company.CompanyViewModel], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Company{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rows []models.Company
	if err := s.db.Order("name ASC").Scopes(pagination.Paginate(page)).Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := make([]company.CompanyViewModel, 0, len(rows))
	for i := range rows {
		views = append(views, s.assembler.Assemble(rows[i].Record()))
	}

	result := pagination.NewPageResponse(views, page, totalItems)
	return &result, nil
}

// GetCompanyByName looks a company up by name, ignoring case.
func (s *companyService) GetCompanyByName(name string) (*company.CompanyViewModel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "company name is required")
	}

	var row models.Company
	if err := s.db.Where("LOWER(name) = LOWER(?)", name).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	view := s.assembler.Assemble(row.Record())
	return &view, nil
}
