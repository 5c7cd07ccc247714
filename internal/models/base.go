package models

import (
	"time"

	"companycrm/internal/uuid"

	"gorm.io/gorm"
)

// Snapshot carries the bookkeeping columns of a synced row. SyncedAt is the
// time of the sync run that last wrote the row; UpdatedAt tracks any write.
type Snapshot struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	SyncedAt  time.Time `gorm:"not null" json:"synced_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a time-ordered ID and stamps rows created outside a
// sync run.
func (s *Snapshot) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New()
	}
	if s.SyncedAt.IsZero() {
		s.SyncedAt = time.Now().UTC()
	}
	return nil
}
