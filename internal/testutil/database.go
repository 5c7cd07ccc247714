// Package testutil holds the in-memory snapshot store, company fixtures and
// assertions shared by service and integration tests.
package testutil

import (
	"fmt"
	"testing"

	"companycrm/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory SQLite store with the companies table
// migrated. The connection is closed when the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("companies_%d", nextID())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	if err := db.AutoMigrate(&models.Company{}); err != nil {
		t.Fatalf("migrate %s: %v", name, err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CountCompanies returns the number of stored snapshot rows.
func CountCompanies(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Company{}).Count(&n).Error; err != nil {
		t.Fatalf("count companies: %v", err)
	}
	return n
}
