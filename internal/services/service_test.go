package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/khlegal/practice-api/internal/models"
)

// newTestDB opens a named in-memory sqlite database migrated to the current
// schema. Each test gets its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Client{},
		&models.Matter{},
		&models.TimeEntry{},
		&models.Document{},
		&models.Invoice{},
		&models.User{},
		&models.NumberSequence{},
	))
	return conn
}

func seedClient(t *testing.T, conn *gorm.DB) *models.Client {
	t.Helper()
	client := models.Client{Name: "Acme Oy", BusinessID: "1234567-8"}
	require.NoError(t, conn.Create(&client).Error)
	return &client
}

var seedRef atomic.Int64

func seedMatter(t *testing.T, conn *gorm.DB, clientID uint, rate float64) *models.Matter {
	t.Helper()
	matter := models.Matter{
		Reference:  fmt.Sprintf("TEST-%d-%03d", time.Now().Year(), seedRef.Add(1)),
		Title:      "Test matter",
		ClientID:   clientID,
		Status:     models.MatterActive,
		MatterType: models.MatterOther,
		OpenedDate: time.Now(),
		HourlyRate: rate,
	}
	require.NoError(t, conn.Create(&matter).Error)
	return &matter
}

func seedEntry(t *testing.T, conn *gorm.DB, matterID uint, date time.Time, hours, rate float64, billable bool) *models.TimeEntry {
	t.Helper()
	if !billable {
		rate = 0
	}
	entry := models.TimeEntry{
		MatterID:    matterID,
		Date:        date,
		Hours:       hours,
		Description: "work",
		Billable:    billable,
		Rate:        rate,
	}
	require.NoError(t, conn.Create(&entry).Error)
	return &entry
}

func testCtx() context.Context { return context.Background() }
