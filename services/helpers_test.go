package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/mishrapravin114/developers-assessment/models"
	"github.com/mishrapravin114/developers-assessment/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// newTestDB opens a private in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, storage.Migrate(db))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

type fixture struct {
	t     *testing.T
	db    *gorm.DB
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	return &fixture{t: t, db: newTestDB(t), clock: baseTime}
}

func (f *fixture) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fixture) user(active bool) models.User {
	u := models.User{
		Email:     uuid.NewString() + "@example.com",
		FullName:  "Test User",
		IsActive:  active,
		CreatedAt: f.tick(),
	}
	require.NoError(f.t, f.db.Create(&u).Error)
	return u
}

func (f *fixture) task(title, rate string) models.Task {
	task := models.Task{Title: title, HourlyRate: dec(rate), CreatedAt: f.tick()}
	require.NoError(f.t, f.db.Create(&task).Error)
	return task
}

func (f *fixture) worklog(userID, taskID uuid.UUID) models.WorkLog {
	wl := models.WorkLog{UserID: userID, TaskID: taskID, CreatedAt: f.tick()}
	require.NoError(f.t, f.db.Create(&wl).Error)
	return wl
}

func (f *fixture) segment(worklogID uuid.UUID, minutes int, status models.TimeSegmentStatus) {
	seg := models.TimeSegment{WorkLogID: worklogID, Minutes: minutes, Status: status, CreatedAt: f.tick()}
	require.NoError(f.t, f.db.Create(&seg).Error)
}

func (f *fixture) adjustment(worklogID uuid.UUID, amount string) {
	adj := models.Adjustment{WorkLogID: worklogID, Amount: dec(amount), Reason: "manual", CreatedAt: f.tick()}
	require.NoError(f.t, f.db.Create(&adj).Error)
}

// billableWorklog creates a worklog worth minutes/60*rate of the task.
func (f *fixture) billableWorklog(userID uuid.UUID, task models.Task, minutes int) models.WorkLog {
	wl := f.worklog(userID, task.ID)
	f.segment(wl.ID, minutes, models.TimeSegmentActive)
	return wl
}

func (f *fixture) count(model interface{}) int64 {
	var n int64
	require.NoError(f.t, f.db.Model(model).Count(&n).Error)
	return n
}
