package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mishrapravin114/developers-assessment/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var minutesPerHour = decimal.NewFromInt(60)

// CalculateWorklogAmount returns the current payable amount of a worklog:
// active time billed at the task's hourly rate plus every adjustment.
// A missing task bills time at a zero rate.
func CalculateWorklogAmount(ctx context.Context, db *gorm.DB, worklog *models.WorkLog) (decimal.Decimal, error) {
	db = db.WithContext(ctx)

	var minutes []int
	if err := db.Model(&models.TimeSegment{}).
		Where("worklog_id = ? AND status = ?", worklog.ID, models.TimeSegmentActive).
		Pluck("minutes", &minutes).Error; err != nil {
		return decimal.Zero, fmt.Errorf("sum time segments for worklog %s: %w", worklog.ID, err)
	}
	var totalMinutes int64
	for _, m := range minutes {
		totalMinutes += int64(m)
	}

	rate := decimal.Zero
	var task models.Task
	err := db.Where("id = ?", worklog.TaskID).Take(&task).Error
	switch {
	case err == nil:
		rate = task.HourlyRate
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return decimal.Zero, fmt.Errorf("load task %s: %w", worklog.TaskID, err)
	}

	// Multiply before dividing so whole-hour multiples stay exact.
	timeAmount := decimal.NewFromInt(totalMinutes).Mul(rate).Div(minutesPerHour)

	var adjustments []decimal.Decimal
	if err := db.Model(&models.Adjustment{}).
		Where("worklog_id = ?", worklog.ID).
		Pluck("amount", &adjustments).Error; err != nil {
		return decimal.Zero, fmt.Errorf("sum adjustments for worklog %s: %w", worklog.ID, err)
	}

	return timeAmount.Add(decimal.Sum(decimal.Zero, adjustments...)), nil
}
