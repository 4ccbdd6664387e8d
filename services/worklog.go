package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mishrapravin114/developers-assessment/models"
	"github.com/mishrapravin114/developers-assessment/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusRemitted   = "REMITTED"
	StatusUnremitted = "UNREMITTED"
)

type ListWorklogsParams struct {
	// RemittanceStatus is REMITTED or UNREMITTED in any case; empty means no filter.
	RemittanceStatus string
	Skip             int
	Limit            int
}

type WorklogView struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	TaskID           uuid.UUID `json:"task_id"`
	TaskTitle        *string   `json:"task_title"`
	CreatedAt        string    `json:"created_at"`
	Amount           float64   `json:"amount"`
	RemittanceStatus string    `json:"remittance_status"`
}

type WorklogList struct {
	Data  []WorklogView `json:"data"`
	Count int64         `json:"count"`
}

type WorklogAmount struct {
	ID     uuid.UUID       `json:"id"`
	Amount decimal.Decimal `json:"amount"`
}

// WorklogService serves read-only worklog reports.
type WorklogService struct {
	DB *gorm.DB
}

func NewWorklogService(db *gorm.DB) *WorklogService {
	return &WorklogService{DB: db}
}

func emptyWorklogList() WorklogList {
	return WorklogList{Data: []WorklogView{}, Count: 0}
}

// ListWorklogs returns one page of worklogs ordered by creation time then id.
// Remitted worklogs report the amount frozen on their line item; the others
// report their live amount. An unknown status filter yields an empty list.
func (s *WorklogService) ListWorklogs(ctx context.Context, params ListWorklogsParams) (WorklogList, error) {
	if params.Skip < 0 || params.Limit <= 0 {
		return emptyWorklogList(), types.ErrInvalidPagination
	}

	status := strings.ToUpper(strings.TrimSpace(params.RemittanceStatus))
	if status != "" && status != StatusRemitted && status != StatusUnremitted {
		return emptyWorklogList(), nil
	}

	db := s.DB.WithContext(ctx)
	candidates := func() *gorm.DB {
		q := db.Model(&models.WorkLog{})
		switch status {
		case StatusRemitted:
			q = q.Where("worklogs.id IN (?)", remittedWorklogIDs(db))
		case StatusUnremitted:
			q = q.Where("worklogs.id NOT IN (?)", remittedWorklogIDs(db))
		}
		return q
	}

	var count int64
	if err := candidates().Count(&count).Error; err != nil {
		return emptyWorklogList(), fmt.Errorf("count worklogs: %w", err)
	}

	var worklogs []models.WorkLog
	if err := candidates().
		Order("worklogs.created_at ASC, worklogs.id ASC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&worklogs).Error; err != nil {
		return emptyWorklogList(), fmt.Errorf("list worklogs: %w", err)
	}

	frozen, err := frozenAmounts(db, worklogs)
	if err != nil {
		return emptyWorklogList(), err
	}
	titles, err := taskTitles(db, worklogs)
	if err != nil {
		return emptyWorklogList(), err
	}

	result := WorklogList{Data: make([]WorklogView, 0, len(worklogs)), Count: count}
	for i := range worklogs {
		wl := &worklogs[i]
		view := WorklogView{
			ID:        wl.ID,
			UserID:    wl.UserID,
			TaskID:    wl.TaskID,
			CreatedAt: wl.CreatedAt.Format(time.RFC3339Nano),
		}
		if title, ok := titles[wl.TaskID]; ok {
			view.TaskTitle = &title
		}

		amount, remitted := frozen[wl.ID]
		if remitted {
			view.RemittanceStatus = StatusRemitted
		} else {
			view.RemittanceStatus = StatusUnremitted
			amount, err = CalculateWorklogAmount(ctx, s.DB, wl)
			if err != nil {
				return emptyWorklogList(), err
			}
		}
		view.Amount = amount.InexactFloat64()
		result.Data = append(result.Data, view)
	}
	return result, nil
}

// frozenAmounts maps each remitted worklog in the page to the amount stored on
// its SUCCEEDED line item.
func frozenAmounts(db *gorm.DB, worklogs []models.WorkLog) (map[uuid.UUID]decimal.Decimal, error) {
	amounts := make(map[uuid.UUID]decimal.Decimal)
	if len(worklogs) == 0 {
		return amounts, nil
	}
	ids := make([]uuid.UUID, len(worklogs))
	for i := range worklogs {
		ids[i] = worklogs[i].ID
	}

	var lines []models.RemittanceWorkLog
	err := db.Model(&models.RemittanceWorkLog{}).
		Select("remittance_worklogs.*").
		Joins("JOIN remittances ON remittances.id = remittance_worklogs.remittance_id").
		Where("remittances.status = ?", models.RemittanceSucceeded).
		Where("remittance_worklogs.worklog_id IN ?", ids).
		Order("remittance_worklogs.created_at ASC, remittance_worklogs.id ASC").
		Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("load remitted line items: %w", err)
	}
	for _, line := range lines {
		if _, seen := amounts[line.WorkLogID]; !seen {
			amounts[line.WorkLogID] = line.Amount
		}
	}
	return amounts, nil
}

func taskTitles(db *gorm.DB, worklogs []models.WorkLog) (map[uuid.UUID]string, error) {
	titles := make(map[uuid.UUID]string)
	if len(worklogs) == 0 {
		return titles, nil
	}
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0, len(worklogs))
	for i := range worklogs {
		if _, ok := seen[worklogs[i].TaskID]; ok {
			continue
		}
		seen[worklogs[i].TaskID] = struct{}{}
		ids = append(ids, worklogs[i].TaskID)
	}

	var tasks []models.Task
	if err := db.Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	for _, task := range tasks {
		titles[task.ID] = task.Title
	}
	return titles, nil
}

// WorklogAmount returns the live amount of a single worklog.
func (s *WorklogService) WorklogAmount(ctx context.Context, id uuid.UUID) (WorklogAmount, error) {
	var worklog models.WorkLog
	if err := s.DB.WithContext(ctx).Where("id = ?", id).Take(&worklog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorklogAmount{}, types.ErrNotFound
		}
		return WorklogAmount{}, fmt.Errorf("load worklog %s: %w", id, err)
	}
	amount, err := CalculateWorklogAmount(ctx, s.DB, &worklog)
	if err != nil {
		return WorklogAmount{}, err
	}
	return WorklogAmount{ID: worklog.ID, Amount: amount}, nil
}
