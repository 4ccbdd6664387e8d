package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mishrapravin114/developers-assessment/models"
	"github.com/mishrapravin114/developers-assessment/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GenerateResult summarises one committed generation run.
type GenerateResult struct {
	Count       int
	TotalAmount decimal.Decimal
}

func (r GenerateResult) Message() string {
	return fmt.Sprintf("Generated %d remittance(s) for users with eligible work", r.Count)
}

// RemittanceService batches unremitted work into remittances.
type RemittanceService struct {
	DB      *gorm.DB
	Metrics *Metrics

	// mu serializes generation runs inside this process.
	mu sync.Mutex
}

func NewRemittanceService(db *gorm.DB, metrics *Metrics) *RemittanceService {
	return &RemittanceService{DB: db, Metrics: metrics}
}

// remittedWorklogIDs selects the ids of worklogs that belong to a SUCCEEDED remittance.
func remittedWorklogIDs(db *gorm.DB) *gorm.DB {
	return db.Model(&models.RemittanceWorkLog{}).
		Select("remittance_worklogs.worklog_id").
		Joins("JOIN remittances ON remittances.id = remittance_worklogs.remittance_id").
		Where("remittances.status = ?", models.RemittanceSucceeded)
}

func unremittedWorklogs(db *gorm.DB, userID uuid.UUID) ([]models.WorkLog, error) {
	var worklogs []models.WorkLog
	err := db.Where("worklogs.user_id = ?", userID).
		Where("worklogs.id NOT IN (?)", remittedWorklogIDs(db)).
		Order("worklogs.created_at ASC, worklogs.id ASC").
		Find(&worklogs).Error
	if err != nil {
		return nil, fmt.Errorf("load unremitted worklogs for user %s: %w", userID, err)
	}
	return worklogs, nil
}

// UnremittedWorklogs returns the user's worklogs that are not part of any
// SUCCEEDED remittance.
func (s *RemittanceService) UnremittedWorklogs(ctx context.Context, userID uuid.UUID) ([]models.WorkLog, error) {
	return unremittedWorklogs(s.DB.WithContext(ctx), userID)
}

// GenerateRemittances creates one SUCCEEDED remittance per active user whose
// unremitted worklogs add up to a positive amount. The whole run commits or
// rolls back as a unit.
func (s *RemittanceService) GenerateRemittances(ctx context.Context) (GenerateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	result := GenerateResult{TotalAmount: decimal.Zero}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var users []models.User
		if err := tx.Where("is_active = ?", true).Order("created_at ASC, id ASC").Find(&users).Error; err != nil {
			return fmt.Errorf("load active users: %w", err)
		}

		for _, user := range users {
			remittance, err := generateForUser(ctx, tx, user.ID)
			if err != nil {
				return err
			}
			if remittance == nil {
				continue
			}
			result.Count++
			result.TotalAmount = result.TotalAmount.Add(remittance.TotalAmount)
			utils.Logger.Debug("Remittance created",
				zap.String("remittance_id", remittance.ID.String()),
				zap.String("user_id", user.ID.String()),
				zap.Int("worklogs", len(remittance.WorkLogs)),
				zap.String("total_amount", remittance.TotalAmount.String()))
		}
		return nil
	})
	elapsed := time.Since(start)
	if err != nil {
		s.Metrics.observeRun(err, GenerateResult{}, elapsed)
		utils.Logger.Error("Remittance generation rolled back", zap.Error(err), zap.Duration("elapsed", elapsed))
		return GenerateResult{TotalAmount: decimal.Zero}, err
	}

	s.Metrics.observeRun(nil, result, elapsed)
	utils.Logger.Info("Remittance generation committed",
		zap.Int("remittances", result.Count),
		zap.String("total_amount", result.TotalAmount.String()),
		zap.Duration("elapsed", elapsed))
	return result, nil
}

// generateForUser writes the user's remittance inside tx, or returns nil when
// the user has nothing payable.
func generateForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.Remittance, error) {
	worklogs, err := unremittedWorklogs(tx, userID)
	if err != nil {
		return nil, err
	}
	if len(worklogs) == 0 {
		return nil, nil
	}

	total := decimal.Zero
	lines := make([]models.RemittanceWorkLog, 0, len(worklogs))
	for i := range worklogs {
		amount, err := CalculateWorklogAmount(ctx, tx, &worklogs[i])
		if err != nil {
			return nil, err
		}
		if !amount.IsPositive() {
			continue
		}
		total = total.Add(amount)
		lines = append(lines, models.RemittanceWorkLog{
			WorkLogID: worklogs[i].ID,
			Amount:    amount,
		})
	}
	if !total.IsPositive() {
		return nil, nil
	}

	remittance := models.Remittance{
		UserID:      userID,
		TotalAmount: total,
		Status:      models.RemittanceSucceeded,
	}
	if err := tx.Omit("WorkLogs").Create(&remittance).Error; err != nil {
		return nil, fmt.Errorf("create remittance for user %s: %w", userID, err)
	}
	for i := range lines {
		lines[i].RemittanceID = remittance.ID
	}
	if err := tx.Create(&lines).Error; err != nil {
		return nil, fmt.Errorf("create line items for remittance %s: %w", remittance.ID, err)
	}
	remittance.WorkLogs = lines
	return &remittance, nil
}

// ListRemittances returns the user's remittances with their line items, newest first.
func (s *RemittanceService) ListRemittances(ctx context.Context, userID uuid.UUID) ([]models.Remittance, error) {
	var remittances []models.Remittance
	err := s.DB.WithContext(ctx).
		Preload("WorkLogs", func(db *gorm.DB) *gorm.DB {
			return db.Order("remittance_worklogs.created_at ASC, remittance_worklogs.id ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&remittances).Error
	if err != nil {
		return nil, fmt.Errorf("list remittances for user %s: %w", userID, err)
	}
	return remittances, nil
}
