package services

import (
	"context"

	"github.com/mishrapravin114/developers-assessment/models"

	"github.com/google/uuid"
)

type RemittanceServiceInterface interface {
	GenerateRemittances(ctx context.Context) (GenerateResult, error)
	UnremittedWorklogs(ctx context.Context, userID uuid.UUID) ([]models.WorkLog, error)
	ListRemittances(ctx context.Context, userID uuid.UUID) ([]models.Remittance, error)
}

type WorklogServiceInterface interface {
	ListWorklogs(ctx context.Context, params ListWorklogsParams) (WorklogList, error)
	WorklogAmount(ctx context.Context, id uuid.UUID) (WorklogAmount, error)
}

var (
	_ RemittanceServiceInterface = (*RemittanceService)(nil)
	_ WorklogServiceInterface    = (*WorklogService)(nil)
)
