package handlers

import (
	"errors"
	"strconv"

	"github.com/mishrapravin114/developers-assessment/config"
	"github.com/mishrapravin114/developers-assessment/services"
	"github.com/mishrapravin114/developers-assessment/types"
	"github.com/mishrapravin114/developers-assessment/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	fallbackListLimit = 100
	fallbackMaxLimit  = 1000
)

func listLimits() (int, int) {
	defaultLimit, maxLimit := config.AppConfig.DefaultListLimit, config.AppConfig.MaxListLimit
	if defaultLimit <= 0 {
		defaultLimit = fallbackListLimit
	}
	if maxLimit <= 0 {
		maxLimit = fallbackMaxLimit
	}
	return defaultLimit, maxLimit
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(types.APIResponse{
		Success: false,
		Error:   msg,
	})
}

// ListWorklogs handles GET /worklogs?remittanceStatus=&skip=&limit=.
func ListWorklogs(c *fiber.Ctx) error {
	defaultLimit, maxLimit := listLimits()

	skip := 0
	if raw := c.Query("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return badRequest(c, "skip must be a non-negative integer")
		}
		skip = n
	}

	limit := defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxLimit {
			return badRequest(c, "limit must be an integer between 1 and "+strconv.Itoa(maxLimit))
		}
		limit = n
	}

	status := c.Query("remittanceStatus", c.Query("remittance_status"))

	list, err := WorklogService.ListWorklogs(c.UserContext(), services.ListWorklogsParams{
		RemittanceStatus: status,
		Skip:             skip,
		Limit:            limit,
	})
	if err != nil {
		if errors.Is(err, types.ErrInvalidPagination) {
			return badRequest(c, types.ErrInvalidInput)
		}
		utils.Logger.Error("Failed to list worklogs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(list)
}

// GetWorklogAmount returns the live amount of one worklog.
func GetWorklogAmount(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid worklog ID")
	}

	amount, err := WorklogService.WorklogAmount(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrWorklogMissing,
			})
		}
		utils.Logger.Error("Failed to compute worklog amount", zap.String("worklog_id", id.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(amount)
}
