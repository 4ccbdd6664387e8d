package handlers

import (
	"github.com/mishrapravin114/developers-assessment/types"
	"github.com/mishrapravin114/developers-assessment/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateRemittances runs one generation pass over all active users.
func GenerateRemittances(c *fiber.Ctx) error {
	result, err := RemittanceService.GenerateRemittances(c.UserContext())
	if err != nil {
		utils.Logger.Error("Failed to generate remittances", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.Message{Message: result.Message()})
}

// GetUserRemittances lists the payout history of one user.
func GetUserRemittances(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid user ID",
		})
	}

	remittances, err := RemittanceService.ListRemittances(c.UserContext(), userID)
	if err != nil {
		utils.Logger.Error("Failed to list remittances", zap.String("user_id", userID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    remittances,
	})
}
