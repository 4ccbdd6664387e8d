package handlers

import (
	"github.com/mishrapravin114/developers-assessment/services"
)

var (
	RemittanceService services.RemittanceServiceInterface
	WorklogService    services.WorklogServiceInterface
)

func InitHandlers(remittances services.RemittanceServiceInterface, worklogs services.WorklogServiceInterface) {
	RemittanceService = remittances
	WorklogService = worklogs
}
