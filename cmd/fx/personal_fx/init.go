package personal_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"constellation/internal/api/controllers"
	"constellation/internal/repositories"
	"constellation/internal/services"
)

var Module = fx.Provide(providePersonalController)

// Expenses and income are the same service over two tables, so both
// instances are built here rather than provided as duplicate types.
func providePersonalController(db *gorm.DB) *controllers.PersonalController {
	expenses := services.NewPersonalService(repositories.NewPersonalExpenseRepository(db))
	income := services.NewPersonalService(repositories.NewPersonalIncomeRepository(db))
	return controllers.NewPersonalController(expenses, income)
}
