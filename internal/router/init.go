package router

import (
	"reminderkeeper/internal/application"
	"reminderkeeper/internal/container"
	pginfra "reminderkeeper/internal/infrastructure/postgres"
	handlers "reminderkeeper/internal/interface/http"
	"reminderkeeper/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it. Called once during startup, after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	userRepo := pginfra.NewUserRepository(pool)
	userSvc := application.NewUserService(userRepo, jwt, container.GetRedis(), logger)
	userHandler := handlers.NewUserHandler(userSvc, logger, cfg.CookieDomain, cfg.CookieSecure)

	reminderRepo := pginfra.NewReminderRepository(pool)
	reminderSvc := application.NewReminderService(reminderRepo, logger, container.GetES(), cfg.ESRemindersIndex)
	reminderHandler := handlers.NewReminderHandler(reminderSvc, logger)

	expenseRepo := pginfra.NewExpenseRepository(pool)
	expenseSvc := application.NewExpenseService(expenseRepo, logger)
	expenseHandler := handlers.NewExpenseHandler(expenseSvc, logger)

	r.Add(modules.NewUserModule(userHandler, jwt))
	r.Add(modules.NewReminderModule(reminderHandler, jwt))
	r.Add(modules.NewExpenseModule(expenseHandler, jwt))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
