package router

import (
	accountapp "account-service/internal/application"
	"account-service/internal/container"
	handlers "account-service/internal/interface/http"
	"account-service/internal/router/modules"
)

func buildAccountModule() *modules.AccountModule {
	service := accountapp.NewService(
		container.GetAccountRepo(),
		container.GetEventPublisher(),
		container.GetLogger(),
	)
	handler := handlers.NewAccountHandler(service, container.GetLogger())
	return modules.NewAccountModule(handler)
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	r.Add(buildAccountModule())
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
