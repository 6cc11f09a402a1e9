package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"account-service/internal/container"
	handlers "account-service/internal/interface/http"
	"account-service/internal/interface/middleware"
)

// AccountModule wires account HTTP handlers into routes.
// POST /api/register, POST /api/authenticate
// GET  /api/accounts/:id, PUT /api/accounts/:id/name
type AccountModule struct {
	Handler *handlers.AccountHandler
}

func NewAccountModule(h *handlers.AccountHandler) *AccountModule {
	return &AccountModule{Handler: h}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	// Strict limits on credential endpoints, softer elsewhere.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())
	authLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByIPAndPath())
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP())

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/authenticate", authLimiter, m.Handler.Authenticate)

	accounts := rg.Group("/accounts")
	accounts.Use(readLimiter)
	{
		accounts.GET("/:id", m.Handler.GetProfile)
		accounts.PUT("/:id/name", m.Handler.UpdateName)
	}
}
