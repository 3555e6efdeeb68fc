package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"reminderkeeper/internal/container"
	handlers "reminderkeeper/internal/interface/http"
	"reminderkeeper/internal/interface/middleware"
	"reminderkeeper/pkg/helpers"
)

type ExpenseModule struct {
	Handler *handlers.ExpenseHandler
	JWT     *helpers.JWTManager
}

func NewExpenseModule(h *handlers.ExpenseHandler, jwt *helpers.JWTManager) *ExpenseModule {
	return &ExpenseModule{Handler: h, JWT: jwt}
}

func (m *ExpenseModule) Register(web *gin.RouterGroup, api *gin.RouterGroup) {
	rdb := container.GetRedis()

	pages := web.Group("/")
	pages.Use(middleware.WebAuth(rdb, m.JWT))
	{
		pages.GET("/expense-keeper", m.Handler.Keeper)
		pages.GET("/expense/new", m.Handler.NewForm)
		pages.POST("/expense/new", m.Handler.Create)
		pages.POST("/update/expense/:id", m.Handler.UpdateSpent)
		pages.GET("/delete/expense/:id", m.Handler.Delete)
	}

	auth := api.Group("/")
	auth.Use(middleware.Auth(rdb, m.JWT))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/expenses", m.Handler.APIList)
		auth.POST("/expenses", m.Handler.APICreate)
		auth.PUT("/expenses/:id/spent", m.Handler.APIUpdateSpent)
		auth.DELETE("/expenses/:id", m.Handler.APIDelete)
	}
}
