package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"reminderkeeper/internal/container"
	handlers "reminderkeeper/internal/interface/http"
	"reminderkeeper/internal/interface/middleware"
	"reminderkeeper/pkg/helpers"
)

type ReminderModule struct {
	Handler *handlers.ReminderHandler
	JWT     *helpers.JWTManager
}

func NewReminderModule(h *handlers.ReminderHandler, jwt *helpers.JWTManager) *ReminderModule {
	return &ReminderModule{Handler: h, JWT: jwt}
}

func (m *ReminderModule) Register(web *gin.RouterGroup, api *gin.RouterGroup) {
	rdb := container.GetRedis()

	pages := web.Group("/")
	pages.Use(middleware.WebAuth(rdb, m.JWT))
	{
		pages.GET("/", m.Handler.Index)
		pages.POST("/set-reminder", m.Handler.Create)
		pages.GET("/schedule", m.Handler.Schedule)
		pages.GET("/events/:id", m.Handler.Event)
		pages.POST("/update/:id", m.Handler.Update)
		pages.GET("/delete/:id", m.Handler.Delete)
		pages.POST("/search", m.Handler.Search)
	}

	auth := api.Group("/")
	auth.Use(middleware.Auth(rdb, m.JWT))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	// Search fans out to Elasticsearch, so it gets its own tighter limit.
	searchLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	{
		auth.GET("/reminders", m.Handler.APIList)
		auth.POST("/reminders", m.Handler.APICreate)
		auth.GET("/reminders/search", searchLimiter, m.Handler.APISearch)
		auth.GET("/reminders/:id", m.Handler.APIGet)
		auth.PUT("/reminders/:id", m.Handler.APIUpdate)
		auth.DELETE("/reminders/:id", m.Handler.APIDelete)
	}
}
