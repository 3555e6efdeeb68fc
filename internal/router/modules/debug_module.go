package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"reminderkeeper/internal/container"
	"reminderkeeper/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(_ *gin.RouterGroup, api *gin.RouterGroup) {
	// Public metrics endpoint (expvar), rate-limited per IP; internal
	// addresses are exempt so local scrapes never get throttled
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	api.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
