package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"reminderkeeper/internal/container"
	handlers "reminderkeeper/internal/interface/http"
	"reminderkeeper/internal/interface/middleware"
	"reminderkeeper/pkg/helpers"
)

// UserModule wires the account pages and the JSON auth endpoints.
// Web: GET/POST /user/login, GET/POST /user/register, GET /user/logout
// API: POST /api/login, POST /api/refresh, POST /api/logout, GET /api/profile

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(web *gin.RouterGroup, api *gin.RouterGroup) {
	rdb := container.GetRedis()

	// Login and register pages are for unauthenticated visitors only.
	guest := web.Group("/user")
	guest.Use(middleware.Guest(rdb, m.JWT))
	{
		guest.GET("/login", m.Handler.LoginPage)
		guest.POST("/login", m.Handler.Login)
		guest.GET("/register", m.Handler.RegisterPage)
		guest.POST("/register", m.Handler.Register)
	}
	web.GET("/user/logout", middleware.WebAuth(rdb, m.JWT), m.Handler.Logout)

	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)   // 10 req/min per IP
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil) // 60 req/min per IP

	api.POST("/login", loginLimiter, m.Handler.APILogin)
	api.POST("/refresh", refreshLimiter, m.Handler.APIRefresh)

	auth := api.Group("/")
	auth.Use(middleware.Auth(rdb, m.JWT))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/logout", m.Handler.APILogout)
		auth.GET("/profile", m.Handler.APIProfile)
	}
}
