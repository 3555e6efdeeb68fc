package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that registers its server-rendered
// routes on the web group and its JSON routes on the /api group.
type Module interface {
	Register(web *gin.RouterGroup, api *gin.RouterGroup)
}
