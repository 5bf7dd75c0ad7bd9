package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/voiceofchrist/churchsite/docs" // registers the swagger spec
)

// SetupSwagger mounts the API documentation at /swagger/index.html.
// The bearer token entered in the UI survives page reloads.
func SetupSwagger(router *gin.Engine) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.DocExpansion("none"),
		ginSwagger.PersistAuthorization(true),
	))
}
