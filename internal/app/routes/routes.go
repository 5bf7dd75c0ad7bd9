package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/voiceofchrist/churchsite/internal/app/controllers"
	"github.com/voiceofchrist/churchsite/internal/middleware"
)

// Controllers groups every controller the router mounts
type Controllers struct {
	Auth       *controllers.AuthController
	Branch     *controllers.BranchController
	Pastor     *controllers.PastorController
	Event      *controllers.EventController
	ChurchInfo *controllers.ChurchInfoController
	Highlight  *controllers.HighlightController
	Testimony  *controllers.TestimonyController
	Admin      *controllers.AdminController
	Media      *controllers.MediaController
	Health     *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/ping", c.Health.Ping)

	api := router.Group("/api")
	api.GET("/health", c.Health.Health)

	requireAdmin := authMiddleware.JWTAuth()

	// --- Auth ---
	authGroup := api.Group("/Auth")
	{
		authGroup.POST("/login", c.Auth.Login)
		authGroup.GET("/me", requireAdmin, c.Auth.Me)
	}

	// --- Branches ---
	branches := api.Group("/Branches")
	{
		branches.GET("", c.Branch.GetBranches)
		branches.GET("/:id", c.Branch.GetBranch)
		branches.POST("", requireAdmin, c.Branch.CreateBranch)
		branches.PUT("/:id", requireAdmin, c.Branch.UpdateBranch)
		branches.DELETE("/:id", requireAdmin, c.Branch.DeleteBranch)
	}

	// --- Pastors ---
	pastors := api.Group("/Pastors")
	{
		pastors.GET("", c.Pastor.GetPastors)
		pastors.GET("/branch/:branchId", c.Pastor.GetPastorsByBranch)
		pastors.GET("/:id", c.Pastor.GetPastor)
		pastors.POST("", requireAdmin, c.Pastor.CreatePastor)
		pastors.PUT("/:id", requireAdmin, c.Pastor.UpdatePastor)
		pastors.DELETE("/:id", requireAdmin, c.Pastor.DeletePastor)
	}

	// --- Events ---
	events := api.Group("/Events")
	{
		events.GET("", c.Event.GetEvents)
		events.GET("/upcoming", c.Event.GetUpcomingEvents)
		events.GET("/past", c.Event.GetPastEvents)
		events.GET("/year/:year", c.Event.GetEventsByYear)
		events.GET("/:id", c.Event.GetEvent)
		events.POST("", requireAdmin, c.Event.CreateEvent)
		events.PUT("/:id", requireAdmin, c.Event.UpdateEvent)
		events.DELETE("/:id", requireAdmin, c.Event.DeleteEvent)
	}

	// --- Church info ---
	churchInfo := api.Group("/ChurchInfo")
	{
		churchInfo.GET("", c.ChurchInfo.GetChurchInfo)
		churchInfo.PUT("/:id", requireAdmin, c.ChurchInfo.UpdateChurchInfo)
	}

	// --- Highlights and testimonies (public) ---
	api.GET("/Highlights", c.Highlight.GetActiveHighlights)
	api.GET("/Highlights/:id", c.Highlight.GetHighlight)
	api.GET("/Testimonies", c.Testimony.GetApprovedTestimonies)
	api.POST("/Testimonies", c.Testimony.SubmitTestimony)

	// --- Back office ---
	admin := api.Group("/Admin")
	admin.Use(requireAdmin)
	{
		admin.GET("/statistics", c.Admin.GetStatistics)

		admin.GET("/branches", c.Admin.GetBranches)
		admin.GET("/branches/:id", c.Admin.GetBranch)
		admin.POST("/branches", c.Admin.CreateBranch)
		admin.PUT("/branches/:id", c.Admin.UpdateBranch)
		admin.DELETE("/branches/:id", c.Admin.DeleteBranch)

		admin.GET("/events", c.Admin.GetEvents)
		admin.GET("/events/:id", c.Event.GetEvent)
		admin.POST("/events", c.Event.CreateEvent)
		admin.PUT("/events/:id", c.Event.UpdateEvent)
		admin.DELETE("/events/:id", c.Event.DeleteEvent)
		admin.PATCH("/events/:id/status", c.Admin.UpdateEventStatus)

		admin.GET("/highlights", c.Highlight.GetAllHighlights)
		admin.POST("/highlights", c.Highlight.CreateHighlight)
		admin.PUT("/highlights/:id", c.Highlight.UpdateHighlight)
		admin.DELETE("/highlights/:id", c.Highlight.DeleteHighlight)

		admin.GET("/testimonies", c.Testimony.ListTestimonies)
		admin.GET("/testimonies/:id", c.Testimony.GetTestimony)
		admin.PUT("/testimonies/:id", c.Testimony.UpdateTestimony)
		admin.POST("/testimonies/:id/approve", c.Testimony.ApproveTestimony)
		admin.DELETE("/testimonies/:id", c.Testimony.DeleteTestimony)

		admin.POST("/media", c.Media.UploadMedia)
	}
}
