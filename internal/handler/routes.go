package handler

import (
	"github.com/labstack/echo/v4"

	mid "github.com/neethishnk/hawkcards/internal/middleware"
	"github.com/neethishnk/hawkcards/pkg/metrics"
)

// Register mounts every route on e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/health", h.HealthCheck)

	authAPI := e.Group("/auth")
	authAPI.POST("/login", h.Login)
	authAPI.POST("/signup", h.Signup)
	authAPI.POST("/social/:platform", h.SocialSignup)
	authAPI.POST("/logout", h.Logout, mid.AuthMiddleware)

	// Public card page
	e.GET("/c/:id", h.ResolveCard)
	e.GET("/c/:id/vcard", h.DownloadCardVCard)

	api := e.Group("/api", mid.AuthMiddleware)

	cards := api.Group("/cards")
	cards.GET("", h.ListCards)
	cards.POST("", h.CreateCard)
	cards.GET("/:id", h.GetCard)
	cards.PUT("/:id", h.UpdateCard)
	cards.DELETE("/:id", h.DeleteCard)
	cards.GET("/:id/share", h.ShareCard)
	cards.GET("/:id/qr", h.CardQRCode)

	contacts := api.Group("/contacts")
	contacts.GET("", h.ListContacts)
	contacts.POST("", h.CreateContact)
	contacts.PUT("/:id", h.UpdateContact)
	contacts.DELETE("/:id", h.DeleteContact)
	contacts.GET("/:id/vcard", h.ContactVCard)

	segments := api.Group("/segments")
	segments.GET("", h.ListSegments)
	segments.POST("", h.CreateSegment)
	segments.DELETE("/:id", h.DeleteSegment)
	segments.GET("/:id/members", h.SegmentMembers)

	templates := api.Group("/templates")
	templates.GET("", h.ListTemplates)
	templates.POST("", h.CreateTemplate)
	templates.DELETE("/:id", h.DeleteTemplate)

	api.GET("/campaigns", h.BuildCampaign)

	admin := api.Group("/admin", mid.RequireAdmin)
	admin.GET("/users", h.ListUsers)
	admin.POST("/users", h.CreateUser)
	admin.POST("/users/:id/issue", h.IssueCard)
	admin.POST("/users/:id/revoke", h.RevokeCard)
	admin.GET("/users/:id/vcard", h.UserVCard)
	admin.GET("/users/:id/logs", h.UserLogs)
	admin.GET("/stats", h.Stats)
	admin.GET("/logs", h.ListLogs)
	admin.POST("/logs/analyze", h.AnalyzeLogs)
	admin.POST("/reset", h.ResetData)
}
