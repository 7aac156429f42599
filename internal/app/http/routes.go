package routes

import (
	orgapi "school-builder/internal/api/org"
	siteapi "school-builder/internal/api/site"
	"school-builder/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// Limits applies to the publish route.
type Limits struct {
	PublishRPS   float64
	PublishBurst int
}

func RegisterRoutes(r *gin.Engine, sites *siteapi.Handler, org *orgapi.Handler, limits Limits) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/registry", sites.GetRegistry)
	r.GET("/templates/site", sites.ListSiteTemplates)
	r.GET("/templates/site/:slug", sites.GetSiteTemplate)
	r.GET("/sites/:slug", sites.GetPublishedSite)
	r.GET("/sites/:slug/:page", sites.GetPublishedSite)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())

	b := auth.Group("/builder")
	b.Use(middleware.SanitizeAndCleanInputMiddleware())

	b.GET("", sites.GetWorkspace)
	b.PUT("/name", sites.RenameSite)

	b.POST("/blocks", sites.AppendBlock)
	b.POST("/blocks/drop", sites.DropBlock)
	b.PUT("/blocks/order", sites.ReorderBlocks)
	b.PUT("/blocks/:id/props", sites.UpdateBlockProps)
	b.PUT("/blocks/:id/fields/:name", sites.UpdateBlockField)
	b.GET("/blocks/:id/editor", sites.GetBlockEditor)
	b.POST("/blocks/:id/move-up", sites.MoveBlockUp)
	b.POST("/blocks/:id/move-down", sites.MoveBlockDown)
	b.DELETE("/blocks/:id", sites.DeleteBlock)

	b.POST("/blocks/:id/select", sites.SelectBlock)
	b.POST("/blocks/:id/toggle-edit", sites.ToggleEditBlock)
	b.POST("/blocks/:id/edit", sites.EditBlock)
	b.POST("/editor/done", sites.DoneEditing)

	b.POST("/pages", sites.AddPage)
	b.PUT("/pages/current", sites.SwitchPage)
	b.DELETE("/pages/:name", sites.DeletePage)

	b.GET("/settings", sites.GetSettings)
	b.PUT("/settings", sites.UpdateSettings)

	b.POST("/save", sites.SaveSite)
	b.POST("/publish", middleware.RateLimitPerOwner(limits.PublishRPS, limits.PublishBurst), sites.PublishSite)
	b.POST("/from-template/:slug", sites.CopySiteFromTemplate)
	b.GET("/preview", sites.Preview)

	// Organization data, proxied to the remote API
	o := auth.Group("/org")
	o.Use(middleware.SanitizeAndCleanInputMiddleware())
	o.GET("/:resource", org.List)
	o.GET("/:resource/state", org.State)
	o.POST("/:resource", org.Create)
	o.PUT("/:resource/:id", org.Update)
	o.DELETE("/:resource/:id", org.Delete)
}
