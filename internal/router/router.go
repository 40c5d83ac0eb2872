// Package router wires repositories, services and handlers into a gin engine.
package router

import (
	"fmt"
	"net/http"
	"time"

	"tag_tracker_go/internal/handler"
	"tag_tracker_go/internal/middleware"
	"tag_tracker_go/internal/repository"
	"tag_tracker_go/internal/service"
	"tag_tracker_go/pkg/vision"
	"tag_tracker_go/web"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the long-lived collaborators built once in main.
type Dependencies struct {
	DB *gorm.DB
	// Extractor may be nil; /upload then answers with an upstream failure.
	Extractor vision.Extractor
	// ReturnWindowDays defaults to service.DefaultReturnWindowDays.
	ReturnWindowDays int
	// Now defaults to time.Now.
	Now func() time.Time
}

// New builds the engine with every route registered.
func New(deps Dependencies) (*gin.Engine, error) {
	if deps.DB == nil {
		return nil, fmt.Errorf("router: database is required")
	}
	window := deps.ReturnWindowDays
	if window <= 0 {
		window = service.DefaultReturnWindowDays
	}

	folderService := service.NewFolderService(repository.NewFolderRepository(deps.DB))
	tagService := service.NewTagService(
		repository.NewTagRepository(deps.DB),
		service.ReturnDatePolicy{WindowDays: window},
		deps.Now,
	)
	scanService := service.NewScanService(deps.Extractor)

	folderHandler := handler.NewFolderHandler(folderService)
	tagHandler := handler.NewTagHandler(tagService)
	scanHandler := handler.NewScanHandler(scanService)
	pageHandler := handler.NewPageHandler(folderService, tagService)

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("router: parse templates: %w", err)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	r.GET("/", pageHandler.Folders)
	r.GET("/scan/:folder_id", pageHandler.Scan)
	r.GET("/tracker", pageHandler.Tracker)

	r.POST("/upload", scanHandler.Upload)
	r.POST("/save", tagHandler.Save)

	api := r.Group("/api")
	{
		api.GET("/folders", folderHandler.List)
		api.POST("/folders", folderHandler.Create)
		api.PUT("/folders/:id", folderHandler.Rename)
		api.DELETE("/folders/:id", folderHandler.Delete)

		api.GET("/tags", tagHandler.List)
		api.GET("/tag/:id", tagHandler.Get)
		api.GET("/tag/:id/image", tagHandler.Image)
		api.PUT("/tag/:id", tagHandler.Update)
		api.DELETE("/tag/:id", tagHandler.Delete)
	}

	return r, nil
}
