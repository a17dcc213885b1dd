// Package api wires the HTTP surface: middleware, handlers and routes.
package api

import (
	"str-underwriter/internal/api/handlers"
	"str-underwriter/internal/api/middleware"
	"str-underwriter/internal/config"
	"str-underwriter/internal/underwrite"

	"github.com/gin-gonic/gin"
)

type Options struct {
	Config *config.Config
	// Lookup resolves listing URLs; nil uses the RapidAPI Zillow client.
	Lookup    underwrite.LookupFunc
	PresetDir string
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(opts Options) *gin.Engine {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	lookup := opts.Lookup
	if lookup == nil {
		lookup = underwrite.ZillowLookup("")
	}

	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	svc := underwrite.NewService(cfg, lookup)
	underwriteHandler := handlers.NewUnderwriteHandler(svc)
	presetHandler := handlers.NewPresetHandler(opts.PresetDir)
	parameterHandler := handlers.NewParameterHandler(cfg)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Original single-page form endpoint.
	router.POST("/api/underwrite", underwriteHandler.UnderwriteLegacy)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/underwrite", underwriteHandler.Underwrite)
		v1.POST("/underwrite/compare", underwriteHandler.Compare)

		v1.GET("/presets", presetHandler.ListPresets)
		v1.GET("/parameters", parameterHandler.ListParameters)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})

	return router
}
