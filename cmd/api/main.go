package main

import (
	"fmt"
	"log"
	"os"

	"str-underwriter/internal/api"
	"str-underwriter/internal/config"
	"str-underwriter/internal/underwrite"

	"github.com/gin-gonic/gin"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Financing defaults: %s (loan_pct=%.2f rate=%.4f term=%dy)",
		cfg.Financing.Name, cfg.BaseInputs(0, 0).LoanPct, cfg.Financing.InterestRate, cfg.Financing.TermYears)

	// RapidAPI keys are passed through from client requests; the server holds none.

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(api.Options{
		Config:    cfg,
		Lookup:    underwrite.ZillowLookup(os.Getenv("ZILLOW_BASE_URL")),
		PresetDir: os.Getenv("PRESET_DIR"),
	})

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
