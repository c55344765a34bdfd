package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/stylelens/backend/config"
	httpDelivery "github.com/stylelens/backend/internal/delivery/http"
	"github.com/stylelens/backend/internal/infrastructure/cache"
	"github.com/stylelens/backend/internal/infrastructure/catalog"
	"github.com/stylelens/backend/internal/infrastructure/vision"
	"github.com/stylelens/backend/internal/usecase"
)

func main() {
	// Optional .env for local development
	if err := godotenv.Load(); err == nil {
		log.Printf(".env loaded")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting StyleLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Catalog store
	store := catalog.NewStore(catalog.StoreConfig{
		Path:               cfg.Catalog.Path,
		MaxResults:         cfg.Catalog.MaxResults,
		ScoreThreshold:     cfg.Catalog.ScoreThreshold,
		EnableDebugLogging: cfg.Recommend.EnableDebugLogging,
	})
	log.Printf("Catalog: %d products from %s", store.Size(), cfg.Catalog.Path)

	// Feature extraction providers
	gemini := vision.NewGeminiExtractor(vision.GeminiConfig{
		APIKey:      cfg.Vision.APIKey,
		Model:       cfg.Vision.Model,
		Temperature: cfg.Vision.Temperature,
	})
	stub := vision.NewStubExtractor()

	if gemini.Available() {
		log.Printf("Vision: Gemini configured (model: %s, mode: %s)", cfg.Vision.Model, cfg.Vision.Provider)
	} else {
		log.Printf("WARNING: Gemini not configured - recommendations will use the local stub extractor")
	}

	featureCache := cache.NewMemoryCache()
	adapter := vision.NewAdapter(gemini, stub, featureCache, vision.AdapterConfig{
		Mode:     cfg.Vision.Provider,
		Timeout:  cfg.Vision.Timeout,
		CacheTTL: cfg.Vision.CacheTTL,
	})

	// Recommendation engine
	recommender := usecase.NewRecommendationService(store, adapter, usecase.RecommendationConfig{
		MaxPerCategory:     cfg.Recommend.MaxPerCategory,
		MinSimilarity:      cfg.Recommend.MinSimilarity,
		EnableDebugLogging: cfg.Recommend.EnableDebugLogging,
	})

	log.Printf("Recommend: maxPerCategory=%d, minSimilarity=%.2f, debug=%v",
		cfg.Recommend.MaxPerCategory, cfg.Recommend.MinSimilarity, cfg.Recommend.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(recommender, store, adapter)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
