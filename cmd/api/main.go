package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	datafeed "github.com/graymarsh/stocksage/Internal/database"
	newsscraping "github.com/graymarsh/stocksage/Internal/news_scraping"
	"github.com/graymarsh/stocksage/Internal/utils/analyzer"
	"github.com/graymarsh/stocksage/Internal/utils/config"
	"github.com/graymarsh/stocksage/Internal/utils/scanner"
	"github.com/graymarsh/stocksage/cmd/api/internal"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../../.env")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The database is optional: without it news caching and run
	// history are disabled but analysis and screening still work.
	var newsStorage *datafeed.NewsStorage
	if err := datafeed.InitDatabase(); err != nil {
		log.Printf("Warning: database unavailable, news cache and run history disabled: %v", err)
	} else {
		defer datafeed.CloseDatabase()
		newsStorage = datafeed.NewNewsStorage(datafeed.DB)
	}

	datafeed.InitAlpacaClient()

	newsClient := newsscraping.NewNewsClient()
	if !newsClient.Configured() {
		log.Println("Warning: ALPHA_VANTAGE_KEY not set, sentiment will be neutral")
	}

	anlz := analyzer.New(newsClient, newsStorage)
	anlz.BarLimit = cfg.Analysis.BarLimit

	screener := scanner.NewScreener(anlz.Analyze)
	screener.Workers = cfg.Screening.Workers
	screener.TopK = cfg.Screening.TopK

	apiServer := &internal.API{
		Analyzer:    anlz,
		Screener:    screener,
		Config:      cfg,
		NewsStorage: newsStorage,
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(internal.CorsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    "healthy",
		})
	})

	r.Get("/api/analyze/{symbol}", apiServer.HandleAnalyzeSymbol)
	r.Get("/api/screen/{universe}", apiServer.HandleScreenUniverse)
	r.Get("/api/universes", apiServer.HandleListUniverses)
	r.Get("/api/news/{symbol}", apiServer.HandleGetNews)
	r.Get("/api/screening-runs", apiServer.HandleRecentRuns)

	log.Printf("Starting API server on %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, r); err != nil {
		log.Fatal(err)
	}
}
