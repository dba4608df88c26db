package internal

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	datafeed "github.com/graymarsh/stocksage/Internal/database"
	"github.com/graymarsh/stocksage/Internal/utils/analyzer"
	"github.com/graymarsh/stocksage/Internal/utils/config"
	"github.com/graymarsh/stocksage/Internal/utils/scanner"
)

type API struct {
	Analyzer    *analyzer.Analyzer
	Screener    *scanner.Screener
	Config      *config.Config
	NewsStorage *datafeed.NewsStorage
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// HandleAnalyzeSymbol runs the full pipeline for one symbol.
// GET /api/analyze/{symbol}
func (api *API) HandleAnalyzeSymbol(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "Missing symbol")
		return
	}

	report, err := api.Analyzer.Analyze(r.Context(), symbol)
	if err != nil {
		log.Printf("analysis of %s failed: %v", symbol, err)
		WriteError(w, http.StatusBadGateway, "Analysis failed: "+err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// HandleScreenUniverse screens a configured universe and returns the
// ranked top stocks. GET /api/screen/{universe}
func (api *API) HandleScreenUniverse(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "universe")
	symbols, err := api.Config.Universe(name)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	summary := api.Screener.Screen(r.Context(), symbols)

	if datafeed.DB != nil {
		if err := datafeed.LogScreeningRun(r.Context(), strings.ToLower(name), summary.TotalAnalyzed, summary.Failed, summary.TopStocks, summary.StartedAt); err != nil {
			log.Printf("failed to log screening run: %v", err)
		}
	}
	WriteJSON(w, http.StatusOK, summary)
}

// HandleListUniverses lists the configured symbol universes.
func (api *API) HandleListUniverses(w http.ResponseWriter, r *http.Request) {
	universes := make(map[string]int, len(api.Config.Universes))
	for name, symbols := range api.Config.Universes {
		universes[name] = len(symbols)
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"universes": universes,
		"default":   api.Config.Screening.DefaultUniverse,
	})
}

// HandleGetNews returns cached news articles for a symbol.
// GET /api/news/{symbol}?limit=N
func (api *API) HandleGetNews(w http.ResponseWriter, r *http.Request) {
	if api.NewsStorage == nil {
		WriteError(w, http.StatusServiceUnavailable, "News cache requires a database connection")
		return
	}
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			WriteError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	articles, err := api.NewsStorage.GetLatestNews(r.Context(), symbol, limit)
	if err != nil {
		log.Printf("news lookup for %s failed: %v", symbol, err)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch news")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":   symbol,
		"articles": articles,
	})
}

// HandleRecentRuns returns summaries of recent screening runs.
// GET /api/screening-runs?limit=N
func (api *API) HandleRecentRuns(w http.ResponseWriter, r *http.Request) {
	if datafeed.DB == nil {
		WriteError(w, http.StatusServiceUnavailable, "Run history requires a database connection")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			WriteError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	runs, err := datafeed.GetRecentScreeningRuns(r.Context(), limit)
	if err != nil {
		log.Printf("screening run lookup failed: %v", err)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch screening runs")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"runs": runs})
}
