package datafeed

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"

	"github.com/graymarsh/stocksage/Internal/types"
	"github.com/graymarsh/stocksage/Internal/utils"
)

type Bar = types.Bar

// ErrDataUnavailable means the symbol has no price history at all. It is
// the one hard failure a single-symbol analysis surfaces to its caller.
var ErrDataUnavailable = errors.New("no price data available")

var alpacaClient *alpaca.Client

func InitAlpacaClient() {
	alpacaClient = alpaca.NewClient(alpaca.ClientOpts{
		APIKey:    os.Getenv("ALPACA_API_KEY"),
		APISecret: os.Getenv("ALPACA_API_SECRET"),
		BaseURL:   "https://paper-api.alpaca.markets",
	})
}

func GetAlpacaClient() *alpaca.Client {
	return alpacaClient
}

// GetDailyBars fetches up to `limit` daily bars for a symbol, oldest
// first. An empty series is ErrDataUnavailable, not an empty success.
func GetDailyBars(symbol string, limit int) ([]Bar, error) {
	apiKey := os.Getenv("ALPACA_API_KEY")
	secretKey := os.Getenv("ALPACA_API_SECRET")

	// Pad for weekends and holidays so `limit` trading days fit.
	start := time.Now().UTC().AddDate(0, 0, -(limit*7/5 + 10))
	apiURL := fmt.Sprintf(
		"https://data.alpaca.markets/v2/stocks/%s/bars?timeframe=1Day&limit=%d&start=%s&adjustment=split",
		symbol, limit, start.Format(time.RFC3339),
	)

	var bars []Bar
	retryConfig := utils.DefaultRetryConfig()

	err := utils.RetryWithBackoff(func() error {
		req, _ := http.NewRequest("GET", apiURL, nil)
		req.Header.Set("APCA-API-KEY-ID", apiKey)
		req.Header.Set("APCA-API-SECRET-KEY", secretKey)

		client := &http.Client{Timeout: 20 * time.Second}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != 200 {
			return fmt.Errorf("alpaca bars API returned status %d", resp.StatusCode)
		}

		type barsResponse struct {
			Bars []Bar `json:"bars"`
		}
		var r barsResponse
		if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
			return err
		}
		bars = r.Bars
		return nil
	}, retryConfig)

	if err != nil {
		return nil, fmt.Errorf("fetching bars for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrDataUnavailable)
	}
	return bars, nil
}

// GetTradableSymbols lists active US equities from the trading API. The
// screener uses it when a universe is configured as "all tradable".
func GetTradableSymbols() ([]string, error) {
	if alpacaClient == nil {
		return nil, fmt.Errorf("alpaca client not initialized - call InitAlpacaClient() first")
	}

	assets, err := alpacaClient.GetAssets(alpaca.GetAssetsRequest{Status: "active"})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assets from Alpaca: %v", err)
	}

	symbols := make([]string, 0, len(assets))
	for _, asset := range assets {
		if asset.Class == "us_equity" && asset.Tradable {
			symbols = append(symbols, asset.Symbol)
		}
	}
	return symbols, nil
}
