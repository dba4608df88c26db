package analyzer

import (
	"context"
	"fmt"
	"testing"

	datafeed "github.com/graymarsh/stocksage/Internal/database"
	"github.com/graymarsh/stocksage/Internal/types"
)

func uptrendBars(n int) []types.Bar {
	bars := make([]types.Bar, n)
	for i := range bars {
		c := 100.0 + float64(i)
		bars[i] = types.Bar{
			Timestamp: fmt.Sprintf("2024-%02d-%02dT00:00:00Z", i/28+1, i%28+1),
			Open:      c - 0.5,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1_000_000,
		}
	}
	return bars
}

func testAnalyzer(bars []types.Bar, barsErr error, sentiment float64) *Analyzer {
	return &Analyzer{
		BarLimit: DefaultBarLimit,
		FetchBars: func(symbol string, limit int) ([]types.Bar, error) {
			return bars, barsErr
		},
		FetchCompany: func(symbol string) (types.CompanyInfo, error) {
			return types.CompanyInfo{Symbol: symbol, Name: symbol + " Inc", CurrentPrice: bars[len(bars)-1].Close}, nil
		},
		FetchSentiment: func(ctx context.Context, symbol string) ([]types.NewsArticle, float64, error) {
			return nil, sentiment, nil
		},
	}
}

func TestAnalyze_UptrendProducesBullishReport(t *testing.T) {
	bars := uptrendBars(250)
	a := testAnalyzer(bars, nil, 0)

	report, err := a.Analyze(context.Background(), "TEST")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := report.Recommendation
	if rec.SentimentScore != 0 {
		t.Errorf("expected sentiment 0, got %.2f", rec.SentimentScore)
	}
	// With neutral sentiment the blend is a pure 0.7 scaling.
	if want := rec.TechnicalScore * 0.7; rec.CombinedScore != want {
		t.Errorf("combined %.4f != 0.7*technical %.4f", rec.CombinedScore, want)
	}
	if rec.TechnicalScore <= 0 {
		t.Errorf("uptrend should score bullish, got %.2f", rec.TechnicalScore)
	}
	if report.Signals["SMA_200"] != "Bullish" {
		t.Errorf("SMA_200 on an uptrend: got %q", report.Signals["SMA_200"])
	}
	if rec.Description == "" {
		t.Error("expected a populated description")
	}

	// A never-broken rising run completes exactly one sell setup.
	if len(report.SellMarkers) != 1 {
		t.Errorf("expected one sell marker, got %d", len(report.SellMarkers))
	}
	if len(report.BuyMarkers) != 0 {
		t.Errorf("expected no buy markers, got %d", len(report.BuyMarkers))
	}
}

func TestAnalyze_NoBarsIsFatalForSymbol(t *testing.T) {
	a := &Analyzer{
		FetchBars: func(string, int) ([]types.Bar, error) {
			return nil, fmt.Errorf("TEST: %w", datafeed.ErrDataUnavailable)
		},
	}
	if _, err := a.Analyze(context.Background(), "TEST"); err == nil {
		t.Fatal("expected error when no price data exists")
	}
}

func TestAnalyze_ShortHistoryDegrades(t *testing.T) {
	// 15 bars: enough for the Demark detector, not for the interpreter.
	bars := uptrendBars(15)
	a := testAnalyzer(bars, nil, 50)

	report, err := a.Analyze(context.Background(), "TEST")
	if err != nil {
		t.Fatalf("short history should degrade, not fail: %v", err)
	}
	if report.Recommendation.TechnicalScore != 0 {
		t.Errorf("expected neutral technical score, got %.2f", report.Recommendation.TechnicalScore)
	}
	if _, ok := report.Signals["Status"]; !ok {
		t.Errorf("expected degraded status signal, got %v", report.Signals)
	}
	// Sentiment still flows through the blend: 0.3 * 50 = 15 → BUY.
	if report.Recommendation.CombinedScore != 15 {
		t.Errorf("expected combined 15, got %.4f", report.Recommendation.CombinedScore)
	}
}

func TestAnalyze_SentimentFailureIsNeutral(t *testing.T) {
	bars := uptrendBars(60)
	a := testAnalyzer(bars, nil, 0)
	a.FetchSentiment = func(ctx context.Context, symbol string) ([]types.NewsArticle, float64, error) {
		return nil, 0, fmt.Errorf("news API down")
	}

	report, err := a.Analyze(context.Background(), "TEST")
	if err != nil {
		t.Fatalf("sentiment failure must not fail the analysis: %v", err)
	}
	if report.Recommendation.SentimentScore != 0 {
		t.Errorf("expected neutral sentiment after fetch failure, got %.2f", report.Recommendation.SentimentScore)
	}
}
