package analyzer

import (
	"context"
	"errors"
	"log"

	datafeed "github.com/graymarsh/stocksage/Internal/database"
	newsscraping "github.com/graymarsh/stocksage/Internal/news_scraping"
	"github.com/graymarsh/stocksage/Internal/strategy/demark"
	"github.com/graymarsh/stocksage/Internal/strategy/indicators"
	signalsPkg "github.com/graymarsh/stocksage/Internal/strategy/signals"
	"github.com/graymarsh/stocksage/Internal/types"
	"github.com/graymarsh/stocksage/Internal/utils"
)

// DefaultBarLimit is roughly one year of trading days, enough for the
// 200-day moving average to be defined.
const DefaultBarLimit = 252

// Analyzer runs the full single-symbol pipeline: price history,
// indicators, Demark setups, signal interpretation, news sentiment and
// the final recommendation. Collaborators are injected so screening
// tests can run without network or database access.
type Analyzer struct {
	BarLimit       int
	FetchBars      func(symbol string, limit int) ([]types.Bar, error)
	FetchCompany   func(symbol string) (types.CompanyInfo, error)
	FetchSentiment func(ctx context.Context, symbol string) ([]types.NewsArticle, float64, error)
	NewsStorage    *datafeed.NewsStorage
}

// New wires the analyzer to the live collaborators.
func New(newsClient *newsscraping.NewsClient, newsStorage *datafeed.NewsStorage) *Analyzer {
	return &Analyzer{
		BarLimit:       DefaultBarLimit,
		FetchBars:      datafeed.GetDailyBars,
		FetchCompany:   datafeed.GetCompanyInfo,
		FetchSentiment: newsClient.FetchSentiment,
		NewsStorage:    newsStorage,
	}
}

// Analyze produces the full report for one symbol. The only hard
// failure is missing price data; sentiment, company metadata and the
// Demark detector all degrade to neutral contributions.
func (a *Analyzer) Analyze(ctx context.Context, symbol string) (*types.AnalysisReport, error) {
	bars, err := a.FetchBars(symbol, a.BarLimit)
	if err != nil {
		return nil, err
	}

	ind := indicators.Latest(bars)

	var setup *types.SetupState
	buyMarkers := []types.SignalMarker{}
	sellMarkers := []types.SignalMarker{}

	detector := demark.NewSetupDetector()
	states, err := detector.Detect(bars)
	switch {
	case err == nil:
		setup = &states[len(states)-1]
		buyMarkers, sellMarkers = demark.Markers(bars, states)
	case errors.Is(err, demark.ErrInsufficientData):
		log.Printf("%s: skipping demark setup (%v)", symbol, err)
	default:
		return nil, err
	}

	signalResult := signalsPkg.InterpretWithSetup(bars, ind, setup)

	articles, sentimentScore, err := a.FetchSentiment(ctx, symbol)
	if err != nil {
		log.Printf("%s: sentiment fetch failed, treating as neutral: %v", symbol, err)
		articles, sentimentScore = nil, 0
	}
	if a.NewsStorage != nil && len(articles) > 0 {
		if err := a.NewsStorage.SaveArticles(ctx, symbol, articles); err != nil {
			log.Printf("%s: failed to cache news articles: %v", symbol, err)
		}
	}

	rec := signalsPkg.Combine(signalResult.TechnicalScore, sentimentScore)
	latestClose := bars[len(bars)-1].Close
	rec.Description = signalsPkg.Describe(rec.TechnicalScore, rec.SentimentScore, signalResult.Signals, latestClose, ind.SMA20)

	company := fallbackCompany(symbol, bars)
	if a.FetchCompany != nil {
		if info, err := a.FetchCompany(symbol); err != nil {
			log.Printf("%s: company info unavailable, using neutral defaults: %v", symbol, err)
		} else {
			company = info
			if company.CurrentPrice == 0 {
				company.CurrentPrice = latestClose
			}
		}
	}

	return &types.AnalysisReport{
		Symbol:         symbol,
		Company:        company,
		Recommendation: rec,
		Signals:        signalResult.Signals,
		BuyMarkers:     buyMarkers,
		SellMarkers:    sellMarkers,
		Articles:       articles,
		Bars:           bars,
	}, nil
}

// fallbackCompany derives a minimal snapshot from the price history so
// the ranking metrics stay meaningful when the market-data provider is
// down. The 52-week range is left zero, which downstream treats as the
// neutral midpoint.
func fallbackCompany(symbol string, bars []types.Bar) types.CompanyInfo {
	last := bars[len(bars)-1]
	volumes := make([]int64, len(bars))
	for i, b := range bars {
		volumes[i] = b.Volume
	}
	return types.CompanyInfo{
		Symbol:        symbol,
		Name:          symbol,
		CurrentPrice:  last.Close,
		Volume:        last.Volume,
		AverageVolume: int64(utils.CalculateAvgVolume(volumes, 20)),
	}
}
