package newsscraping

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/graymarsh/stocksage/Internal/types"
)

const alphaVantageBaseURL = "https://www.alphavantage.co/query"

// NewsClient fetches ticker news with per-article sentiment from Alpha
// Vantage, with the headline analyzer as fallback scorer for articles
// the feed leaves unscored.
type NewsClient struct {
	httpClient *http.Client
	apiKey     string
	analyzer   *HeadlineAnalyzer
}

func NewNewsClient() *NewsClient {
	return &NewsClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     os.Getenv("ALPHA_VANTAGE_KEY"),
		analyzer:   NewHeadlineAnalyzer(),
	}
}

// Configured reports whether a news source is available at all. Without
// an API key the aggregate sentiment is legitimately zero.
func (nc *NewsClient) Configured() bool {
	return nc.apiKey != ""
}

type alphaVantageFeed struct {
	Feed []struct {
		Title                 string `json:"title"`
		URL                   string `json:"url"`
		TimePublished         string `json:"time_published"`
		Summary               string `json:"summary"`
		Source                string `json:"source"`
		OverallSentimentScore string `json:"overall_sentiment_score"`
	} `json:"feed"`
}

// FetchNews pulls up to ten recent articles for a ticker. The feed's
// sentiment score arrives on a 0..1 scale and is remapped to [-1, 1];
// articles without a score fall back to the word-lexicon analyzer.
func (nc *NewsClient) FetchNews(ctx context.Context, ticker string) ([]types.NewsArticle, error) {
	if !nc.Configured() {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s?function=NEWS_SENTIMENT&tickers=%s&apikey=%s",
		alphaVantageBaseURL, url.QueryEscape(ticker), nc.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := nc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alpha vantage request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alpha vantage returned status %d", resp.StatusCode)
	}

	var feed alphaVantageFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding news feed: %w", err)
	}

	var articles []types.NewsArticle
	for _, item := range feed.Feed {
		if len(articles) >= maxKeptArticles {
			break
		}
		sentiment, ok := parseFeedScore(item.OverallSentimentScore)
		if !ok {
			_, sentiment = nc.analyzer.Analyze(item.Title + " " + item.Summary)
		}
		articles = append(articles, types.NewsArticle{
			Title:     item.Title,
			URL:       item.URL,
			Source:    item.Source,
			Sentiment: sentiment,
			Date:      item.TimePublished,
			Summary:   item.Summary,
		})
	}
	return articles, nil
}

// FetchSentiment is the collaborator surface the analyzer pipeline uses:
// articles ranked by impact plus the aggregate score in [-100, 100].
func (nc *NewsClient) FetchSentiment(ctx context.Context, ticker string) ([]types.NewsArticle, float64, error) {
	articles, err := nc.FetchNews(ctx, ticker)
	if err != nil {
		return nil, 0, err
	}
	return RankByImpact(articles), AggregateSentiment(articles), nil
}

func parseFeedScore(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	// 0..1 feed scale to -1..1.
	return v*2 - 1, true
}
