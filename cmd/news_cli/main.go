package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	newsscraping "github.com/graymarsh/stocksage/Internal/news_scraping"
	"github.com/graymarsh/stocksage/Internal/types"
)

func main() {
	_ = godotenv.Load()

	symbol := "AAPL"
	if len(os.Args) > 1 {
		symbol = strings.ToUpper(os.Args[1])
	}

	client := newsscraping.NewNewsClient()

	fmt.Printf("Fetching news for %s...\n", symbol)
	articles, err := client.FetchNews(context.Background(), symbol)
	if err != nil {
		fmt.Printf("News fetch failed: %v\n", err)
		fmt.Println("Scoring test headlines instead...")
		articles = testHeadlines()
	}

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("SENTIMENT ANALYSIS")
	fmt.Println(strings.Repeat("=", 80))

	for _, article := range newsscraping.RankByImpact(articles) {
		fmt.Printf("\n %s\n", article.Title)
		fmt.Printf(" Source: %s | %s\n", article.Source, article.Date)
		fmt.Printf(" Sentiment: %+.2f\n", article.Sentiment)
	}

	score := newsscraping.AggregateSentiment(articles)
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Printf("Aggregate sentiment for %s: %+.1f (range -100..100)\n", symbol, score)
	fmt.Println(strings.Repeat("=", 80))
}

func testHeadlines() []types.NewsArticle {
	analyzer := newsscraping.NewHeadlineAnalyzer()
	headlines := []string{
		"Apple Reports Record Profit, Earnings Beat Expectations",
		"Apple Stock Surges on Strong Q4 Revenue Growth",
		"Apple Faces Investigation Over Privacy Concerns",
		"Apple Stock Plunges After Missing Analyst Expectations",
	}

	articles := make([]types.NewsArticle, 0, len(headlines))
	for i, h := range headlines {
		_, score := analyzer.Analyze(h)
		articles = append(articles, types.NewsArticle{
			Title:     h,
			URL:       fmt.Sprintf("https://example.com/%d", i+1),
			Source:    "Test",
			Sentiment: score,
		})
	}
	return articles
}
