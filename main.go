package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	datafeed "github.com/graymarsh/stocksage/Internal/database"
	newsscraping "github.com/graymarsh/stocksage/Internal/news_scraping"
	"github.com/graymarsh/stocksage/Internal/types"
	"github.com/graymarsh/stocksage/Internal/utils/analyzer"
	"github.com/graymarsh/stocksage/Internal/utils/config"
	"github.com/graymarsh/stocksage/Internal/utils/scanner"
	"github.com/graymarsh/stocksage/Internal/utils/scheduler"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The database is optional for the CLI: without it news caching
	// and run history are disabled but everything else works.
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

	if cfg.Screening.Schedule != "" {
		symbols, err := cfg.Universe(cfg.Screening.DefaultUniverse)
		if err != nil {
			log.Fatalf("Scheduled screening misconfigured: %v", err)
		}
		sched := scheduler.New(screener, cfg.Screening.DefaultUniverse, symbols)
		if err := sched.Register(cfg.Screening.Schedule); err != nil {
			log.Fatalf("Failed to register schedule %q: %v", cfg.Screening.Schedule, err)
		}
		sched.Start()
		defer sched.Stop()
	}

	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println("\n--- StockSage Menu ---")
		fmt.Println("1. Analyze Stock")
		fmt.Println("2. Screen Universe")
		fmt.Println("3. Recent Screening Runs")
		fmt.Println("4. Configure Settings")
		fmt.Println("5. Exit")
		fmt.Print("Enter choice (1-5): ")

		var choice int
		_, err := fmt.Scanln(&choice)
		if err != nil {
			fmt.Println("Invalid input. Try again.")
			continue
		}

		switch choice {
		case 1:
			handleAnalyze(ctx, anlz, reader)
		case 2:
			handleScreen(ctx, screener, cfg, reader)
		case 3:
			handleRecentRuns(ctx)
		case 4:
			config.ConfigureInteractive(cfg)
		case 5:
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Invalid choice. Try again.")
		}
	}
}

func handleAnalyze(ctx context.Context, anlz *analyzer.Analyzer, reader *bufio.Reader) {
	fmt.Print("Enter ticker symbol: ")
	line, _ := reader.ReadString('\n')
	symbol := strings.ToUpper(strings.TrimSpace(line))
	if symbol == "" {
		fmt.Println("No symbol entered.")
		return
	}

	fmt.Printf("Analyzing %s...\n", symbol)
	report, err := anlz.Analyze(ctx, symbol)
	if err != nil {
		fmt.Printf("❌ Analysis failed: %v\n", err)
		return
	}
	printReport(report)
}

func printReport(report *types.AnalysisReport) {
	rec := report.Recommendation
	fmt.Printf("\n=== %s (%s) ===\n", report.Company.Name, report.Symbol)
	fmt.Printf("Price: $%.2f\n", report.Company.CurrentPrice)
	fmt.Printf("\nRecommendation: %s (%.0f%% confidence)\n", rec.Label, rec.Confidence)
	fmt.Printf("  Technical: %+.1f | Sentiment: %+.1f | Combined: %+.1f\n",
		rec.TechnicalScore, rec.SentimentScore, rec.CombinedScore)
	fmt.Printf("\n%s\n", rec.Description)

	fmt.Println("\nSignals:")
	for name, label := range report.Signals {
		fmt.Printf("  %-12s %s\n", name, label)
	}

	if n := len(report.BuyMarkers); n > 0 {
		last := report.BuyMarkers[n-1]
		fmt.Printf("\nDemark buy setups completed: %d (last on %s)\n", n, last.Date)
	}
	if n := len(report.SellMarkers); n > 0 {
		last := report.SellMarkers[n-1]
		fmt.Printf("Demark sell setups completed: %d (last on %s)\n", n, last.Date)
	}

	if len(report.Articles) > 0 {
		fmt.Println("\nRecent news:")
		for i, a := range report.Articles {
			if i == 5 {
				break
			}
			fmt.Printf("  [%+.2f] %s (%s)\n", a.Sentiment, a.Title, a.Source)
		}
	}
}

func handleScreen(ctx context.Context, screener *scanner.Screener, cfg *config.Config, reader *bufio.Reader) {
	fmt.Printf("Universe [%s] (available: %s): ", cfg.Screening.DefaultUniverse, strings.Join(cfg.UniverseNames(), ", "))
	line, _ := reader.ReadString('\n')
	name := strings.TrimSpace(line)
	if name == "" {
		name = cfg.Screening.DefaultUniverse
	}

	var symbols []string
	var err error
	if strings.EqualFold(name, "all") {
		// Every tradable US equity, straight from the broker.
		symbols, err = datafeed.GetTradableSymbols()
	} else {
		symbols, err = cfg.Universe(name)
	}
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}

	fmt.Printf("Screening %d symbols, this may take a while...\n", len(symbols))
	summary := screener.Screen(ctx, symbols)
	printSummary(summary)

	if datafeed.DB != nil {
		if err := datafeed.LogScreeningRun(ctx, strings.ToLower(name), summary.TotalAnalyzed, summary.Failed, summary.TopStocks, summary.StartedAt); err != nil {
			log.Printf("failed to log screening run: %v", err)
		}
	}
}

func printSummary(summary scanner.Summary) {
	fmt.Printf("\n=== Top %d of %d analyzed ===\n", len(summary.TopStocks), summary.TotalAnalyzed)
	fmt.Printf("%-4s %-6s %-24s %10s %-12s %8s %8s\n",
		"#", "Symbol", "Name", "Price", "Rating", "Score", "Mom20d")
	for i, r := range summary.TopStocks {
		name := r.Name
		if len(name) > 24 {
			name = name[:24]
		}
		fmt.Printf("%-4d %-6s %-24s %10.2f %-12s %8.1f %7.1f%%\n",
			i+1, r.Symbol, name, r.CurrentPrice, r.Recommendation, r.AttractivenessScore, r.Momentum20d)
	}
	if len(summary.Failed) > 0 {
		fmt.Printf("\nFailed (%d): %s\n", len(summary.Failed), strings.Join(summary.Failed, ", "))
	}
	fmt.Printf("Took %s\n", summary.FinishedAt.Sub(summary.StartedAt).Round(1e9))
}

func handleRecentRuns(ctx context.Context) {
	if datafeed.DB == nil {
		fmt.Println("❌ Run history requires a database connection.")
		return
	}
	runs, err := datafeed.GetRecentScreeningRuns(ctx, 10)
	if err != nil {
		fmt.Printf("❌ Failed to fetch runs: %v\n", err)
		return
	}
	if len(runs) == 0 {
		fmt.Println("No screening runs recorded yet.")
		return
	}
	fmt.Println("\nRecent screening runs:")
	for _, run := range runs {
		fmt.Printf("  %s  %-10s  analyzed %d, failed %d\n",
			run.StartedAt.Format("2006-01-02 15:04"), run.Universe, run.TotalAnalyzed, run.FailedCount)
	}
}
