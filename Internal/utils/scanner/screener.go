package scanner

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/graymarsh/stocksage/Internal/types"
)

const (
	DefaultWorkers = 5
	DefaultTopK    = 10
)

// AnalyzeFunc runs the full single-symbol pipeline. Implementations
// must be independent across symbols; the screener calls it from
// multiple goroutines.
type AnalyzeFunc func(ctx context.Context, symbol string) (*types.AnalysisReport, error)

// Screener fans a symbol universe out over a bounded pool of workers,
// ranks the survivors by attractiveness and keeps the failures as data.
// One symbol's failure never aborts or blocks the rest of the run.
type Screener struct {
	Workers int
	TopK    int
	Analyze AnalyzeFunc
}

func NewScreener(analyze AnalyzeFunc) *Screener {
	return &Screener{
		Workers: DefaultWorkers,
		TopK:    DefaultTopK,
		Analyze: analyze,
	}
}

// Summary is the outcome of one screening run.
type Summary struct {
	TopStocks     []types.ScreeningResult `json:"topStocks"`
	TotalAnalyzed int                     `json:"totalAnalyzed"`
	Failed        []string                `json:"failed"`
	StartedAt     time.Time               `json:"startedAt"`
	FinishedAt    time.Time               `json:"finishedAt"`
}

type indexedResult struct {
	idx    int
	result types.ScreeningResult
}

// Screen analyzes every symbol in the universe concurrently, bounded by
// the worker count, and returns the top-K results by attractiveness
// score. Ties keep the universe's iteration order. Symbols whose
// analysis fails for any reason are collected into Summary.Failed.
func (s *Screener) Screen(ctx context.Context, symbols []string) Summary {
	workers := s.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	topK := s.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	started := time.Now()
	log.Printf("screening %d symbols with %d workers", len(symbols), workers)

	jobs := make(chan indexedJob)
	var (
		mu      sync.Mutex
		results []indexedResult
		failed  []string
	)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				report, err := s.Analyze(ctx, job.symbol)
				if err != nil {
					log.Printf("%s: analysis failed: %v", job.symbol, err)
					mu.Lock()
					failed = append(failed, job.symbol)
					mu.Unlock()
					continue
				}
				res := buildResult(report)
				mu.Lock()
				results = append(results, indexedResult{idx: job.idx, result: res})
				mu.Unlock()
			}
		}()
	}

	for i, symbol := range symbols {
		jobs <- indexedJob{idx: i, symbol: symbol}
	}
	close(jobs)
	wg.Wait()

	// Completion order is nondeterministic under concurrency, so the
	// universe index carried with each result restores a deterministic
	// tie-break before the score sort.
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.result.AttractivenessScore != b.result.AttractivenessScore {
			return a.result.AttractivenessScore > b.result.AttractivenessScore
		}
		return a.idx < b.idx
	})

	top := make([]types.ScreeningResult, 0, topK)
	for _, r := range results {
		if len(top) == topK {
			break
		}
		top = append(top, r.result)
	}

	summary := Summary{
		TopStocks:     top,
		TotalAnalyzed: len(results),
		Failed:        failed,
		StartedAt:     started,
		FinishedAt:    time.Now(),
	}
	log.Printf("screening done: %d analyzed, %d failed in %s",
		summary.TotalAnalyzed, len(summary.Failed), summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond))
	return summary
}

type indexedJob struct {
	idx    int
	symbol string
}
