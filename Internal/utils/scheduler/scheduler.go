package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	datafeed "github.com/graymarsh/stocksage/Internal/database"
	"github.com/graymarsh/stocksage/Internal/utils/scanner"
)

// Scheduler runs periodic screening passes over a configured universe.
type Scheduler struct {
	cron     *cron.Cron
	screener *scanner.Screener
	universe string
	symbols  []string
}

func New(screener *scanner.Screener, universe string, symbols []string) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		screener: screener,
		universe: universe,
		symbols:  symbols,
	}
}

// Register installs the screening task on a standard five-field cron
// expression.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runScreening); err != nil {
		return fmt.Errorf("register screening task: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("scheduler started for universe %s", s.universe)
}

// Stop shuts the scheduler down and waits for a running pass to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("scheduler stopped")
}

// RunNow triggers an immediate screening pass outside the schedule.
func (s *Scheduler) RunNow() {
	s.runScreening()
}

func (s *Scheduler) runScreening() {
	log.Printf("scheduled screening of %s (%d symbols)", s.universe, len(s.symbols))
	started := time.Now()

	summary := s.screener.Screen(context.Background(), s.symbols)

	for i, r := range summary.TopStocks {
		log.Printf("  #%d %s (%s) score %.1f %s", i+1, r.Symbol, r.Name, r.AttractivenessScore, r.Recommendation)
	}

	if datafeed.DB != nil {
		if err := datafeed.LogScreeningRun(context.Background(), s.universe, summary.TotalAnalyzed, summary.Failed, summary.TopStocks, started); err != nil {
			log.Printf("failed to log screening run: %v", err)
		}
	}
}
