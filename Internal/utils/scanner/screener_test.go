package scanner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/graymarsh/stocksage/Internal/types"
)

// neutralResult isolates one component of the attractiveness score: at
// price position 100 the position component is 0, at volume ratio 1 the
// volume component is 0.
func neutralResult() types.ScreeningResult {
	return types.ScreeningResult{
		PricePosition52w: 100,
		VolumeRatio:      1,
	}
}

func TestAttractiveness_MomentumComponent(t *testing.T) {
	r := neutralResult()

	r.Momentum20d = 25
	if got := AttractivenessScore(r); got != 4.0 {
		t.Errorf("momentum 25 should cap at component 4.0, got %v", got)
	}

	r.Momentum20d = -10
	if got := AttractivenessScore(r); got != -1.0 {
		t.Errorf("momentum -10 should penalize -1.0, got %v", got)
	}

	r.Momentum20d = 10
	if got := AttractivenessScore(r); got != 2.0 {
		t.Errorf("momentum 10 below cap: want 2.0, got %v", got)
	}
}

func TestAttractiveness_PricePositionComponent(t *testing.T) {
	r := neutralResult()

	r.PricePosition52w = 50
	if got := AttractivenessScore(r); got != 0.15*50 {
		t.Errorf("position 50: want %v, got %v", 0.15*50, got)
	}

	// Near the high the reward shrinks to the 0.05 slope.
	r.PricePosition52w = 90
	if got := AttractivenessScore(r); got != 0.05*10 {
		t.Errorf("position 90: want %v, got %v", 0.05*10, got)
	}
}

func TestAttractiveness_VolumeComponent(t *testing.T) {
	r := neutralResult()

	r.VolumeRatio = 1.5
	if got := AttractivenessScore(r); got != 5.0 {
		t.Errorf("ratio 1.5: want 5.0, got %v", got)
	}

	// Reward caps at twice average volume.
	r.VolumeRatio = 3
	if got := AttractivenessScore(r); got != 10.0 {
		t.Errorf("ratio 3: want capped 10.0, got %v", got)
	}

	// Thin volume is not penalized.
	r.VolumeRatio = 0.5
	if got := AttractivenessScore(r); got != 0.0 {
		t.Errorf("ratio 0.5: want 0, got %v", got)
	}
}

func TestAuxMetrics_NeutralDefaults(t *testing.T) {
	if got := PricePosition52w(120, 0, 0); got != 50 {
		t.Errorf("degenerate 52w range should default to 50, got %v", got)
	}
	if got := PricePosition52w(150, 100, 200); got != 50 {
		t.Errorf("midpoint of range: want 50, got %v", got)
	}
	if got := VolumeRatio(2_000_000, 0); got != 1 {
		t.Errorf("zero average volume should default to ratio 1, got %v", got)
	}
	if got := VolumeRatio(3_000_000, 1_000_000); got != 3 {
		t.Errorf("volume ratio: want 3, got %v", got)
	}
	if got := Momentum20d(100, make([]types.Bar, 19)); got != 0 {
		t.Errorf("short history should default momentum to 0, got %v", got)
	}

	bars := make([]types.Bar, 20)
	for i := range bars {
		bars[i].Close = 100
	}
	if got := Momentum20d(110, bars); got != 10 {
		t.Errorf("momentum over flat base 100 to 110: want 10, got %v", got)
	}
}

// stubAnalyze returns a canned report per symbol and fails symbols
// containing "BAD".
func stubAnalyze(combined map[string]float64) AnalyzeFunc {
	return func(ctx context.Context, symbol string) (*types.AnalysisReport, error) {
		if strings.Contains(symbol, "BAD") {
			return nil, errors.New("no price data")
		}
		return &types.AnalysisReport{
			Symbol: symbol,
			Company: types.CompanyInfo{
				Symbol:       symbol,
				Name:         symbol + " Inc",
				CurrentPrice: 100,
			},
			Recommendation: types.Recommendation{
				Label:         "HOLD",
				CombinedScore: combined[symbol],
			},
		}, nil
	}
}

func TestScreen_IsolatesFailures(t *testing.T) {
	symbols := []string{"AAA", "BAD1", "BBB", "BAD2", "CCC"}

	for _, workers := range []int{1, 2, 5} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			s := NewScreener(stubAnalyze(nil))
			s.Workers = workers

			summary := s.Screen(context.Background(), symbols)
			if summary.TotalAnalyzed != 3 {
				t.Errorf("want 3 analyzed, got %d", summary.TotalAnalyzed)
			}
			if len(summary.TopStocks) != 3 {
				t.Errorf("want 3 results, got %d", len(summary.TopStocks))
			}
			if len(summary.Failed) != 2 {
				t.Fatalf("want 2 failures, got %d (%v)", len(summary.Failed), summary.Failed)
			}
			for _, sym := range summary.Failed {
				if !strings.Contains(sym, "BAD") {
					t.Errorf("unexpected failed symbol %q", sym)
				}
			}
		})
	}
}

func TestScreen_RanksByAttractiveness(t *testing.T) {
	// Identical aux metrics, so ranking reduces to combined score.
	combined := map[string]float64{"LOW": -20, "MID": 10, "HIGH": 60}
	s := NewScreener(stubAnalyze(combined))
	s.Workers = 3

	summary := s.Screen(context.Background(), []string{"LOW", "MID", "HIGH"})
	if len(summary.TopStocks) != 3 {
		t.Fatalf("want 3 results, got %d", len(summary.TopStocks))
	}
	want := []string{"HIGH", "MID", "LOW"}
	for i, sym := range want {
		if summary.TopStocks[i].Symbol != sym {
			t.Errorf("rank %d: want %s, got %s", i, sym, summary.TopStocks[i].Symbol)
		}
	}
}

func TestScreen_TiesKeepUniverseOrder(t *testing.T) {
	symbols := []string{"AAA", "BBB", "CCC", "DDD"}
	s := NewScreener(stubAnalyze(nil))
	s.Workers = 4

	// Every symbol scores identically, so even with all workers racing
	// the output must follow the input universe.
	summary := s.Screen(context.Background(), symbols)
	if len(summary.TopStocks) != len(symbols) {
		t.Fatalf("want %d results, got %d", len(symbols), len(summary.TopStocks))
	}
	for i, sym := range symbols {
		if summary.TopStocks[i].Symbol != sym {
			t.Errorf("rank %d: want %s, got %s", i, sym, summary.TopStocks[i].Symbol)
		}
	}
}

func TestScreen_TopKTruncates(t *testing.T) {
	combined := map[string]float64{}
	symbols := make([]string, 6)
	for i := range symbols {
		symbols[i] = fmt.Sprintf("SYM%d", i)
		combined[symbols[i]] = float64(i * 10)
	}

	s := NewScreener(stubAnalyze(combined))
	s.TopK = 2

	summary := s.Screen(context.Background(), symbols)
	if len(summary.TopStocks) != 2 {
		t.Fatalf("want top 2, got %d", len(summary.TopStocks))
	}
	if summary.TotalAnalyzed != 6 {
		t.Errorf("truncation must not hide the analyzed count, got %d", summary.TotalAnalyzed)
	}
	if summary.TopStocks[0].Symbol != "SYM5" || summary.TopStocks[1].Symbol != "SYM4" {
		t.Errorf("top 2 should be SYM5, SYM4: got %s, %s",
			summary.TopStocks[0].Symbol, summary.TopStocks[1].Symbol)
	}
}

func TestBuildResult_ComputesAuxMetrics(t *testing.T) {
	bars := make([]types.Bar, 30)
	for i := range bars {
		bars[i].Close = 100
	}
	report := &types.AnalysisReport{
		Symbol: "TEST",
		Company: types.CompanyInfo{
			Name:             "Test Inc",
			CurrentPrice:     120,
			FiftyTwoWeekLow:  80,
			FiftyTwoWeekHigh: 160,
			Volume:           2_000_000,
			AverageVolume:    1_000_000,
		},
		Recommendation: types.Recommendation{Label: "BUY", CombinedScore: 15, Confidence: 15},
	}
	report.Bars = bars

	res := buildResult(report)
	if res.PricePosition52w != 50 {
		t.Errorf("price position: want 50, got %v", res.PricePosition52w)
	}
	if res.VolumeRatio != 2 {
		t.Errorf("volume ratio: want 2, got %v", res.VolumeRatio)
	}
	if res.Momentum20d != 20 {
		t.Errorf("momentum from 100 to 120: want 20, got %v", res.Momentum20d)
	}
	if res.AttractivenessScore == 0 {
		t.Error("expected a non-zero attractiveness score")
	}
}
