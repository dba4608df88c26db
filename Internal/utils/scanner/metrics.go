package scanner

import (
	"github.com/graymarsh/stocksage/Internal/types"
)

// MomentumWindow is the lookback, in bars, for the short-term momentum
// metric used by the attractiveness ranking.
const MomentumWindow = 20

// PricePosition52w places the current price inside the 52-week range as
// a percentage: 0 at the low, 100 at the high. A degenerate range
// (high <= low, typically missing metadata) yields the neutral 50.
func PricePosition52w(current, low, high float64) float64 {
	if high <= low {
		return 50
	}
	return (current - low) / (high - low) * 100
}

// VolumeRatio compares today's volume to the average. A zero average
// (missing metadata) yields the neutral 1.
func VolumeRatio(volume, avgVolume int64) float64 {
	if avgVolume == 0 {
		return 1
	}
	return float64(volume) / float64(avgVolume)
}

// Momentum20d is the percentage price change over the momentum window.
// With fewer bars than the window it is 0.
func Momentum20d(current float64, bars []types.Bar) float64 {
	if len(bars) < MomentumWindow {
		return 0
	}
	base := bars[len(bars)-MomentumWindow].Close
	if base == 0 {
		return 0
	}
	return (current - base) / base * 100
}

// AttractivenessScore blends the recommendation with the auxiliary
// metrics into a single ranking value. Positive momentum is rewarded up
// to a cap of 20 points of momentum, negative momentum is penalized at
// half weight with no floor. Distance below the 52-week high is
// rewarded, with the reward shrinking once price sits within 20% of the
// high. Volume above average adds up to 10 points, volume below average
// is not penalized.
func AttractivenessScore(r types.ScreeningResult) float64 {
	score := 0.4 * r.CombinedScore

	if r.Momentum20d > 0 {
		m := r.Momentum20d
		if m > 20 {
			m = 20
		}
		score += 0.2 * m
	} else {
		score += 0.1 * r.Momentum20d
	}

	if r.PricePosition52w < 80 {
		score += 0.15 * (100 - r.PricePosition52w)
	} else {
		score += 0.05 * (100 - r.PricePosition52w)
	}

	if r.VolumeRatio > 1 {
		v := r.VolumeRatio - 1
		if v > 1 {
			v = 1
		}
		score += 10 * v
	}

	score += 0.15 * r.Confidence
	return score
}

// buildResult projects a full analysis report onto one ranked screening
// row, computing the auxiliary metrics from the company snapshot and
// price history.
func buildResult(report *types.AnalysisReport) types.ScreeningResult {
	current := report.Company.CurrentPrice
	if current == 0 && len(report.Bars) > 0 {
		current = report.Bars[len(report.Bars)-1].Close
	}

	res := types.ScreeningResult{
		Symbol:           report.Symbol,
		Name:             report.Company.Name,
		CurrentPrice:     current,
		Recommendation:   report.Recommendation.Label,
		CombinedScore:    report.Recommendation.CombinedScore,
		TechnicalScore:   report.Recommendation.TechnicalScore,
		SentimentScore:   report.Recommendation.SentimentScore,
		Confidence:       report.Recommendation.Confidence,
		PricePosition52w: PricePosition52w(current, report.Company.FiftyTwoWeekLow, report.Company.FiftyTwoWeekHigh),
		VolumeRatio:      VolumeRatio(report.Company.Volume, report.Company.AverageVolume),
		Momentum20d:      Momentum20d(current, report.Bars),
		Description:      report.Recommendation.Description,
	}
	res.AttractivenessScore = AttractivenessScore(res)
	return res
}
