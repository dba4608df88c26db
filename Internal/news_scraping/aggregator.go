package newsscraping

import (
	"math"
	"sort"

	"github.com/graymarsh/stocksage/Internal/types"
)

// Source-diversity bonus: up to +10% on the mean sentiment once articles
// come from five or more distinct outlets.
const (
	diversityBonusCap  = 0.10
	diversityFullCount = 5
	maxKeptArticles    = 10
)

// AggregateSentiment folds per-article sentiments (each in [-1, 1]) into
// the symbol-level score in [-100, 100]: the mean, scaled by the
// source-diversity bonus. No articles legitimately means 0, not an error.
func AggregateSentiment(articles []types.NewsArticle) float64 {
	if len(articles) == 0 {
		return 0
	}

	sources := map[string]struct{}{}
	sum := 0.0
	for _, a := range articles {
		sum += a.Sentiment
		if a.Source != "" {
			sources[a.Source] = struct{}{}
		}
	}
	mean := sum / float64(len(articles))

	bonus := math.Min(float64(len(sources))/diversityFullCount, 1) * diversityBonusCap
	score := mean * (1 + bonus) * 100

	if score > 100 {
		score = 100
	} else if score < -100 {
		score = -100
	}
	return score
}

// RankByImpact orders articles by absolute sentiment, most impactful
// first, and keeps the top ten for reporting.
func RankByImpact(articles []types.NewsArticle) []types.NewsArticle {
	ranked := make([]types.NewsArticle, len(articles))
	copy(ranked, articles)
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].Sentiment) > math.Abs(ranked[j].Sentiment)
	})
	if len(ranked) > maxKeptArticles {
		ranked = ranked[:maxKeptArticles]
	}
	return ranked
}
