package signals

import (
	"fmt"
	"math"
	"strings"

	"github.com/graymarsh/stocksage/Internal/types"
)

// Recommendation labels - single source of truth
const (
	RecommendationStrongBuy  = "STRONG BUY"
	RecommendationBuy        = "BUY"
	RecommendationHold       = "HOLD"
	RecommendationSell       = "SELL"
	RecommendationStrongSell = "STRONG SELL"
)

// Classification thresholds on the combined score. Strictly greater /
// less than: a score of exactly 30 is still BUY, not STRONG BUY.
const (
	StrongBuyThreshold  = 30.0
	BuyThreshold        = 10.0
	SellThreshold       = -10.0
	StrongSellThreshold = -30.0
)

// Blend weights between the technical composite and news sentiment.
const (
	TechnicalWeight = 0.7
	SentimentWeight = 0.3
)

// Combine blends the technical score with the aggregated news sentiment
// and classifies the result. Both inputs are expected in [-100, 100].
func Combine(technicalScore, sentimentScore float64) types.Recommendation {
	combined := technicalScore*TechnicalWeight + sentimentScore*SentimentWeight

	var label string
	var confidence float64
	switch {
	case combined > StrongBuyThreshold:
		label = RecommendationStrongBuy
		confidence = math.Min(combined, 100)
	case combined > BuyThreshold:
		label = RecommendationBuy
		confidence = math.Min(combined, 100)
	case combined < StrongSellThreshold:
		label = RecommendationStrongSell
		confidence = math.Min(math.Abs(combined), 100)
	case combined < SellThreshold:
		label = RecommendationSell
		confidence = math.Min(math.Abs(combined), 100)
	default:
		label = RecommendationHold
		confidence = 100 - math.Abs(combined)
	}

	return types.Recommendation{
		Label:          label,
		Confidence:     confidence,
		TechnicalScore: technicalScore,
		SentimentScore: sentimentScore,
		CombinedScore:  combined,
	}
}

// Describe builds the human-readable rationale for a recommendation from
// the already-computed signal labels. Pure formatting; no new analysis
// happens here.
func Describe(technicalScore, sentimentScore float64, signals map[string]string, latestClose float64, sma20 *float64) string {
	var parts []string

	switch {
	case technicalScore > 20:
		parts = append(parts, "Strong technical indicators suggest bullish momentum")
	case technicalScore > 0:
		parts = append(parts, "Technical indicators are moderately bullish")
	case technicalScore < -20:
		parts = append(parts, "Technical indicators show bearish signals")
	case technicalScore < 0:
		parts = append(parts, "Technical indicators are slightly bearish")
	default:
		parts = append(parts, "Technical indicators are neutral")
	}

	var keyPoints []string

	maBullish := 0
	maBearish := 0
	for _, ma := range []string{"SMA_20", "SMA_50", "SMA_150", "SMA_200"} {
		label, ok := signals[ma]
		if !ok {
			continue
		}
		if strings.Contains(label, labelBullish) {
			maBullish++
		} else {
			maBearish++
		}
	}
	if maBullish > maBearish {
		keyPoints = append(keyPoints, fmt.Sprintf("price is above %d key moving averages", maBullish))
	} else if maBearish > maBullish {
		keyPoints = append(keyPoints, fmt.Sprintf("price is below %d key moving averages", maBearish))
	}

	if label, ok := signals["RSI"]; ok {
		if strings.Contains(label, "Oversold") {
			keyPoints = append(keyPoints, "RSI indicates oversold conditions (potential bounce)")
		} else if strings.Contains(label, "Overbought") {
			keyPoints = append(keyPoints, "RSI shows overbought conditions (potential pullback)")
		}
	}

	if label, ok := signals["MACD"]; ok {
		if label == labelBullish {
			keyPoints = append(keyPoints, "MACD shows bullish crossover")
		} else {
			keyPoints = append(keyPoints, "MACD shows bearish crossover")
		}
	}

	if label, ok := signals["Bollinger_Bands"]; ok {
		if strings.Contains(label, "Oversold") {
			keyPoints = append(keyPoints, "price touched lower Bollinger Band (oversold)")
		} else if strings.Contains(label, "Overbought") {
			keyPoints = append(keyPoints, "price touched upper Bollinger Band (overbought)")
		}
	}

	if len(keyPoints) > 0 {
		parts = append(parts, "Key factors: "+strings.Join(keyPoints, ", "))
	}

	switch {
	case sentimentScore > 20:
		parts = append(parts, "News sentiment is strongly positive")
	case sentimentScore > 0:
		parts = append(parts, "News sentiment is slightly positive")
	case sentimentScore < -20:
		parts = append(parts, "News sentiment is strongly negative")
	case sentimentScore < 0:
		parts = append(parts, "News sentiment is slightly negative")
	default:
		parts = append(parts, "News sentiment is neutral")
	}

	// Deviation from the 20-day average only matters once it is
	// meaningfully stretched.
	if sma20 != nil && *sma20 != 0 {
		deviation := (latestClose - *sma20) / *sma20 * 100
		if math.Abs(deviation) > 5 {
			if deviation > 0 {
				parts = append(parts, fmt.Sprintf("Price is %.1f%% above 20-day average", deviation))
			} else {
				parts = append(parts, fmt.Sprintf("Price is %.1f%% below 20-day average", math.Abs(deviation)))
			}
		}
	}

	return strings.Join(parts, ". ") + "."
}
