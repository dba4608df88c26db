package signals

import (
	"fmt"

	"github.com/graymarsh/stocksage/Internal/types"
)

// Vote weights for each indicator. Longer moving averages carry more
// weight because they describe the primary trend; RSI extremes are the
// strongest single reversal signal.
const (
	WeightSMA20     = 1.0
	WeightSMA50     = 1.0
	WeightSMA150    = 1.5
	WeightSMA200    = 2.0
	WeightRSI       = 2.0
	WeightMACD      = 1.0
	WeightBollinger = 1.0
	WeightCCI       = 1.5
)

// RSI / CCI classification bounds.
const (
	RSIOversold   = 30.0
	RSIOverbought = 70.0
	CCIOversold   = -100.0
	CCIOverbought = 100.0
)

// MinBarsForAnalysis is the history below which the interpreter degrades
// to a neutral score instead of voting on half-formed indicators.
const MinBarsForAnalysis = 20

const (
	labelBullish          = "Bullish"
	labelBearish          = "Bearish"
	labelNeutral          = "Neutral"
	labelOversoldBullish  = "Oversold (Bullish)"
	labelOverboughtBearish = "Overbought (Bearish)"
)

// Interpret classifies every defined indicator on the latest bar into a
// directional vote and folds the weighted votes into one score in
// [-100, 100]. Indicators whose value is undefined on the latest bar are
// skipped entirely: no vote, no label.
//
// Fewer than MinBarsForAnalysis bars is not an error; the caller gets a
// zero score and a status label so the rest of the pipeline can proceed.
func Interpret(bars []types.Bar, ind types.IndicatorSet) types.SignalResult {
	if len(bars) < MinBarsForAnalysis {
		return types.SignalResult{
			TechnicalScore: 0,
			Signals:        map[string]string{"Status": "Insufficient data for full analysis"},
		}
	}

	close := bars[len(bars)-1].Close
	signals := map[string]string{}
	bullish := 0.0
	bearish := 0.0

	vote := func(name string, isBull bool, weight float64) {
		if isBull {
			signals[name] = labelBullish
			bullish += weight
		} else {
			signals[name] = labelBearish
			bearish += weight
		}
	}

	// Price vs moving averages. Strictly greater counts as bullish;
	// equality falls to the bearish side.
	if ind.SMA20 != nil {
		vote("SMA_20", close > *ind.SMA20, WeightSMA20)
	}
	if ind.SMA50 != nil {
		vote("SMA_50", close > *ind.SMA50, WeightSMA50)
	}
	if ind.SMA150 != nil && *ind.SMA150 > 0 {
		vote("SMA_150", close > *ind.SMA150, WeightSMA150)
	}
	if ind.SMA200 != nil && *ind.SMA200 > 0 {
		vote("SMA_200", close > *ind.SMA200, WeightSMA200)
	}

	if ind.RSI != nil {
		switch {
		case *ind.RSI < RSIOversold:
			signals["RSI"] = labelOversoldBullish
			bullish += WeightRSI
		case *ind.RSI > RSIOverbought:
			signals["RSI"] = labelOverboughtBearish
			bearish += WeightRSI
		default:
			signals["RSI"] = fmt.Sprintf("Neutral (%.1f)", *ind.RSI)
		}
	}

	if ind.MACD != nil && ind.MACDSignal != nil {
		vote("MACD", *ind.MACD > *ind.MACDSignal, WeightMACD)
	}

	if ind.BBLower != nil && ind.BBUpper != nil {
		switch {
		case close < *ind.BBLower:
			signals["Bollinger_Bands"] = labelOversoldBullish
			bullish += WeightBollinger
		case close > *ind.BBUpper:
			signals["Bollinger_Bands"] = labelOverboughtBearish
			bearish += WeightBollinger
		default:
			signals["Bollinger_Bands"] = labelNeutral
		}
	}

	if ind.CCI != nil {
		switch {
		case *ind.CCI < CCIOversold:
			signals["CCI"] = labelOversoldBullish
			bullish += WeightCCI
		case *ind.CCI > CCIOverbought:
			signals["CCI"] = labelOverboughtBearish
			bearish += WeightCCI
		default:
			signals["CCI"] = fmt.Sprintf("Neutral (%.1f)", *ind.CCI)
		}
	}

	score := 0.0
	if total := bullish + bearish; total > 0 {
		score = (bullish - bearish) / total * 100
	}

	return types.SignalResult{TechnicalScore: score, Signals: signals}
}

// InterpretWithSetup folds a completed Demark setup on the latest bar
// into the signal map. The setup is reported but carries no vote weight;
// it marks exhaustion, not direction confirmation.
func InterpretWithSetup(bars []types.Bar, ind types.IndicatorSet, setup *types.SetupState) types.SignalResult {
	result := Interpret(bars, ind)
	if setup == nil || len(bars) < MinBarsForAnalysis {
		return result
	}
	switch setup.Signal {
	case types.SignalBuy:
		result.Signals["Demark"] = "Buy Setup Complete (9)"
	case types.SignalSell:
		result.Signals["Demark"] = "Sell Setup Complete (9)"
	default:
		if setup.BuySetupCount > 0 {
			result.Signals["Demark"] = fmt.Sprintf("Buy Setup %d/9", setup.BuySetupCount)
		} else if setup.SellSetupCount > 0 {
			result.Signals["Demark"] = fmt.Sprintf("Sell Setup %d/9", setup.SellSetupCount)
		}
	}
	return result
}
