package indicators

import (
	talib "github.com/markcheno/go-talib"

	"github.com/graymarsh/stocksage/Internal/types"
)

// Indicator windows, matching the daily-chart defaults used everywhere
// else in the pipeline.
const (
	SMAShortPeriod  = 20
	SMAMidPeriod    = 50
	SMALongPeriod   = 150
	SMATrendPeriod  = 200
	EMAFastPeriod   = 12
	EMASlowPeriod   = 26
	RSIPeriod       = 14
	MACDFastPeriod  = 12
	MACDSlowPeriod  = 26
	MACDSignalLen   = 9
	BollingerPeriod = 20
	BollingerDev    = 2.0
	CCIPeriod       = 20
)

// Compute derives the full indicator series for a bar series. Values
// inside an indicator's warm-up window stay nil so callers can tell
// "not yet defined" apart from a real zero. Indicators whose window the
// series cannot cover at all are left nil on every bar.
func Compute(bars []types.Bar) []types.IndicatorSet {
	sets := make([]types.IndicatorSet, len(bars))
	if len(bars) == 0 {
		return sets
	}

	closes := make([]float64, len(bars))
	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
		highs[i] = bar.High
		lows[i] = bar.Low
	}
	n := len(closes)

	if n >= SMAShortPeriod {
		assign(sets, talib.Sma(closes, SMAShortPeriod), SMAShortPeriod-1, func(s *types.IndicatorSet, v *float64) { s.SMA20 = v })
	}
	if n >= SMAMidPeriod {
		assign(sets, talib.Sma(closes, SMAMidPeriod), SMAMidPeriod-1, func(s *types.IndicatorSet, v *float64) { s.SMA50 = v })
	}
	if n >= SMALongPeriod {
		assign(sets, talib.Sma(closes, SMALongPeriod), SMALongPeriod-1, func(s *types.IndicatorSet, v *float64) { s.SMA150 = v })
	}
	if n >= SMATrendPeriod {
		assign(sets, talib.Sma(closes, SMATrendPeriod), SMATrendPeriod-1, func(s *types.IndicatorSet, v *float64) { s.SMA200 = v })
	}
	if n >= EMAFastPeriod {
		assign(sets, talib.Ema(closes, EMAFastPeriod), EMAFastPeriod-1, func(s *types.IndicatorSet, v *float64) { s.EMA12 = v })
	}
	if n >= EMASlowPeriod {
		assign(sets, talib.Ema(closes, EMASlowPeriod), EMASlowPeriod-1, func(s *types.IndicatorSet, v *float64) { s.EMA26 = v })
	}
	if n > RSIPeriod {
		assign(sets, talib.Rsi(closes, RSIPeriod), RSIPeriod, func(s *types.IndicatorSet, v *float64) { s.RSI = v })
	}

	// The signal line needs MACDSignalLen-1 extra bars on top of the
	// slow EMA warm-up; all three MACD fields share that offset so the
	// crossover comparison is always all-or-nothing.
	macdOffset := MACDSlowPeriod + MACDSignalLen - 2
	if n > macdOffset {
		macdLine, macdSignal, macdHist := talib.Macd(closes, MACDFastPeriod, MACDSlowPeriod, MACDSignalLen)
		assign(sets, macdLine, macdOffset, func(s *types.IndicatorSet, v *float64) { s.MACD = v })
		assign(sets, macdSignal, macdOffset, func(s *types.IndicatorSet, v *float64) { s.MACDSignal = v })
		assign(sets, macdHist, macdOffset, func(s *types.IndicatorSet, v *float64) { s.MACDDiff = v })
	}

	if n >= BollingerPeriod {
		bbUpper, bbMiddle, bbLower := talib.BBands(closes, BollingerPeriod, BollingerDev, BollingerDev, talib.SMA)
		assign(sets, bbUpper, BollingerPeriod-1, func(s *types.IndicatorSet, v *float64) { s.BBUpper = v })
		assign(sets, bbMiddle, BollingerPeriod-1, func(s *types.IndicatorSet, v *float64) { s.BBMiddle = v })
		assign(sets, bbLower, BollingerPeriod-1, func(s *types.IndicatorSet, v *float64) { s.BBLower = v })
	}

	if n >= CCIPeriod {
		assign(sets, talib.Cci(highs, lows, closes, CCIPeriod), CCIPeriod-1, func(s *types.IndicatorSet, v *float64) { s.CCI = v })
	}

	return sets
}

// Latest returns the indicator set aligned to the last bar.
func Latest(bars []types.Bar) types.IndicatorSet {
	sets := Compute(bars)
	if len(sets) == 0 {
		return types.IndicatorSet{}
	}
	return sets[len(sets)-1]
}

// assign copies series values into the per-bar sets, skipping the
// warm-up prefix. talib pads that prefix with zeros; the firstValid
// offset is what separates "padding" from a genuine value.
func assign(sets []types.IndicatorSet, series []float64, firstValid int, set func(*types.IndicatorSet, *float64)) {
	for i := range sets {
		if i < firstValid || i >= len(series) {
			continue
		}
		v := series[i]
		set(&sets[i], &v)
	}
}
