package signals

import (
	"fmt"
	"testing"

	"github.com/graymarsh/stocksage/Internal/types"
)

func f(v float64) *float64 { return &v }

func barsWithFinalClose(n int, finalClose float64) []types.Bar {
	bars := make([]types.Bar, n)
	for i := range bars {
		bars[i] = types.Bar{
			Timestamp: fmt.Sprintf("2024-01-%02dT00:00:00Z", i%28+1),
			Close:     finalClose,
			High:      finalClose + 1,
			Low:       finalClose - 1,
			Volume:    1000,
		}
	}
	return bars
}

func TestInterpret_InsufficientHistoryDegrades(t *testing.T) {
	result := Interpret(barsWithFinalClose(19, 100), types.IndicatorSet{SMA20: f(90)})
	if result.TechnicalScore != 0 {
		t.Errorf("expected score 0 on short history, got %.2f", result.TechnicalScore)
	}
	if _, ok := result.Signals["Status"]; !ok {
		t.Error("expected a Status signal on short history")
	}
	if len(result.Signals) != 1 {
		t.Errorf("expected only the status signal, got %v", result.Signals)
	}
}

func TestInterpret_AllBullishScoresHundred(t *testing.T) {
	bars := barsWithFinalClose(250, 150)
	ind := types.IndicatorSet{
		SMA20:      f(140),
		SMA50:      f(130),
		SMA150:     f(120),
		SMA200:     f(110),
		RSI:        f(25), // oversold, bullish vote
		MACD:       f(2.0),
		MACDSignal: f(1.0),
		BBUpper:    f(160),
		BBLower:    f(151), // close below lower band
		CCI:        f(-150),
	}
	result := Interpret(bars, ind)
	if result.TechnicalScore != 100 {
		t.Errorf("expected technical score 100, got %.2f", result.TechnicalScore)
	}
	for _, name := range []string{"SMA_20", "SMA_50", "SMA_150", "SMA_200", "MACD"} {
		if result.Signals[name] != "Bullish" {
			t.Errorf("%s: expected Bullish, got %q", name, result.Signals[name])
		}
	}
	if result.Signals["RSI"] != "Oversold (Bullish)" {
		t.Errorf("RSI: got %q", result.Signals["RSI"])
	}
}

func TestInterpret_UndefinedIndicatorsSkipped(t *testing.T) {
	bars := barsWithFinalClose(30, 100)
	result := Interpret(bars, types.IndicatorSet{SMA20: f(90)})
	if len(result.Signals) != 1 {
		t.Errorf("expected exactly one labeled signal, got %v", result.Signals)
	}
	if result.TechnicalScore != 100 {
		t.Errorf("single bullish vote should score 100, got %.2f", result.TechnicalScore)
	}
}

func TestInterpret_NoVotesScoresZero(t *testing.T) {
	bars := barsWithFinalClose(30, 100)
	// RSI and CCI in neutral bands, Bollinger inside the bands: labels
	// but no weighted votes.
	ind := types.IndicatorSet{
		RSI:     f(50),
		CCI:     f(10),
		BBUpper: f(110),
		BBLower: f(90),
	}
	result := Interpret(bars, ind)
	if result.TechnicalScore != 0 {
		t.Errorf("expected score 0 with zero weight on both sides, got %.2f", result.TechnicalScore)
	}
	if result.Signals["Bollinger_Bands"] != "Neutral" {
		t.Errorf("Bollinger: got %q", result.Signals["Bollinger_Bands"])
	}
	if result.Signals["RSI"] != "Neutral (50.0)" {
		t.Errorf("RSI: got %q", result.Signals["RSI"])
	}
}

func TestInterpret_EqualityCountsBearish(t *testing.T) {
	bars := barsWithFinalClose(30, 100)
	result := Interpret(bars, types.IndicatorSet{SMA20: f(100)})
	if result.Signals["SMA_20"] != "Bearish" {
		t.Errorf("close == SMA_20 should be Bearish, got %q", result.Signals["SMA_20"])
	}
	if result.TechnicalScore != -100 {
		t.Errorf("expected -100, got %.2f", result.TechnicalScore)
	}
}

func TestInterpret_WeightedMix(t *testing.T) {
	bars := barsWithFinalClose(250, 100)
	// SMA_200 bearish (weight 2) against SMA_20 bullish (weight 1):
	// (1-2)/(1+2)*100 = -33.33...
	ind := types.IndicatorSet{
		SMA20:  f(90),
		SMA200: f(110),
	}
	result := Interpret(bars, ind)
	want := (1.0 - 2.0) / 3.0 * 100
	if diff := result.TechnicalScore - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected %.4f, got %.4f", want, result.TechnicalScore)
	}
}

func TestInterpretWithSetup_LabelsCompletedSetup(t *testing.T) {
	bars := barsWithFinalClose(30, 100)
	setup := &types.SetupState{BuySetupCount: 9, Signal: types.SignalBuy}
	result := InterpretWithSetup(bars, types.IndicatorSet{SMA20: f(90)}, setup)
	if result.Signals["Demark"] != "Buy Setup Complete (9)" {
		t.Errorf("Demark label: got %q", result.Signals["Demark"])
	}
	// The setup label must not move the score.
	if result.TechnicalScore != 100 {
		t.Errorf("setup changed the technical score: %.2f", result.TechnicalScore)
	}
}
