package signals

import (
	"math"
	"strings"
	"testing"
)

func TestCombine_LinearBlend(t *testing.T) {
	if got := Combine(70, 0).CombinedScore; got != 49 {
		t.Errorf("Combine(70,0): expected combined 49, got %.4f", got)
	}
	if got := Combine(0, 100).CombinedScore; got != 30 {
		t.Errorf("Combine(0,100): expected combined 30, got %.4f", got)
	}
}

func TestCombine_Classification(t *testing.T) {
	cases := []struct {
		name       string
		technical  float64
		sentiment  float64
		label      string
		confidence float64
	}{
		{"strong buy", 70, 0, RecommendationStrongBuy, 49},
		{"buy", 20, 0, RecommendationBuy, 14},
		{"hold positive", 10, 0, RecommendationHold, 93},
		{"hold zero", 0, 0, RecommendationHold, 100},
		{"sell", -20, 0, RecommendationSell, 14},
		{"strong sell", -70, 0, RecommendationStrongSell, 49},
		{"confidence capped", 100, 100, RecommendationStrongBuy, 100},
	}
	for _, tc := range cases {
		rec := Combine(tc.technical, tc.sentiment)
		if rec.Label != tc.label {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.label, rec.Label)
		}
		if math.Abs(rec.Confidence-tc.confidence) > 1e-9 {
			t.Errorf("%s: expected confidence %.2f, got %.2f", tc.name, tc.confidence, rec.Confidence)
		}
	}
}

func TestCombine_BoundariesAreStrict(t *testing.T) {
	// combined == 30 exactly: still BUY, not STRONG BUY.
	rec := Combine(0, 100)
	if rec.Label != RecommendationBuy {
		t.Errorf("combined 30 should be BUY, got %s", rec.Label)
	}

	// Just past the boundary flips it.
	rec = Combine(30.0001/0.7, 0)
	if rec.Label != RecommendationStrongBuy {
		t.Errorf("combined 30.0001 should be STRONG BUY, got %s", rec.Label)
	}

	// combined == 10 exactly: HOLD.
	rec = Combine(10, 10)
	if rec.Label != RecommendationHold {
		t.Errorf("combined 10 should be HOLD, got %s", rec.Label)
	}

	// combined == -30 exactly: SELL, not STRONG SELL.
	rec = Combine(0, -100)
	if rec.Label != RecommendationSell {
		t.Errorf("combined -30 should be SELL, got %s", rec.Label)
	}
}

func TestDescribe_CoversSignalStates(t *testing.T) {
	signalMap := map[string]string{
		"SMA_20":          "Bullish",
		"SMA_50":          "Bullish",
		"SMA_200":         "Bearish",
		"RSI":             "Oversold (Bullish)",
		"MACD":            "Bullish",
		"Bollinger_Bands": "Oversold (Bullish)",
	}
	sma20 := 100.0
	desc := Describe(45, 25, signalMap, 110, &sma20)

	for _, want := range []string{
		"Strong technical indicators suggest bullish momentum",
		"price is above 2 key moving averages",
		"RSI indicates oversold conditions",
		"MACD shows bullish crossover",
		"lower Bollinger Band",
		"News sentiment is strongly positive",
		"Price is 10.0% above 20-day average",
	} {
		if !strings.Contains(desc, want) {
			t.Errorf("description missing %q:\n%s", want, desc)
		}
	}
}

func TestDescribe_SmallDeviationOmitted(t *testing.T) {
	sma20 := 100.0
	desc := Describe(0, 0, map[string]string{}, 103, &sma20)
	if strings.Contains(desc, "20-day average") {
		t.Errorf("3%% deviation should not be mentioned:\n%s", desc)
	}
	if !strings.Contains(desc, "Technical indicators are neutral") {
		t.Errorf("neutral technical band missing:\n%s", desc)
	}
	if !strings.Contains(desc, "News sentiment is neutral") {
		t.Errorf("neutral sentiment band missing:\n%s", desc)
	}
}
