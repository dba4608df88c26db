package demark

import (
	"errors"

	"github.com/graymarsh/stocksage/Internal/types"
)

// ErrInsufficientData is returned when the series is too short for the
// setup count to mean anything.
var ErrInsufficientData = errors.New("insufficient data for demark setup calculation")

const (
	// SetupLookback is how many bars back each close is compared against.
	SetupLookback = 4
	// SetupLength is the run length that completes a setup.
	SetupLength = 9
	// MinBars is the minimum series length accepted by the detector.
	MinBars = 13

	buyMarkerOffset  = 0.99
	sellMarkerOffset = 1.01
)

// SetupDetector scans a daily price series for Demark sequential setups:
// runs of consecutive bars closing below (buy) or above (sell) the close
// four bars earlier. The ninth consecutive bar completes the setup and
// emits a signal.
type SetupDetector struct {
	Lookback    int
	SetupLength int
}

func NewSetupDetector() *SetupDetector {
	return &SetupDetector{
		Lookback:    SetupLookback,
		SetupLength: SetupLength,
	}
}

// Detect recomputes the setup state for every bar from scratch.
// Reported counts saturate at SetupLength; the signal is gated on the
// uncapped run length so it fires exactly once, on the bar where the run
// first reaches nine, and never refires while the run keeps extending.
func (d *SetupDetector) Detect(bars []types.Bar) ([]types.SetupState, error) {
	if len(bars) < MinBars {
		return nil, ErrInsufficientData
	}

	states := make([]types.SetupState, len(bars))
	buyRun := 0
	sellRun := 0

	for i := range bars {
		if i < d.Lookback {
			buyRun, sellRun = 0, 0
			continue
		}

		ref := bars[i-d.Lookback].Close
		switch {
		case bars[i].Close < ref:
			buyRun++
			sellRun = 0
		case bars[i].Close > ref:
			sellRun++
			buyRun = 0
		default:
			buyRun, sellRun = 0, 0
		}

		states[i].BuySetupCount = capCount(buyRun, d.SetupLength)
		states[i].SellSetupCount = capCount(sellRun, d.SetupLength)

		// Exactly the ninth bar of the run, not every bar at the cap.
		if buyRun == d.SetupLength {
			states[i].Signal = types.SignalBuy
		} else if sellRun == d.SetupLength {
			states[i].Signal = types.SignalSell
		}
	}

	return states, nil
}

func capCount(run, max int) int {
	if run > max {
		return max
	}
	return run
}

// Markers projects completed setups into chart annotations. Buy markers
// sit at low*0.99 and sell markers at high*1.01; downstream chart
// consumers rely on these exact offsets.
func Markers(bars []types.Bar, states []types.SetupState) (buys, sells []types.SignalMarker) {
	buys = []types.SignalMarker{}
	sells = []types.SignalMarker{}
	if len(states) != len(bars) {
		return buys, sells
	}
	for i, st := range states {
		switch st.Signal {
		case types.SignalBuy:
			buys = append(buys, types.SignalMarker{
				Date:  bars[i].Date(),
				Price: bars[i].Low * buyMarkerOffset,
				Value: 1,
			})
		case types.SignalSell:
			sells = append(sells, types.SignalMarker{
				Date:  bars[i].Date(),
				Price: bars[i].High * sellMarkerOffset,
				Value: -1,
			})
		}
	}
	return buys, sells
}
