package calculator

import (
	"fmt"

	"StockPerf/internal/model"
)

// DefaultRSIPeriod is the conventional RSI lookback.
const DefaultRSIPeriod = 14

// RollingRSI computes the simple-average RSI of closes over period.
//
// The first bar has no previous close and counts as neither gain nor loss,
// so the first defined value sits at position period-1. When the window has
// gains but no losses the RSI saturates at 100; when it has neither the RSI
// is undefined.
func RollingRSI(closes []float64, period int) ([]model.Value, error) {
	if period <= 0 {
		return nil, fmt.Errorf("rsi: %w", ErrInvalidWindow)
	}
	out := make([]model.Value, len(closes))

	// gains[i] and losses[i] describe the move into closes[i].
	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		diff := closes[i] - closes[i-1]
		if diff > 0 {
			gains[i] = diff
		} else {
			losses[i] = -diff
		}
	}

	avgGain, err := RollingMean(gains, period)
	if err != nil {
		return nil, fmt.Errorf("rsi gains: %w", err)
	}
	avgLoss, err := RollingMean(losses, period)
	if err != nil {
		return nil, fmt.Errorf("rsi losses: %w", err)
	}
	for i := range closes {
		g, gok := avgGain[i].Get()
		l, lok := avgLoss[i].Get()
		if !gok || !lok {
			continue
		}
		out[i] = rsiFromAverages(g, l)
	}
	return out, nil
}

// RSI returns the rolling RSI of the closing prices of s.
func RSI(s model.Series, period int) ([]model.Value, error) {
	return RollingRSI(s.Closes(), period)
}

func rsiFromAverages(avgGain, avgLoss float64) model.Value {
	if avgLoss == 0 {
		if avgGain > 0 {
			return model.Some(100)
		}
		return model.None()
	}
	rs := avgGain / avgLoss
	rsi := 100.0 - 100.0/(1.0+rs)
	// guard against rounding just outside the band
	if rsi < 0 {
		rsi = 0
	} else if rsi > 100 {
		rsi = 100
	}
	return model.Some(rsi)
}
