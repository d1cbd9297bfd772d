package calculator

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"StockPerf/internal/model"
)

// ErrInvalidWindow is returned for non-positive window or period sizes.
var ErrInvalidWindow = errors.New("window must be positive")

// RollingMean computes the trailing arithmetic mean of values over window.
// Positions with fewer than window values behind them are undefined.
func RollingMean(values []float64, window int) ([]model.Value, error) {
	if window <= 0 {
		return nil, fmt.Errorf("rolling mean: %w", ErrInvalidWindow)
	}
	out := make([]model.Value, len(values))
	for i := window - 1; i < len(values); i++ {
		out[i] = model.Some(stat.Mean(values[i-window+1:i+1], nil))
	}
	return out, nil
}

// MovingAverage returns the rolling mean of closing prices of s.
func MovingAverage(s model.Series, window int) ([]model.Value, error) {
	return RollingMean(s.Closes(), window)
}

// VolumeMovingAverage returns the rolling mean of volumes of s.
func VolumeMovingAverage(s model.Series, window int) ([]model.Value, error) {
	return RollingMean(s.Volumes(), window)
}
