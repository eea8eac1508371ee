package analysis

import (
	"fmt"
	"math"
)

// DecayFit is the result of a log-linear least-squares fit N(t) = N0*exp(-lambda*t).
type DecayFit struct {
	Lambda   float64 // fitted rate; negative means the series was growing
	N0       float64
	HalfLife float64 // ln2/lambda; for growing series this is the doubling time
	R2       float64 // goodness of fit on the log series
}

// FitHalfLife performs linear regression on ln(counts) versus time. Samples
// at or below zero are skipped; at least two positive samples are required.
func FitHalfLife(times, counts []float64) (*DecayFit, error) {
	if len(times) != len(counts) {
		return nil, fmt.Errorf("length mismatch: %d times, %d counts", len(times), len(counts))
	}

	var ts, ys []float64
	for i := range counts {
		if counts[i] > 0 {
			ts = append(ts, times[i])
			ys = append(ys, math.Log(counts[i]))
		}
	}
	if len(ts) < 2 {
		return nil, fmt.Errorf("need at least 2 positive samples, got %d", len(ts))
	}

	n := float64(len(ts))
	var sumT, sumY, sumTT, sumTY float64
	for i := range ts {
		sumT += ts[i]
		sumY += ys[i]
		sumTT += ts[i] * ts[i]
		sumTY += ts[i] * ys[i]
	}

	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return nil, fmt.Errorf("degenerate time series")
	}

	slope := (n*sumTY - sumT*sumY) / denom
	intercept := (sumY - slope*sumT) / n

	// R^2 on the log-linear fit.
	meanY := sumY / n
	var ssRes, ssTot float64
	for i := range ts {
		pred := intercept + slope*ts[i]
		ssRes += (ys[i] - pred) * (ys[i] - pred)
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)
	}
	r2 := 1.0
	if ssTot > 0 {
		r2 = 1.0 - ssRes/ssTot
	}

	fit := &DecayFit{
		Lambda: -slope,
		N0:     math.Exp(intercept),
		R2:     r2,
	}
	if slope != 0 {
		fit.HalfLife = math.Ln2 / math.Abs(slope)
	} else {
		fit.HalfLife = math.Inf(1)
	}

	return fit, nil
}
