package forecast

import (
	"math"

	"finsight/internal/domain"
)

// Confidence estimates how trustworthy a forecast over these reports is, in
// [0,1]. Stability of the revenue and net-profit series drives the score via
// their coefficients of variation; more years of data add a small bonus.
// Fewer than three reports is too little to judge, so the score stays at the
// 0.5 neutral.
func Confidence(reports []domain.YearlyReport) float64 {
	if len(reports) < 3 {
		return 0.5
	}

	var stabilities []float64
	for _, metric := range []func(domain.YearlyReport) *float64{
		func(r domain.YearlyReport) *float64 { return r.Revenue },
		func(r domain.YearlyReport) *float64 { return r.NetProfit },
	} {
		var values []float64
		for _, r := range reports {
			if v := metric(r); v != nil {
				values = append(values, *v)
			}
		}
		if len(values) >= 3 {
			stabilities = append(stabilities, trendStability(values))
		}
	}
	if len(stabilities) == 0 {
		return 0.5
	}

	var sum float64
	for _, s := range stabilities {
		sum += s
	}
	avg := sum / float64(len(stabilities))

	dataBonus := math.Min(0.2, float64(len(reports))*0.05)
	return math.Min(0.95, avg+dataBonus)
}

// trendStability maps a series' coefficient of variation onto [0.1, 0.9]:
// CV under 0.1 is very stable, over 1.0 very unstable, linear in between.
// A zero mean makes CV meaningless and scores a flat 0.3.
func trendStability(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	if mean == 0 {
		return 0.3
	}

	// Population standard deviation.
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(len(values)))

	cv := std / math.Abs(mean)
	switch {
	case cv < 0.1:
		return 0.9
	case cv > 1.0:
		return 0.1
	default:
		return 0.9 - cv*0.8
	}
}
