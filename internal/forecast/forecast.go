// Package forecast fits a next-year projection over a company's canonical
// report history and scores how much that projection should be trusted.
// Single-variable linear trends only; each metric is fit on its own.
package forecast

import (
	"math"
	"sort"

	"finsight/internal/domain"
)

// Next fits a one-year-ahead forecast over the supplied reports. It returns
// nil when fewer than two reports exist: that is the "no forecast" outcome,
// not an error. Individual metrics with too little usable history come back
// nil inside an otherwise valid forecast.
func Next(reports []domain.YearlyReport) *domain.ForecastReport {
	if len(reports) < 2 {
		return nil
	}

	ordered := make([]domain.YearlyReport, len(reports))
	copy(ordered, reports)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Year < ordered[j].Year })

	// All metrics predict the same year, anchored to the full input range.
	targetYear := ordered[len(ordered)-1].Year + 1

	return &domain.ForecastReport{
		Year:        targetYear,
		Revenue:     predictMetric(ordered, targetYear, func(r domain.YearlyReport) *float64 { return r.Revenue }),
		NetProfit:   predictMetric(ordered, targetYear, func(r domain.YearlyReport) *float64 { return r.NetProfit }),
		TotalAssets: predictMetric(ordered, targetYear, func(r domain.YearlyReport) *float64 { return r.TotalAssets }),
		Equity:      predictMetric(ordered, targetYear, func(r domain.YearlyReport) *float64 { return r.Equity }),
		Confidence:  Confidence(ordered),
	}
}

// predictMetric fits one metric. Nil and exact-zero values carry no signal
// (zero doubles as the feed's absence sentinel) and are excluded before the
// fit; fewer than two surviving points means no prediction.
func predictMetric(ordered []domain.YearlyReport, targetYear int, metric func(domain.YearlyReport) *float64) *float64 {
	var years, values []float64
	for _, r := range ordered {
		v := metric(r)
		if v == nil || *v == 0 {
			continue
		}
		years = append(years, float64(r.Year))
		values = append(values, *v)
	}
	if len(values) < 2 {
		return nil
	}

	slope, intercept := linearFit(years, values)
	predicted := slope*float64(targetYear) + intercept
	predicted = constrain(predicted, values)
	return &predicted
}

// linearFit is an ordinary least-squares degree-1 fit.
func linearFit(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// constrain clips a raw prediction to the plausibility envelope: the change
// versus the last historical value may not exceed twice the mean absolute
// historical magnitude. A metric whose history never went negative is not
// allowed to forecast negative either; it floors at 10% of its last value.
func constrain(predicted float64, history []float64) float64 {
	var sumAbs float64
	allNonNegative := true
	for _, v := range history {
		sumAbs += math.Abs(v)
		if v < 0 {
			allNonNegative = false
		}
	}
	avgAbs := sumAbs / float64(len(history))
	maxChange := avgAbs * 2.0

	last := history[len(history)-1]
	change := predicted - last
	if math.Abs(change) > maxChange {
		if change > 0 {
			predicted = last + maxChange
		} else {
			predicted = last - maxChange
		}
	}

	if predicted < 0 && allNonNegative {
		predicted = math.Max(0, last*0.1)
	}
	return predicted
}
