package forecast

import (
	"math"
	"sort"

	"finsight/internal/domain"
)

// MethodLabel names the only forecasting method this engine implements.
const MethodLabel = "linear trend extrapolation"

// Explain turns a forecast plus its historical basis into a delta narrative:
// percent change and direction for revenue and net profit against the most
// recent historical year, plus a qualitative reading of the confidence
// score. A change is reported only when both ends of it exist and the
// historical side is non-zero; division by zero is avoided by omission.
func Explain(predicted *domain.ForecastReport, reports []domain.YearlyReport) domain.ForecastExplanation {
	if predicted == nil || len(reports) == 0 {
		return domain.ForecastExplanation{}
	}

	ordered := make([]domain.YearlyReport, len(reports))
	copy(ordered, reports)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Year < ordered[j].Year })
	last := ordered[len(ordered)-1]

	explanation := domain.ForecastExplanation{
		Method:          MethodLabel,
		DataPoints:      len(reports),
		ConfidenceLevel: predicted.Confidence,
		ConfidenceText:  confidenceText(predicted.Confidence),
		Changes:         map[string]domain.MetricChange{},
	}

	if change, ok := metricChange(predicted.Revenue, last.Revenue); ok {
		explanation.Changes["revenue"] = change
	}
	if change, ok := metricChange(predicted.NetProfit, last.NetProfit); ok {
		explanation.Changes["profit"] = change
	}
	return explanation
}

func metricChange(predicted, last *float64) (domain.MetricChange, bool) {
	if predicted == nil || last == nil || *predicted == 0 || *last == 0 {
		return domain.MetricChange{}, false
	}
	percent := (*predicted - *last) / *last * 100
	direction := "decline"
	if percent > 0 {
		direction = "growth"
	}
	return domain.MetricChange{
		Percent:   math.Round(percent*10) / 10,
		Direction: direction,
	}, true
}

func confidenceText(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return "high"
	case confidence >= 0.6:
		return "medium"
	case confidence >= 0.4:
		return "below average"
	default:
		return "low"
	}
}
