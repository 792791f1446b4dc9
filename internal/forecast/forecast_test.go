package forecast

import (
	"math"
	"testing"

	"finsight/internal/domain"
)

func f(v float64) *float64 { return &v }

func reportsOf(startYear int, revenues ...float64) []domain.YearlyReport {
	out := make([]domain.YearlyReport, 0, len(revenues))
	for i, r := range revenues {
		out = append(out, domain.YearlyReport{Year: startYear + i, Revenue: f(r)})
	}
	return out
}

func TestNextLinearTrend(t *testing.T) {
	// Revenue 100, 200, 300 over 2021-2023: perfect line, slope 100.
	// 2024 extrapolates to 400. Constraint: change vs last = 100, cap is
	// 2 * mean(|100|,|200|,|300|) = 400, so no clamp.
	reports := reportsOf(2021, 100, 200, 300)
	got := Next(reports)
	if got == nil {
		t.Fatal("expected a forecast")
	}
	if got.Year != 2024 {
		t.Errorf("expected target year 2024, got %d", got.Year)
	}
	if got.Revenue == nil || math.Abs(*got.Revenue-400) > 0.0001 {
		t.Errorf("expected revenue 400, got %v", got.Revenue)
	}
}

func TestNextTooFewReports(t *testing.T) {
	if got := Next(reportsOf(2023, 100)); got != nil {
		t.Errorf("one report cannot forecast, got %+v", got)
	}
	if got := Next(nil); got != nil {
		t.Errorf("no reports cannot forecast, got %+v", got)
	}
}

func TestNextUnsortedInput(t *testing.T) {
	reports := []domain.YearlyReport{
		{Year: 2023, Revenue: f(300)},
		{Year: 2021, Revenue: f(100)},
		{Year: 2022, Revenue: f(200)},
	}
	got := Next(reports)
	if got == nil || got.Year != 2024 {
		t.Fatalf("expected 2024 forecast, got %+v", got)
	}
	if math.Abs(*got.Revenue-400) > 0.0001 {
		t.Errorf("order of input must not matter, got %f", *got.Revenue)
	}
}

func TestNextMetricWithTooFewPoints(t *testing.T) {
	// Net profit exists for a single year only; that metric stays nil while
	// revenue still forecasts.
	reports := []domain.YearlyReport{
		{Year: 2021, Revenue: f(100)},
		{Year: 2022, Revenue: f(200), NetProfit: f(50)},
	}
	got := Next(reports)
	if got == nil {
		t.Fatal("expected a forecast")
	}
	if got.NetProfit != nil {
		t.Errorf("single-point metric must stay nil, got %f", *got.NetProfit)
	}
	if got.Revenue == nil {
		t.Error("revenue with two points must forecast")
	}
}

func TestNextZeroValuesCarryNoSignal(t *testing.T) {
	// Zeros are the feed's absence sentinel; with them filtered only one
	// usable point remains.
	reports := []domain.YearlyReport{
		{Year: 2021, Revenue: f(0)},
		{Year: 2022, Revenue: f(0)},
		{Year: 2023, Revenue: f(100)},
	}
	got := Next(reports)
	if got == nil {
		t.Fatal("forecast report itself must still exist")
	}
	if got.Revenue != nil {
		t.Errorf("all-but-one zeros leave too little history, got %f", *got.Revenue)
	}
	if got.Year != 2024 {
		t.Errorf("target anchors to the full input range, got %d", got.Year)
	}
}

func TestConstrainClampsImplausibleJump(t *testing.T) {
	// History flat at 100: mean |v| = 100, max change = 200. A raw
	// prediction of 1000 clamps to last + 200 = 300.
	got := constrain(1000, []float64{100, 100, 100})
	if math.Abs(got-300) > 0.0001 {
		t.Errorf("expected clamp to 300, got %f", got)
	}
	// Symmetric on the way down: raw -1000 clamps to 100 - 200 = -100,
	// then the non-negative floor kicks in: max(0, 100*0.1) = 10.
	got = constrain(-1000, []float64{100, 100, 100})
	if math.Abs(got-10) > 0.0001 {
		t.Errorf("expected non-negative floor 10, got %f", got)
	}
}

func TestConstrainAllowsNegativeWhenHistoryHasNegatives(t *testing.T) {
	// A loss-making history may forecast losses.
	got := constrain(-150, []float64{-100, -120, -140})
	if got >= 0 {
		t.Errorf("negative history permits a negative forecast, got %f", got)
	}
}
