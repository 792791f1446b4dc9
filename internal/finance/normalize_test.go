package finance

import "testing"

func TestScale(t *testing.T) {
	// Provider states sums in thousands; absent and zero both normalize to 0.
	if got := Scale(0, false); got != 0 {
		t.Errorf("absent cell: expected 0, got %f", got)
	}
	if got := Scale(0, true); got != 0 {
		t.Errorf("reported zero: expected 0, got %f", got)
	}
	if got := Scale(5, true); got != 5000 {
		t.Errorf("5 thousand: expected 5000, got %f", got)
	}
	if got := Scale(-3, true); got != -3000 {
		t.Errorf("negative value must scale too: expected -3000, got %f", got)
	}
	if got := Scale(1.5, true); got != 1500 {
		t.Errorf("fractional thousands: expected 1500, got %f", got)
	}
}
