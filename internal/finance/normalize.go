package finance

// Scale converts a raw provider magnitude, stated in thousands, to base
// currency units. Absent lookups and exact zeros both come out as 0.0: the
// feed does not distinguish "no data" from "reported zero" and neither can
// we.
//
// This is the single conversion point. Every raw magnitude must pass through
// here exactly once; scaling anywhere else (or twice) is a correctness bug.
func Scale(raw float64, ok bool) float64 {
	if !ok || raw == 0 {
		return 0.0
	}
	return raw * 1000
}
