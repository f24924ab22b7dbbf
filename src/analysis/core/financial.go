package core

// -----------------------------------------------------------------------------

// ChangePercent calculates the percentage change from reference to current.
// A zero reference is defined as zero change, not an error.
func ChangePercent(reference, current float64) float64 {
	if reference == 0 {
		return 0.0
	}
	return (current - reference) / reference * 100
}

// -----------------------------------------------------------------------------

// Severity tags appended to table rows when the move crosses a threshold.
const (
	TagHot  = "HOT"
	TagHeat = "HEAT"
	TagRisk = "RISK"
	TagDraw = "DRAW"
)

// SeverityTag classifies the magnitude of a percentage move. Returns the
// empty string inside the (-4, 4) band.
func SeverityTag(changePct float64) string {
	switch {
	case changePct >= 7:
		return TagHot
	case changePct >= 4:
		return TagHeat
	case changePct <= -7:
		return TagRisk
	case changePct <= -4:
		return TagDraw
	}
	return ""
}
