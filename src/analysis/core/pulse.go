package core

// -----------------------------------------------------------------------------

// Market mood classification over the core watchlist subset.
const (
	MoodRiskOn  = "RISK-ON"
	MoodRiskOff = "RISK-OFF"
	MoodNeutral = "NEUTRAL"
)

// MarketPulse summarizes breadth and heat across a set of percentage changes.
type MarketPulse struct {
	Advancers int     `json:"advancers"`
	Decliners int     `json:"decliners"`
	Heat      float64 `json:"heat"`
	Mood      string  `json:"mood"`
}

// -----------------------------------------------------------------------------

// Pulse counts advancers (change >= 0) and decliners, computes the unweighted
// mean change ("heat"), and classifies the mood: RISK-ON above +0.05,
// RISK-OFF below -0.05, NEUTRAL in between.
func Pulse(changes []float64) MarketPulse {
	p := MarketPulse{Mood: MoodNeutral}
	if len(changes) == 0 {
		return p
	}

	sum := 0.0
	for _, c := range changes {
		if c >= 0 {
			p.Advancers++
		} else {
			p.Decliners++
		}
		sum += c
	}

	p.Heat = sum / float64(len(changes))

	if p.Heat > 0.05 {
		p.Mood = MoodRiskOn
	} else if p.Heat < -0.05 {
		p.Mood = MoodRiskOff
	}

	return p
}
