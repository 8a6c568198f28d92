package anpr

// DefaultViolation is assumed when a request carries no category.
const DefaultViolation = "No Violation"

// FineTable maps violation categories to fine amounts in whole currency units.
type FineTable map[string]int

// DefaultFineRules returns the demo rule set. Deployments override the table
// through configuration.
func DefaultFineRules() FineTable {
	return FineTable{
		"No Helmet":      500,
		"Signal Jump":    1000,
		"Wrong Parking":  300,
		"No Seatbelt":    500,
		"Overspeeding":   1500,
		DefaultViolation: 0,
	}
}

// Resolve looks up the fine for a category. Unknown categories resolve to a
// zero fine; the function is total and never fails.
func (t FineTable) Resolve(category string) FineDecision {
	amount := t[category]
	if amount < 0 {
		amount = 0
	}
	return FineDecision{IsFined: amount > 0, Amount: amount}
}
