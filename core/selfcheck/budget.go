package selfcheck

// Budget defines how many findings a check tolerates before it fails.
type Budget struct {
	// MaxErrors is the number of error findings allowed.
	MaxErrors int `json:"max_errors"`

	// MaxWarnings is the number of warning findings allowed. Negative means
	// any number.
	MaxWarnings int `json:"max_warnings"`
}

// DefaultBudget fails on any error and ignores warnings.
func DefaultBudget() *Budget {
	return &Budget{MaxErrors: 0, MaxWarnings: -1}
}

// Strict fails on any error or warning.
func Strict() *Budget {
	return &Budget{}
}

// Allows reports whether the counts are within the budget.
func (b *Budget) Allows(errors, warnings int) bool {
	if errors > b.MaxErrors {
		return false
	}
	if b.MaxWarnings >= 0 && warnings > b.MaxWarnings {
		return false
	}
	return true
}
