package pricing

// Countries returns the built-in multiplier table. These coefficients
// come from the commercial country pricing sheet; they are fixture data
// and deployments may pass NewAdjuster a replacement table instead.
func Countries() Table {
	return Table{
		"AU": {Legacy: 0.63, Current: 0.80},
		"CA": {Legacy: 0.71, Current: 1.00},
		"DE": {Legacy: 0.48, Current: 0.80},
		"FR": {Legacy: 0.36, Current: 0.80},
		"GB": {Legacy: 0.87, Current: 0.80},
		"IN": {Legacy: 0.23, Current: 0.10},
		"JP": {Legacy: 0.53, Current: 0.10},
		"NL": {Legacy: 0.45, Current: 0.80},
		"RO": {Legacy: 0.31, Current: 0.30},
		"SE": {Legacy: 0.52, Current: 0.80},
		"US": {Legacy: 1.00, Current: 1.00},
	}
}
