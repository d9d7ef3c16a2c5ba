package pricing

import (
	"math"
	"time"

	"vista-ads/internal/core/domain"
)

// pricingCutover is the date the per-country pricing formula changed.
// Campaigns started before it keep the legacy per-country multiplier;
// campaigns started on or after it use the current one.
var pricingCutover = time.Date(2019, time.March, 7, 0, 0, 0, 0, time.UTC)

// DefaultUnknownCountryMultiplier discounts campaigns shown to visitors
// whose country could not be resolved.
const DefaultUnknownCountryMultiplier = 0.05

// FloorCents is the minimum adjusted price ($0.10).
const FloorCents int64 = 10

// Multipliers holds both pricing-formula coefficients for one country.
type Multipliers struct {
	// Legacy applies to campaigns started before the cutover.
	Legacy float64
	// Current applies to campaigns started on or after the cutover.
	Current float64
}

// Table maps ISO country codes to their multipliers. The values are
// data sourced from the commercial country table, not algorithm; swap
// the whole table to change pricing.
type Table map[string]Multipliers

// Adjuster computes a campaign's effective per-country eCPM.
type Adjuster struct {
	table             Table
	unknownMultiplier float64
}

// NewAdjuster builds an Adjuster over the given country table. An
// unknownMultiplier <= 0 falls back to the default.
func NewAdjuster(table Table, unknownMultiplier float64) *Adjuster {
	if unknownMultiplier <= 0 {
		unknownMultiplier = DefaultUnknownCountryMultiplier
	}
	if table == nil {
		table = Countries()
	}
	return &Adjuster{table: table, unknownMultiplier: unknownMultiplier}
}

// AdjustedEcpm returns the campaign's effective price in cents for the
// given country. Fixed-eCPM campaigns keep their base price everywhere.
// Unknown countries never error; they price at the unknown-country
// discount. Any result below $0.10 is floored to exactly $0.10.
func (a *Adjuster) AdjustedEcpm(c *domain.Campaign, countryCode string) int64 {
	if c.FixedEcpm {
		return c.EcpmCents
	}

	adjusted := scale(c.EcpmCents, a.unknownMultiplier)
	if m, ok := a.table[countryCode]; ok {
		if !c.StartDate.IsZero() && c.StartDate.Before(pricingCutover) {
			adjusted = scale(c.EcpmCents, m.Legacy)
		} else {
			adjusted = scale(c.EcpmCents, m.Current)
		}
	}
	if adjusted < FloorCents {
		adjusted = FloorCents
	}
	return adjusted
}

func scale(cents int64, multiplier float64) int64 {
	return int64(math.Round(float64(cents) * multiplier))
}
