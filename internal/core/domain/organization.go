package domain

import "time"

// Organization is the advertiser's billing entity. A campaign is only
// premium-eligible while its organization's balance is positive.
type Organization struct {
	ID           int64
	Name         string
	BalanceCents int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (o *Organization) Solvent() bool { return o.BalanceCents > 0 }
