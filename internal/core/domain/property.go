package domain

import "time"

// Default ad presentation when a property has no preference.
const (
	DefaultAdTemplate = "default"
	DefaultAdTheme    = "light"
)

// Property is the publisher site requesting an ad. Read-only from the
// selection engine's perspective; the publisher dashboard owns it.
type Property struct {
	ID     int64
	UserID int64
	Name   string

	// Active marks a paid/verified property eligible for premium
	// campaigns. Inactive properties only receive fallback fill.
	Active bool

	// RestrictToAssignerCampaigns limits premium selection to the
	// explicit AssignerCampaignIDs list.
	RestrictToAssignerCampaigns bool
	AssignerCampaignIDs         []int64

	AssignedFallbackCampaignIDs []int64
	ProhibitedAdvertiserIDs     []int64
	ProhibitFallbackCampaigns   bool

	Keywords []string

	AdTemplate         string
	AdTheme            string
	FallbackAdTemplate string
	FallbackAdTheme    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Template returns the ad template to render for this property. The
// fallback-specific override applies only when a fallback campaign won,
// and itself defaults to the premium template.
func (p *Property) Template(fallback bool) string {
	if fallback && p.FallbackAdTemplate != "" {
		return p.FallbackAdTemplate
	}
	if p.AdTemplate != "" {
		return p.AdTemplate
	}
	return DefaultAdTemplate
}

// Theme returns the ad theme, with the same fallback override rules as
// Template.
func (p *Property) Theme(fallback bool) string {
	if fallback && p.FallbackAdTheme != "" {
		return p.FallbackAdTheme
	}
	if p.AdTheme != "" {
		return p.AdTheme
	}
	return DefaultAdTheme
}
