package domain

import (
	"slices"
	"strings"
	"time"
)

// Campaign statuses. Transitions run pending -> active -> archived and
// never cycle back; archived campaigns are permanently out of rotation.
const (
	CampaignStatusPending  = "pending"
	CampaignStatusActive   = "active"
	CampaignStatusArchived = "archived"
)

// MinHourlyBudgetCents is the floor applied to derived hourly budgets
// ($0.10).
const MinHourlyBudgetCents int64 = 10

// Campaign represents an advertising offer. Monetary amounts are stored
// in integer cents. Premium campaigns (Fallback=false) compete under
// budget and price constraints; fallback campaigns fill inventory when
// no premium campaign qualifies.
type Campaign struct {
	ID             int64
	OrganizationID int64
	AdvertiserID   int64
	Name           string
	URL            string
	Status         string
	Fallback       bool

	// FixedEcpm disables per-country price adjustment.
	FixedEcpm bool
	EcpmCents int64

	StartDate     time.Time
	EndDate       time.Time
	WeekdaysOnly  bool
	CoreHoursOnly bool

	TotalBudgetCents  int64
	DailyBudgetCents  int64
	HourlyBudgetCents int64

	CountryCodes     []string
	ProvinceCodes    []string
	Keywords         []string
	NegativeKeywords []string

	// AssignedPropertyIDs is an explicit allow-list of requesting
	// properties. A non-empty list disables keyword/geo targeting for
	// this campaign.
	AssignedPropertyIDs []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Campaign) Pending() bool  { return c.Status == CampaignStatusPending }
func (c *Campaign) Active() bool   { return c.Status == CampaignStatusActive }
func (c *Campaign) Archived() bool { return c.Status == CampaignStatusArchived }
func (c *Campaign) Premium() bool  { return !c.Fallback }

// AvailableOn reports whether the campaign's inclusive date window
// covers the given day. Campaigns without both dates set are never
// available.
func (c *Campaign) AvailableOn(t time.Time) bool {
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return false
	}
	d := DateOf(t)
	return !d.Before(DateOf(c.StartDate)) && !d.After(DateOf(c.EndDate))
}

// Normalize sorts and de-duplicates all target sets, dropping blank
// entries, so persisted campaigns compare independently of insertion
// order. Called before every save.
func (c *Campaign) Normalize() {
	c.CountryCodes = normalizeTags(c.CountryCodes)
	c.ProvinceCodes = normalizeTags(c.ProvinceCodes)
	c.Keywords = normalizeTags(c.Keywords)
	c.NegativeKeywords = normalizeTags(c.NegativeKeywords)
	c.AssignedPropertyIDs = normalizeIDs(c.AssignedPropertyIDs)
}

// InitHourlyBudget derives the hourly budget from the daily budget
// (daily/12, floored at $0.10) unless an hourly budget at or above the
// floor was set explicitly. A zero daily budget leaves the hourly
// budget at zero.
func (c *Campaign) InitHourlyBudget() {
	if c.HourlyBudgetCents >= MinHourlyBudgetCents {
		return
	}
	if c.DailyBudgetCents <= 0 {
		return
	}
	c.HourlyBudgetCents = c.DailyBudgetCents / 12
	if c.HourlyBudgetCents < MinHourlyBudgetCents {
		c.HourlyBudgetCents = MinHourlyBudgetCents
	}
}

// DateOf truncates a time to its calendar date in UTC, matching the
// DATE columns campaigns are stored with.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		out = append(out, tag)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func normalizeIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		out = append(out, id)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
