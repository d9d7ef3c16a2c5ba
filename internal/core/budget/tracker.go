package budget

import (
	"context"
	"log/slog"
	"time"

	"vista-ads/internal/core/domain"
	"vista-ads/internal/core/port"
)

// Tracker derives pacing windows from a campaign's schedule and answers
// budget-availability questions against the cost ledger. All checks are
// advisory: the engine never writes consumption synchronously, so two
// concurrent requests may both observe availability. That bounded
// over-delivery is the contract, not a bug.
type Tracker struct {
	ledger port.Ledger
	logger *slog.Logger
	now    func() time.Time
}

// NewTracker builds a Tracker over the given ledger. now may be nil for
// wall-clock time.
func NewTracker(ledger port.Ledger, logger *slog.Logger, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{ledger: ledger, logger: logger, now: now}
}

// OperativeDays counts the calendar days in the campaign's inclusive
// date window. Weekday-only campaigns skip Saturdays and Sundays.
func OperativeDays(c *domain.Campaign) int {
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return 0
	}
	start := domain.DateOf(c.StartDate)
	end := domain.DateOf(c.EndDate)
	if end.Before(start) {
		return 0
	}
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if c.WeekdaysOnly && (d.Weekday() == time.Saturday || d.Weekday() == time.Sunday) {
			continue
		}
		days++
	}
	return days
}

// DailyBudget returns the campaign's daily allotment in cents: the
// explicit daily budget when set, otherwise the total budget spread
// over the operative days.
func DailyBudget(c *domain.Campaign) int64 {
	if c.DailyBudgetCents > 0 {
		return c.DailyBudgetCents
	}
	days := OperativeDays(c)
	if days == 0 {
		return 0
	}
	return c.TotalBudgetCents / int64(days)
}

// HourlyBudget returns the campaign's hourly allotment in cents. An
// explicit hourly budget at or above the $0.10 floor wins; otherwise it
// derives daily/12 with the same floor, or zero when there is no daily
// allotment at all.
func HourlyBudget(c *domain.Campaign) int64 {
	if c.HourlyBudgetCents >= domain.MinHourlyBudgetCents {
		return c.HourlyBudgetCents
	}
	daily := DailyBudget(c)
	if daily <= 0 {
		return 0
	}
	hourly := daily / 12
	if hourly < domain.MinHourlyBudgetCents {
		hourly = domain.MinHourlyBudgetCents
	}
	return hourly
}

// RemainingDailyBudgetPercentage returns the unconsumed share of
// today's allotment as a fraction in [0,1]. Ledger failures log and
// report a full budget so a read outage cannot blank the premium tier.
func (t *Tracker) RemainingDailyBudgetPercentage(ctx context.Context, c *domain.Campaign) float64 {
	daily := DailyBudget(c)
	if daily <= 0 {
		return 0
	}
	consumed, err := t.ledger.CostSince(ctx, c.ID, t.startOfDay())
	if err != nil {
		t.logger.Warn("budget: ledger read failed, assuming unconsumed",
			slog.Int64("campaign_id", c.ID), slog.Any("error", err))
		consumed = 0
	}
	remaining := daily - consumed
	if remaining <= 0 {
		return 0
	}
	if remaining > daily {
		remaining = daily
	}
	return float64(remaining) / float64(daily)
}

// HourlyBudgetAvailable reports whether consumption within the current
// clock hour is still below the hourly allotment. Same advisory and
// fail-open semantics as the daily check.
func (t *Tracker) HourlyBudgetAvailable(ctx context.Context, c *domain.Campaign) bool {
	hourly := HourlyBudget(c)
	if hourly <= 0 {
		return false
	}
	consumed, err := t.ledger.CostSince(ctx, c.ID, t.startOfHour())
	if err != nil {
		t.logger.Warn("budget: ledger read failed, assuming available",
			slog.Int64("campaign_id", c.ID), slog.Any("error", err))
		return true
	}
	return consumed < hourly
}

func (t *Tracker) startOfDay() time.Time {
	n := t.now()
	y, m, d := n.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, n.Location())
}

func (t *Tracker) startOfHour() time.Time {
	return t.now().Truncate(time.Hour)
}
