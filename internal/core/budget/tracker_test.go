package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vista-ads/internal/core/domain"
	"vista-ads/internal/core/port"
)

type fakeLedger struct {
	cost map[int64]int64
	err  error
}

func (f *fakeLedger) CostSince(_ context.Context, campaignID int64, _ time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.cost[campaignID], nil
}

func (f *fakeLedger) Stats(context.Context, port.StatsReq) (*port.StatsResp, error) {
	return &port.StatsResp{}, nil
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func quarterCampaign() *domain.Campaign {
	return &domain.Campaign{
		ID:               1,
		StartDate:        date("2019-01-01"),
		EndDate:          date("2019-04-01"),
		TotalBudgetCents: 500000,
	}
}

func TestOperativeDays(t *testing.T) {
	c := quarterCampaign()
	assert.Equal(t, 91, OperativeDays(c))

	c.WeekdaysOnly = true
	assert.Equal(t, 65, OperativeDays(c))
}

func TestOperativeDaysDegenerateWindows(t *testing.T) {
	assert.Equal(t, 0, OperativeDays(&domain.Campaign{}))
	assert.Equal(t, 0, OperativeDays(&domain.Campaign{StartDate: date("2019-01-01")}))
	assert.Equal(t, 0, OperativeDays(&domain.Campaign{
		StartDate: date("2019-02-01"), EndDate: date("2019-01-01"),
	}))
	assert.Equal(t, 1, OperativeDays(&domain.Campaign{
		StartDate: date("2019-01-01"), EndDate: date("2019-01-01"),
	}))
}

func TestDailyBudgetDerivedFromTotal(t *testing.T) {
	c := quarterCampaign()
	assert.Equal(t, int64(500000/91), DailyBudget(c))

	c.DailyBudgetCents = 20000
	assert.Equal(t, int64(20000), DailyBudget(c))

	assert.Equal(t, int64(0), DailyBudget(&domain.Campaign{TotalBudgetCents: 100}))
}

func TestHourlyBudget(t *testing.T) {
	c := &domain.Campaign{DailyBudgetCents: 24000,
		StartDate: date("2019-01-01"), EndDate: date("2019-01-31")}
	assert.Equal(t, int64(2000), HourlyBudget(c))

	// Explicit hourly budget at or above the floor wins.
	c.HourlyBudgetCents = 50000
	assert.Equal(t, int64(50000), HourlyBudget(c))

	// Derived hourly below the floor is lifted to $0.10.
	c = &domain.Campaign{DailyBudgetCents: 60,
		StartDate: date("2019-01-01"), EndDate: date("2019-01-31")}
	assert.Equal(t, domain.MinHourlyBudgetCents, HourlyBudget(c))

	// No daily allotment at all means no hourly allotment.
	assert.Equal(t, int64(0), HourlyBudget(&domain.Campaign{}))
}

func TestHourlyBudgetAutoInit(t *testing.T) {
	c := &domain.Campaign{DailyBudgetCents: 12000}
	c.InitHourlyBudget()
	assert.Equal(t, int64(1000), c.HourlyBudgetCents)

	c = &domain.Campaign{DailyBudgetCents: 60}
	c.InitHourlyBudget()
	assert.Equal(t, domain.MinHourlyBudgetCents, c.HourlyBudgetCents)

	c = &domain.Campaign{}
	c.InitHourlyBudget()
	assert.Equal(t, int64(0), c.HourlyBudgetCents)

	// Explicit hourly budgets at or above the floor are preserved.
	c = &domain.Campaign{DailyBudgetCents: 12000, HourlyBudgetCents: 25}
	c.InitHourlyBudget()
	assert.Equal(t, int64(25), c.HourlyBudgetCents)
}

func fixedClock(s string) func() time.Time {
	at, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return at }
}

func TestRemainingDailyBudgetPercentage(t *testing.T) {
	ctx := context.Background()
	now := fixedClock("2019-01-16T12:30:00Z")

	c := &domain.Campaign{ID: 1, DailyBudgetCents: 10000,
		StartDate: date("2019-01-01"), EndDate: date("2019-04-01")}

	tr := NewTracker(&fakeLedger{cost: map[int64]int64{1: 2500}}, nil, now)
	assert.InDelta(t, 0.75, tr.RemainingDailyBudgetPercentage(ctx, c), 1e-9)

	tr = NewTracker(&fakeLedger{cost: map[int64]int64{1: 0}}, nil, now)
	assert.InDelta(t, 1.0, tr.RemainingDailyBudgetPercentage(ctx, c), 1e-9)

	tr = NewTracker(&fakeLedger{cost: map[int64]int64{1: 15000}}, nil, now)
	assert.Zero(t, tr.RemainingDailyBudgetPercentage(ctx, c))

	// No allotment, nothing remaining.
	tr = NewTracker(&fakeLedger{}, nil, now)
	assert.Zero(t, tr.RemainingDailyBudgetPercentage(ctx, &domain.Campaign{ID: 1}))
}

func TestRemainingDailyBudgetPercentageLedgerFailure(t *testing.T) {
	now := fixedClock("2019-01-16T12:30:00Z")
	c := &domain.Campaign{ID: 1, DailyBudgetCents: 10000,
		StartDate: date("2019-01-01"), EndDate: date("2019-04-01")}

	tr := NewTracker(&fakeLedger{err: errors.New("ledger down")}, nil, now)
	assert.InDelta(t, 1.0, tr.RemainingDailyBudgetPercentage(context.Background(), c), 1e-9)
}

func TestHourlyBudgetAvailable(t *testing.T) {
	ctx := context.Background()
	now := fixedClock("2019-01-16T12:30:00Z")
	c := &domain.Campaign{ID: 1, HourlyBudgetCents: 100,
		StartDate: date("2019-01-01"), EndDate: date("2019-04-01")}

	tr := NewTracker(&fakeLedger{cost: map[int64]int64{1: 50}}, nil, now)
	require.True(t, tr.HourlyBudgetAvailable(ctx, c))

	tr = NewTracker(&fakeLedger{cost: map[int64]int64{1: 100}}, nil, now)
	require.False(t, tr.HourlyBudgetAvailable(ctx, c))

	// Advisory fail-open on ledger errors.
	tr = NewTracker(&fakeLedger{err: errors.New("ledger down")}, nil, now)
	require.True(t, tr.HourlyBudgetAvailable(ctx, c))

	// No hourly allotment at all cannot be available.
	tr = NewTracker(&fakeLedger{}, nil, now)
	require.False(t, tr.HourlyBudgetAvailable(ctx, &domain.Campaign{ID: 1}))
}
