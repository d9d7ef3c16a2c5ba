package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"vista-ads/internal/core/port"
)

// Ledger reads the impression/click cost tables the recording consumers
// write. The selection engine only ever sums from it.
type Ledger struct {
	pool *pgxpool.Pool
}

// NewLedger returns a new ledger reader.
func NewLedger(pool *pgxpool.Pool) *Ledger {
	return &Ledger{pool: pool}
}

// CostSince sums the impression cost attributed to a campaign from
// `since` until now.
func (l *Ledger) CostSince(ctx context.Context, campaignID int64, since time.Time) (int64, error) {
	var cost int64
	err := l.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(cost_cents), 0) FROM impressions
         WHERE campaign_id = $1 AND created_at >= $2`,
		campaignID, since).Scan(&cost)
	return cost, err
}

// Stats returns aggregated impression and click counts plus total cost
// for the period, optionally restricted to one campaign.
func (l *Ledger) Stats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	args := []any{req.From, req.To}
	whereCampaign := ""
	if req.CampaignID != nil {
		whereCampaign = "AND campaign_id = $3"
		args = append(args, *req.CampaignID)
	}

	var impCount, impCost int64
	err := l.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT COALESCE(COUNT(*), 0), COALESCE(SUM(cost_cents), 0)
         FROM impressions WHERE created_at >= $1 AND created_at <= $2 %s`,
		whereCampaign), args...).Scan(&impCount, &impCost)
	if err != nil {
		return nil, err
	}

	var clickCount, clickCost int64
	err = l.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT COALESCE(COUNT(*), 0), COALESCE(SUM(cost_cents), 0)
         FROM clicks WHERE created_at >= $1 AND created_at <= $2 %s`,
		whereCampaign), args...).Scan(&clickCount, &clickCost)
	if err != nil {
		return nil, err
	}

	return &port.StatsResp{
		Impressions: impCount,
		Clicks:      clickCount,
		Cost:        impCost + clickCost,
	}, nil
}

var _ port.Ledger = (*Ledger)(nil)
