package port

import (
	"context"
	"time"
)

// Ledger exposes the impression/click cost ledger written by the
// out-of-core recording consumers. The engine only reads sums from it;
// budget consumption is never written synchronously, which is why
// budget checks stay advisory.
type Ledger interface {
	// CostSince returns the cost cents attributed to the campaign from
	// `since` until now.
	CostSince(ctx context.Context, campaignID int64, since time.Time) (int64, error)

	// Stats aggregates impressions, clicks and cost for a period.
	Stats(ctx context.Context, req StatsReq) (*StatsResp, error)
}
