package port

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a referenced record or correlation token
// does not exist (or has expired).
var ErrNotFound = errors.New("not found")

// AdSelector defines the business operations exposed by the selection
// engine. This interface is the primary port into the application
// domain; the HTTP layer invokes it synchronously.
type AdSelector interface {
	// SelectAdvertisement picks at most one eligible campaign for the
	// request, cascading premium -> geo fallback -> broadened fallback,
	// and mints a 30-second correlation token for the winner. A nil
	// response means "no fill" and is not an error.
	SelectAdvertisement(ctx context.Context, req AdRequest) (*AdResponse, error)

	// RecordImpression stores the correlation tuple under token with the
	// configured expiry. Overwrites are idempotent; it never blocks on
	// durable storage.
	RecordImpression(ctx context.Context, token string, campaignID, propertyID int64, ipAddress string) error

	// ClickThrough resolves a correlation token to the winning
	// campaign's click-through URL. Expired or unknown tokens return
	// ErrNotFound.
	ClickThrough(ctx context.Context, token string) (string, error)

	// Stats returns aggregated impression/click counts and cost for the
	// specified campaign (optional) and time period.
	Stats(ctx context.Context, req StatsReq) (*StatsResp, error)
}

// AdRequest carries the resolved per-request context into selection.
// Keywords are optional caller-supplied filter terms; IPAddress feeds
// geolocation and the correlation record.
type AdRequest struct {
	PropertyID int64
	Keywords   []string
	IPAddress  string
}

// AdResponse describes the selected campaign. It is a DTO for the
// transport layer and carries no domain behaviour.
type AdResponse struct {
	CampaignID  int64  `json:"campaign_id"`
	CampaignURL string `json:"campaign_url"`
	Token       string `json:"token"`
	Fallback    bool   `json:"fallback"`
	Template    string `json:"template"`
	Theme       string `json:"theme"`
}

// StatsReq selects the aggregation period and optional campaign.
type StatsReq struct {
	From       time.Time
	To         time.Time
	CampaignID *int64
}

// StatsResp contains aggregated event counts and summed cost in cents.
type StatsResp struct {
	Impressions int64 `json:"impressions"`
	Clicks      int64 `json:"clicks"`
	Cost        int64 `json:"cost"`
}
