package port

import (
	"context"
	"time"

	"vista-ads/internal/core/domain"
)

// CampaignRepository is the outbound persistence port for campaigns,
// properties and organizations. Implementations must be concurrency
// safe. The repository only narrows by status and date window; all
// targeting predicates run in the eligibility package so behaviour is
// identical across backends.
type CampaignRepository interface {
	// ActiveAvailableOn returns active campaigns whose date window
	// covers the given day. Ordering is irrelevant; selection weighs
	// each element independently.
	ActiveAvailableOn(ctx context.Context, day time.Time) ([]domain.Campaign, error)

	// GetCampaign returns a campaign by id, or nil when absent.
	GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error)

	// GetProperty returns a property by id, or nil when absent.
	GetProperty(ctx context.Context, id int64) (*domain.Property, error)

	// OrganizationBalances returns balance cents keyed by organization
	// id for the given ids. Missing organizations are simply absent
	// from the map.
	OrganizationBalances(ctx context.Context, ids []int64) (map[int64]int64, error)
}
