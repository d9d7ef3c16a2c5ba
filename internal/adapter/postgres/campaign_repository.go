package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vista-ads/internal/core/domain"
	"vista-ads/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository using pgxpool.
// SQL narrows only by status and date window; targeting predicates run
// in the eligibility package.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `
    id, organization_id, user_id, name, url, status, fallback,
    fixed_ecpm, ecpm_cents, start_date, end_date, weekdays_only,
    core_hours_only, total_budget_cents, daily_budget_cents,
    hourly_budget_cents, country_codes, province_codes, keywords,
    negative_keywords, assigned_property_ids, created_at, updated_at`

// ActiveAvailableOn returns active campaigns whose inclusive date
// window covers the given day.
func (r *CampaignRepository) ActiveAvailableOn(ctx context.Context, day time.Time) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+`
        FROM campaigns
        WHERE status = $1 AND start_date <= $2 AND end_date >= $2`,
		domain.CampaignStatusActive, domain.DateOf(day))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanCampaign)
}

// GetCampaign returns a campaign by id, or nil when absent.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	c, err := pgx.CollectOneRow(rows, scanCampaign)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetProperty returns a property by id, or nil when absent.
func (r *CampaignRepository) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	var p domain.Property
	err := r.pool.QueryRow(ctx, `SELECT
        id, user_id, name, active, restrict_to_assigner_campaigns,
        assigner_campaign_ids, assigned_fallback_campaign_ids,
        prohibited_advertiser_ids, prohibit_fallback_campaigns, keywords,
        ad_template, ad_theme, fallback_ad_template, fallback_ad_theme,
        created_at, updated_at
        FROM properties WHERE id = $1`, id).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Active, &p.RestrictToAssignerCampaigns,
		&p.AssignerCampaignIDs, &p.AssignedFallbackCampaignIDs,
		&p.ProhibitedAdvertiserIDs, &p.ProhibitFallbackCampaigns, &p.Keywords,
		&p.AdTemplate, &p.AdTheme, &p.FallbackAdTemplate, &p.FallbackAdTheme,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// OrganizationBalances returns balance cents keyed by organization id.
func (r *CampaignRepository) OrganizationBalances(ctx context.Context, ids []int64) (map[int64]int64, error) {
	balances := make(map[int64]int64, len(ids))
	if len(ids) == 0 {
		return balances, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, balance_cents FROM organizations WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id, balance int64
		if err := rows.Scan(&id, &balance); err != nil {
			return nil, err
		}
		balances[id] = balance
	}
	return balances, rows.Err()
}

func scanCampaign(row pgx.CollectableRow) (domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID, &c.OrganizationID, &c.AdvertiserID, &c.Name, &c.URL, &c.Status,
		&c.Fallback, &c.FixedEcpm, &c.EcpmCents, &c.StartDate, &c.EndDate,
		&c.WeekdaysOnly, &c.CoreHoursOnly, &c.TotalBudgetCents,
		&c.DailyBudgetCents, &c.HourlyBudgetCents, &c.CountryCodes,
		&c.ProvinceCodes, &c.Keywords, &c.NegativeKeywords,
		&c.AssignedPropertyIDs, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

var _ port.CampaignRepository = (*CampaignRepository)(nil)
