package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"vista-ads/internal/core/domain"
)

// Seed inserts demo data: two organizations, one active property and a
// mix of premium and fallback campaigns, normalized the same way the
// dashboard would before saving.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `INSERT INTO organizations (id, name, balance_cents)
        VALUES (1, 'Acme Devtools', 1000000), (2, 'Filler Network', 0)
        ON CONFLICT DO NOTHING`)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `INSERT INTO properties
        (id, user_id, name, active, keywords, ad_template, ad_theme)
        VALUES (1, 100, 'example.dev', TRUE, '{go,databases,devops}', 'default', 'light')
        ON CONFLICT DO NOTHING`)
	if err != nil {
		return err
	}

	start := time.Now().AddDate(0, 0, -7)
	end := time.Now().AddDate(0, 1, 0)
	campaigns := []domain.Campaign{
		{
			ID: 1, OrganizationID: 1, AdvertiserID: 10,
			Name: "Acme CI Launch", URL: "https://acme.example/ci",
			Status: domain.CampaignStatusActive, FixedEcpm: false, EcpmCents: 300,
			StartDate: start, EndDate: end,
			TotalBudgetCents: 500000, DailyBudgetCents: 20000,
			CountryCodes: []string{"US", "CA", "GB"},
			Keywords:     []string{"go", "devops"},
		},
		{
			ID: 2, OrganizationID: 1, AdvertiserID: 10,
			Name: "Acme DB Tour", URL: "https://acme.example/db",
			Status: domain.CampaignStatusActive, FixedEcpm: true, EcpmCents: 250,
			StartDate: start, EndDate: end, WeekdaysOnly: true,
			TotalBudgetCents: 300000,
			Keywords:         []string{"databases"},
			NegativeKeywords: []string{"gambling"},
		},
		{
			ID: 3, OrganizationID: 2, AdvertiserID: 20,
			Name: "Open Source Spotlight", URL: "https://filler.example/oss",
			Status: domain.CampaignStatusActive, Fallback: true, FixedEcpm: true,
			StartDate: start, EndDate: end,
			Keywords: []string{"go", "databases", "devops"},
		},
	}
	for i := range campaigns {
		c := &campaigns[i]
		c.Normalize()
		c.InitHourlyBudget()
		_, err = pool.Exec(ctx, `INSERT INTO campaigns
            (id, organization_id, user_id, name, url, status, fallback,
             fixed_ecpm, ecpm_cents, start_date, end_date, weekdays_only,
             core_hours_only, total_budget_cents, daily_budget_cents,
             hourly_budget_cents, country_codes, province_codes, keywords,
             negative_keywords, assigned_property_ids)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
            ON CONFLICT DO NOTHING`,
			c.ID, c.OrganizationID, c.AdvertiserID, c.Name, c.URL, c.Status,
			c.Fallback, c.FixedEcpm, c.EcpmCents, domain.DateOf(c.StartDate),
			domain.DateOf(c.EndDate), c.WeekdaysOnly, c.CoreHoursOnly,
			c.TotalBudgetCents, c.DailyBudgetCents, c.HourlyBudgetCents,
			c.CountryCodes, c.ProvinceCodes, c.Keywords, c.NegativeKeywords,
			c.AssignedPropertyIDs)
		if err != nil {
			return err
		}
	}
	return nil
}
