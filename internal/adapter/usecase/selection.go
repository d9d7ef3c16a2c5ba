package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"vista-ads/internal/core/budget"
	"vista-ads/internal/core/domain"
	"vista-ads/internal/core/eligibility"
	"vista-ads/internal/core/port"
	"vista-ads/internal/core/pricing"
	"vista-ads/internal/core/sampler"
	"vista-ads/internal/metrics"
)

// epsilonDenominator floors ratio denominators so degenerate weight
// sums (all-zero eCPM or exhausted budgets) cannot divide by zero.
const epsilonDenominator = 0.001

// provinceBonus is the deterministic weight bump for candidates whose
// province targets contain the resolved province.
const provinceBonus = 0.5

// Config carries the request-time selection knobs, formerly scattered
// environment globals. Zero values for the hour window are meaningful
// (the default window is [0,5]); construct via config, not literals.
type Config struct {
	ProhibitedHourStart int
	ProhibitedHourEnd   int
	ImpressionTTL       time.Duration

	// Now overrides the clock, for tests. Nil means time.Now.
	Now func() time.Time
}

// SelectionUseCase composes eligibility filtering, budget pacing, eCPM
// adjustment and the weighted draw into the premium -> fallback
// cascade, and records the winning virtual impression. Each call is an
// independent stateless computation; no cross-request locking exists.
type SelectionUseCase struct {
	repo     port.CampaignRepository
	ledger   port.Ledger
	kv       port.KeyValueStore
	geo      port.GeoResolver
	tracker  *budget.Tracker
	adjuster *pricing.Adjuster
	filter   eligibility.Filter
	ttl      time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

var _ port.AdSelector = (*SelectionUseCase)(nil)

// NewSelectionUseCase wires the orchestrator. adjuster may be nil for
// the built-in country table with default unknown-country pricing.
func NewSelectionUseCase(
	repo port.CampaignRepository,
	ledger port.Ledger,
	kv port.KeyValueStore,
	geo port.GeoResolver,
	adjuster *pricing.Adjuster,
	cfg Config,
	logger *slog.Logger,
	m *metrics.Metrics,
) *SelectionUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	if adjuster == nil {
		adjuster = pricing.NewAdjuster(nil, 0)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	ttl := cfg.ImpressionTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SelectionUseCase{
		repo:     repo,
		ledger:   ledger,
		kv:       kv,
		geo:      geo,
		tracker:  budget.NewTracker(ledger, logger, now),
		adjuster: adjuster,
		filter: eligibility.Filter{
			ProhibitedHourStart: cfg.ProhibitedHourStart,
			ProhibitedHourEnd:   cfg.ProhibitedHourEnd,
		},
		ttl:     ttl,
		logger:  logger,
		metrics: m,
		now:     now,
	}
}

// SelectAdvertisement runs the cascade. A nil response is a valid "no
// fill", never an error.
func (u *SelectionUseCase) SelectAdvertisement(ctx context.Context, req port.AdRequest) (*port.AdResponse, error) {
	prop, err := u.repo.GetProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		u.metrics.Selections.WithLabelValues(metrics.OutcomeNoFill).Inc()
		return nil, nil
	}

	loc := u.geo.Resolve(ctx, req.IPAddress)
	now := u.now()
	rc := eligibility.RequestContext{
		Today:        now,
		Hour:         u.localHour(now, loc.TimeZone),
		CountryCode:  loc.CountryCode,
		ProvinceCode: loc.ProvinceCode,
		Keywords:     req.Keywords,
	}

	campaigns, err := u.repo.ActiveAvailableOn(ctx, now)
	if err != nil {
		return nil, err
	}
	available := u.filter.AvailableNow(campaigns, rc)
	geoTargeted := u.filter.GeoTargeted(available, rc)

	var winner *domain.Campaign
	if prop.Active {
		winner, err = u.premiumCampaign(ctx, geoTargeted, prop, rc)
		if err != nil {
			return nil, err
		}
	}
	if winner == nil {
		winner = u.fallbackCampaign(ctx, geoTargeted, prop, rc)
	}
	if winner == nil {
		winner = u.fallbackCampaign(ctx, available, prop, rc)
	}
	if winner == nil {
		u.metrics.Selections.WithLabelValues(metrics.OutcomeNoFill).Inc()
		return nil, nil
	}

	token := uuid.NewString()
	if err := u.RecordImpression(ctx, token, winner.ID, prop.ID, req.IPAddress); err != nil {
		// The correlation store is volatile; losing the token costs one
		// click attribution, not the response.
		u.logger.Warn("virtual impression write failed",
			slog.String("token", token), slog.Any("error", err))
	}

	outcome := metrics.OutcomePremium
	if winner.Fallback {
		outcome = metrics.OutcomeFallback
	}
	u.metrics.Selections.WithLabelValues(outcome).Inc()

	return &port.AdResponse{
		CampaignID:  winner.ID,
		CampaignURL: winner.URL,
		Token:       token,
		Fallback:    winner.Fallback,
		Template:    prop.Template(winner.Fallback),
		Theme:       prop.Theme(winner.Fallback),
	}, nil
}

// premiumCampaign draws from the premium tier: campaigns either
// explicitly assigned to the property or targeting it, gated by
// organization solvency and hourly budget availability.
func (u *SelectionUseCase) premiumCampaign(ctx context.Context, candidates []domain.Campaign, prop *domain.Property, rc eligibility.RequestContext) (*domain.Campaign, error) {
	pool := make([]domain.Campaign, 0, len(candidates))
	for _, c := range candidates {
		if !c.Premium() {
			continue
		}
		if prop.RestrictToAssignerCampaigns {
			if slices.Contains(prop.AssignerCampaignIDs, c.ID) {
				pool = append(pool, c)
			}
			continue
		}
		if eligibility.AssignedTo(&c, prop.ID) || eligibility.Targeted(&c, prop, rc.Keywords) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		return nil, nil
	}

	balances, err := u.repo.OrganizationBalances(ctx, orgIDs(pool))
	if err != nil {
		return nil, err
	}
	gated := make([]domain.Campaign, 0, len(pool))
	for _, c := range pool {
		if balances[c.OrganizationID] <= 0 {
			continue
		}
		if !u.tracker.HourlyBudgetAvailable(ctx, &c) {
			continue
		}
		gated = append(gated, c)
	}
	return u.choose(ctx, gated, rc, false), nil
}

// fallbackCampaign draws from the fallback tier, ignoring balances and
// budgets: fallback inventory must always be able to fill. It tries the
// assigned/targeted pool first and then broadens to any permitted
// fallback campaign without an assignment list.
func (u *SelectionUseCase) fallbackCampaign(ctx context.Context, candidates []domain.Campaign, prop *domain.Property, rc eligibility.RequestContext) *domain.Campaign {
	if prop.ProhibitFallbackCampaigns {
		return nil
	}

	pool := make([]domain.Campaign, 0, len(candidates))
	for _, c := range candidates {
		if !c.Fallback {
			continue
		}
		if eligibility.AssignedTo(&c, prop.ID) || eligibility.Targeted(&c, prop, rc.Keywords) {
			pool = append(pool, c)
		}
	}
	if winner := u.choose(ctx, restrictToAllowList(pool, prop), rc, true); winner != nil {
		return winner
	}

	broadened := make([]domain.Campaign, 0, len(candidates))
	for _, c := range candidates {
		if !c.Fallback {
			continue
		}
		if eligibility.AssignedTo(&c, prop.ID) ||
			(len(c.AssignedPropertyIDs) == 0 && eligibility.Permitted(&c, prop)) {
			broadened = append(broadened, c)
		}
	}
	return u.choose(ctx, restrictToAllowList(broadened, prop), rc, true)
}

// choose computes per-candidate weights and draws one winner with the
// alias method. For any non-empty pool it always returns a campaign:
// a degenerate draw recovers with a uniform pick, logged non-fatally.
func (u *SelectionUseCase) choose(ctx context.Context, pool []domain.Campaign, rc eligibility.RequestContext, ignoreBudgets bool) *domain.Campaign {
	if len(pool) == 0 {
		return nil
	}

	idx, ok := sampler.New(u.weigh(ctx, pool, rc, ignoreBudgets)).Draw()
	if !ok {
		idx = rand.IntN(len(pool))
		u.logger.Warn("weighted draw yielded no winner, choosing uniformly",
			slog.Int("candidates", len(pool)))
		u.metrics.SamplerFallbacks.Inc()
	}
	return &pool[idx]
}

// weigh computes the per-candidate weights: a deterministic province
// bonus, the candidate's share of the pool's adjusted eCPM (+1.0 so no
// weight is ever zero on price alone) and, for budget-gated draws, its
// share of the pool's remaining daily budget. Share denominators are
// epsilon-floored.
func (u *SelectionUseCase) weigh(ctx context.Context, pool []domain.Campaign, rc eligibility.RequestContext, ignoreBudgets bool) []float64 {
	adjusted := make([]float64, len(pool))
	ecpmSum := 0.0
	for i := range pool {
		adjusted[i] = float64(u.adjuster.AdjustedEcpm(&pool[i], rc.CountryCode))
		ecpmSum += adjusted[i]
	}
	ecpmDen := epsilonFloor(ecpmSum)

	var pcts []float64
	budgetDen := 0.0
	if !ignoreBudgets {
		pcts = make([]float64, len(pool))
		sum := 0.0
		for i := range pool {
			pcts[i] = u.tracker.RemainingDailyBudgetPercentage(ctx, &pool[i])
			sum += pcts[i]
		}
		budgetDen = epsilonFloor(sum)
	}

	weights := make([]float64, len(pool))
	for i := range pool {
		w := round2(adjusted[i]/ecpmDen) + 1.0
		if rc.ProvinceCode != "" && slices.Contains(pool[i].ProvinceCodes, rc.ProvinceCode) {
			w += provinceBonus
		}
		if !ignoreBudgets {
			w += round2(pcts[i] / budgetDen)
		}
		weights[i] = w
	}
	return weights
}

// RecordImpression stores the correlation tuple under token for the
// configured TTL. Writing twice with the same token overwrites.
func (u *SelectionUseCase) RecordImpression(ctx context.Context, token string, campaignID, propertyID int64, ipAddress string) error {
	vi := domain.VirtualImpression{
		Token:      token,
		CampaignID: campaignID,
		PropertyID: propertyID,
		IPAddress:  ipAddress,
	}
	b, err := json.Marshal(vi)
	if err != nil {
		return err
	}
	return u.kv.SetWithTTL(ctx, impressionKey(token), b, u.ttl)
}

// ClickThrough resolves a live correlation token to the campaign's
// click-through URL.
func (u *SelectionUseCase) ClickThrough(ctx context.Context, token string) (string, error) {
	b, err := u.kv.Get(ctx, impressionKey(token))
	if err != nil {
		return "", err
	}
	var vi domain.VirtualImpression
	if err := json.Unmarshal(b, &vi); err != nil {
		return "", err
	}
	c, err := u.repo.GetCampaign(ctx, vi.CampaignID)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", port.ErrNotFound
	}
	return c.URL, nil
}

// Stats proxies ledger aggregates to the caller.
func (u *SelectionUseCase) Stats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	return u.ledger.Stats(ctx, req)
}

// localHour resolves the visitor-local clock hour via the named
// timezone, degrading to UTC when the zone is unknown.
func (u *SelectionUseCase) localHour(now time.Time, tz string) int {
	if tz == "" {
		return now.UTC().Hour()
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return now.UTC().Hour()
	}
	return now.In(loc).Hour()
}

func impressionKey(token string) string { return "vi:" + token }

func restrictToAllowList(pool []domain.Campaign, prop *domain.Property) []domain.Campaign {
	if len(prop.AssignedFallbackCampaignIDs) == 0 {
		return pool
	}
	out := make([]domain.Campaign, 0, len(pool))
	for _, c := range pool {
		if slices.Contains(prop.AssignedFallbackCampaignIDs, c.ID) {
			out = append(out, c)
		}
	}
	return out
}

func orgIDs(pool []domain.Campaign) []int64 {
	ids := make([]int64, 0, len(pool))
	for _, c := range pool {
		if c.OrganizationID != 0 && !slices.Contains(ids, c.OrganizationID) {
			ids = append(ids, c.OrganizationID)
		}
	}
	return ids
}

func epsilonFloor(sum float64) float64 {
	if sum == 0 {
		return epsilonDenominator
	}
	return sum
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
