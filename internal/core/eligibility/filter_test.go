package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"vista-ads/internal/core/domain"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func activeCampaign() domain.Campaign {
	return domain.Campaign{
		ID:        1,
		Status:    domain.CampaignStatusActive,
		StartDate: date("2019-01-01"),
		EndDate:   date("2019-04-01"),
	}
}

// 2019-01-15 is a Tuesday, 2019-01-19 a Saturday.
func weekdayContext() RequestContext {
	return RequestContext{Today: date("2019-01-15"), Hour: 12}
}

func TestAvailableNowStatusAndWindow(t *testing.T) {
	f := Filter{ProhibitedHourStart: 0, ProhibitedHourEnd: 5}
	rc := weekdayContext()

	pending := activeCampaign()
	pending.Status = domain.CampaignStatusPending
	archived := activeCampaign()
	archived.Status = domain.CampaignStatusArchived
	expired := activeCampaign()
	expired.EndDate = date("2019-01-10")

	out := f.AvailableNow([]domain.Campaign{activeCampaign(), pending, archived, expired}, rc)
	assert.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)
}

func TestAvailableNowWeekendExcludesWeekdaysOnly(t *testing.T) {
	f := Filter{ProhibitedHourEnd: 5}
	weekdaysOnly := activeCampaign()
	weekdaysOnly.WeekdaysOnly = true

	rc := weekdayContext()
	assert.Len(t, f.AvailableNow([]domain.Campaign{weekdaysOnly}, rc), 1)

	rc.Today = date("2019-01-19")
	assert.Empty(t, f.AvailableNow([]domain.Campaign{weekdaysOnly}, rc))
	assert.Len(t, f.AvailableNow([]domain.Campaign{activeCampaign()}, rc), 1)
}

func TestAvailableNowProhibitedHourExcludesCoreHoursOnly(t *testing.T) {
	f := Filter{ProhibitedHourStart: 0, ProhibitedHourEnd: 5}
	coreHours := activeCampaign()
	coreHours.CoreHoursOnly = true

	rc := weekdayContext()
	rc.Hour = 3
	assert.Empty(t, f.AvailableNow([]domain.Campaign{coreHours}, rc))
	assert.Len(t, f.AvailableNow([]domain.Campaign{activeCampaign()}, rc), 1)

	// Window bounds are inclusive.
	rc.Hour = 5
	assert.Empty(t, f.AvailableNow([]domain.Campaign{coreHours}, rc))
	rc.Hour = 6
	assert.Len(t, f.AvailableNow([]domain.Campaign{coreHours}, rc), 1)
}

func TestGeoTargetedCountry(t *testing.T) {
	f := Filter{}
	targeted := activeCampaign()
	targeted.CountryCodes = []string{"GB", "US"}
	untargeted := activeCampaign()
	untargeted.ID = 2

	rc := weekdayContext()
	rc.CountryCode = "US"
	out := f.GeoTargeted([]domain.Campaign{targeted, untargeted}, rc)
	assert.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)

	// Unknown country admits only untargeted campaigns.
	rc.CountryCode = ""
	out = f.GeoTargeted([]domain.Campaign{targeted, untargeted}, rc)
	assert.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)

	rc.CountryCode = "FR"
	out = f.GeoTargeted([]domain.Campaign{targeted, untargeted}, rc)
	assert.Empty(t, out)
}

func TestGeoTargetedProvince(t *testing.T) {
	f := Filter{}
	provincial := activeCampaign()
	provincial.CountryCodes = []string{"US"}
	provincial.ProvinceCodes = []string{"US-NY"}
	national := activeCampaign()
	national.ID = 2
	national.CountryCodes = []string{"US"}

	rc := weekdayContext()
	rc.CountryCode = "US"

	// Unknown province: only campaigns without province targets pass.
	out := f.GeoTargeted([]domain.Campaign{provincial, national}, rc)
	assert.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)

	rc.ProvinceCode = "US-NY"
	out = f.GeoTargeted([]domain.Campaign{provincial, national}, rc)
	assert.Len(t, out, 2)

	rc.ProvinceCode = "US-CA"
	out = f.GeoTargeted([]domain.Campaign{provincial, national}, rc)
	assert.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)
}

func TestPermitted(t *testing.T) {
	c := activeCampaign()
	c.AdvertiserID = 7
	p := &domain.Property{ProhibitedAdvertiserIDs: []int64{3, 7}}
	assert.False(t, Permitted(&c, p))

	p = &domain.Property{ProhibitedAdvertiserIDs: []int64{3}}
	assert.True(t, Permitted(&c, p))
}

func TestAssignedTo(t *testing.T) {
	c := activeCampaign()
	c.AssignedPropertyIDs = []int64{4, 9}
	assert.True(t, AssignedTo(&c, 9))
	assert.False(t, AssignedTo(&c, 5))
}

func TestTargetedWithRequestKeywords(t *testing.T) {
	c := activeCampaign()
	c.Keywords = []string{"databases", "go"}
	c.NegativeKeywords = []string{"crypto"}
	p := &domain.Property{ID: 1, Active: true}

	assert.True(t, Targeted(&c, p, []string{"go"}))
	assert.False(t, Targeted(&c, p, []string{"rust"}))

	// A negative keyword hit vetoes a positive match.
	assert.False(t, Targeted(&c, p, []string{"go", "crypto"}))
}

func TestTargetedFallsBackToPropertyKeywords(t *testing.T) {
	c := activeCampaign()
	c.Keywords = []string{"go"}
	active := &domain.Property{ID: 1, Active: true, Keywords: []string{"go", "devops"}}
	inactive := &domain.Property{ID: 2, Active: false, Keywords: []string{"go"}}

	assert.True(t, Targeted(&c, active, nil))
	assert.False(t, Targeted(&c, inactive, nil))
}

func TestTargetedNeverBypassesAssignment(t *testing.T) {
	c := activeCampaign()
	c.Keywords = []string{"go"}
	c.AssignedPropertyIDs = []int64{99}
	p := &domain.Property{ID: 1, Active: true, Keywords: []string{"go"}}

	assert.False(t, Targeted(&c, p, []string{"go"}))
}

func TestTargetedRespectsProhibitedAdvertisers(t *testing.T) {
	c := activeCampaign()
	c.AdvertiserID = 7
	c.Keywords = []string{"go"}
	p := &domain.Property{ID: 1, Active: true, ProhibitedAdvertiserIDs: []int64{7}}

	assert.False(t, Targeted(&c, p, []string{"go"}))
}

func TestOverlap(t *testing.T) {
	assert.True(t, Overlap([]string{"a", "b"}, []string{"b", "c"}))
	assert.False(t, Overlap([]string{"a"}, []string{"b"}))
	assert.False(t, Overlap(nil, []string{"a"}))
	assert.False(t, Overlap([]string{"a"}, nil))
}
