// Package eligibility narrows campaign sets to those valid for a
// request. Targeting runs as explicit set operations over the
// campaigns' sorted tag slices — overlap for positive keywords,
// non-overlap for negative keywords, containment for country and
// province targets — so every backend behaves identically.
package eligibility

import (
	"slices"
	"time"

	"vista-ads/internal/core/domain"
)

// RequestContext is the resolved "now" a request is filtered against.
type RequestContext struct {
	// Today is the server-side calendar day.
	Today time.Time
	// Hour is the visitor-local clock hour, resolved through the
	// geolocated timezone with a UTC fallback.
	Hour int
	// CountryCode and ProvinceCode are empty when unresolved.
	CountryCode  string
	ProvinceCode string
	// Keywords are optional caller-supplied search terms.
	Keywords []string
}

// Weekend reports whether Today falls on a Saturday or Sunday.
func (rc RequestContext) Weekend() bool {
	wd := rc.Today.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Filter applies the request-time predicates shared by both tiers.
type Filter struct {
	// ProhibitedHourStart/End bound the inclusive local-hour window in
	// which core-hours-only campaigns are excluded.
	ProhibitedHourStart int
	ProhibitedHourEnd   int
}

// ProhibitedHour reports whether the given local hour falls inside the
// configured window.
func (f Filter) ProhibitedHour(hour int) bool {
	return hour >= f.ProhibitedHourStart && hour <= f.ProhibitedHourEnd
}

// AvailableNow narrows to active campaigns whose date window covers
// today, dropping weekday-only campaigns on weekends and
// core-hours-only campaigns during the prohibited hours.
func (f Filter) AvailableNow(campaigns []domain.Campaign, rc RequestContext) []domain.Campaign {
	weekend := rc.Weekend()
	prohibited := f.ProhibitedHour(rc.Hour)
	out := make([]domain.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if !c.Active() || !c.AvailableOn(rc.Today) {
			continue
		}
		if weekend && c.WeekdaysOnly {
			continue
		}
		if prohibited && c.CoreHoursOnly {
			continue
		}
		out = append(out, c)
	}
	return out
}

// GeoTargeted narrows to campaigns matching the resolved geography.
// With a known country the campaign's country set must contain it; with
// no country only untargeted campaigns pass. Province targets pass when
// absent, or when the resolved province is contained.
func (f Filter) GeoTargeted(campaigns []domain.Campaign, rc RequestContext) []domain.Campaign {
	out := make([]domain.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if rc.CountryCode == "" {
			if len(c.CountryCodes) > 0 {
				continue
			}
		} else if !slices.Contains(c.CountryCodes, rc.CountryCode) {
			continue
		}
		if len(c.ProvinceCodes) > 0 {
			if rc.ProvinceCode == "" || !slices.Contains(c.ProvinceCodes, rc.ProvinceCode) {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// Permitted reports whether the campaign's advertiser is not on the
// property's prohibited list.
func Permitted(c *domain.Campaign, p *domain.Property) bool {
	return !slices.Contains(p.ProhibitedAdvertiserIDs, c.AdvertiserID)
}

// AssignedTo reports whether the campaign explicitly allows the
// property.
func AssignedTo(c *domain.Campaign, propertyID int64) bool {
	return slices.Contains(c.AssignedPropertyIDs, propertyID)
}

// Targeted reports whether the campaign matches the property by
// keywords. Caller keywords win when supplied; otherwise an active
// property's own keywords are used. A campaign carrying an explicit
// assignment list never matches here — assignment must not be
// bypassable through targeting.
func Targeted(c *domain.Campaign, p *domain.Property, keywords []string) bool {
	if len(c.AssignedPropertyIDs) > 0 {
		return false
	}
	if !Permitted(c, p) {
		return false
	}
	if len(keywords) == 0 {
		if !p.Active {
			return false
		}
		keywords = p.Keywords
	}
	if !Overlap(c.Keywords, keywords) {
		return false
	}
	return !Overlap(c.NegativeKeywords, keywords)
}

// Overlap reports whether the two sets share any element.
func Overlap(a, b []string) bool {
	for _, v := range a {
		if slices.Contains(b, v) {
			return true
		}
	}
	return false
}
