package port

import "context"

// Location is the result of an IP lookup. Any field may be empty; an
// empty TimeZone means the caller should assume UTC.
type Location struct {
	CountryCode  string
	ProvinceCode string
	TimeZone     string
}

// GeoResolver resolves a client address to a coarse location. It is a
// black-box collaborator: implementations must not fail the request —
// on any lookup problem they return an empty Location and the engine
// degrades to unknown-country defaults.
type GeoResolver interface {
	Resolve(ctx context.Context, ipAddress string) Location
}
