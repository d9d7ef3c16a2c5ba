// Package geo provides a fixture-backed resolver. Production
// deployments plug a real IP database behind the same port; the engine
// treats the lookup as a black box either way.
package geo

import (
	"context"

	"vista-ads/internal/core/port"
)

// StaticResolver maps exact client addresses to locations. Unknown
// addresses resolve to an empty Location, which the engine treats as
// unknown country with a UTC clock.
type StaticResolver struct {
	locations map[string]port.Location
}

// NewStaticResolver copies the given table. A nil table is valid and
// resolves everything as unknown.
func NewStaticResolver(locations map[string]port.Location) *StaticResolver {
	table := make(map[string]port.Location, len(locations))
	for ip, loc := range locations {
		table[ip] = loc
	}
	return &StaticResolver{locations: table}
}

func (r *StaticResolver) Resolve(_ context.Context, ipAddress string) port.Location {
	return r.locations[ipAddress]
}

var _ port.GeoResolver = (*StaticResolver)(nil)
