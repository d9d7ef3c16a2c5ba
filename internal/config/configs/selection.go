package configs

import "time"

// Selection holds the request-time knobs of the selection engine. The
// prohibited-hour window is inclusive on both ends and compared against
// the visitor-local clock hour.
type Selection struct {
	ProhibitedHourStart int `env:"PROHIBITED_HOUR_START" envDefault:"0"`
	ProhibitedHourEnd   int `env:"PROHIBITED_HOUR_END" envDefault:"5"`

	// ImpressionTTL bounds the click/impression reconciliation window.
	ImpressionTTL time.Duration `env:"IMPRESSION_TTL" envDefault:"30s"`

	// UnknownCountryMultiplier prices campaigns for visitors whose
	// country could not be resolved.
	UnknownCountryMultiplier float64 `env:"UNKNOWN_COUNTRY_MULTIPLIER" envDefault:"0.05"`
}
