package configs

// Redis configures the virtual impression store. When disabled (or when
// the connection fails at startup) the application falls back to the
// in-process store, which is fine for a single node.
type Redis struct {
	// Addr is a redis:// connection URL accepted by redis.ParseURL.
	Addr string `env:"ADDRESS" envDefault:"redis://localhost:6379/0"`
	// Enabled toggles Redis entirely.
	Enabled bool `env:"ENABLED" envDefault:"true"`
}
