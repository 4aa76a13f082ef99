// Package config defines service configuration structures and loading hooks.
//
// Configuration is loaded once at startup and treated as immutable; the
// registry credentials are handed to the registry client explicitly.
package config

// DefaultRegistryBaseURL is the production trademark registry endpoint.
const DefaultRegistryBaseURL = "https://api.wipo.int/api/v1"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RegistryBaseURL is the root of the trademark registry API.
	RegistryBaseURL string `koanf:"registry_base_url"`

	// RegistryAPIKey and RegistryAPISecret are sent on every registry call.
	RegistryAPIKey    string `koanf:"registry_api_key"`
	RegistryAPISecret string `koanf:"registry_api_secret"`

	// DatabaseURL is accepted for deployment compatibility; nothing reads it.
	DatabaseURL string `koanf:"database_url"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":8000",
		RegistryBaseURL: DefaultRegistryBaseURL,
	}
}
