// Package config holds runtime settings for the veilcam binaries. Values are
// layered: defaults first, then an optional JSON file, then command-line
// flags, with later sources taking precedence.
package config

import "time"

// Config holds runtime settings shared by the creator and verifier CLIs.
type Config struct {
	// DatabaseDSN is the sqlite file for the local gallery, vault and
	// offers.
	DatabaseDSN string

	// PinataAPIURL / PinataGatewayURL / PinataJWT configure the IPFS pinning
	// provider. An empty JWT disables uploads.
	PinataAPIURL     string
	PinataGatewayURL string
	PinataJWT        string

	// S3 settings for the alternative media store. An empty bucket disables
	// it.
	S3Region       string
	S3BaseEndpoint string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string

	// TimeSourceURLs are consulted in order for trusted time.
	TimeSourceURLs []string

	// LockPollInterval is how often a watched time-lock is re-evaluated.
	LockPollInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "veilcam.db"
	c.PinataAPIURL = "https://api.pinata.cloud"
	c.PinataGatewayURL = "https://gateway.pinata.cloud"
	c.TimeSourceURLs = []string{
		"https://worldtimeapi.org/api/timezone/Etc/UTC",
		"https://timeapi.io/api/Time/current/zone?timeZone=Etc/UTC",
		"https://worldclockapi.com/api/json/utc/now",
	}
	c.LockPollInterval = time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
