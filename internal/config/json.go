package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/veilcam/veilcam/internal/flagx"
	"github.com/veilcam/veilcam/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s" or
// as integer nanoseconds.
type JsonConfig struct {
	DatabaseDSN      string         `json:"database_dsn"`
	PinataAPIURL     string         `json:"pinata_api_url"`
	PinataGatewayURL string         `json:"pinata_gateway_url"`
	PinataJWT        string         `json:"pinata_jwt"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	S3Bucket         string         `json:"s3_bucket"`
	S3AccessKey      string         `json:"s3_access_key"`
	S3SecretKey      string         `json:"s3_secret_key"`
	TimeSourceURLs   []string       `json:"time_source_urls"`
	LockPollInterval timex.Duration `json:"lock_poll_interval"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flag. Absent file flag means no JSON layer. Only fields
// present in the file override the current value.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.PinataAPIURL != "" {
		cfg.PinataAPIURL = jc.PinataAPIURL
	}
	if jc.PinataGatewayURL != "" {
		cfg.PinataGatewayURL = jc.PinataGatewayURL
	}
	if jc.PinataJWT != "" {
		cfg.PinataJWT = jc.PinataJWT
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
	if len(jc.TimeSourceURLs) > 0 {
		cfg.TimeSourceURLs = jc.TimeSourceURLs
	}
	if jc.LockPollInterval.Duration > 0 {
		cfg.LockPollInterval = time.Duration(jc.LockPollInterval.Duration)
	}
}
