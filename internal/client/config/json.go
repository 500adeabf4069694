package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/safetrace/internal/flagx"
	"github.com/dmitrijs2005/safetrace/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "empty".
type JsonConfig struct {
	StoreBackend       *string         `json:"store"`
	DBPath             *string         `json:"db_path"`
	ServerEndpointAddr *string         `json:"server_endpoint_addr"`
	AccessToken        *string         `json:"access_token"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	OnlineCheck        *timex.Duration `json:"online_check_interval"`
	S3Endpoint         *string         `json:"s3_endpoint"`
	S3Region           *string         `json:"s3_region"`
	S3Bucket           *string         `json:"s3_bucket"`
	S3AccessKey        *string         `json:"s3_access_key"`
	S3SecretKey        *string         `json:"s3_secret_key"`
	LogLevel           *string         `json:"log_level"`
}

func overlay(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// parseJson overlays Config with values from the JSON file named by -c or
// -config. Without either flag it does nothing. Read and decode errors panic.
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

	overlay(&cfg.StoreBackend, jc.StoreBackend)
	overlay(&cfg.DBPath, jc.DBPath)
	overlay(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	overlay(&cfg.AccessToken, jc.AccessToken)
	overlay(&cfg.S3Endpoint, jc.S3Endpoint)
	overlay(&cfg.S3Region, jc.S3Region)
	overlay(&cfg.S3Bucket, jc.S3Bucket)
	overlay(&cfg.S3AccessKey, jc.S3AccessKey)
	overlay(&cfg.S3SecretKey, jc.S3SecretKey)
	overlay(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheck != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheck.Duration
	}
}
