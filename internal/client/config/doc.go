// Package config loads runtime configuration for the SafeTrace client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string   store backend: sqlite, memory, remote or s3
//	-d string   path of the SQLite database
//	-a string   address:port of the vault server (remote backend)
//	-t string   access token sent to the vault server
//	-T int      per-request timeout (seconds)
//	-i int      online check interval of the remote backend (seconds)
//	-e string   S3 endpoint, e.g. http://localhost:9000
//	-g string   S3 region
//	-k string   S3 bucket
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds. Absent keys keep their defaults:
//
//	{
//	  "store": "remote",
//	  "db_path": "/home/me/.safetrace/vault.db",
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "access_token": "eyJhbGciOi...",
//	  "request_timeout": "5s",
//	  "online_check_interval": "30s",
//	  "s3_endpoint": "http://localhost:9000",
//	  "s3_region": "us-east-1",
//	  "s3_bucket": "safetrace",
//	  "s3_access_key": "minio",
//	  "s3_secret_key": "minio123",
//	  "log_level": "info"
//	}
//
// S3 credentials are only read from JSON so they stay out of shell history.
package config
