package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// Store backends understood by the client.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	BackendRemote = "remote"
	BackendS3     = "s3"
)

var backends = []string{BackendSQLite, BackendMemory, BackendRemote, BackendS3}

// Config holds runtime settings for the SafeTrace client.
//
// StoreBackend selects where the encrypted collection lives; the other
// fields configure the individual backends.
type Config struct {
	StoreBackend string
	DBPath       string

	ServerEndpointAddr string
	AccessToken        string
	RequestTimeout     time.Duration
	// OnlineCheckInterval is how often the remote backend is probed.
	OnlineCheckInterval time.Duration

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	LogLevel string
}

// defaultDBPath puts the database under the user's home directory, or in
// the working directory when no home is known.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "safetrace.db"
	}
	return filepath.Join(home, ".safetrace", "vault.db")
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoreBackend = BackendSQLite
	c.DBPath = defaultDBPath()
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 5 * time.Second
	c.OnlineCheckInterval = 30 * time.Second
	c.S3Region = "us-east-1"
	c.S3Bucket = "safetrace"
	c.LogLevel = "warn"
}

// Validate reports settings the client cannot start with.
func (c *Config) Validate() error {
	if !slices.Contains(backends, c.StoreBackend) {
		return fmt.Errorf("unknown store backend %q (want one of %v)", c.StoreBackend, backends)
	}
	if c.StoreBackend == BackendSQLite && c.DBPath == "" {
		return fmt.Errorf("sqlite backend needs a database path")
	}
	if c.StoreBackend == BackendS3 && c.S3Bucket == "" {
		return fmt.Errorf("s3 backend needs a bucket")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.StoreBackend == BackendRemote && c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
