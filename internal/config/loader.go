package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the shower
// timer service.
type Config struct {
	HTTPPort      int
	SQLiteDSN     string
	BridgeURL     string
	BridgeTimeout time.Duration
}

// Load parses configuration values from the current process environment.
//
// Every value has a working default; invalid entries are collected and
// reported together so a misconfigured deployment fails with one message.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:      8080,
		SQLiteDSN:     "file:showerd.db",
		BridgeURL:     "http://localhost:5001/sendToEsp32",
		BridgeTimeout: 5 * time.Second,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("SHOWERD_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "SHOWERD_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("SHOWERD_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if url := strings.TrimSpace(os.Getenv("SHOWERD_BRIDGE_URL")); url != "" {
		cfg.BridgeURL = url
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("SHOWERD_BRIDGE_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "SHOWERD_BRIDGE_TIMEOUT")
		} else {
			cfg.BridgeTimeout = timeout
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
