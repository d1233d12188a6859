package cliconfig

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variable names
const (
	EnvHost      = "PHIREMOCK_HOST"
	EnvPort      = "PHIREMOCK_PORT"
	EnvScheme    = "PHIREMOCK_SCHEME"
	EnvTimeout   = "PHIREMOCK_TIMEOUT"
	EnvLogLevel  = "PHIREMOCK_LOG_LEVEL"
	EnvLogFormat = "PHIREMOCK_LOG_FORMAT"
	EnvJSON      = "PHIREMOCK_JSON"
	EnvConfig    = "PHIREMOCK_CONFIG"
)

// LoadEnvConfig overlays values present in the environment onto cfg.
func LoadEnvConfig(cfg *CLIConfig) error {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	if v := os.Getenv(EnvHost); v != "" {
		cfg.Host = v
		cfg.Sources["host"] = SourceEnv
	}

	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid port %q", EnvPort, v)
		}
		cfg.Port = port
		cfg.Sources["port"] = SourceEnv
	}

	if v := os.Getenv(EnvScheme); v != "" {
		cfg.Scheme = v
		cfg.Sources["scheme"] = SourceEnv
	}

	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: invalid duration %q", EnvTimeout, v)
		}
		cfg.Timeout = d
		cfg.Sources["timeout"] = SourceEnv
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.Sources["logLevel"] = SourceEnv
	}

	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.Sources["logFormat"] = SourceEnv
	}

	if v := os.Getenv(EnvJSON); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvJSON, v)
		}
		cfg.JSON = b
		cfg.Sources["json"] = SourceEnv
	}
	return nil
}
