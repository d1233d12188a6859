package cliconfig

import "time"

// DefaultHost is the host of a locally started Phiremock server.
const DefaultHost = "localhost"

// DefaultPort is Phiremock's default port.
const DefaultPort = 8086

// DefaultScheme is the scheme of the control channel.
const DefaultScheme = "http"

// DefaultTimeout bounds every request to the server.
const DefaultTimeout = 30 * time.Second

// DefaultLogLevel keeps the CLI quiet unless something goes wrong.
const DefaultLogLevel = "warn"

// DefaultLogFormat is human-readable text on stderr.
const DefaultLogFormat = "text"

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		Host:      DefaultHost,
		Port:      DefaultPort,
		Scheme:    DefaultScheme,
		Timeout:   DefaultTimeout,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Sources:   make(map[string]string),
	}

	for _, key := range []string{"host", "port", "scheme", "timeout", "logLevel", "logFormat", "json"} {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}
