package cliconfig

import (
	"fmt"
	"slices"
	"strings"

	"github.com/getmockd/phiremock/pkg/connection"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Validate checks that the configuration describes a usable server endpoint
// and logging setup.
func (c *CLIConfig) Validate() error {
	if _, err := c.Endpoint(); err != nil {
		return err
	}
	if _, err := connection.NewScheme(c.Scheme); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout %s must not be negative", c.Timeout)
	}
	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("logLevel %q must be one of %s", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if !slices.Contains(validLogFormats, strings.ToLower(c.LogFormat)) {
		return fmt.Errorf("logFormat %q must be one of %s", c.LogFormat, strings.Join(validLogFormats, ", "))
	}
	return nil
}

// Endpoint returns the validated server endpoint.
func (c *CLIConfig) Endpoint() (connection.Endpoint, error) {
	return connection.NewEndpoint(c.Host, c.Port)
}
