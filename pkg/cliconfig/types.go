// Package cliconfig provides configuration types and loading for phiremockctl.
package cliconfig

import "time"

// CLIConfig is the complete configuration of phiremockctl.
// Values can come from several sources, with this precedence:
//  1. Command-line flags (highest priority)
//  2. Environment variables
//  3. Local config file (.phiremockrc.yaml in the current directory)
//  4. Global config file ($XDG_CONFIG_HOME/phiremock/config.yaml)
//  5. Default values (lowest priority)
type CLIConfig struct {
	// Server connection
	Host    string        `yaml:"host" json:"host"`
	Port    int           `yaml:"port" json:"port"`
	Scheme  string        `yaml:"scheme" json:"scheme"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// Logging
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`

	// Output
	JSON bool `yaml:"json" json:"json"`

	// Sources tracks where each value came from.
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records the keys present in a loaded file, so an explicit
	// false can be told apart from an absent key.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFile    = "file"
	SourceFlag    = "flag"
)
