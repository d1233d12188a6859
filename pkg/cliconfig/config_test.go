package cliconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/getmockd/phiremock/pkg/connection"
)

// isolate points every config lookup at empty temporary directories.
func isolate(t *testing.T) (cwd, configHome string) {
	t.Helper()
	cwd = t.TempDir()
	configHome = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("HOME", t.TempDir())
	for _, env := range []string{EnvHost, EnvPort, EnvScheme, EnvTimeout, EnvLogLevel, EnvLogFormat, EnvJSON} {
		t.Setenv(env, "")
	}
	t.Chdir(cwd)
	return cwd, configHome
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestNewDefault(t *testing.T) {
	cfg := NewDefault()
	if cfg.Host != "localhost" || cfg.Port != 8086 || cfg.Scheme != "http" {
		t.Errorf("endpoint defaults = %s://%s:%d", cfg.Scheme, cfg.Host, cfg.Port)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.Sources["port"] != SourceDefault {
		t.Errorf("Sources[port] = %q, want %q", cfg.Sources["port"], SourceDefault)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestCLIConfig_Validate(t *testing.T) {
	valid := func(mut func(c *CLIConfig)) CLIConfig {
		c := *NewDefault()
		mut(&c)
		return c
	}
	tests := []struct {
		name    string
		config  CLIConfig
		wantErr string
	}{
		{"https", valid(func(c *CLIConfig) { c.Scheme = "https" }), ""},
		{"upper-case level", valid(func(c *CLIConfig) { c.LogLevel = "DEBUG" }), ""},
		{"empty host", valid(func(c *CLIConfig) { c.Host = "" }), "host cannot be empty"},
		{"host with scheme", valid(func(c *CLIConfig) { c.Host = "http://x" }), "bare hostname"},
		{"port too high", valid(func(c *CLIConfig) { c.Port = 70000 }), "port 70000 is out of range"},
		{"bad scheme", valid(func(c *CLIConfig) { c.Scheme = "ftp" }), "ftp"},
		{"negative timeout", valid(func(c *CLIConfig) { c.Timeout = -time.Second }), "must not be negative"},
		{"bad level", valid(func(c *CLIConfig) { c.LogLevel = "loud" }), "logLevel"},
		{"bad format", valid(func(c *CLIConfig) { c.LogFormat = "xml" }), "logFormat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestCLIConfig_Endpoint(t *testing.T) {
	cfg := NewDefault()
	ep, err := cfg.Endpoint()
	if err != nil {
		t.Fatal(err)
	}
	if ep.Address() != "localhost:8086" {
		t.Errorf("Address() = %q", ep.Address())
	}

	cfg.Port = 0
	if _, err := cfg.Endpoint(); !errors.Is(err, connection.ErrInvalidInput) {
		t.Errorf("Endpoint() error = %v, want ErrInvalidInput", err)
	}
}

func TestMergeConfig(t *testing.T) {
	target := NewDefault()
	target.JSON = true
	MergeConfig(target, &CLIConfig{Port: 9000, Timeout: 5 * time.Second}, SourceLocal)

	if target.Port != 9000 || target.Sources["port"] != SourceLocal {
		t.Errorf("port = %d from %q", target.Port, target.Sources["port"])
	}
	if target.Host != DefaultHost || target.Sources["host"] != SourceDefault {
		t.Errorf("host should keep its default, got %q from %q", target.Host, target.Sources["host"])
	}
	if !target.JSON {
		t.Error("programmatic false must not override json")
	}

	MergeConfig(target, &CLIConfig{SetFields: map[string]bool{"json": true}}, SourceFile)
	if target.JSON {
		t.Error("explicit json: false from a file must override")
	}

	MergeConfig(target, nil, SourceFlag)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "host: mocks.internal\nport: 9999\ntimeout: 2s\njson: false\n")

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Host != "mocks.internal" || cfg.Port != 9999 || cfg.Timeout != 2*time.Second {
		t.Errorf("loaded %+v", cfg)
	}
	if !cfg.SetFields["json"] || cfg.SetFields["scheme"] {
		t.Errorf("SetFields = %v", cfg.SetFields)
	}
}

func TestLoadConfigFile_SyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "host: ok\nport: [\n")

	_, err := LoadConfigFile(path)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *ConfigError", err)
	}
	if ce.Path != path {
		t.Errorf("Path = %q, want %q", ce.Path, path)
	}
	if ce.Line == 0 {
		t.Errorf("Line not extracted from %q", ce.Message)
	}
}

func TestLoadAll_Precedence(t *testing.T) {
	cwd, configHome := isolate(t)
	writeConfig(t, filepath.Join(configHome, GlobalConfigDir, "config.yaml"), "host: global.example\nport: 7000\nscheme: https\n")
	writeConfig(t, filepath.Join(cwd, ".phiremockrc.yaml"), "port: 7100\n")
	t.Setenv(EnvTimeout, "3s")

	cfg, err := LoadAll("")
	if err != nil {
		t.Fatal(err)
	}
	checks := []struct {
		key, source string
		ok          bool
	}{
		{"host", SourceGlobal, cfg.Host == "global.example"},
		{"scheme", SourceGlobal, cfg.Scheme == "https"},
		{"port", SourceLocal, cfg.Port == 7100},
		{"timeout", SourceEnv, cfg.Timeout == 3*time.Second},
		{"logLevel", SourceDefault, cfg.LogLevel == DefaultLogLevel},
	}
	for _, c := range checks {
		if !c.ok {
			t.Errorf("%s has the wrong value: %+v", c.key, cfg)
		}
		if cfg.Sources[c.key] != c.source {
			t.Errorf("Sources[%s] = %q, want %q", c.key, cfg.Sources[c.key], c.source)
		}
	}
}

func TestLoadAll_ExplicitFileReplacesLocal(t *testing.T) {
	cwd, _ := isolate(t)
	writeConfig(t, filepath.Join(cwd, ".phiremockrc.yaml"), "port: 7100\n")
	explicit := filepath.Join(t.TempDir(), "ci.yaml")
	writeConfig(t, explicit, "host: ci-mocks\n")

	cfg, err := LoadAll(explicit)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Host != "ci-mocks" || cfg.Sources["host"] != SourceFile {
		t.Errorf("host = %q from %q", cfg.Host, cfg.Sources["host"])
	}
	if cfg.Port != DefaultPort {
		t.Errorf("local file must be skipped, port = %d", cfg.Port)
	}

	if _, err := LoadAll(filepath.Join(cwd, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing explicit file")
	}
}

func TestLoadEnvConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		EnvPort:    "eighty",
		EnvTimeout: "soon",
		EnvJSON:    "maybe",
	}
	for env, value := range tests {
		t.Run(env, func(t *testing.T) {
			isolate(t)
			t.Setenv(env, value)
			if err := LoadEnvConfig(NewDefault()); err == nil || !strings.Contains(err.Error(), env) {
				t.Errorf("LoadEnvConfig() error = %v, want mention of %s", err, env)
			}
		})
	}
}

func TestLoadEnvConfig(t *testing.T) {
	isolate(t)
	t.Setenv(EnvHost, "10.0.0.5")
	t.Setenv(EnvPort, "18086")
	t.Setenv(EnvJSON, "true")
	t.Setenv(EnvLogFormat, "json")

	cfg := NewDefault()
	if err := LoadEnvConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Host != "10.0.0.5" || cfg.Port != 18086 || !cfg.JSON || cfg.LogFormat != "json" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Sources["json"] != SourceEnv {
		t.Errorf("Sources[json] = %q", cfg.Sources["json"])
	}
}
