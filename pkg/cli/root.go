package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/getmockd/phiremock/pkg/cliconfig"
	"github.com/getmockd/phiremock/pkg/logging"
)

var (
	// Persistent flags available to all subcommands
	flagHost      string
	flagPort      int
	flagScheme    string
	flagTimeout   string
	flagLogLevel  string
	flagLogFormat string
	flagConfig    string
	flagInsecure  bool
	flagStats     bool
	jsonOutput    bool

	// cfg is the configuration resolved before each command runs.
	cfg *cliconfig.CLIConfig
	// logger writes to stderr at the configured level.
	logger = logging.Nop()

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "phiremockctl",
	Short: "phiremockctl manages expectations on a Phiremock server",
	Long: `phiremockctl talks to the control API of a running Phiremock server.
It creates and lists expectations, inspects request executions, drives
scenarios and resets the server between test runs.

Connection settings can be provided via flags, PHIREMOCK_* environment
variables, a .phiremockrc.yaml file in the current directory, or
$XDG_CONFIG_HOME/phiremock/config.yaml.`,
	SilenceUsage:      true,
	SilenceErrors:     true, // We handle errors in Execute()
	PersistentPreRunE: loadSettings,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		printStats()
	},
}

// Main runs the command line and returns the process exit code.
func Main() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", formatError(err))
		return 1
	}
	return 0
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	os.Exit(Main())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagHost, "host", "", "Phiremock server host (default: localhost)")
	pf.IntVar(&flagPort, "port", 0, "Phiremock server port (default: 8086)")
	pf.StringVar(&flagScheme, "scheme", "", "Control channel scheme, http or https (default: http)")
	pf.StringVar(&flagTimeout, "timeout", "", "Request timeout, e.g. 5s (default: 30s)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&flagConfig, "config", "", "Config file to use instead of .phiremockrc.yaml")
	pf.BoolVar(&flagInsecure, "insecure", false, "Skip TLS certificate verification")
	pf.BoolVar(&flagStats, "stats", false, "Print request statistics to stderr when done")
	pf.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}

// loadSettings resolves the configuration and the logger. Flags win over
// every other source.
func loadSettings(cmd *cobra.Command, _ []string) error {
	configPath := flagConfig
	if configPath == "" {
		configPath = os.Getenv(cliconfig.EnvConfig)
	}
	loaded, err := cliconfig.LoadAll(configPath)
	if err != nil {
		return err
	}

	flags := &cliconfig.CLIConfig{SetFields: map[string]bool{}}
	pf := cmd.Flags()
	if pf.Changed("host") {
		flags.Host = flagHost
	}
	if pf.Changed("port") {
		flags.Port = flagPort
		if flagPort == 0 {
			return errors.New("--port must be between 1 and 65535")
		}
	}
	if pf.Changed("scheme") {
		flags.Scheme = flagScheme
	}
	if pf.Changed("timeout") {
		d, err := parseDuration(flagTimeout)
		if err != nil {
			return fmt.Errorf("--timeout: %w", err)
		}
		flags.Timeout = d
	}
	if pf.Changed("log-level") {
		flags.LogLevel = flagLogLevel
	}
	if pf.Changed("log-format") {
		flags.LogFormat = flagLogFormat
	}
	if pf.Changed("json") {
		flags.JSON = jsonOutput
		flags.SetFields["json"] = true
	}
	cliconfig.MergeConfig(loaded, flags, cliconfig.SourceFlag)

	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded
	jsonOutput = cfg.JSON

	logger = logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: os.Stderr,
	})
	slog.SetDefault(logger)
	return nil
}
