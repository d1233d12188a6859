package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/phiremock/pkg/cli/internal/output"
	"github.com/getmockd/phiremock/pkg/cliconfig"
)

// configEntry is one row of the config command output.
type configEntry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration and where each value came from.

Sources, from lowest to highest precedence: default, global
($XDG_CONFIG_HOME/phiremock/config.yaml), local (.phiremockrc.yaml) or
file (--config), env (PHIREMOCK_*), flag.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	entries := configEntries(cfg)
	printList(entries, func() {
		w := output.Table("KEY", "VALUE", "SOURCE")
		for _, e := range entries {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", e.Key, e.Value, e.Source)
		}
		_ = w.Flush()
	})
	return nil
}

func configEntries(c *cliconfig.CLIConfig) []configEntry {
	values := []struct{ key, value string }{
		{"host", c.Host},
		{"port", fmt.Sprint(c.Port)},
		{"scheme", c.Scheme},
		{"timeout", c.Timeout.String()},
		{"logLevel", c.LogLevel},
		{"logFormat", c.LogFormat},
		{"json", fmt.Sprint(c.JSON)},
	}
	out := make([]configEntry, len(values))
	for i, v := range values {
		source := c.Sources[v.key]
		if source == "" {
			source = cliconfig.SourceDefault
		}
		out[i] = configEntry{Key: v.key, Value: v.value, Source: source}
	}
	return out
}
