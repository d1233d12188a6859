package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/getmockd/phiremock/pkg/cli/internal/output"
)

// controlAPI is the Phiremock control API generation this client speaks.
const controlAPI = "v1"

// versionInfo is the JSON output of the version command.
type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	API     string `json:"api"`
	Go      string `json:"go"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show phiremockctl version information",
	Args:  cobra.NoArgs,
	// No connection settings are needed.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(_ *cobra.Command, _ []string) error {
		info, _ := debug.ReadBuildInfo()
		out := resolveVersion(Version, Commit, BuildDate, info)

		if jsonOutput {
			return output.JSON(out)
		}
		fmt.Printf("phiremockctl %s (%s, %s)\n", displayVersion(out.Version), out.Commit, out.Date)
		fmt.Printf("control API %s, %s %s/%s\n", out.API, out.Go, out.OS, out.Arch)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// resolveVersion fills the values not injected at link time from the
// module build info, when there is any.
func resolveVersion(version, commit, date string, info *debug.BuildInfo) versionInfo {
	out := versionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
		API:     controlAPI,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
	if info == nil {
		return out
	}
	if out.Version == "dev" && info.Main.Version != "" {
		out.Version = info.Main.Version
	}
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if out.Commit == "none" {
				out.Commit = s.Value
			}
		case "vcs.time":
			if out.Date == "unknown" {
				out.Date = s.Value
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if dirty {
		out.Commit += "-dirty"
	}
	return out
}

func displayVersion(v string) string {
	if v != "" && v[0] != 'v' && v != "dev" && v != "(devel)" {
		return "v" + v
	}
	return v
}
