// Package version provides build-time version information.
package version

import "fmt"

// These variables are set at build time via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Template returns the cobra version template for the named binary.
func Template(name string) string {
	return fmt.Sprintf("%s version {{.Version}} (commit: %s, built: %s)\n", name, Commit, Date)
}
