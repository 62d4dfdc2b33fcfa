// Package version carries build metadata stamped in via -ldflags.
package version

import "github.com/fatih/color"

var (
	// Number is the plain semantic version.
	Number = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var accent = color.New(color.FgCyan, color.Bold)

// Pretty returns the version with the number accented for terminals.
// Коды цветов глушатся самим fatih/color, если вывод не в терминал.
func Pretty() string {
	return accent.Sprint(Number)
}
