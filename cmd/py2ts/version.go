package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"py2ts/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var (
	versionFormat   string
	versionShowFull bool
)

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "include git commit and build date")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show py2ts build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := versionPayload{
			Tool:    "py2ts",
			Version: version.Number,
		}
		if versionShowFull {
			payload.GitCommit = version.GitCommit
			payload.BuildDate = version.BuildDate
		}

		switch strings.ToLower(versionFormat) {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		case "pretty":
			number := version.Number
			if useColor(cmd, os.Stdout) {
				number = version.Pretty()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "py2ts %s\n", number)
			if versionShowFull {
				if payload.GitCommit != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", payload.GitCommit)
				}
				if payload.BuildDate != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", payload.BuildDate)
				}
			}
			return nil
		default:
			return fmt.Errorf("unknown format: %s", versionFormat)
		}
	},
}
