package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"py2ts/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "py2ts [flags] file.py",
	Short: "Python to TypeScript transpilation pipeline",
	Long: `py2ts wraps the pipeline's Python-to-TypeScript transpilation engine.
Pointed at a Python file, it prints the transpiled TypeScript to stdout.
The current engine is the simulated placeholder: output is the source
prefixed with a marker comment.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranspile,
}

// main registers subcommands and persistent flags, then executes the root
// command. Any command error exits with status code 1.
func main() {
	rootCmd.Version = version.Number

	rootCmd.AddCommand(transpileCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the actual stream.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

// notef prints a non-essential note to stderr unless --quiet is set.
func notef(cmd *cobra.Command, format string, args ...any) {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet {
		return
	}
	c := color.New(color.FgYellow)
	if !useColor(cmd, os.Stderr) {
		c.DisableColor()
	}
	c.Fprintf(os.Stderr, "note: "+format+"\n", args...)
}
