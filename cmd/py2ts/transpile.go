package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"py2ts/internal/driver"
	"py2ts/internal/source"
)

var transpileCmd = &cobra.Command{
	Use:   "transpile [flags] file.py",
	Short: "Transpile a single Python file",
	Long: `Transpile reads a Python source file and writes its TypeScript rendition
to stdout: a "// SIMULATED transpilation of <path>" header followed by the
source content byte-for-byte. Pass "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranspile,
}

func init() {
	transpileCmd.Flags().String("out", "", "write output to a file instead of stdout")
}

// runTranspile is shared by the root command and the transpile subcommand.
func runTranspile(cmd *cobra.Command, args []string) error {
	path := args[0]

	var res *driver.TranspileResult
	if path == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		res = driver.TranspileSource("<stdin>", content)
	} else {
		var err error
		// Заголовок повторяет путь ровно так, как его набрал пользователь
		res, err = driver.Transpile(path, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	if res.File.Flags&source.FileHasCRLF != 0 {
		notef(cmd, "%s contains CRLF line endings, emitted verbatim", res.HeaderPath)
	}
	if res.File.Flags&source.FileHasBOM != 0 {
		notef(cmd, "%s starts with a UTF-8 BOM, emitted verbatim", res.HeaderPath)
	}

	outPath := ""
	if f := cmd.Flags().Lookup("out"); f != nil {
		outPath = f.Value.String()
	}
	if outPath != "" {
		if err := os.WriteFile(outPath, res.Output, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		return nil
	}

	if _, err := cmd.OutOrStdout().Write(res.Output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
