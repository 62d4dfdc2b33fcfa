package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new py2ts project",
	Long: `Initialize a new py2ts project by creating a project manifest (py2ts.toml)
and a hello-world source file (hello.py). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Project name from directory basename
	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "py2ts-project"
	}

	manifestPath := filepath.Join(target, "py2ts.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	if err := os.WriteFile(manifestPath, []byte(buildDefaultManifest(name)), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	helloPath := filepath.Join(target, "hello.py")
	createdHello := false
	if _, err := os.Stat(helloPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(helloPath, []byte(defaultHelloPy()), 0o600); err != nil {
			return fmt.Errorf("failed to write hello.py: %w", err)
		}
		createdHello = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized py2ts project in %s\n", rel)
	fmt.Fprintf(cmd.OutOrStdout(), "  - py2ts.toml\n")
	if createdHello {
		fmt.Fprintf(cmd.OutOrStdout(), "  - hello.py\n")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "  - hello.py (existing)\n")
	}
	return nil
}

// buildDefaultManifest returns a minimal TOML manifest marking a py2ts project root.
func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# py2ts project manifest
[package]
name = "%s"

[transpile]
source = "."
out = "dist"
jobs = 0
`, name)
}

func defaultHelloPy() string {
	return `print("hi")
`
}
