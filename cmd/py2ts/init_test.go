package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newInitTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "init [path|name]",
		Args:          cobra.MaximumNArgs(1),
		RunE:          runInit,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func TestRunInitCreatesProject(t *testing.T) {
	target := filepath.Join(t.TempDir(), "demo")

	cmd := newInitTestCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{target})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	manifest, err := os.ReadFile(filepath.Join(target, "py2ts.toml"))
	if err != nil {
		t.Fatalf("manifest missing: %v", err)
	}
	if !strings.Contains(string(manifest), "name = \"demo\"") {
		t.Errorf("manifest should carry the project name, got %q", manifest)
	}

	hello, err := os.ReadFile(filepath.Join(target, "hello.py"))
	if err != nil {
		t.Fatalf("hello.py missing: %v", err)
	}
	if string(hello) != "print(\"hi\")\n" {
		t.Errorf("hello.py = %q", hello)
	}

	// Созданный манифест должен читаться обратно без ошибок
	cfg, err := loadProjectConfig(filepath.Join(target, "py2ts.toml"))
	if err != nil {
		t.Fatalf("generated manifest does not load: %v", err)
	}
	if cfg.Transpile.Out != "dist" {
		t.Errorf("out = %q", cfg.Transpile.Out)
	}
}

func TestRunInitRefusesSecondRun(t *testing.T) {
	target := filepath.Join(t.TempDir(), "demo")

	for i := 0; i < 2; i++ {
		cmd := newInitTestCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{target})
		err := cmd.Execute()
		if i == 0 && err != nil {
			t.Fatalf("first init: %v", err)
		}
		if i == 1 {
			if err == nil {
				t.Fatal("second init must fail")
			}
			if !strings.Contains(err.Error(), "already initialized") {
				t.Errorf("unexpected error: %v", err)
			}
		}
	}
}

func TestRunInitKeepsExistingHello(t *testing.T) {
	target := filepath.Join(t.TempDir(), "demo")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	custom := "print(\"custom\")\n"
	if err := os.WriteFile(filepath.Join(target, "hello.py"), []byte(custom), 0o644); err != nil {
		t.Fatalf("write hello.py: %v", err)
	}

	cmd := newInitTestCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(target, "hello.py"))
	if err != nil {
		t.Fatalf("read hello.py: %v", err)
	}
	if string(got) != custom {
		t.Error("existing hello.py must not be overwritten")
	}
	if !strings.Contains(out.String(), "hello.py (existing)") {
		t.Errorf("output should mention existing file, got %q", out.String())
	}
}
