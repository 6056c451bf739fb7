package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with args and stdin, returning stdout.
// Every run gets an empty config file so the developer's own config is
// never picked up.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("{}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "jpnews" {
			t.Errorf("expected use 'jpnews', got %q", cmd.Use)
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has persistent flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"verbose", "config", "db-dir", "dict", "mode", "kanjidic2", "log-json"} {
			if cmd.PersistentFlags().Lookup(name) == nil {
				t.Errorf("expected persistent flag %q", name)
			}
		}
		if f := cmd.PersistentFlags().Lookup("verbose"); f != nil && f.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %q", f.Shorthand)
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		want := map[string]bool{"serve": false, "annotate": false, "export": false, "migrate": false, "version": false}
		for _, sub := range cmd.Commands() {
			name := strings.Fields(sub.Use)[0]
			if _, ok := want[name]; ok {
				want[name] = true
			}
		}
		for name, found := range want {
			if !found {
				t.Errorf("expected %s subcommand", name)
			}
		}
	})
}

func TestMissingExplicitConfig(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"migrate", "--config", filepath.Join(t.TempDir(), "absent.yaml")})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestInvalidFlagValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"bad dictionary", []string{"annotate", "--dict", "neologd", "日本"}},
		{"bad mode", []string{"annotate", "--mode", "fast", "日本"}},
		{"bad format", []string{"annotate", "-f", "markdown", "日本"}},
		{"bad concurrency", []string{"annotate", "-n", "0", "日本"}},
		{"bad timeout", []string{"serve", "--timeout", "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			args := append([]string{"--db-dir", t.TempDir()}, tt.args...)
			if _, err := runCLI(t, "", args...); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}
