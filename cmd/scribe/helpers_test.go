package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeStubScript drops an executable shell script and returns its path.
func writeStubScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}

type testConfig struct {
	interpreter string
	ntfyTopic   string
}

// writeConfigFile writes a config file with isolated directories and a stub
// interpreter so preflight passes without a real engine install.
func writeConfigFile(t *testing.T, tc testConfig) string {
	t.Helper()
	base := t.TempDir()
	if tc.interpreter == "" {
		tc.interpreter = writeStubScript(t, "python3", "echo '1.0.0'\n")
	}

	content := fmt.Sprintf("[paths]\nwork_dir = %q\noutput_dir = %q\n\n[whisper]\ninterpreter = %q\n\n[logging]\nlevel = %q\n",
		filepath.Join(base, "work"),
		filepath.Join(base, "out"),
		tc.interpreter,
		"error",
	)
	if tc.ntfyTopic != "" {
		content += fmt.Sprintf("\n[notifications]\nntfy_topic = %q\n", tc.ntfyTopic)
	}

	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writeTestConfig(t *testing.T) string {
	t.Helper()
	return writeConfigFile(t, testConfig{})
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cliArgs := make([]string, 0, len(args)+2)
	if configPath != "" {
		cliArgs = append(cliArgs, "--config", configPath)
	}
	cliArgs = append(cliArgs, args...)
	cmd.SetArgs(cliArgs)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
