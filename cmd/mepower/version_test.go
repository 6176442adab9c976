package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestBuildInfo(t *testing.T) {
	t.Parallel()

	if getVersion() == "" {
		t.Error("getVersion() returned empty string")
	}
	if getCommit() == "" {
		t.Error("getCommit() returned empty string")
	}
	if getDate() == "" {
		t.Error("getDate() returned empty string")
	}
	if got := buildSetting("no.such.setting"); got != "unknown" {
		t.Errorf("expected 'unknown', got %q", got)
	}
}

func TestNewVersionCmd(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cmd := NewVersionCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"mepower version", "commit:", "built:"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got %q", want, output)
		}
	}
}
