package main

import "testing"

// TestRootCommandFlags tests the flags and their defaults
func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand()

	if cmd.Use != "drive-rag" {
		t.Errorf("expected command drive-rag, got %s", cmd.Use)
	}

	config := cmd.Flags().Lookup("config")
	if config == nil || config.DefValue != "./configs" {
		t.Fatalf("expected --config defaulting to ./configs, got %+v", config)
	}

	if err := cmd.Flags().Parse([]string{"--env", "production", "--config", "/etc/drive-rag"}); err != nil {
		t.Fatalf("expected flags to parse, got %v", err)
	}
	if got, _ := cmd.Flags().GetString("env"); got != "production" {
		t.Errorf("expected env production, got %s", got)
	}
	if got, _ := cmd.Flags().GetString("config"); got != "/etc/drive-rag" {
		t.Errorf("expected config /etc/drive-rag, got %s", got)
	}
}
