package main

import (
	"testing"

	"github.com/voiceofchrist/churchsite/internal/bootstrap"
)

func TestConfigFlagDefault(t *testing.T) {
	cmd := newRootCmd()
	flag := cmd.Flags().Lookup("config")
	if flag == nil {
		t.Fatal("missing --config flag")
	}
	if flag.DefValue != bootstrap.DefaultConfigPath {
		t.Errorf("--config default = %q, want %q", flag.DefValue, bootstrap.DefaultConfigPath)
	}
}

func TestRejectsPositionalArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"serve"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an unexpected argument")
	}
}
