package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/voiceofchrist/churchsite/internal/localstore"
	"github.com/voiceofchrist/churchsite/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "hash-password", "--cost", "4", "s3cret!")
	if err != nil {
		t.Fatalf("hash-password: %v", err)
	}
	hash := strings.TrimSpace(out)
	if !auth.CheckPassword(hash, "s3cret!") {
		t.Errorf("printed hash %q does not match the password", hash)
	}
	if cost, _ := bcrypt.Cost([]byte(hash)); cost != 4 {
		t.Errorf("cost = %d, want 4", cost)
	}
}

func TestHashPasswordNeedsArgument(t *testing.T) {
	if _, err := run(t, "hash-password"); err == nil {
		t.Error("expected an error without a password")
	}
}

func TestMigrateList(t *testing.T) {
	out, err := run(t, "migrate", "list")
	if err != nil {
		t.Fatalf("migrate list: %v", err)
	}
	if !strings.Contains(out, "001") {
		t.Errorf("output %q does not list the initial migration", out)
	}
}

func TestLocalResetThenDump(t *testing.T) {
	dir := t.TempDir()

	if _, err := run(t, "local", "reset", "--dir", dir); err != nil {
		t.Fatalf("local reset: %v", err)
	}

	out, err := run(t, "local", "dump", "--dir", dir)
	if err != nil {
		t.Fatalf("local dump: %v", err)
	}

	var collections map[string]json.RawMessage
	if err := json.Unmarshal([]byte(out), &collections); err != nil {
		t.Fatalf("dump is not JSON: %v", err)
	}
	for _, key := range localstore.CollectionKeys {
		if _, ok := collections[key]; !ok {
			t.Errorf("dump is missing %s", key)
		}
	}
}

func TestLocalDumpEmptyDir(t *testing.T) {
	out, err := run(t, "local", "dump", "--dir", t.TempDir())
	if err != nil {
		t.Fatalf("local dump: %v", err)
	}
	if strings.TrimSpace(out) != "{}" {
		t.Errorf("dump of an empty store = %q, want {}", out)
	}
}
