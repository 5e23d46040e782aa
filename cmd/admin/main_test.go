package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func setAdminEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "admin-test-secret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "finman.db"))
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"no command", nil, true},
		{"unknown command", []string{"explode"}, true},
		{"help", []string{"help"}, false},
		{"classify without text", []string{"classify"}, true},
		{"create-user without email", []string{"create-user", "--password=s3cretpass"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(tt.args, &out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("run(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errUsage) {
				t.Errorf("run(%v) error = %v, want errUsage", tt.args, err)
			}
		})
	}
}

func TestRun_Classify(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"classify", "uber", "ride"}, &out); err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "Travel" {
		t.Errorf("classify = %q, want %q", got, "Travel")
	}
}

func TestRun_MigrateAndCreateUser(t *testing.T) {
	setAdminEnv(t)

	var out bytes.Buffer
	if err := run([]string{"migrate"}, &out); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "sqlite") {
		t.Errorf("migrate output = %q, want driver name", out.String())
	}

	out.Reset()
	args := []string{"create-user", "--email=Bob@Example.com", "--password=s3cretpass"}
	if err := run(args, &out); err != nil {
		t.Fatalf("create-user failed: %v", err)
	}
	if !strings.Contains(out.String(), "Bob <bob@example.com>") {
		t.Errorf("create-user output = %q", out.String())
	}

	if err := run(args, &out); err == nil {
		t.Error("second create-user with the same email succeeded, want conflict")
	}
}

func TestRun_HelpPrintsUsageOnce(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"help"}, &out); err != nil {
		t.Fatalf("help failed: %v", err)
	}
	if out.String() != usage {
		t.Errorf("help output = %q, want the usage text verbatim", out.String())
	}
}
