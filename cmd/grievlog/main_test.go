package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"grievlog/internal/testutil"
)

func useTempConfig(t *testing.T, body string) {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GRIEVLOG_CONFIG", p)
}

func TestRunUnknownCommand(t *testing.T) {
	if err := run(context.Background(), []string{"frobnicate"}); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}

func TestSubmitCommandEndToEnd(t *testing.T) {
	fs := testutil.NewFakeSheet()
	defer fs.Close()
	useTempConfig(t, "version: 1\n")
	t.Setenv("SHEET_API_URL", fs.URL)

	if err := run(context.Background(), []string{"submit", "printer", "broken"}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	bodies := fs.Submitted()
	if len(bodies) != 1 {
		t.Fatalf("got %d POSTs, want 1", len(bodies))
	}
	var rec map[string]string
	if err := json.Unmarshal(bodies[0], &rec); err != nil {
		t.Fatalf("POST body not JSON: %v", err)
	}
	if rec["Grievance"] != "printer broken" || rec["Status"] != "" {
		t.Fatalf("unexpected body: %v", rec)
	}
}

func TestSubmitCommandRejectsEmptyText(t *testing.T) {
	fs := testutil.NewFakeSheet()
	defer fs.Close()
	useTempConfig(t, "version: 1\n")
	t.Setenv("SHEET_API_URL", fs.URL)

	if err := run(context.Background(), []string{"submit", "   "}); err == nil {
		t.Fatalf("expected validation error")
	}
	if len(fs.Submitted()) != 0 {
		t.Fatalf("whitespace-only submission reached the network")
	}
}

func TestListCommandRequiresAPIURL(t *testing.T) {
	useTempConfig(t, "version: 1\n")
	t.Setenv("SHEET_API_URL", "")
	if err := run(context.Background(), []string{"list"}); err == nil {
		t.Fatalf("expected missing-config error")
	}
}

func TestListCommand(t *testing.T) {
	fs := testutil.NewFakeSheet(
		map[string]string{"Timestamp": "2024-03-01T09:00:00", "Grievance": "printer broken", "Status": ""},
	)
	defer fs.Close()
	useTempConfig(t, "version: 1\n")
	t.Setenv("SHEET_API_URL", fs.URL)

	if err := run(context.Background(), []string{"list"}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
}
