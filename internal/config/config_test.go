package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoadValid(t *testing.T) {
	p := writeConfig(t, "version: 1\nsheet:\n  api_url: https://sheet.example/api\nnetwork:\n  timeout_seconds: 5\n")
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if c.Sheet.APIURL != "https://sheet.example/api" {
		t.Fatalf("unexpected api_url: %q", c.Sheet.APIURL)
	}
	if c.Timeout() != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", c.Timeout())
	}
}

func TestLoadRejectsBadVersion(t *testing.T) {
	p := writeConfig(t, "version: 2\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected error for unsupported version")
	}
}

func TestLoadExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_SHEET_URL", "https://env.example/api")
	p := writeConfig(t, "version: 1\nsheet:\n  api_url: ${TEST_SHEET_URL}\n")
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if c.Sheet.APIURL != "https://env.example/api" {
		t.Fatalf("placeholder not expanded: %q", c.Sheet.APIURL)
	}
}

func TestTimeoutDefault(t *testing.T) {
	c := &Config{Version: 1}
	if c.Timeout() != 15*time.Second {
		t.Fatalf("default timeout = %v, want 15s", c.Timeout())
	}
}

func TestResolveEnvBeatsFile(t *testing.T) {
	t.Setenv(KeyAPIURL, "https://env.example/api")
	r := NewResolver(&Config{Version: 1, Sheet: Sheet{APIURL: "https://file.example/api"}})
	v, err := r.Resolve(KeyAPIURL)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if v.Raw != "https://env.example/api" || v.Source != SourceEnv {
		t.Fatalf("got %+v, want env value", v)
	}
}

func TestResolveFileWhenEnvAbsent(t *testing.T) {
	t.Setenv(KeyAPIURL, "")
	r := NewResolver(&Config{Version: 1, Sheet: Sheet{APIURL: "https://file.example/api"}})
	v, err := r.Resolve(KeyAPIURL)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if v.Raw != "https://file.example/api" || v.Source != SourceFile {
		t.Fatalf("got %+v, want file value", v)
	}
}

func TestResolveRequiredMissing(t *testing.T) {
	t.Setenv(KeyAPIURL, "")
	r := NewResolver(&Config{Version: 1})
	if _, err := r.APIURL(); err == nil {
		t.Fatalf("expected ErrMissing")
	} else if !errors.Is(err, ErrMissing) {
		t.Fatalf("error %v does not wrap ErrMissing", err)
	}
}

func TestResolveOptionalImageAbsent(t *testing.T) {
	t.Setenv(KeyHeaderImage, "")
	r := NewResolver(&Config{Version: 1, Images: Images{Dir: t.TempDir()}})
	v, err := r.Resolve(KeyHeaderImage)
	if err != nil {
		t.Fatalf("optional setting must not error: %v", err)
	}
	if v.Present() {
		t.Fatalf("expected absent value, got %+v", v)
	}
}

func TestResolveImageProbePreferenceOrder(t *testing.T) {
	t.Setenv(KeyHeaderImage, "")
	dir := t.TempDir()
	for _, name := range []string{"header.jpg", "header.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write asset: %v", err)
		}
	}
	r := NewResolver(&Config{Version: 1, Images: Images{Dir: dir}})
	v, err := r.Resolve(KeyHeaderImage)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if v.Source != SourceProbe || filepath.Base(v.Raw) != "header.png" {
		t.Fatalf("got %+v, want probed header.png", v)
	}
}

func TestResolveImageEnvBeatsProbe(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "footer.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write asset: %v", err)
	}
	t.Setenv(KeyFooterImage, "/elsewhere/footer.png")
	r := NewResolver(&Config{Version: 1, Images: Images{Dir: dir}})
	v, err := r.Resolve(KeyFooterImage)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if v.Raw != "/elsewhere/footer.png" || v.Source != SourceEnv {
		t.Fatalf("got %+v, want env value", v)
	}
}
