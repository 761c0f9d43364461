package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrMissing reports a required setting that no source could supply.
var ErrMissing = errors.New("config value missing")

// Source records where a resolved value came from.
type Source string

const (
	SourceEnv    Source = "env"
	SourceFile   Source = "file"
	SourceProbe  Source = "probe"
	SourceAbsent Source = "absent"
)

// Value is one resolved setting.
type Value struct {
	Raw    string
	Source Source
}

// Present reports whether any source yielded a value.
func (v Value) Present() bool { return v.Source != SourceAbsent }

// Setting keys understood by the resolver. KeyAPIURL is required; the
// image keys are optional and fall back to probing Images.Dir.
const (
	KeyAPIURL       = "SHEET_API_URL"
	KeyHeaderImage  = "HEADER_IMAGE"
	KeySidebarImage = "SIDEBAR_IMAGE"
	KeyFooterImage  = "FOOTER_IMAGE"
)

// imageExts is the probe preference order; the first existing file wins.
var imageExts = []string{".png", ".jpg", ".jpeg", ".gif"}

// Resolver resolves settings with strict precedence: environment
// variable, then config file, then a computed default (filesystem probe
// for images). Lower-precedence sources are never consulted once a
// higher one yields a value. Resolution is a pure read of the
// environment and filesystem.
type Resolver struct {
	cfg *Config
}

func NewResolver(cfg *Config) *Resolver {
	if cfg == nil {
		cfg = &Config{Version: 1}
	}
	return &Resolver{cfg: cfg}
}

// Resolve returns the value for a setting key. Unknown keys are an
// error. A required key with no value fails with ErrMissing; optional
// keys resolve to an absent Value without error.
func (r *Resolver) Resolve(key string) (Value, error) {
	switch key {
	case KeyAPIURL:
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return Value{Raw: v, Source: SourceEnv}, nil
		}
		if v := strings.TrimSpace(r.cfg.Sheet.APIURL); v != "" {
			return Value{Raw: v, Source: SourceFile}, nil
		}
		return Value{Source: SourceAbsent}, fmt.Errorf("%s: %w", key, ErrMissing)
	case KeyHeaderImage:
		return r.resolveImage(key, r.cfg.Images.Header, "header"), nil
	case KeySidebarImage:
		return r.resolveImage(key, r.cfg.Images.Sidebar, "sidebar"), nil
	case KeyFooterImage:
		return r.resolveImage(key, r.cfg.Images.Footer, "footer"), nil
	default:
		return Value{Source: SourceAbsent}, fmt.Errorf("unknown setting: %s", key)
	}
}

// APIURL is the required endpoint; it fails with ErrMissing when no
// source supplies it.
func (r *Resolver) APIURL() (string, error) {
	v, err := r.Resolve(KeyAPIURL)
	if err != nil {
		return "", err
	}
	return v.Raw, nil
}

// Image resolves an optional image setting; ok is false when absent.
func (r *Resolver) Image(key string) (path string, ok bool) {
	v, err := r.Resolve(key)
	if err != nil || !v.Present() {
		return "", false
	}
	return v.Raw, true
}

func (r *Resolver) resolveImage(key, fileValue, stem string) Value {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return Value{Raw: v, Source: SourceEnv}
	}
	if v := strings.TrimSpace(fileValue); v != "" {
		return Value{Raw: v, Source: SourceFile}
	}
	dir := r.cfg.Images.Dir
	if dir == "" {
		dir = "assets"
	}
	for _, ext := range imageExts {
		p := filepath.Join(dir, stem+ext)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return Value{Raw: p, Source: SourceProbe}
		}
	}
	return Value{Source: SourceAbsent}
}
