package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.LocalName != "FindMeServer" {
		t.Errorf("LocalName: got %q", cfg.LocalName)
	}
	if cfg.BasePath != "/org/bluez/findme" {
		t.Errorf("BasePath: got %q", cfg.BasePath)
	}
	if !cfg.IncludeTxPower {
		t.Error("IncludeTxPower: got false")
	}
	if cfg.Adapter != "" || cfg.Listen != "" {
		t.Errorf("Adapter/Listen should default empty, got %q/%q", cfg.Adapter, cfg.Listen)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load missing file: %v", err)
	}
	if cfg != Default() {
		t.Errorf("missing file: got %+v want defaults", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findmed.yaml")
	data := []byte("adapter: hci1\nlocal_name: Locator\ninclude_tx_power: false\nlisten: \":8089\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Adapter != "hci1" {
		t.Errorf("Adapter: got %q", cfg.Adapter)
	}
	if cfg.LocalName != "Locator" {
		t.Errorf("LocalName: got %q", cfg.LocalName)
	}
	if cfg.IncludeTxPower {
		t.Error("IncludeTxPower: want false")
	}
	if cfg.Listen != ":8089" {
		t.Errorf("Listen: got %q", cfg.Listen)
	}
	// Unset fields keep their defaults.
	if cfg.BasePath != "/org/bluez/findme" {
		t.Errorf("BasePath: got %q", cfg.BasePath)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findmed.yaml")
	if err := os.WriteFile(path, []byte("local_name: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml: expected error")
	}
}
