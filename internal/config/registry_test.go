package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/muurk/esplink/internal/device"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir != filepath.Join("/tmp/xdg", "esplink") {
		t.Errorf("GetConfigDir() = %v, want /tmp/xdg/esplink", configDir)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != CurrentVersion {
		t.Errorf("NewRegistry().Version = %v, want %d", reg.Version, CurrentVersion)
	}
	if reg.Targets == nil {
		t.Error("NewRegistry().Targets should not be nil")
	}
	if reg.Preferences.PingTimeout() != device.DefaultPingTimeout {
		t.Errorf("PingTimeout() = %v, want %v", reg.Preferences.PingTimeout(), device.DefaultPingTimeout)
	}
	if !reg.Preferences.NotifyOnCheck() {
		t.Error("NotifyOnCheck() should default to true")
	}
}

func TestPreferences_NilDefaults(t *testing.T) {
	var p *Preferences

	if p.PingTimeout() != device.DefaultPingTimeout {
		t.Errorf("PingTimeout() = %v", p.PingTimeout())
	}
	if p.ControlTimeout() != device.DefaultControlTimeout {
		t.Errorf("ControlTimeout() = %v", p.ControlTimeout())
	}
	if p.Bridge() != DefaultBridgeAddr {
		t.Errorf("Bridge() = %v", p.Bridge())
	}
}

func TestPreferences_Overrides(t *testing.T) {
	off := false
	p := &Preferences{PingTimeoutMS: 3000, ControlTimeoutMS: 1500, NotifyCheckResult: &off, BridgeAddr: ":9000"}

	if p.PingTimeout() != 3*time.Second {
		t.Errorf("PingTimeout() = %v, want 3s", p.PingTimeout())
	}
	if p.ControlTimeout() != 1500*time.Millisecond {
		t.Errorf("ControlTimeout() = %v, want 1.5s", p.ControlTimeout())
	}
	if p.NotifyOnCheck() {
		t.Error("NotifyOnCheck() should be false")
	}
	if p.Bridge() != ":9000" {
		t.Errorf("Bridge() = %v", p.Bridge())
	}
}

func TestRegistry_SetTarget(t *testing.T) {
	reg := NewRegistry()

	if err := reg.SetTarget("", &Target{Host: "10.0.0.2"}); err == nil {
		t.Error("SetTarget() should reject an empty name")
	}
	if err := reg.SetTarget("hall", &Target{}); err == nil {
		t.Error("SetTarget() should reject a target without host")
	}

	if err := reg.SetTarget("hall", &Target{Host: "10.0.0.2", Port: "80"}); err != nil {
		t.Fatalf("SetTarget() error = %v", err)
	}
	if reg.Default != "hall" {
		t.Errorf("first target should become default, got %q", reg.Default)
	}

	if err := reg.SetTarget("lobby", &Target{Host: "10.0.0.3", Port: "80"}); err != nil {
		t.Fatalf("SetTarget() error = %v", err)
	}
	if reg.Default != "hall" {
		t.Errorf("default should not change, got %q", reg.Default)
	}

	names := reg.TargetNames()
	if strings.Join(names, ",") != "hall,lobby" {
		t.Errorf("TargetNames() = %v", names)
	}
}

func TestRegistry_RemoveAndUse(t *testing.T) {
	reg := NewRegistry()
	_ = reg.SetTarget("hall", &Target{Host: "10.0.0.2", Port: "80"})
	_ = reg.SetTarget("lobby", &Target{Host: "10.0.0.3", Port: "80"})

	if err := reg.UseDefault("missing"); err == nil {
		t.Error("UseDefault() should fail for an unknown target")
	}
	if err := reg.UseDefault("lobby"); err != nil {
		t.Fatalf("UseDefault() error = %v", err)
	}

	if !reg.RemoveTarget("lobby") {
		t.Fatal("RemoveTarget() should report removal")
	}
	if reg.Default != "" {
		t.Errorf("removing default should clear it, got %q", reg.Default)
	}
	if reg.RemoveTarget("lobby") {
		t.Error("second RemoveTarget() should report false")
	}
}

func TestRegistry_Resolve(t *testing.T) {
	reg := NewRegistry()

	target, err := reg.Resolve("")
	if err != nil || target != nil {
		t.Fatalf("Resolve(\"\") on empty registry = %v, %v", target, err)
	}

	_ = reg.SetTarget("hall", &Target{Host: "10.0.0.2", Port: "80", Venue: "hall-a"})

	target, err = reg.Resolve("")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if target.Venue != "hall-a" {
		t.Errorf("Resolve() venue = %v", target.Venue)
	}
	if ep := target.Endpoint(); ep.Host != "10.0.0.2" || ep.Port != "80" {
		t.Errorf("Endpoint() = %+v", ep)
	}

	if _, err := reg.Resolve("nope"); err == nil {
		t.Error("Resolve() should fail for unknown name")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if reg.Path() != path {
		t.Errorf("Path() = %v, want %v", reg.Path(), path)
	}
	if len(reg.Targets) != 0 {
		t.Errorf("expected no targets, got %d", len(reg.Targets))
	}
}

func TestRegistrySaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	_ = reg.SetTarget("hall", &Target{
		Host:    "10.0.0.2",
		Port:    "8080",
		Venue:   "hall-a",
		Devices: []string{"stage-lights", "fan"},
	})
	reg.Preferences.PingTimeoutMS = 3000

	if err := reg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should not remain after Save()")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "# esplink configuration") {
		t.Error("saved file should start with the header comment")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	target := loaded.GetTarget("hall")
	if target == nil {
		t.Fatal("target should exist in loaded registry")
	}
	if target.Port != "8080" || target.Venue != "hall-a" {
		t.Errorf("loaded target = %+v", target)
	}
	if len(target.Devices) != 2 || target.Devices[1] != "fan" {
		t.Errorf("loaded devices = %v", target.Devices)
	}
	if loaded.Default != "hall" {
		t.Errorf("loaded default = %v", loaded.Default)
	}
	if loaded.Preferences.PingTimeout() != 3*time.Second {
		t.Errorf("loaded ping timeout = %v", loaded.Preferences.PingTimeout())
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad version", "version: 2\n", "unsupported config version"},
		{"bad yaml", "version: [\n", "failed to parse"},
		{"dangling default", "version: 1\ndefault: gone\n", "not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}
