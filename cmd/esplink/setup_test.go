package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/muurk/esplink/internal/config"
	"github.com/muurk/esplink/internal/notify"
)

// resetFlags restores global flag state after a test.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		hostFlag, portFlag, targetFlag, configFlag = "", "", "", ""
		timeoutFlag = 0
		quietFlag = false
	})
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")

	reg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	_ = reg.SetTarget("hall", &config.Target{Host: "10.0.0.2", Port: "80", Venue: "hall-a"})
	_ = reg.SetTarget("lobby", &config.Target{Host: "10.0.0.3", Port: "8080", Venue: "lobby"})
	reg.Preferences.PingTimeoutMS = 3000
	if err := reg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	return path
}

func TestLoadSession_Precedence(t *testing.T) {
	resetFlags(t)
	t.Setenv(envHost, "")
	t.Setenv(envPort, "")
	t.Setenv(envTarget, "")
	configFlag = writeConfig(t)

	s, err := loadSession()
	if err != nil {
		t.Fatalf("loadSession() error = %v", err)
	}
	if s.endpoint.Host != "10.0.0.2" || s.endpoint.Port != "80" {
		t.Errorf("default target endpoint = %+v", s.endpoint)
	}

	t.Setenv(envTarget, "lobby")
	s, err = loadSession()
	if err != nil {
		t.Fatalf("loadSession() error = %v", err)
	}
	if s.endpoint.Host != "10.0.0.3" || s.venue("") != "lobby" {
		t.Errorf("env target endpoint = %+v venue = %q", s.endpoint, s.venue(""))
	}

	t.Setenv(envPort, "9000")
	hostFlag = "http://10.0.0.9/"
	s, err = loadSession()
	if err != nil {
		t.Fatalf("loadSession() error = %v", err)
	}
	if s.endpoint.Host != "http://10.0.0.9/" || s.endpoint.Port != "9000" {
		t.Errorf("flag/env override endpoint = %+v", s.endpoint)
	}
	if s.venue("explicit") != "explicit" {
		t.Error("explicit venue should win")
	}
}

func TestLoadSession_UnknownTarget(t *testing.T) {
	resetFlags(t)
	t.Setenv(envTarget, "")
	configFlag = writeConfig(t)
	targetFlag = "missing"

	if _, err := loadSession(); err == nil {
		t.Error("loadSession() should fail for an unknown target")
	}
}

func TestSessionClient_Timeouts(t *testing.T) {
	resetFlags(t)
	t.Setenv(envTarget, "")
	configFlag = writeConfig(t)

	s, err := loadSession()
	if err != nil {
		t.Fatalf("loadSession() error = %v", err)
	}

	c, err := s.client(notify.Nop)
	if err != nil {
		t.Fatalf("client() error = %v", err)
	}
	if c.PingTimeout != 3*time.Second {
		t.Errorf("PingTimeout = %v, want 3s from config", c.PingTimeout)
	}

	timeoutFlag = 1500 * time.Millisecond
	c, err = s.client(notify.Nop)
	if err != nil {
		t.Fatalf("client() error = %v", err)
	}
	if c.PingTimeout != timeoutFlag || c.ControlTimeout != timeoutFlag {
		t.Errorf("timeouts = %v/%v, want --timeout to win", c.PingTimeout, c.ControlTimeout)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "", "c"); got != "c" {
		t.Errorf("firstNonEmpty() = %q", got)
	}
	if got := firstNonEmpty(); got != "" {
		t.Errorf("firstNonEmpty() = %q", got)
	}
}
