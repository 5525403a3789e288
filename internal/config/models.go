package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/muurk/esplink/internal/device"
)

// CurrentVersion is the registry file format version
const CurrentVersion = 1

// Registry represents the entire user configuration file.
type Registry struct {
	Version     int                `yaml:"version"`
	Default     string             `yaml:"default,omitempty"` // Name of the target used when none is given
	Targets     map[string]*Target `yaml:"targets,omitempty"` // Keyed by a user-chosen name
	Preferences *Preferences       `yaml:"preferences,omitempty"`

	path string
}

// Target is a saved device address plus the venue it belongs to.
type Target struct {
	Host        string   `yaml:"host"`
	Port        string   `yaml:"port"`
	Venue       string   `yaml:"venue,omitempty"`
	Devices     []string `yaml:"devices,omitempty"`      // Device names offered by the console
	ReplySchema string   `yaml:"reply_schema,omitempty"` // Path to a JSON Schema for /device replies
}

// Endpoint returns the device address of the target.
func (t *Target) Endpoint() device.Target {
	return device.Target{Host: t.Host, Port: t.Port}
}

// Preferences holds client-wide settings.
type Preferences struct {
	PingTimeoutMS     int    `yaml:"ping_timeout_ms"`
	ControlTimeoutMS  int    `yaml:"control_timeout_ms"`
	NotifyCheckResult *bool  `yaml:"notify_check_result,omitempty"`
	BridgeAddr        string `yaml:"bridge_addr,omitempty"`
}

// PingTimeout returns the configured ping timeout, or the client default.
func (p *Preferences) PingTimeout() time.Duration {
	if p == nil || p.PingTimeoutMS <= 0 {
		return device.DefaultPingTimeout
	}
	return time.Duration(p.PingTimeoutMS) * time.Millisecond
}

// ControlTimeout returns the configured control timeout, or the client default.
func (p *Preferences) ControlTimeout() time.Duration {
	if p == nil || p.ControlTimeoutMS <= 0 {
		return device.DefaultControlTimeout
	}
	return time.Duration(p.ControlTimeoutMS) * time.Millisecond
}

// NotifyOnCheck reports whether connection checks should toast their result.
func (p *Preferences) NotifyOnCheck() bool {
	if p == nil || p.NotifyCheckResult == nil {
		return true
	}
	return *p.NotifyCheckResult
}

// DefaultBridgeAddr is where `esplink serve` listens unless configured otherwise
const DefaultBridgeAddr = "127.0.0.1:8787"

// Bridge returns the configured bridge listen address.
func (p *Preferences) Bridge() string {
	if p == nil || p.BridgeAddr == "" {
		return DefaultBridgeAddr
	}
	return p.BridgeAddr
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: CurrentVersion,
		Targets: make(map[string]*Target),
		Preferences: &Preferences{
			PingTimeoutMS:    int(device.DefaultPingTimeout / time.Millisecond),
			ControlTimeoutMS: int(device.DefaultControlTimeout / time.Millisecond),
		},
	}
}

// Path returns the file the registry was loaded from or will be saved to.
func (r *Registry) Path() string {
	return r.path
}

// GetTarget retrieves a target by name. Returns nil if it doesn't exist.
func (r *Registry) GetTarget(name string) *Target {
	return r.Targets[name]
}

// SetTarget adds or replaces a target. The first target added becomes the default.
func (r *Registry) SetTarget(name string, target *Target) error {
	if name == "" {
		return fmt.Errorf("target name must not be empty")
	}
	if target == nil || target.Host == "" {
		return fmt.Errorf("target %q needs a host", name)
	}

	if r.Targets == nil {
		r.Targets = make(map[string]*Target)
	}
	r.Targets[name] = target

	if r.Default == "" {
		r.Default = name
	}
	return nil
}

// RemoveTarget deletes a target. Removing the default clears the default.
func (r *Registry) RemoveTarget(name string) bool {
	if _, ok := r.Targets[name]; !ok {
		return false
	}
	delete(r.Targets, name)
	if r.Default == name {
		r.Default = ""
	}
	return true
}

// UseDefault makes name the default target.
func (r *Registry) UseDefault(name string) error {
	if _, ok := r.Targets[name]; !ok {
		return fmt.Errorf("unknown target %q", name)
	}
	r.Default = name
	return nil
}

// Resolve returns the named target, or the default target when name is empty.
// It returns nil without error when nothing is configured.
func (r *Registry) Resolve(name string) (*Target, error) {
	if name == "" {
		name = r.Default
	}
	if name == "" {
		return nil, nil
	}
	t, ok := r.Targets[name]
	if !ok {
		return nil, fmt.Errorf("unknown target %q", name)
	}
	return t, nil
}

// TargetNames returns target names sorted alphabetically.
func (r *Registry) TargetNames() []string {
	names := make([]string, 0, len(r.Targets))
	for name := range r.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
