// Package config manages the esplink YAML configuration file.
//
// The file stores named device targets (host, port, venue and optionally
// the device names and a reply schema) together with client preferences
// such as request timeouts. It never stores connection state: whether a
// board answered last time is always re-checked.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/esplink/config.yaml or $HOME/.config/esplink/config.yaml
//   - macOS: $HOME/.config/esplink/config.yaml
//   - Windows: %LOCALAPPDATA%\esplink\config.yaml
//
// # Example
//
//	version: 1
//	default: hall-a
//	targets:
//	    hall-a:
//	        host: 192.168.1.50
//	        port: "80"
//	        venue: hall-a
//	        devices: [stage-lights, fan]
//	preferences:
//	    ping_timeout_ms: 5000
//	    control_timeout_ms: 5000
//	    notify_check_result: true
//
// Saves are atomic: the registry is written to a temporary file which is
// then renamed over the original.
package config
