// Package logging provides structured logging for esplink.
//
// This package wraps a process-wide zap logger with convenience functions
// used by the device client, the transport wrapper, the notifier and the
// browser bridge.
//
// # Log Levels
//
//   - Debug: response sizes, toast lifecycle transitions
//   - Info: outgoing device requests, bridge requests
//   - Warn: transport failures ("device not connected")
//   - Error: failed connection checks and device commands
//
// # Configuration
//
// Logging is silent by default so CLI output stays clean. Set
// ESPLINK_LOG_LEVEL (or pass --log-level) to enable it:
//
//	if err := logging.Initialize(""); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Output goes to stderr in zap's console encoding so that command output on
// stdout (for example JSON device replies) can be piped safely.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use once the logger has been
// initialized. Initialize and SetLogger are meant to be called at startup.
package logging
