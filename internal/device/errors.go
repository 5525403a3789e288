package device

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"syscall"
)

// Kind is the category of a DeviceError
type Kind int

const (
	// KindNetworkUnavailable means no response was obtained (network error, abort, timeout)
	KindNetworkUnavailable Kind = iota
	// KindHTTP means the device answered with a non-2xx status
	KindHTTP
	// KindProtocolMismatch means the ping body was not "pong"
	KindProtocolMismatch
	// KindInvalidArgument means the call was rejected before any request was made
	KindInvalidArgument
	// KindParse means the device reply was not valid JSON
	KindParse
	// KindValidation means the reply did not match the configured reply schema
	KindValidation
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindNetworkUnavailable:
		return "NetworkUnavailable"
	case KindHTTP:
		return "HttpError"
	case KindProtocolMismatch:
		return "ProtocolMismatch"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindParse:
		return "ParseError"
	case KindValidation:
		return "ValidationError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// NetworkSubtype narrows down a KindNetworkUnavailable error
type NetworkSubtype int

const (
	NetworkGeneral NetworkSubtype = iota
	NetworkTimeout
	NetworkAborted
	NetworkConnectionRefused
	NetworkDNS
	NetworkHostUnreachable
	NetworkUnreachable
)

// DeviceError is returned by every Client operation.
type DeviceError struct {
	Kind           Kind           // Category of error
	Message        string         // User-facing message, also used for toasts
	StatusCode     int            // HTTP status code (KindHTTP only)
	Status         string         // HTTP status text (KindHTTP only)
	Err            error          // Underlying error (if any)
	NetworkSubtype NetworkSubtype // Finer classification for network errors
	Host           string         // Sanitized device host (for hints)
}

// Error implements the error interface
func (e *DeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain inspection
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// classifyNetwork inspects a transport error and picks a subtype.
func classifyNetwork(err error) NetworkSubtype {
	switch {
	case err == nil:
		return NetworkGeneral
	case errors.Is(err, context.DeadlineExceeded), os.IsTimeout(err):
		return NetworkTimeout
	case errors.Is(err, context.Canceled):
		return NetworkAborted
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NetworkDNS
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return NetworkConnectionRefused
	case errors.Is(err, syscall.EHOSTUNREACH):
		return NetworkHostUnreachable
	case errors.Is(err, syscall.ENETUNREACH):
		return NetworkUnreachable
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NetworkTimeout
	}

	return NetworkGeneral
}

// NewNetworkError creates a KindNetworkUnavailable error with automatic classification
func NewNetworkError(message string, err error, host string) *DeviceError {
	return &DeviceError{
		Kind:           KindNetworkUnavailable,
		Message:        message,
		Err:            err,
		NetworkSubtype: classifyNetwork(err),
		Host:           host,
	}
}

// NewHTTPError creates a KindHTTP error
func NewHTTPError(statusCode int, status, message string) *DeviceError {
	return &DeviceError{
		Kind:       KindHTTP,
		Message:    message,
		StatusCode: statusCode,
		Status:     status,
	}
}

// NewProtocolError creates a KindProtocolMismatch error
func NewProtocolError(message string) *DeviceError {
	return &DeviceError{Kind: KindProtocolMismatch, Message: message}
}

// NewInvalidArgumentError creates a KindInvalidArgument error
func NewInvalidArgumentError(message string) *DeviceError {
	return &DeviceError{Kind: KindInvalidArgument, Message: message}
}

// NewParseError creates a KindParse error
func NewParseError(message string, err error) *DeviceError {
	return &DeviceError{Kind: KindParse, Message: message, Err: err}
}

// NewValidationError creates a KindValidation error
func NewValidationError(message string, err error) *DeviceError {
	return &DeviceError{Kind: KindValidation, Message: message, Err: err}
}

// KindOf returns the kind of err, and false when err is not a DeviceError.
func KindOf(err error) (Kind, bool) {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Kind, true
	}
	return 0, false
}

func isKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsNetworkUnavailable checks if no response was obtained
func IsNetworkUnavailable(err error) bool { return isKind(err, KindNetworkUnavailable) }

// IsHTTPError checks if the device answered with an error status
func IsHTTPError(err error) bool { return isKind(err, KindHTTP) }

// IsProtocolMismatch checks if the ping reply was wrong
func IsProtocolMismatch(err error) bool { return isKind(err, KindProtocolMismatch) }

// IsInvalidArgument checks if the call was rejected before sending
func IsInvalidArgument(err error) bool { return isKind(err, KindInvalidArgument) }

// IsParseError checks if the reply could not be decoded
func IsParseError(err error) bool { return isKind(err, KindParse) }

// IsValidationError checks if the reply failed schema validation
func IsValidationError(err error) bool { return isKind(err, KindValidation) }

// MessageOf returns the user-facing message of err.
func MessageOf(err error) string {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Message
	}
	return err.Error()
}

// Hint returns troubleshooting advice for err, or an empty string.
func Hint(err error) string {
	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		return ""
	}

	switch devErr.Kind {
	case KindNetworkUnavailable:
		lines := []string{"The device did not answer."}
		switch devErr.NetworkSubtype {
		case NetworkTimeout:
			lines = append(lines,
				"  • The request timed out; the board may be busy or out of range",
				"  • Try a longer --timeout",
			)
		case NetworkConnectionRefused:
			lines = append(lines,
				"  • Something answered at that address but refused the connection",
				"  • Check the port matches the sketch's HTTP server port",
			)
		case NetworkDNS:
			lines = append(lines,
				"  • The host name could not be resolved",
				"  • Use the board's IP address instead",
			)
		case NetworkHostUnreachable, NetworkUnreachable:
			lines = append(lines,
				"  • Make sure this computer is on the same network as the board",
				"  • Try: ping "+devErr.Host,
			)
		default:
			lines = append(lines,
				"  • Check the board is powered and joined to WiFi",
				"  • Verify the host and port",
			)
		}
		return strings.Join(lines, "\n")

	case KindHTTP:
		if devErr.StatusCode == 404 {
			return "The device does not serve this endpoint. Check the firmware exposes /ping and /device."
		}
		if devErr.StatusCode >= 500 {
			return "The device reported an internal error. Check its serial console."
		}
		return "The device rejected the request. Check venue, name and parameters."

	case KindProtocolMismatch:
		return "Something answered, but not with \"pong\". Is this the right device and port?"

	case KindInvalidArgument:
		return "Set a device with --host and --port, or pick a saved target with --target."

	case KindParse:
		return "The device reply was not valid JSON. Check the firmware's /device handler."

	case KindValidation:
		return "The device reply did not match the configured reply schema."
	}

	return ""
}
