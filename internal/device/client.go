package device

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/esplink/internal/logging"
	"github.com/muurk/esplink/internal/notify"
	"github.com/muurk/esplink/internal/transport"
)

const (
	// DefaultPingTimeout bounds a connection check. Older builds used 3s.
	DefaultPingTimeout = 5000 * time.Millisecond

	// DefaultControlTimeout bounds a device command
	DefaultControlTimeout = 5000 * time.Millisecond

	// maxBodySize caps how much of a reply is read
	maxBodySize = 1 << 20

	// tooLargeMessage describes a reply over maxBodySize
	tooLargeMessage = "reply exceeds 1 MiB"

	// PongReply is the body /ping must return, after trimming
	PongReply = "pong"

	// ConnectedMessage is shown after a successful connection check
	ConnectedMessage = "Connected Successfully"
)

// Client talks to one kind of device over plain HTTP. It keeps no state
// between calls, so concurrent calls are fully independent: each has its
// own deadline and nothing is shared or deduplicated.
type Client struct {
	// PingTimeout bounds CheckConnection
	PingTimeout time.Duration

	// ControlTimeout bounds ControlDevice
	ControlTimeout time.Duration

	// NotifyCheckResult shows a toast for the outcome of CheckConnection.
	// The transport's "not connected" toast is shown regardless.
	NotifyCheckResult bool

	// ReplySchema, when set, is applied to every /device reply
	ReplySchema *ReplySchema

	notifier  notify.Notifier
	transport *transport.Wrapper
}

// NewClient creates a client. httpClient may be nil to use net/http
// defaults; notifier may be nil to discard notifications.
func NewClient(httpClient transport.HTTPClient, notifier notify.Notifier) *Client {
	if notifier == nil {
		notifier = notify.Nop
	}
	return &Client{
		PingTimeout:       DefaultPingTimeout,
		ControlTimeout:    DefaultControlTimeout,
		NotifyCheckResult: true,
		notifier:          notifier,
		transport:         transport.New(httpClient, notifier),
	}
}

// SetTimeouts sets both request timeouts. Zero leaves a value unchanged.
func (c *Client) SetTimeouts(ping, control time.Duration) {
	if ping > 0 {
		c.PingTimeout = ping
	}
	if control > 0 {
		c.ControlTimeout = control
	}
}

// CheckConnection asks the device at host:port for /ping and succeeds only
// on a 2xx status whose trimmed body is exactly "pong".
func (c *Client) CheckConnection(ctx context.Context, host, port string) (bool, error) {
	target := Target{Host: host, Port: port}
	url := target.URL("/ping", "")
	logging.LogDeviceRequest("ping", url)

	if err := c.ping(ctx, target, url); err != nil {
		logging.Error("Connection check failed", zap.String("url", url), zap.Error(err))
		if c.NotifyCheckResult {
			c.notifier.Notify(MessageOf(err), notify.SeverityError)
		}
		return false, err
	}

	if c.NotifyCheckResult {
		c.notifier.Notify(ConnectedMessage, notify.SeveritySuccess)
	}
	return true, nil
}

func (c *Client) ping(ctx context.Context, target Target, url string) error {
	resp, err := c.transport.SafeRequest(ctx, url, c.PingTimeout)
	if resp == nil {
		return NewNetworkError("Network request failed", err, target.Clean().Host)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return NewHTTPError(resp.StatusCode, statusText(resp), fmt.Sprintf("HTTP Error: %d", resp.StatusCode))
	}

	body, err := c.transport.ReadBody(resp, maxBodySize)
	logging.LogDeviceResponse("ping", resp.StatusCode, len(body))
	if errors.Is(err, transport.ErrBodyTooLarge) {
		return NewProtocolError("Unexpected response: " + tooLargeMessage)
	}
	if err != nil {
		return NewNetworkError("Network request failed", err, target.Clean().Host)
	}

	text := string(body)
	if strings.TrimSpace(text) != PongReply {
		return NewProtocolError(fmt.Sprintf("Unexpected response: \"%s\"", text))
	}
	return nil
}

// ControlDevice sends GET /device?venue=<venueID>&name=<deviceName>&<params>
// and returns the decoded JSON reply. It fails before sending anything when
// host or port is empty.
func (c *Client) ControlDevice(ctx context.Context, host, port, venueID, deviceName string, params ...Param) (map[string]any, error) {
	target := Target{Host: host, Port: port}
	if target.IsZero() {
		return nil, NewInvalidArgumentError("ESP32 not connected")
	}

	query := NewParams(venueID, deviceName, params...)
	url := target.URL("/device", query.Encode())
	logging.LogDeviceRequest("control", url)

	resp, err := c.transport.SafeRequest(ctx, url, c.ControlTimeout)
	if resp == nil {
		return nil, NewNetworkError("Network request failed", err, target.Clean().Host)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		status := statusText(resp)
		return nil, NewHTTPError(resp.StatusCode, status, "Device control failed: "+status)
	}

	body, err := c.transport.ReadBody(resp, maxBodySize)
	logging.LogDeviceResponse("control", resp.StatusCode, len(body))
	if errors.Is(err, transport.ErrBodyTooLarge) {
		return nil, NewParseError("Device "+tooLargeMessage, err)
	}
	if err != nil {
		return nil, NewNetworkError("Network request failed", err, target.Clean().Host)
	}

	var reply map[string]any
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, NewParseError("Invalid JSON in device reply", err)
	}

	if c.ReplySchema != nil {
		if err := c.ReplySchema.Validate(body); err != nil {
			return nil, NewValidationError("Device reply does not match schema", err)
		}
	}

	return reply, nil
}

// SetState switches a named device on or off.
func (c *Client) SetState(ctx context.Context, target Target, venueID, deviceName string, on bool) (map[string]any, error) {
	state := "off"
	if on {
		state = "on"
	}
	return c.ControlDevice(ctx, target.Host, target.Port, venueID, deviceName, State(state))
}

// SetValue sets a 0-100 level on a named device.
func (c *Client) SetValue(ctx context.Context, target Target, venueID, deviceName string, value int) (map[string]any, error) {
	if value < 0 || value > 100 {
		return nil, NewInvalidArgumentError(fmt.Sprintf("value must be between 0 and 100, got %d", value))
	}
	return c.ControlDevice(ctx, target.Host, target.Port, venueID, deviceName, Value(value))
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

// statusText returns the reason phrase, e.g. "Not Found" for "404 Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
