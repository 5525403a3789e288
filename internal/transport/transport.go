// Package transport issues deadline-bounded HTTP requests to the device and
// turns transport failures into a user-visible notification plus a nil
// response.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/esplink/internal/logging"
	"github.com/muurk/esplink/internal/notify"
	"github.com/muurk/esplink/internal/version"
)

// DisconnectedMessage is the toast shown when no response could be obtained.
const DisconnectedMessage = "ESP device not connected"

// HTTPClient is the capability the wrapper needs to reach the network.
// *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrBodyTooLarge is returned by ReadBody when a body exceeds its limit.
var ErrBodyTooLarge = errors.New("response body too large")

// Failure describes a request that produced no response.
type Failure struct {
	URL string
	Err error
}

// Error implements the error interface
func (f *Failure) Error() string {
	return fmt.Sprintf("request to %s failed: %v", f.URL, f.Err)
}

// Unwrap returns the underlying transport error
func (f *Failure) Unwrap() error {
	return f.Err
}

// Aborted reports whether the request was cut short by its deadline or by
// cancellation of the caller's context.
func (f *Failure) Aborted() bool {
	return errors.Is(f.Err, context.DeadlineExceeded) || errors.Is(f.Err, context.Canceled)
}

// Wrapper sends requests through an HTTPClient and reports failures through
// a Notifier. A Wrapper holds no per-request state and is safe for
// concurrent use.
type Wrapper struct {
	client   HTTPClient
	notifier notify.Notifier
}

// New creates a Wrapper. A nil client uses a plain *http.Client (deadlines
// come from the request context); a nil notifier discards notifications.
func New(client HTTPClient, notifier notify.Notifier) *Wrapper {
	if client == nil {
		client = &http.Client{}
	}
	if notifier == nil {
		notifier = notify.Nop
	}
	return &Wrapper{client: client, notifier: notifier}
}

// SafeRequest issues GET url with a deadline of timeout (zero means only
// ctx bounds the request). The deadline is released when the returned
// response body is closed.
//
// On a transport-level failure (network error, deadline, cancellation)
// SafeRequest logs a warning, notifies DisconnectedMessage and returns a nil
// response with a *Failure. Callers must treat a nil response as "no
// response obtained". HTTP error statuses are not failures here.
func (w *Wrapper) SafeRequest(ctx context.Context, url string, timeout time.Duration) (*http.Response, error) {
	cancel := context.CancelFunc(func() {})
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, w.fail(url, err)
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := w.client.Do(req)
	if err != nil {
		cancel()
		return nil, w.fail(url, err)
	}

	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

// ReadBody reads at most limit bytes of resp's body. The request deadline
// is still armed while reading, so a read that fails or times out is
// reported like any other transport failure: warning, disconnect toast
// and a *Failure. A body longer than limit yields ErrBodyTooLarge and no
// toast. The caller still closes the body.
func (w *Wrapper) ReadBody(resp *http.Response, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		url := ""
		if resp.Request != nil && resp.Request.URL != nil {
			url = resp.Request.URL.String()
		}
		return nil, w.fail(url, err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, limit)
	}
	return body, nil
}

func (w *Wrapper) fail(url string, err error) *Failure {
	f := &Failure{URL: url, Err: err}
	logging.Warn("Network request failed",
		zap.String("url", url),
		zap.Bool("aborted", f.Aborted()),
		zap.Error(err),
	)
	w.notifier.Notify(DisconnectedMessage, notify.SeverityError)
	return f
}

// cancelOnClose releases the request deadline once the caller is done with
// the body.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
