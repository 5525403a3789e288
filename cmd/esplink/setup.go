package main

import (
	"fmt"
	"os"

	"github.com/muurk/esplink/internal/config"
	"github.com/muurk/esplink/internal/device"
	"github.com/muurk/esplink/internal/notify"
)

// Environment variables consulted when the matching flag is not given
const (
	envHost   = "ESPLINK_HOST"
	envPort   = "ESPLINK_PORT"
	envTarget = "ESPLINK_TARGET"
)

// session is everything a device command needs, resolved from flags,
// environment and the config file, in that order of precedence.
type session struct {
	registry *config.Registry
	saved    *config.Target // Nil when no saved target applies
	endpoint device.Target
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func loadSession() (*session, error) {
	reg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}

	saved, err := reg.Resolve(firstNonEmpty(targetFlag, os.Getenv(envTarget)))
	if err != nil {
		return nil, err
	}

	s := &session{registry: reg, saved: saved}
	if saved != nil {
		s.endpoint = saved.Endpoint()
	}
	s.endpoint.Host = firstNonEmpty(hostFlag, os.Getenv(envHost), s.endpoint.Host)
	s.endpoint.Port = firstNonEmpty(portFlag, os.Getenv(envPort), s.endpoint.Port)

	return s, nil
}

// venue returns the explicit venue or the saved target's.
func (s *session) venue(explicit string) string {
	if explicit != "" || s.saved == nil {
		return explicit
	}
	return s.saved.Venue
}

// client builds a device client honouring config preferences and --timeout.
func (s *session) client(notifier notify.Notifier) (*device.Client, error) {
	prefs := s.registry.Preferences

	c := device.NewClient(nil, notifier)
	c.SetTimeouts(prefs.PingTimeout(), prefs.ControlTimeout())
	c.SetTimeouts(timeoutFlag, timeoutFlag)
	c.NotifyCheckResult = prefs.NotifyOnCheck()

	if s.saved != nil && s.saved.ReplySchema != "" {
		schema, err := device.LoadReplySchema(s.saved.ReplySchema)
		if err != nil {
			return nil, fmt.Errorf("target reply schema: %w", err)
		}
		c.ReplySchema = schema
	}
	return c, nil
}

// terminalNotifier draws toasts on stderr, or logs them with --quiet. The
// returned board must be closed when the command ends.
func terminalNotifier() (notify.Notifier, *notify.Board) {
	if quietFlag {
		board := notify.NewBoard()
		return notify.Multi{board, notify.LogNotifier{}}, board
	}
	board := notify.NewBoard(notify.NewTerminalRenderer(os.Stderr))
	return board, board
}
