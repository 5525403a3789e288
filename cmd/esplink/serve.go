package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muurk/esplink/internal/bridge"
	"github.com/muurk/esplink/internal/console"
	"github.com/muurk/esplink/internal/notify"
)

var addrFlag string

func init() {
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (default from config, else 127.0.0.1:8787)")
	consoleCmd.Flags().StringVar(&venueFlag, "venue", "", "Initial venue id")
	consoleCmd.Flags().StringVar(&nameFlag, "name", "", "Initial device name")
}

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive console for one board",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}

		board := notify.NewBoard()
		defer board.Close()

		client, err := s.client(board)
		if err != nil {
			return err
		}

		defaults := console.Defaults{
			Host:   s.endpoint.Host,
			Port:   s.endpoint.Port,
			Venue:  s.venue(venueFlag),
			Device: nameFlag,
		}
		if s.saved != nil {
			defaults.Devices = s.saved.Devices
			if defaults.Device == "" && len(s.saved.Devices) > 0 {
				defaults.Device = s.saved.Devices[0]
			}
		}

		return console.Run(cmd.Context(), client, board, defaults)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP bridge for browser pages",
	Long: `Serve a local HTTP bridge so browser pages can reach boards without
CORS trouble:

  GET /health
  GET /api/v1/ping?host=&port=
  GET /api/v1/device?host=&port=&venue=&name=&<params>
  GET /ws/toasts   websocket stream of toast events`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}

		relay := notify.NewRelay()
		board := notify.NewBoard(relay)
		defer board.Close()

		client, err := s.client(notify.Multi{board, notify.LogNotifier{}})
		if err != nil {
			return err
		}

		addr := firstNonEmpty(addrFlag, s.registry.Preferences.Bridge())
		fmt.Fprintf(cmd.ErrOrStderr(), "Bridge listening on http://%s (Ctrl+C to stop)\n", addr)

		return bridge.NewServer(client, relay).Run(cmd.Context(), addr)
	},
}
