package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/muurk/esplink/internal/device"
)

// Device command flags
var (
	venueFlag  string
	nameFlag   string
	paramFlags []string
)

func init() {
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(deviceCmd)
	rootCmd.AddCommand(onCmd)
	rootCmd.AddCommand(offCmd)
	rootCmd.AddCommand(setCmd)

	for _, c := range []*cobra.Command{deviceCmd, onCmd, offCmd, setCmd} {
		c.Flags().StringVar(&venueFlag, "venue", "", "Venue id (default from the saved target)")
		c.Flags().StringVar(&nameFlag, "name", "", "Device name")
	}
	deviceCmd.Flags().StringArrayVarP(&paramFlags, "param", "p", nil, "Extra parameter as key=value (repeatable, order kept)")
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the board answers /ping",
	Example: `  esplink ping --host 192.168.1.50 --port 80
  esplink ping --target hall`,
	Args: cobra.NoArgs,
	RunE: runPing,
}

func runPing(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}

	notifier, board := terminalNotifier()
	defer board.Close()

	client, err := s.client(notifier)
	if err != nil {
		return err
	}

	if _, err := client.CheckConnection(cmd.Context(), s.endpoint.Host, s.endpoint.Port); err != nil {
		return fmt.Errorf("%s: %w", s.endpoint.Clean(), err)
	}
	return nil
}

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Send a raw device command and print the reply",
	Long: `Send GET /device?venue=<venue>&name=<name>&<params> and print the JSON reply.

Parameters given with -p are sent in the order given.`,
	Example: `  esplink device --venue hall --name stage-lights -p state=on
  esplink device --name fan -p mode=auto -p speed=3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := make([]device.Param, 0, len(paramFlags))
		for _, raw := range paramFlags {
			p, err := device.ParseParam(raw)
			if err != nil {
				return err
			}
			params = append(params, p)
		}
		return runControl(cmd, params...)
	},
}

var onCmd = &cobra.Command{
	Use:   "on",
	Short: "Switch a device on",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runControl(cmd, device.State("on"))
	},
}

var offCmd = &cobra.Command{
	Use:   "off",
	Short: "Switch a device off",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runControl(cmd, device.State("off"))
	},
}

var setCmd = &cobra.Command{
	Use:     "set <0-100>",
	Short:   "Set a device level",
	Example: `  esplink set --name dimmer 40`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.Atoi(args[0])
		if err != nil || value < 0 || value > 100 {
			return fmt.Errorf("level must be a number from 0 to 100, got %q", args[0])
		}
		return runControl(cmd, device.Value(value))
	},
}

func runControl(cmd *cobra.Command, params ...device.Param) error {
	s, err := loadSession()
	if err != nil {
		return err
	}

	notifier, board := terminalNotifier()
	defer board.Close()

	client, err := s.client(notifier)
	if err != nil {
		return err
	}

	reply, err := client.ControlDevice(cmd.Context(), s.endpoint.Host, s.endpoint.Port,
		s.venue(venueFlag), nameFlag, params...)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(reply, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format reply: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
