package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muurk/esplink/internal/config"
	"github.com/muurk/esplink/internal/device"
	"github.com/muurk/esplink/internal/ui"
)

var (
	targetDevices []string
	targetSchema  string
	makeDefault   bool
)

func init() {
	rootCmd.AddCommand(targetsCmd)
	targetsCmd.AddCommand(targetsListCmd, targetsAddCmd, targetsRemoveCmd, targetsUseCmd)

	targetsAddCmd.Flags().StringVar(&venueFlag, "venue", "", "Venue id sent with device commands")
	targetsAddCmd.Flags().StringArrayVar(&targetDevices, "device", nil, "Device name offered by the console (repeatable)")
	targetsAddCmd.Flags().StringVar(&targetSchema, "schema", "", "JSON Schema file that device replies must match")
	targetsAddCmd.Flags().BoolVar(&makeDefault, "default", false, "Make this the default target")
}

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Manage saved boards",
}

var targetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved targets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := config.Load(configFlag)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(reg.Targets) == 0 {
			fmt.Fprintln(out, "No saved targets. Add one with 'esplink targets add <name> --host <ip> --port <port>'.")
			return nil
		}

		for _, name := range reg.TargetNames() {
			t := reg.Targets[name]
			marker := " "
			if name == reg.Default {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %-16s %-24s venue=%s\n", marker, name, t.Endpoint().Clean(), t.Venue)
		}
		return nil
	},
}

var targetsAddCmd = &cobra.Command{
	Use:     "add <name>",
	Short:   "Save a target",
	Example: `  esplink targets add hall --host 192.168.1.50 --port 80 --venue hall-a --device stage-lights`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := config.Load(configFlag)
		if err != nil {
			return err
		}

		if targetSchema != "" {
			if _, err := device.LoadReplySchema(targetSchema); err != nil {
				return err
			}
		}

		endpoint := device.Target{Host: hostFlag, Port: portFlag}.Clean()
		t := &config.Target{
			Host:        endpoint.Host,
			Port:        endpoint.Port,
			Venue:       venueFlag,
			Devices:     targetDevices,
			ReplySchema: targetSchema,
		}
		if err := reg.SetTarget(args[0], t); err != nil {
			return err
		}
		if makeDefault {
			if err := reg.UseDefault(args[0]); err != nil {
				return err
			}
		}

		if err := reg.Save(); err != nil {
			return err
		}
		report := ui.Success("Saved target "+args[0],
			ui.Detail{Key: "Address", Value: endpoint.String()},
			ui.Detail{Key: "Venue", Value: venueFlag},
			ui.Detail{Key: "Default", Value: fmt.Sprint(reg.Default == args[0])},
			ui.Detail{Key: "File", Value: reg.Path()},
		)
		fmt.Fprintln(cmd.OutOrStdout(), report)
		return nil
	},
}

var targetsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a saved target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := config.Load(configFlag)
		if err != nil {
			return err
		}
		if !reg.RemoveTarget(args[0]) {
			return fmt.Errorf("unknown target %q", args[0])
		}
		return reg.Save()
	},
}

var targetsUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the default target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := config.Load(configFlag)
		if err != nil {
			return err
		}
		if err := reg.UseDefault(args[0]); err != nil {
			return err
		}
		return reg.Save()
	},
}
