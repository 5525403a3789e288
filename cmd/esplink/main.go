// Esplink is a thin client for ESP microcontrollers that expose a small
// HTTP API.
//
// It checks whether a board is reachable (GET /ping), sends device
// commands (GET /device?venue=..&name=..), runs an interactive console and
// serves a local bridge so browser pages can do the same.
//
// Usage:
//
//	esplink [command] [flags]
//
// See 'esplink --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/muurk/esplink/internal/device"
	"github.com/muurk/esplink/internal/logging"
	"github.com/muurk/esplink/internal/ui"
	"github.com/muurk/esplink/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// reportError prints err with its troubleshooting hint: as a report box on
// a terminal, as plain text otherwise.
func reportError(err error) {
	hint := device.Hint(err)
	if ui.IsTerminal(os.Stderr) {
		fmt.Fprintln(os.Stderr, ui.Failure("esplink failed", err, hint).SetWidth(ui.ReportWidth(os.Stderr)))
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if hint != "" {
		fmt.Fprintf(os.Stderr, "\n%s\n", hint)
	}
}

// Global flags
var (
	hostFlag     string
	portFlag     string
	targetFlag   string
	logLevelFlag string
	configFlag   string
	timeoutFlag  time.Duration
	quietFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "esplink",
	Short: "Talk to ESP boards over HTTP",
	Long: `A thin client for ESP microcontrollers exposing /ping and /device.

The board is chosen with --host/--port, with --target (a name saved by
'esplink targets add'), or from the default saved target. ESPLINK_HOST,
ESPLINK_PORT and ESPLINK_TARGET are read from the environment or a .env
file in the working directory.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is normal
		_ = godotenv.Load()
		return logging.Initialize(logLevelFlag)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "", "Device host or IP (http:// prefix allowed)")
	rootCmd.PersistentFlags().StringVar(&portFlag, "port", "", "Device HTTP port")
	rootCmd.PersistentFlags().StringVarP(&targetFlag, "target", "t", "", "Saved target name")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error); default from "+logging.LogLevelEnvVar)
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default is the user config directory)")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 0, "Request timeout, e.g. 3s (overrides the config file)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Send notifications to the log instead of the terminal")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("esplink %s\n", version.Full())
	},
}
