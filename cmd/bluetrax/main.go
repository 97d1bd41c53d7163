// Bluetrax is a continuous Bluetooth device discovery logger.
//
// It puts one local adapter into periodic inquiry mode, records every
// discovery response with a microsecond receive timestamp in a compact
// binary log, and decodes that log back to CSV text.
//
// Usage:
//
//	bluetrax scan --file devices.btx
//	bluetrax decode --file devices.btx
//	bluetrax watch
//
// See 'bluetrax --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bluetrax/bluetrax/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bluetrax",
	Short: "Bluetooth Periodic Inquiry Logger",
	Long: `A scanner that continuously discovers nearby Bluetooth devices.

The scan command drives one local adapter through back-to-back inquiry
cycles and appends every response to a binary log. The decode command
turns that log into CSV text, and watch shows discoveries live in the
terminal.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bluetrax %s\n", version.Full())
	},
}
