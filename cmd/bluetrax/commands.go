package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/bluetrax/bluetrax/internal/config"
	"github.com/bluetrax/bluetrax/internal/hci"
	"github.com/bluetrax/bluetrax/internal/logging"
	"github.com/bluetrax/bluetrax/internal/record"
	"github.com/bluetrax/bluetrax/internal/scanner"
	"github.com/bluetrax/bluetrax/internal/stream"
	"github.com/bluetrax/bluetrax/internal/watch"
)

// Command flags
var (
	deviceIndex int
	cycleLength int
	outputPath  string
	truncateOut bool
	flushEvery  bool
	listenAddr  string
	inputPath   string
	verbose     bool
	quiet       bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debugging and info messages")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Log only errors")

	scanCmd.Flags().IntVarP(&deviceIndex, "device", "i", 0, "Adapter index to scan with (hci0 is 0)")
	scanCmd.Flags().IntVarP(&cycleLength, "length", "l", 8, "Length of each inquiry cycle, approx 1.28*n seconds (1-100)")
	scanCmd.Flags().StringVarP(&outputPath, "file", "f", "", "File to append the binary log to (default: stdout)")
	scanCmd.Flags().BoolVarP(&truncateOut, "truncate", "t", false, "Truncate the output file at startup instead of appending")
	scanCmd.Flags().BoolVarP(&flushEvery, "flush", "u", false, "Flush output after every message instead of once per cycle")
	scanCmd.Flags().StringVar(&listenAddr, "listen", "", "Also serve live records as JSON over websocket on this address")

	watchCmd.Flags().IntVarP(&deviceIndex, "device", "i", 0, "Adapter index to scan with (hci0 is 0)")
	watchCmd.Flags().IntVarP(&cycleLength, "length", "l", 8, "Length of each inquiry cycle, approx 1.28*n seconds (1-100)")

	decodeCmd.Flags().StringVarP(&inputPath, "file", "f", "", "Binary log to read (default: stdin)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(watchCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Continuously discover devices and append a binary log",
	Long: `Put the adapter into periodic inquiry mode and log every discovery
response until interrupted.

Each record carries the kernel receive timestamp. The log is binary;
use 'bluetrax decode' to turn it into CSV text. A first synthetic
cycle-complete record marks the scan start time.

Send SIGINT or SIGTERM to stop cleanly; a second signal terminates
immediately.`,
	Example: `  # Log to a file, appending to earlier runs
  bluetrax scan --file devices.btx

  # Fresh file, short cycles, durable after every message
  bluetrax scan --truncate --file devices.btx --length 4 --flush

  # Watch the same scan live from another terminal
  bluetrax scan --file devices.btx --listen 127.0.0.1:8921`,
	RunE: runScan,
}

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a binary log to CSV text",
	Long: `Read a binary log produced by 'bluetrax scan' and print one CSV row
per record, resolving device-class bytes to category names.

Decoding a truncated or corrupt log fails: the packed format has no
resynchronization point, so no partial rows are ever emitted.`,
	Example: `  bluetrax decode --file devices.btx
  bluetrax scan | bluetrax decode`,
	RunE: runDecode,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show live discoveries in a terminal table",
	Long: `Run a scan and render discovered devices in a live table instead of
writing a log: address, device class, signal strength, observation
count, and last-seen time, aggregated per device.`,
	RunE: runWatch,
}

// applyPreferences fills in defaults from the config file for every flag
// the user did not set explicitly.
func applyPreferences(cmd *cobra.Command) {
	path, err := config.Path()
	if err != nil {
		logging.Warn("cannot locate config file", zap.Error(err))
		return
	}
	prefs, err := config.Load(path)
	if err != nil {
		logging.Warn("ignoring unreadable config file", zap.Error(err))
		return
	}

	if prefs.LogLevel != "" && !verbose && !quiet {
		if err := logging.Initialize(prefs.LogLevel); err != nil {
			logging.Warn("ignoring log_level preference", zap.Error(err))
		}
	}

	flags := cmd.Flags()
	if f := flags.Lookup("device"); f != nil && !f.Changed {
		deviceIndex = prefs.Device
	}
	if f := flags.Lookup("length"); f != nil && !f.Changed {
		cycleLength = prefs.Length
	}
	if f := flags.Lookup("flush"); f != nil && !f.Changed {
		flushEvery = prefs.Flush
	}
	if f := flags.Lookup("listen"); f != nil && !f.Changed && listenAddr == "" {
		listenAddr = prefs.Listen
	}
}

// stopOnSignals wires SIGINT/SIGTERM to the session: the first signal
// requests a clean stop, a second one means something is stuck and the
// process exits immediately without attempting the stop command again.
func stopOnSignals(sess *scanner.Session) {
	sigc := make(chan os.Signal, 2)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigc
		logging.Info("stopping due to signal", zap.String("signal", sig.String()))
		sess.RequestStop()

		sig = <-sigc
		logging.Error("multiple stop requests; exiting now", zap.String("signal", sig.String()))
		os.Exit(1)
	}()
}

func openOutput() (io.Writer, func() error, error) {
	if outputPath == "" {
		if truncateOut {
			return nil, nil, fmt.Errorf("--truncate requires --file")
		}
		return os.Stdout, func() error { return nil }, nil
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	if truncateOut {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(outputPath, flags, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open output file: %w", err)
	}
	return f, f.Close, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logging.LevelForVerbosity(verbose, quiet)); err != nil {
		return err
	}
	defer logging.Sync()
	applyPreferences(cmd)

	out, closeOut, err := openOutput()
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()

	sock, err := hci.Open(deviceIndex)
	if err != nil {
		return err
	}
	defer func() { _ = sock.Close() }()

	writer := record.NewWriter(out)
	sinks := []scanner.Sink{writer}

	if listenAddr != "" {
		hub := stream.NewHub()
		srv := stream.NewServer(listenAddr, hub)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logging.Error("record feed server failed", zap.Error(err))
			}
		}()
		defer func() { _ = srv.Close(); hub.Close() }()
		sinks = append(sinks, hub)
		logging.Info("serving live records", zap.String("addr", listenAddr))
	}

	sess, err := scanner.New(sock, scanner.Multi(sinks...), scanner.Options{
		CycleLength: cycleLength,
		FlushEvery:  flushEvery,
	})
	if err != nil {
		return err
	}
	stopOnSignals(sess)

	runErr := sess.Run()

	// push whatever is still buffered, even after a failed run
	if err := writer.Flush(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func runDecode(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logging.LevelForVerbosity(verbose, quiet)); err != nil {
		return err
	}
	defer logging.Sync()

	in := io.Reader(os.Stdin)
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("open input file: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	return record.WriteCSV(os.Stdout, record.NewReader(in))
}

func runWatch(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("watch needs a terminal; use 'bluetrax scan' for non-interactive logging")
	}

	applyPreferences(cmd)

	// the TUI owns the screen; keep zap down to errors on stderr
	if err := logging.Initialize("error"); err != nil {
		return err
	}
	defer logging.Sync()

	sock, err := hci.Open(deviceIndex)
	if err != nil {
		return err
	}
	defer func() { _ = sock.Close() }()

	feed := watch.NewFeed()
	sess, err := scanner.New(sock, feed, scanner.Options{CycleLength: cycleLength})
	if err != nil {
		return err
	}
	stopOnSignals(sess)

	scanDone := make(chan error, 1)
	go func() {
		scanDone <- sess.Run()
		feed.Close()
	}()

	if err := watch.Run(feed, sess.RequestStop); err != nil {
		return err
	}
	return <-scanDone
}
