package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/nhdewitt/wlancreds/internal/adapter"
	"github.com/nhdewitt/wlancreds/internal/platform"
	"github.com/nhdewitt/wlancreds/internal/recovery"
	"github.com/nhdewitt/wlancreds/internal/report"
	"github.com/nhdewitt/wlancreds/internal/wlanapi"
)

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

// Swapped out in tests.
var (
	newService   = wlanapi.NewService
	loadAdapters = adapter.Load
	detect       = platform.Detect
)

// Config holds the flag and environment settings of a run.
type Config struct {
	Format    string
	LogLevel  slog.Level
	SSID      string
	Interface uuid.UUID
	NoKey     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "wlancreds: %v\n", err)
		return exitUsage
	}

	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	format := report.Detect(stdout)
	if cfg.Format != "" {
		if format, err = report.ParseFormat(cfg.Format); err != nil {
			fmt.Fprintf(stderr, "wlancreds: %v\n", err)
			return exitUsage
		}
	}

	host := detect()
	log.Debug("starting", "os", host.OS, "version", host.Version, "build", host.Build, "elevated", host.Elevated)
	if !cfg.NoKey && !host.Elevated {
		log.Warn("not running elevated; the service may withhold plaintext keys")
	}

	sess, err := wlanapi.Open(newService(), wlanapi.ClientVersion2)
	if err != nil {
		log.Error("opening WLAN session", "err", err)
		return exitFatal
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.Warn("closing WLAN session", "err", err)
		}
	}()
	log.Debug("session open", "negotiated_version", sess.NegotiatedVersion())

	adapters, err := loadAdapters()
	if err != nil {
		log.Warn("adapter names unavailable", "err", err)
	}

	results, stats, err := recovery.Run(sess, recovery.Options{
		Logger:        log,
		PlaintextKeys: !cfg.NoKey,
		SSIDFilter:    cfg.SSID,
		Interface:     cfg.Interface,
		Adapters:      adapters,
	})
	if err != nil {
		log.Error("recovery failed", "err", err)
		return exitFatal
	}
	log.Debug("done",
		"interfaces", stats.Interfaces,
		"profiles", stats.Profiles,
		"results", stats.Results,
		"keys_withheld", stats.KeysWithheld,
		"skipped", stats.SkippedRecords,
		"enumeration_failures", stats.EnumerationFailures,
		"list_failures", stats.ListFailures,
		"fetch_failures", stats.FetchFailures,
		"parse_failures", stats.ParseFailures,
	)

	if err := report.Write(stdout, format, results, report.Options{Width: report.Width(stdout)}); err != nil {
		log.Error("writing report", "err", err)
		return exitFatal
	}
	return exitOK
}

// loadConfig reads WLANCREDS_* environment variables, then lets flags
// override them.
func loadConfig(args []string, stderr io.Writer) (Config, error) {
	cfg := Config{
		Format:   os.Getenv("WLANCREDS_FORMAT"),
		LogLevel: slog.LevelInfo,
	}
	if lvl := os.Getenv("WLANCREDS_LOG_LEVEL"); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return cfg, fmt.Errorf("WLANCREDS_LOG_LEVEL: %w", err)
		}
	}

	fs := flag.NewFlagSet("wlancreds", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		verbose bool
		iface   string
	)
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Output format: text, table, json, yaml (default: table on a terminal, text otherwise)")
	fs.StringVar(&cfg.SSID, "ssid", "", "Only show profiles whose name contains this text")
	fs.StringVar(&iface, "interface", "", "Only read profiles of the interface with this GUID")
	fs.BoolVar(&cfg.NoKey, "no-key", false, "Do not ask the service for plaintext keys")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	if iface != "" {
		id, err := uuid.Parse(iface)
		if err != nil {
			return cfg, fmt.Errorf("-interface: %w", err)
		}
		cfg.Interface = id
	}

	return cfg, nil
}
