package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"ccdash/internal/config"
	"ccdash/internal/ics"
	appLog "ccdash/internal/log"
	"ccdash/internal/schedule"
	"ccdash/internal/sheet"
	"ccdash/internal/web"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath   string
	listen       string
	schedulePath string
	once         bool
	exportDir    string

	// Comma-separated filter values applied to the "Filtered" export in
	// -once mode.
	months    string
	weeks     string
	locations string
	teams     string
	modes     string
}

func main() {
	appLog.Info("ccdash starting", "version", "0.1.0")

	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI overrides.
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
	if flags.schedulePath != "" {
		conf.SchedulePath = flags.schedulePath
	}

	appLog.Info("effective config",
		"listen", conf.Listen,
		"schedule_path", conf.SchedulePath,
		"refresh", conf.RefreshCron,
		"calendar_name", conf.CalendarName,
		"once", flags.once,
	)

	if flags.once {
		if err := runOnce(conf, flags); err != nil {
			appLog.Error("one-shot export failed", err)
			os.Exit(1)
		}
		return
	}

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	store := web.NewStore()
	refresh := refreshFunc(conf, store)

	// Initial load. A failed load is reported on the dashboard rather
	// than killing the daemon; the cron loop keeps retrying.
	if err := refresh(ctx); err != nil {
		appLog.Error("initial schedule load failed", err, "path", conf.SchedulePath)
	}

	c := cron.New()
	if _, err := c.AddFunc(conf.RefreshCron, func() {
		if err := refresh(context.Background()); err != nil {
			appLog.Error("scheduled refresh failed", err, "path", conf.SchedulePath)
		}
	}); err != nil {
		appLog.Error("invalid refresh schedule", err, "refresh", conf.RefreshCron)
		os.Exit(1)
	}
	c.Start()
	defer c.Stop()

	srv := &http.Server{
		Addr:    conf.Listen,
		Handler: web.NewServer(conf, store, refresh).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+conf.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLog.Error("HTTP shutdown failed", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("HTTP server failed", err)
			os.Exit(1)
		}
	}

	appLog.Info("ccdash exiting")
}

// refreshFunc builds the pipeline closure shared by the cron loop and the
// /api/refresh endpoint: load the workbook, enrich, swap the snapshot.
func refreshFunc(conf *config.Config, store *web.Store) web.RefreshFunc {
	return func(_ context.Context) error {
		table, err := sheet.Load(conf.SchedulePath)
		if err != nil {
			store.SetError(err.Error())
			return err
		}
		if len(table.MissingColumns) > 0 {
			appLog.Warn("schedule sheet is missing expected columns",
				"missing", strings.Join(table.MissingColumns, ", "))
		}

		rows := schedule.Enrich(table.Rows)
		store.Set(&web.Snapshot{
			Rows:           rows,
			MissingColumns: table.MissingColumns,
			LoadedAt:       time.Now().In(schedule.Zone),
		})

		appLog.Info("schedule refreshed", "rows", len(rows), "path", conf.SchedulePath)
		return nil
	}
}

// runOnce performs a single load+enrich cycle and writes both calendar
// export files, then exits without starting the server.
func runOnce(conf *config.Config, flags flagConfig) error {
	table, err := sheet.Load(conf.SchedulePath)
	if err != nil {
		return err
	}
	if len(table.MissingColumns) > 0 {
		appLog.Warn("schedule sheet is missing expected columns",
			"missing", strings.Join(table.MissingColumns, ", "))
	}

	rows := schedule.Enrich(table.Rows)
	filtered := schedule.Filter(rows, schedule.Criteria{
		Months:    splitList(flags.months),
		Weeks:     splitList(flags.weeks),
		Locations: splitList(flags.locations),
		Teams:     splitList(flags.teams),
		Modes:     splitList(flags.modes),
	})

	exports := []struct {
		name string
		doc  string
	}{
		{conf.ExportBasename + "_All.ics", ics.Encode(rows, conf.CalendarName+" — All")},
		{conf.ExportBasename + "_Filtered.ics", ics.Encode(filtered, conf.CalendarName+" — Filtered")},
	}

	for _, e := range exports {
		path := filepath.Join(flags.exportDir, e.name)
		if err := os.WriteFile(path, []byte(e.doc), 0o644); err != nil {
			return err
		}
		appLog.Info("calendar export written", "path", path)
	}

	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "/etc/ccdash/config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.StringVar(&cfg.schedulePath, "schedule", "", "Path to the schedule .xlsx (overrides config if set)")
	flag.BoolVar(&cfg.once, "once", false, "Load the schedule, write ICS exports and exit")
	flag.StringVar(&cfg.exportDir, "export-dir", ".", "Directory for -once ICS exports")
	flag.StringVar(&cfg.months, "months", "", "Comma-separated month filter for the Filtered export")
	flag.StringVar(&cfg.weeks, "weeks", "", "Comma-separated week filter for the Filtered export")
	flag.StringVar(&cfg.locations, "locations", "", "Comma-separated location-focus filter for the Filtered export")
	flag.StringVar(&cfg.teams, "teams", "", "Comma-separated team-focus filter for the Filtered export")
	flag.StringVar(&cfg.modes, "modes", "", "Comma-separated mode-of-connect filter for the Filtered export")

	flag.Parse()

	return cfg
}
