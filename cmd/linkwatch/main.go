package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"linkwatch/internal/config"
	"linkwatch/internal/database"
	"linkwatch/internal/escalate"
	"linkwatch/internal/logger"
	"linkwatch/internal/monitor"
	"linkwatch/internal/probe"
	"linkwatch/internal/report"
	"linkwatch/internal/web"
)

//go:embed static/*
var staticFiles embed.FS

func main() {
	var (
		configPath   = flag.String("config", "", "Path to config file")
		once         = flag.Bool("once", false, "Run a single monitoring pass and exit (for external schedulers)")
		reportDir    = flag.String("report", "", "Generate a report into this directory and exit")
		reportWindow = flag.Duration("report-window", 7*24*time.Hour, "History window for -report")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", logger.Err(err))
		os.Exit(1)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Error("failed to open database", logger.Err(err))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Error("failed to initialize database schema", logger.Err(err))
		os.Exit(1)
	}

	if *reportDir != "" {
		gen := report.NewGenerator(log, db)
		dir, err := gen.Generate(context.Background(), *reportDir, *reportWindow)
		if err != nil {
			log.Error("failed to generate report", logger.Err(err))
			os.Exit(1)
		}
		fmt.Println(dir)
		return
	}

	cycler := escalate.NewCommandCycler(log, cfg.Escalate.PowerCycle)
	escalator := escalate.New(log,
		escalate.NewCounter(cfg.Escalate.CounterPath),
		escalate.NewStamp(cfg.Escalate.LastCyclePath),
		cycler,
		cfg.Escalate.Threshold,
		cfg.Escalate.Cooldown,
	)
	prober := probe.New(cfg.Probe.Count, cfg.Probe.Timeout, cfg.Probe.Interval, cfg.Probe.Privileged)
	runner := monitor.New(log, *cfg, prober, db, escalator)

	if *once {
		rec := runner.RunOnce(context.Background())
		log.Info("run recorded",
			slog.String("status", rec.Status),
			slog.Int("success_percentage", rec.SuccessPercentage),
		)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var webServer *web.Server
	if cfg.Web.Enabled {
		webServer = web.New(log, db, escalator, cfg.Web.Address, staticFiles)
		if err := webServer.Start(); err != nil {
			log.Error("failed to start web server", logger.Err(err))
			os.Exit(1)
		}
	}

	// A pass that outlives its interval must not overlap the next one; the
	// pipeline assumes serialized runs.
	sched := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := sched.AddFunc(cfg.Schedule, func() { runner.RunOnce(ctx) }); err != nil {
		log.Error("invalid schedule", slog.String("schedule", cfg.Schedule), logger.Err(err))
		os.Exit(1)
	}

	runner.RunOnce(ctx)
	sched.Start()

	log.Info("monitor started",
		slog.String("schedule", cfg.Schedule),
		slog.Any("targets", cfg.Targets),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("shutting down", slog.String("signal", sig.String()))

	cancel()
	<-sched.Stop().Done()

	if webServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := webServer.Stop(shutdownCtx); err != nil {
			log.Error("failed to stop web server", logger.Err(err))
		}
	}

	log.Info("monitor stopped")
}
