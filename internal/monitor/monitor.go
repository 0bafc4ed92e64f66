package monitor

import (
	"context"
	"log/slog"
	"time"

	"linkwatch/internal/config"
	"linkwatch/internal/escalate"
	"linkwatch/internal/logger"
	"linkwatch/internal/models"
	"linkwatch/internal/probe"
)

// Runner executes one monitoring pass: probe every target, aggregate the
// samples into a status record, persist it, prune old history, and feed the
// escalator. Every step after probing is best-effort; a failing step is
// logged and the pass carries on so the next scheduled pass starts clean.
type Runner struct {
	log       *slog.Logger
	cfg       config.Config
	prober    models.Prober
	store     models.Store
	escalator *escalate.Escalator
}

// New creates a Runner
func New(log *slog.Logger, cfg config.Config, prober models.Prober, store models.Store, escalator *escalate.Escalator) *Runner {
	return &Runner{
		log:       log,
		cfg:       cfg,
		prober:    prober,
		store:     store,
		escalator: escalator,
	}
}

// RunOnce performs a single monitoring pass and returns the recorded status
func (r *Runner) RunOnce(ctx context.Context) models.StatusRecord {
	started := time.Now()

	samples := make([]models.ProbeSample, 0, len(r.cfg.Targets))
	for _, target := range r.cfg.Targets {
		sample, err := r.prober.Probe(ctx, target)
		if err != nil {
			r.log.Warn("probe failed", slog.String("target", target), logger.Err(err))
		}
		samples = append(samples, sample)
	}

	rec := probe.Aggregate(started, samples)
	r.log.Info("run aggregated",
		slog.String("status", rec.Status),
		slog.Int("success_percentage", rec.SuccessPercentage),
		slog.Int("packet_loss", rec.PacketLoss),
	)

	if id, err := r.store.Insert(ctx, rec); err != nil {
		r.log.Error("failed to record status", logger.Err(err))
	} else {
		rec.ID = id
	}

	if deleted, err := r.store.Prune(ctx, r.cfg.Database.Retention); err != nil {
		r.log.Error("failed to prune old records", logger.Err(err))
	} else if deleted > 0 {
		r.log.Info("pruned old records", slog.Int64("deleted", deleted))
	}

	r.escalator.Observe(ctx, rec.SuccessPercentage)

	r.log.Debug("run complete", slog.Duration("elapsed", time.Since(started)))
	return rec
}
