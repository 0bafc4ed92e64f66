package models

import (
	"context"
	"time"
)

// Store defines persistence operations for status records
type Store interface {
	Insert(ctx context.Context, rec StatusRecord) (int64, error)
	Prune(ctx context.Context, retention time.Duration) (int64, error)
	Latest(ctx context.Context) (*StatusRecord, error)
	Recent(ctx context.Context, since time.Time) ([]StatusRecord, error)
	StatusCounts(ctx context.Context, since time.Time) (StatusCounts, error)
	Close() error
}

// Prober sends a fixed batch of echo requests at a single target
type Prober interface {
	Probe(ctx context.Context, target string) (ProbeSample, error)
}

// PowerCycler triggers the external power-cycle action
type PowerCycler interface {
	Cycle(ctx context.Context) error
}
