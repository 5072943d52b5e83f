// Package shelffx provides an fx module for a corpus-backed document cache.
package shelffx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/textshelf/shelf"
	"github.com/textshelf/shelf/internal/stats"
	"github.com/textshelf/shelf/internal/stats/logger"
)

// Config holds configuration for the disk-backed cache.
type Config struct {
	// DataDir is the corpus directory produced by 'shelf build'.
	DataDir string

	// Policy is the eviction policy name. Default is FIFO.
	Policy string

	// Capacity is the maximum number of cached documents.
	// Default is shelf.DefaultCapacity.
	Capacity int
}

// Module provides a *shelf.Cache over a generated corpus.
// Requires a Config and a *zap.Logger to be provided.
var Module = fx.Module("shelf",
	fx.Provide(
		newStatsCollector,
		newCache,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("shelf.stats"))
}

// Params holds dependencies for creating the cache.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided cache.
type Result struct {
	fx.Out

	Cache *shelf.Cache
}

func newCache(p Params) (Result, error) {
	policy := p.Config.Policy
	if policy == "" {
		policy = shelf.PolicyFIFO
	}
	capacity := p.Config.Capacity
	if capacity <= 0 {
		capacity = shelf.DefaultCapacity
	}

	dataOpt, err := shelf.WithDataDir(p.Config.DataDir)
	if err != nil {
		return Result{}, err
	}

	cache, err := shelf.New(
		dataOpt,
		shelf.WithPolicy(policy),
		shelf.WithCapacity(capacity),
		shelf.WithStats(p.Collector),
		shelf.WithLogger(p.Logger.Named("shelf")),
	)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return cache.Close()
		},
	})

	return Result{Cache: cache}, nil
}
