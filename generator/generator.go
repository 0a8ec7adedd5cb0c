// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

// Package generator composes synthetic motor quotes from the canonical
// tables. Attribute draws are correlated through a fixed conditioning order,
// and every record is produced from its own seeded stream, so a batch is
// fully determined by (seed, count) regardless of worker count.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/PricingFrontier/synthetic-insurance-data/metrics"
	"github.com/PricingFrontier/synthetic-insurance-data/quote"
	"github.com/PricingFrontier/synthetic-insurance-data/sampler"
	"github.com/PricingFrontier/synthetic-insurance-data/utils/logging"
	safemath "github.com/PricingFrontier/synthetic-insurance-data/utils/math"
)

var (
	errNoReferenceDate = errors.New("reference date must be set")
	errUnknownRegion   = errors.New("unknown region")

	errCountNotPositive = errors.New("count must be positive")
	errCountExceedsMax  = errors.New("count exceeds the configured maximum")
)

// Generator produces batches of quotes. It is safe for concurrent use once
// built; the indexes are read-only.
type Generator struct {
	cfg     Config
	log     logging.Logger
	metrics *metrics.Metrics
	idx     *indexes
}

// New loads the canonical tables from [cfg.ProcessedDir], builds every
// sampler index, and verifies the configured region exists. Any malformed
// table fails construction rather than surfacing mid-batch.
func New(cfg Config, log logging.Logger, mtr *metrics.Metrics) (*Generator, error) {
	cfg = cfg.withDefaults()
	if cfg.ReferenceDate.IsZero() {
		return nil, errNoReferenceDate
	}

	start := time.Now()
	idx, err := buildIndexes(cfg.ProcessedDir, log, mtr)
	if err != nil {
		return nil, err
	}
	if cfg.Region != "" {
		if _, ok := idx.postcodes.Get(cfg.Region); !ok {
			return nil, fmt.Errorf("%w: %q (have %s)",
				errUnknownRegion, cfg.Region, strings.Join(idx.postcodes.Keys(), ", "))
		}
	}
	buildTime := time.Since(start)
	mtr.ObserveBuild(buildTime)
	log.Info("built sampler indexes",
		zap.Duration("duration", buildTime),
		zap.Uint64("seed", cfg.Seed),
		zap.String("region", cfg.Region),
		zap.Time("referenceDate", cfg.ReferenceDate),
	)

	return &Generator{
		cfg:     cfg,
		log:     log,
		metrics: mtr,
		idx:     idx,
	}, nil
}

// Regions returns the region keys of the postcode table in first-seen order.
func (g *Generator) Regions() []string {
	return g.idx.postcodes.Keys()
}

// Generate produces [n] quotes. Record i is always drawn from the stream for
// (seed, i), so splitting the batch across workers never changes the output.
func (g *Generator) Generate(ctx context.Context, n int) ([]quote.Quote, error) {
	if n <= 0 {
		return nil, errCountNotPositive
	}
	if n > g.cfg.MaxCount {
		return nil, fmt.Errorf("%w: %d > %d", errCountExceedsMax, n, g.cfg.MaxCount)
	}

	start := time.Now()
	out := make([]quote.Quote, n)

	workers := safemath.Min(g.cfg.Workers, n)
	chunk := (n + workers - 1) / workers
	eg, egCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := safemath.Min(lo+chunk, n)
		if lo >= hi {
			break
		}
		eg.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := egCtx.Err(); err != nil {
					return err
				}
				out[i] = g.generateOne(sampler.ForRecord(g.cfg.Seed, uint64(i)))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	batchTime := time.Since(start)
	g.metrics.QuotesGenerated(n)
	g.metrics.ObserveBatch(batchTime)
	g.log.Info("generated batch",
		zap.Int("count", n),
		zap.Duration("duration", batchTime),
	)
	return out, nil
}
