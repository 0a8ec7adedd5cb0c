// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

// Package datasets registers the public statistical releases the processing
// stage consumes and downloads them politely.
package datasets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/PricingFrontier/synthetic-insurance-data/utils/logging"
	"github.com/PricingFrontier/synthetic-insurance-data/utils/perms"
)

// defaultPace spaces requests so a fetch-all run never hammers a publisher.
const defaultPace = 500 * time.Millisecond

const progressEvery = 8 << 20

var (
	errUnknownSource = errors.New("unknown dataset source")
	errManualSource  = errors.New("source requires a manual download")
	errHTTPStatus    = errors.New("unexpected response status")
)

// Client downloads registered sources into a raw-data directory.
type Client struct {
	rawDir  string
	http    *http.Client
	limiter *rate.Limiter
	log     logging.Logger
}

func NewClient(rawDir string, log logging.Logger) *Client {
	return &Client{
		rawDir:  rawDir,
		http:    &http.Client{},
		limiter: rate.NewLimiter(rate.Every(defaultPace), 1),
		log:     log,
	}
}

// Fetch downloads [src] into the raw directory. A file that is already
// present is kept as-is, so interrupted runs can be resumed by rerunning.
// The download lands in a temp file and is renamed only once complete, so a
// partial transfer never masquerades as a usable source.
func (c *Client) Fetch(ctx context.Context, src Source) error {
	if src.Manual {
		return fmt.Errorf("%w: %s (%s)", errManualSource, src.Name, src.Description)
	}

	dest := filepath.Join(c.rawDir, src.Filename)
	if _, err := os.Stat(dest); err == nil {
		c.log.Info("source already present",
			zap.String("source", src.Name),
			zap.String("file", src.Filename),
		)
		return nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	if err := os.MkdirAll(c.rawDir, perms.ReadWriteExecute); err != nil {
		return err
	}

	c.log.Info("fetching source",
		zap.String("source", src.Name),
		zap.String("url", src.URL),
	)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: %s", errHTTPStatus, src.Name, resp.Status)
	}

	tmp, err := os.CreateTemp(c.rawDir, src.Filename+".partial-")
	if err != nil {
		return err
	}
	n, err := io.Copy(&progressWriter{w: tmp, log: c.log, name: src.Name}, resp.Body)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Chmod(perms.ReadWrite); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	c.log.Info("fetched source",
		zap.String("source", src.Name),
		zap.String("file", src.Filename),
		zap.Int64("bytes", n),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// Result records the outcome of one source in a fetch-all run.
type Result struct {
	Source string
	Err    error
}

// FetchAll fetches each named source, or every automatic source when [names]
// is empty. Failures don't stop the run; cancellation does. The returned
// results hold one entry per attempted source.
func (c *Client) FetchAll(ctx context.Context, names []string) ([]Result, error) {
	var sources []Source
	if len(names) == 0 {
		for _, src := range Sources() {
			if src.Manual {
				c.log.Info("skipping manual source",
					zap.String("source", src.Name),
					zap.String("note", src.Description),
				)
				continue
			}
			sources = append(sources, src)
		}
	} else {
		for _, name := range names {
			src, ok := Get(name)
			if !ok {
				return nil, fmt.Errorf("%w: %q", errUnknownSource, name)
			}
			sources = append(sources, src)
		}
	}

	var (
		results []Result
		failed  int
	)
	for _, src := range sources {
		err := c.Fetch(ctx, src)
		results = append(results, Result{Source: src.Name, Err: err})
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			failed++
			c.log.Warn("fetch failed",
				zap.String("source", src.Name),
				zap.Error(err),
			)
		}
	}

	c.log.Info("fetch run complete",
		zap.Int("succeeded", len(results)-failed),
		zap.Int("failed", failed),
	)
	return results, nil
}

// progressWriter logs transfer progress at Debug so long downloads show
// life without flooding the console.
type progressWriter struct {
	w       io.Writer
	log     logging.Logger
	name    string
	written int64
	next    int64
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	if p.written >= p.next {
		p.log.Debug("downloading",
			zap.String("source", p.name),
			zap.Int64("bytes", p.written),
		)
		p.next = p.written + progressEvery
	}
	return n, err
}
