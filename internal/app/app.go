// Package app runs the scan pipeline: per-view scans, catalog merge,
// classification, and filtering, with scan results cached for interactive
// re-filtering.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"

	"comspect/internal/comscan"
	"comspect/internal/log"
	"comspect/internal/scancache"
	"comspect/internal/tracing"
)

// ErrNoViewScanned is returned when every requested view failed to open.
var ErrNoViewScanned = errors.New("no registry view could be scanned")

// Options selects what one pipeline run does.
type Options struct {
	// Views in requested order; the order decides merge tie-breaks.
	Views  []comscan.View
	Filter comscan.FilterOptions
}

// ViewStat reports the outcome of one view's scan.
type ViewStat struct {
	View        comscan.View
	KeysVisited int
	KeysFailed  int
	Entries     int
	Err         error
}

// Result is the final reporting set for one run.
type Result struct {
	// Objects is the filtered, classified sequence in catalog order.
	Objects []comscan.Classified
	// TotalUnique is the catalog size before filtering.
	TotalUnique int
	// Stats has one element per requested view, in requested order.
	Stats []ViewStat
}

// Pipeline wires the hive, the scan cache, and tracing together. It is
// safe to call Run repeatedly; completed view scans are reused until the
// cache TTL expires.
type Pipeline struct {
	hive   comscan.Hive
	cache  *scancache.Cache[*comscan.ScanResult]
	tracer trace.Tracer
}

// New creates a pipeline. cacheTTL <= 0 disables reuse between runs.
func New(hive comscan.Hive, tracer trace.Tracer, cacheTTL time.Duration) *Pipeline {
	if cacheTTL <= 0 {
		cacheTTL = time.Nanosecond
	}
	return &Pipeline{
		hive:   hive,
		cache:  scancache.New[*comscan.ScanResult]("view-scan", cacheTTL, scancache.DefaultCleanupInterval),
		tracer: tracer,
	}
}

// Run scans the requested views, merges them in requested order, and
// returns the filtered, classified result. A view that fails to open is
// recorded in Stats and skipped; Run fails only when every view does.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.Views) == 0 {
		return nil, fmt.Errorf("no views requested")
	}

	results := make([]*comscan.ScanResult, 0, len(opts.Views))
	stats := make([]ViewStat, 0, len(opts.Views))
	var viewErrs []error

	for _, view := range opts.Views {
		res, err := p.scanView(ctx, view)
		stat := ViewStat{View: view, Err: err}
		if err != nil {
			viewErrs = append(viewErrs, err)
			results = append(results, nil)
			stats = append(stats, stat)
			continue
		}
		stat.KeysVisited = res.KeysVisited
		stat.KeysFailed = res.KeysFailed
		stat.Entries = len(res.Entries)
		results = append(results, res)
		stats = append(stats, stat)
	}

	if len(viewErrs) == len(opts.Views) {
		return nil, fmt.Errorf("%w: %w", ErrNoViewScanned, errors.Join(viewErrs...))
	}

	ctx, span := p.tracer.Start(ctx, "merge")
	catalog := comscan.Merge(results)
	span.SetAttributes(tracing.Int("catalog.unique", catalog.Len()))
	span.End()

	_, span = p.tracer.Start(ctx, "filter")
	objects := comscan.FilterAndLimit(catalog, opts.Filter)
	span.SetAttributes(
		tracing.Int("filter.matched", len(objects)),
		tracing.Int("filter.limit", opts.Filter.Limit),
	)
	span.End()

	log.Info(log.CatFilter, "pipeline run complete",
		"unique", catalog.Len(), "matched", len(objects))

	return &Result{
		Objects:     objects,
		TotalUnique: catalog.Len(),
		Stats:       stats,
	}, nil
}

// FlushCache drops cached scans so the next Run hits the registry again.
func (p *Pipeline) FlushCache() { p.cache.Flush() }

func (p *Pipeline) scanView(ctx context.Context, view comscan.View) (*comscan.ScanResult, error) {
	if res, ok := p.cache.Get(view.String()); ok {
		return res, nil
	}

	ctx, span := p.tracer.Start(ctx, "scan", trace.WithAttributes(tracing.String("view", view.String())))
	defer span.End()

	res, err := comscan.Scan(ctx, p.hive, view)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(
		tracing.Int("keys.visited", res.KeysVisited),
		tracing.Int("keys.failed", res.KeysFailed),
	)

	p.cache.Set(view.String(), res)
	return res, nil
}
