package mealdb

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/alexisbeaulieu97/recipedia/pkg/errors"
)

// InstrumentationName names the tracer and meter.
const InstrumentationName = "github.com/alexisbeaulieu97/recipedia/internal/mealdb"

// Instrumented wraps an API with spans and request metrics.
type Instrumented struct {
	next     API
	tracer   trace.Tracer
	requests metric.Int64Counter
	failures metric.Int64Counter
	latency  metric.Float64Histogram
	results  metric.Int64Histogram
}

var _ API = (*Instrumented)(nil)

// NewInstrumented wraps next. Nil tracer or meter fall back to the global
// providers.
func NewInstrumented(next API, tracer trace.Tracer, meter metric.Meter) *Instrumented {
	if tracer == nil {
		tracer = otel.Tracer(InstrumentationName)
	}
	if meter == nil {
		meter = otel.Meter(InstrumentationName)
	}

	requests, _ := meter.Int64Counter("mealdb_requests_total",
		metric.WithDescription("Total number of recipe API operations started"))
	failures, _ := meter.Int64Counter("mealdb_requests_failed_total",
		metric.WithDescription("Total number of recipe API operations that failed"))
	latency, _ := meter.Float64Histogram("mealdb_request_duration_seconds",
		metric.WithDescription("Duration of recipe API operations in seconds"))
	results, _ := meter.Int64Histogram("mealdb_results_count",
		metric.WithDescription("Number of recipes returned per operation"))

	return &Instrumented{
		next:     next,
		tracer:   tracer,
		requests: requests,
		failures: failures,
		latency:  latency,
		results:  results,
	}
}

func (i *Instrumented) observe(ctx context.Context, op string, attrs []attribute.KeyValue, fn func(context.Context) (int, error)) error {
	ctx, span := i.tracer.Start(ctx, "mealdb."+op, trace.WithAttributes(attrs...))
	defer span.End()

	opAttr := metric.WithAttributes(attribute.String("op", op))
	i.requests.Add(ctx, 1, opAttr)

	start := time.Now()
	n, err := fn(ctx)
	i.latency.Record(ctx, time.Since(start).Seconds(), opAttr)

	if err != nil {
		i.failures.Add(ctx, 1, opAttr)
		if status := apperrors.StatusCode(err); status != 0 {
			span.SetAttributes(attribute.Int("http.status_code", status))
		}
		span.SetStatus(codes.Error, op+" failed")
		span.RecordError(err)
		return err
	}

	i.results.Record(ctx, int64(n), opAttr)
	span.SetAttributes(attribute.Int("results", n))
	return nil
}

func (i *Instrumented) SearchByName(ctx context.Context, term string) ([]Recipe, error) {
	var out []Recipe
	err := i.observe(ctx, "search", []attribute.KeyValue{attribute.String("term", term)}, func(ctx context.Context) (int, error) {
		var err error
		out, err = i.next.SearchByName(ctx, term)
		return len(out), err
	})
	return out, err
}

func (i *Instrumented) LookupByID(ctx context.Context, id string) (*Recipe, error) {
	var out *Recipe
	err := i.observe(ctx, "lookup", []attribute.KeyValue{attribute.String("recipe_id", id)}, func(ctx context.Context) (int, error) {
		var err error
		out, err = i.next.LookupByID(ctx, id)
		if out == nil {
			return 0, err
		}
		return 1, err
	})
	return out, err
}

func (i *Instrumented) LookupMany(ctx context.Context, ids []string) ([]Recipe, error) {
	var out []Recipe
	err := i.observe(ctx, "lookup_many", []attribute.KeyValue{attribute.StringSlice("recipe_ids", ids)}, func(ctx context.Context) (int, error) {
		var err error
		out, err = i.next.LookupMany(ctx, ids)
		return len(out), err
	})
	return out, err
}

func (i *Instrumented) Random(ctx context.Context) (*Recipe, error) {
	var out *Recipe
	err := i.observe(ctx, "random", nil, func(ctx context.Context) (int, error) {
		var err error
		out, err = i.next.Random(ctx)
		if out == nil {
			return 0, err
		}
		return 1, err
	})
	return out, err
}

func (i *Instrumented) FetchRandomUnique(ctx context.Context, count int) ([]Recipe, error) {
	var out []Recipe
	err := i.observe(ctx, "random_unique", []attribute.KeyValue{attribute.Int("count", count)}, func(ctx context.Context) (int, error) {
		var err error
		out, err = i.next.FetchRandomUnique(ctx, count)
		return len(out), err
	})
	return out, err
}

func (i *Instrumented) FetchMostPopular(ctx context.Context) ([]Recipe, error) {
	var out []Recipe
	err := i.observe(ctx, "popular", nil, func(ctx context.Context) (int, error) {
		var err error
		out, err = i.next.FetchMostPopular(ctx)
		return len(out), err
	})
	return out, err
}

func (i *Instrumented) FetchRelated(ctx context.Context, category, excludeID string) ([]Recipe, error) {
	var out []Recipe
	attrs := []attribute.KeyValue{
		attribute.String("category", category),
		attribute.String("exclude_id", excludeID),
	}
	err := i.observe(ctx, "related", attrs, func(ctx context.Context) (int, error) {
		var err error
		out, err = i.next.FetchRelated(ctx, category, excludeID)
		return len(out), err
	})
	return out, err
}

func (i *Instrumented) ListCategory(ctx context.Context, category string) ([]Summary, error) {
	var out []Summary
	err := i.observe(ctx, "filter", []attribute.KeyValue{attribute.String("category", category)}, func(ctx context.Context) (int, error) {
		var err error
		out, err = i.next.ListCategory(ctx, category)
		return len(out), err
	})
	return out, err
}
