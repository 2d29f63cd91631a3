// Package pipeline turns a logged meal into a nutrition summary, a glucose
// spike risk and goal feedback. The stages run in a fixed order and each
// stage's output type embeds the previous one, so a stage can only read what
// an earlier stage has produced.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pageza/healthcoach/backend/internal/nutrition"
	"github.com/pageza/healthcoach/backend/internal/types"
)

const tracerName = "healthcoach/pipeline"

// Stage names, used in spans and error prefixes
const (
	StageParse    = "parse"
	StageLookup   = "lookup"
	StageRisk     = "risk"
	StageFeedback = "feedback"
)

// Executor runs parse, lookup, risk and feedback for one meal at a time.
// It holds no per-request state and is safe for concurrent use.
type Executor struct {
	provider nutrition.Provider
	tracer   trace.Tracer
}

// NewExecutor creates an Executor that resolves foods through provider
func NewExecutor(provider nutrition.Provider) *Executor {
	return &Executor{
		provider: provider,
		tracer:   otel.Tracer(tracerName),
	}
}

// Run executes the pipeline. The first failing stage aborts the run and its
// error is returned wrapped as "<stage>: <cause>"; no partial result is returned.
func (e *Executor) Run(ctx context.Context, req types.MealLogRequest) (MealAnalysis, error) {
	ctx, span := e.tracer.Start(ctx, "meal_pipeline.run", trace.WithAttributes(
		attribute.String("meal.name", req.MealName),
		attribute.String("meal.goal", req.Goal),
		attribute.Int("meal.foods", len(req.Foods)),
	))
	defer span.End()

	parsed, err := runStage(ctx, e.tracer, StageParse, req, func(_ context.Context, in types.MealLogRequest) (ParsedMeal, error) {
		return Parse(in), nil
	})
	if err != nil {
		return e.fail(span, err)
	}

	assessed, err := runStage(ctx, e.tracer, StageLookup, parsed, func(ctx context.Context, in ParsedMeal) (NutritionAssessment, error) {
		return Lookup(ctx, e.provider, in)
	})
	if err != nil {
		return e.fail(span, err)
	}

	risk, err := runStage(ctx, e.tracer, StageRisk, assessed, func(_ context.Context, in NutritionAssessment) (RiskAssessment, error) {
		return AssessRisk(in), nil
	})
	if err != nil {
		return e.fail(span, err)
	}

	analysis, err := runStage(ctx, e.tracer, StageFeedback, risk, func(_ context.Context, in RiskAssessment) (MealAnalysis, error) {
		return Feedback(in), nil
	})
	if err != nil {
		return e.fail(span, err)
	}

	span.SetAttributes(
		attribute.Float64("meal.carbs", analysis.Summary.Carbs),
		attribute.String("meal.spike_risk", string(analysis.SpikeRisk)),
	)
	slog.InfoContext(ctx, "meal analyzed",
		"meal_name", req.MealName,
		"goal", req.Goal,
		"carbs", analysis.Summary.Carbs,
		"net_carbs", analysis.Summary.NetCarbs,
		"spike_risk", analysis.SpikeRisk,
	)

	return analysis, nil
}

func (e *Executor) fail(span trace.Span, err error) (MealAnalysis, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return MealAnalysis{}, err
}

func runStage[In, Out any](ctx context.Context, tracer trace.Tracer, name string, in In, fn func(context.Context, In) (Out, error)) (Out, error) {
	ctx, span := tracer.Start(ctx, "meal_pipeline."+name)
	defer span.End()

	out, err := fn(ctx, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.DebugContext(ctx, "pipeline stage failed", "stage", name, "error", err)
		var zero Out
		return zero, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
