package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/njchilds90/trickone/symbolic"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxAttempts bounds the candidates tried per Generate call.
const MaxAttempts = 50

// Algebra is the symbolic capability the pipeline verifies candidates
// with. *symbolic.Engine implements it.
type Algebra interface {
	Simplify(e symbolic.Expr) (symbolic.Expr, error)
	IsZero(e symbolic.Expr) bool
	Key(e symbolic.Expr) string
	Display(e symbolic.Expr) string
	Typeset(e symbolic.Expr) string
}

var _ Algebra = (*symbolic.Engine)(nil)

// Result is a generated expression packaged for callers.
type Result struct {
	Expr     symbolic.Expr
	Display  string
	Typeset  string
	Key      string
	Level    Level
	Attempts int
}

// Generator runs the build, force, verify and claim loop.
type Generator struct {
	builder     Builder
	transformer Transformer
	algebra     Algebra
	registry    *Registry
	maxAttempts int
	logger      *slog.Logger
	tracer      trace.Tracer
}

// New assembles a Generator. Collaborators not supplied through options
// default to the random builder and transformer over crypto-seeded Terms,
// the symbolic engine and a fresh registry.
func New(opts ...Option) (*Generator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.terms == nil && (o.builder == nil || o.transformer == nil) {
		terms, err := NewTerms(o.coeff)
		if err != nil {
			return nil, fmt.Errorf("new terms: %w", err)
		}
		o.terms = terms
	}
	if o.builder == nil {
		o.builder = NewBuilder(o.terms)
	}
	if o.transformer == nil {
		o.transformer = NewTransformer(o.terms)
	}
	if o.algebra == nil {
		o.algebra = symbolic.NewEngine()
	}
	if o.registry == nil {
		o.registry = NewRegistry()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.tracing == nil {
		o.tracing = otel.GetTracerProvider()
	}
	return &Generator{
		builder:     o.builder,
		transformer: o.transformer,
		algebra:     o.algebra,
		registry:    o.registry,
		maxAttempts: o.maxAttempts,
		logger:      o.logger,
		tracer:      o.tracing.Tracer(TracerName),
	}, nil
}

func (g *Generator) Registry() *Registry { return g.registry }

// Generate returns a forced, unsimplified expression equal to exactly 1
// whose structural key no earlier call on the same registry returned.
func (g *Generator) Generate(level Level) (symbolic.Expr, error) {
	res, err := g.GenerateResult(context.Background(), level)
	if err != nil {
		return nil, err
	}
	return res.Expr, nil
}

// GenerateResult is Generate plus the renderings outer layers need. ctx
// only carries the trace span; generation itself is not cancellable.
func (g *Generator) GenerateResult(ctx context.Context, level Level) (Result, error) {
	if !level.Valid() {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidLevel, int(level))
	}
	_, span := g.tracer.Start(ctx, "generator.Generate",
		trace.WithAttributes(attribute.String("generator.level", level.String())),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		generateDuration.WithLabelValues(level.String()).Observe(time.Since(start).Seconds())
	}()

	rejections := make(map[Reason]int)
	var last error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		attemptsTotal.WithLabelValues(level.String()).Inc()
		expr, key, err := g.attempt(level)
		if err != nil {
			var rej *RejectionError
			reason := ReasonAlgebra
			if errors.As(err, &rej) {
				reason = rej.Reason
			}
			rejections[reason]++
			rejectionsTotal.WithLabelValues(level.String(), string(reason)).Inc()
			g.logger.Debug("candidate rejected",
				slog.String("level", level.String()),
				slog.Int("attempt", attempt),
				slog.String("reason", string(reason)),
				slog.String("error", err.Error()),
			)
			last = err
			continue
		}

		generateTotal.WithLabelValues(level.String(), "success").Inc()
		attemptsPerCall.Observe(float64(attempt))
		span.SetAttributes(
			attribute.Int("generator.attempts", attempt),
			attribute.String("generator.key", key),
		)
		return Result{
			Expr:     expr,
			Display:  g.algebra.Display(expr),
			Typeset:  g.algebra.Typeset(expr),
			Key:      key,
			Level:    level,
			Attempts: attempt,
		}, nil
	}

	err := &ExhaustedError{Level: level, Attempts: g.maxAttempts, Rejections: rejections, Last: last}
	generateTotal.WithLabelValues(level.String(), "exhausted").Inc()
	span.SetAttributes(attribute.Int("generator.attempts", g.maxAttempts))
	span.RecordError(err)
	span.SetStatus(codes.Error, "generation exhausted")
	g.logger.Warn("generation exhausted",
		slog.String("level", level.String()),
		slog.Int("attempts", g.maxAttempts),
		slog.Int("algebra", rejections[ReasonAlgebra]),
		slog.Int("inexact", rejections[ReasonInexact]),
		slog.Int("duplicate", rejections[ReasonDuplicate]),
	)
	return Result{}, err
}

// attempt runs one candidate through build, force, verify and claim. The
// key is computed on the forced tree, which is what callers see.
func (g *Generator) attempt(level Level) (symbolic.Expr, string, error) {
	core := g.builder.Build(level)
	forced := g.transformer.Force(core, level)

	simplified, err := g.algebra.Simplify(forced)
	if err != nil {
		return nil, "", &RejectionError{Reason: ReasonAlgebra, Err: err}
	}
	if !g.algebra.IsZero(symbolic.AddOf(simplified, symbolic.N(-1))) {
		return nil, "", &RejectionError{
			Reason: ReasonInexact,
			Err:    fmt.Errorf("%w: got %s", ErrInexactResult, g.algebra.Display(simplified)),
		}
	}
	key := g.algebra.Key(forced)
	if !g.registry.Claim(key) {
		return nil, "", &RejectionError{Reason: ReasonDuplicate, Err: ErrDuplicateStructure}
	}
	return forced, key, nil
}
