package generator

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Option configures a Generator. Option constructors panic on nil or
// meaningless arguments; New itself never panics.
type Option func(*options)

type options struct {
	builder     Builder
	transformer Transformer
	algebra     Algebra
	registry    *Registry
	terms       *Terms
	coeff       Range
	maxAttempts int
	logger      *slog.Logger
	tracing     trace.TracerProvider
}

func defaultOptions() options {
	return options{
		coeff:       DefaultRange,
		maxAttempts: MaxAttempts,
	}
}

func WithBuilder(b Builder) Option {
	if b == nil {
		panic("generator: WithBuilder(nil)")
	}
	return func(o *options) { o.builder = b }
}

func WithTransformer(t Transformer) Option {
	if t == nil {
		panic("generator: WithTransformer(nil)")
	}
	return func(o *options) { o.transformer = t }
}

func WithAlgebra(a Algebra) Option {
	if a == nil {
		panic("generator: WithAlgebra(nil)")
	}
	return func(o *options) { o.algebra = a }
}

// WithRegistry shares a key registry between generators. Each generator
// gets its own empty registry otherwise.
func WithRegistry(r *Registry) Option {
	if r == nil {
		panic("generator: WithRegistry(nil)")
	}
	return func(o *options) { o.registry = r }
}

// WithTerms fixes the random source of the default builder and transformer.
// Tests use it with NewTermsFromSeed.
func WithTerms(t *Terms) Option {
	if t == nil {
		panic("generator: WithTerms(nil)")
	}
	return func(o *options) { o.terms = t }
}

// WithCoefficientRange sets the range crypto-seeded Terms draw literals
// from. It is ignored when WithTerms is given.
func WithCoefficientRange(r Range) Option {
	return func(o *options) { o.coeff = r }
}

func WithMaxAttempts(n int) Option {
	if n <= 0 {
		panic("generator: WithMaxAttempts(n<=0)")
	}
	return func(o *options) { o.maxAttempts = n }
}

func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("generator: WithLogger(nil)")
	}
	return func(o *options) { o.logger = l }
}

// WithTracerProvider sets where Generate spans go. The default is the
// global provider at the time New is called, so install it first.
func WithTracerProvider(tp trace.TracerProvider) Option {
	if tp == nil {
		panic("generator: WithTracerProvider(nil)")
	}
	return func(o *options) { o.tracing = tp }
}
