package render

import (
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Option customises the engine configuration.
type Option func(*Engine)

// WithFormID sets the form identifier pushed to every widget.
func WithFormID(id int) Option {
	return func(e *Engine) {
		e.formID = id
	}
}

// WithLogger injects a logger. Unrecognised node types are reported at warn
// level; dispatch diagnostics at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTracer overrides the tracer used for tree walks.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}
