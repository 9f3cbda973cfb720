// Package tracing records operation timings.
package tracing

// Tracer starts spans for named operations.
type Tracer interface {
	StartSpan(operationName string) Span
}

// Span is a single timed operation.
type Span interface {
	SetBaggageItem(key string, value any)
	// SetError records the outcome of the operation. A nil error is a
	// success.
	SetError(err error)
	Finish()
}

// NopTracer discards all spans.
type NopTracer struct{}

//nolint:ireturn
func (NopTracer) StartSpan(string) Span { return nopSpan{} }

type nopSpan struct{}

func (nopSpan) SetBaggageItem(string, any) {}
func (nopSpan) SetError(error)             {}
func (nopSpan) Finish()                    {}
