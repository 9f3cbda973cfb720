package tracing

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"time"
)

var (
	_ Tracer = (*LoggingTracer)(nil)
	_ Tracer = NopTracer{}
	_ Span   = &loggingSpan{}
)

// LoggingTracer writes finished spans to a [slog.Logger]. Successful spans
// are logged at debug level, failed ones at info level.
type LoggingTracer struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewLoggingTracer(logger *slog.Logger) *LoggingTracer {
	if logger == nil {
		logger = slog.Default()
	}

	return &LoggingTracer{
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source used to measure spans.
func (l *LoggingTracer) WithClock(now func() time.Time) *LoggingTracer {
	l.now = now

	return l
}

//nolint:ireturn
func (l *LoggingTracer) StartSpan(operationName string) Span {
	return &loggingSpan{
		tracer:    l,
		operation: operationName,
		baggage:   map[string]any{},
		start:     l.now(),
	}
}

type exitCoder interface {
	ExitCode() int
}

type loggingSpan struct {
	start     time.Time
	err       error
	tracer    *LoggingTracer
	baggage   map[string]any
	operation string
}

func (s *loggingSpan) SetBaggageItem(key string, value any) {
	s.baggage[key] = value
}

func (s *loggingSpan) SetError(err error) {
	s.err = err
}

func (s *loggingSpan) Finish() {
	elapsed := s.tracer.now().Sub(s.start)

	attrs := make([]slog.Attr, 0, len(s.baggage)+4)
	attrs = append(attrs,
		slog.String("operation_name", s.operation),
		slog.Float64("time_ms", float64(elapsed.Microseconds())/1e3),
	)

	for _, k := range slices.Sorted(maps.Keys(s.baggage)) {
		attrs = append(attrs, slog.Any(k, s.baggage[k]))
	}

	level := slog.LevelDebug

	if s.err != nil {
		level = slog.LevelInfo

		attrs = append(attrs, slog.Any("err", s.err))

		var ec exitCoder
		if errors.As(s.err, &ec) {
			attrs = append(attrs, slog.Int("exit_code", ec.ExitCode()))
		}
	}

	s.tracer.logger.LogAttrs(context.Background(), level, "trace", attrs...)
}
