package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ghuser/hourglass"

// Command outcomes recorded by CommandMetrics.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFault    = "fault"
)

// CommandMetrics counts tracking commands by name and outcome and records
// their latency.
type CommandMetrics struct {
	commands metric.Int64Counter
	duration metric.Float64Histogram
}

// NewCommandMetrics registers the instruments on mp. A nil mp uses the global
// provider installed by Setup.
func NewCommandMetrics(mp metric.MeterProvider) (*CommandMetrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	commands, err := meter.Int64Counter("tracking.commands",
		metric.WithDescription("Tracking commands handled, by command and outcome"),
		metric.WithUnit("{command}"),
	)
	if err != nil {
		return nil, fmt.Errorf("tracking.commands counter: %w", err)
	}
	duration, err := meter.Float64Histogram("tracking.command.duration",
		metric.WithDescription("Tracking command latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("tracking.command.duration histogram: %w", err)
	}
	return &CommandMetrics{commands: commands, duration: duration}, nil
}

// Record adds one command outcome. kind is the domain error kind for rejected
// commands and empty otherwise.
func (m *CommandMetrics) Record(ctx context.Context, command, outcome, kind string, elapsed time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("command", command),
		attribute.String("outcome", outcome),
	}
	if kind != "" {
		attrs = append(attrs, attribute.String("kind", kind))
	}
	set := metric.WithAttributes(attrs...)
	m.commands.Add(ctx, 1, set)
	m.duration.Record(ctx, elapsed.Seconds(), set)
}
