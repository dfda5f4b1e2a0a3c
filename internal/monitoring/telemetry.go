package monitoring

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"makemeet/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

type Telemetry interface {
	RecordMeetingCreated(ctx context.Context)
	RecordAvailabilityUpdate(ctx context.Context, meetingID string, success bool)
	Logger() *slog.Logger
	Shutdown(ctx context.Context) error
}

type OpenTelemetry struct {
	meterProvider *sdkmetric.MeterProvider
	logger        *slog.Logger
	config        config.TelemetryConfig

	// Metrics instruments
	meetingsCreated     metric.Int64Counter
	availabilityUpdates metric.Int64Counter
}

// NewOpenTelemetry creates a telemetry instance with an OTLP gRPC metric
// exporter. With telemetry disabled or no exporter URL it still provides the
// logger and no-op recorders.
func NewOpenTelemetry(cfg config.TelemetryConfig) (Telemetry, error) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if !cfg.Enabled || cfg.ExporterURL == "" {
		logger.Info("Telemetry disabled or no exporter URL provided")
		return &OpenTelemetry{logger: logger, config: cfg}, nil
	}

	// Create resource with service information
	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
		attribute.String("deployment.environment", cfg.Environment),
	)

	metricExporter, err := otlpmetricgrpc.New(context.Background(),
		otlpmetricgrpc.WithEndpoint(cfg.ExporterURL),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
	)
	otel.SetMeterProvider(mp)

	meter := mp.Meter("makemeet")

	meetingsCreated, err := meter.Int64Counter("makemeet.meetings.created",
		metric.WithDescription("Number of meetings created"))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	availabilityUpdates, err := meter.Int64Counter("makemeet.availability.updates",
		metric.WithDescription("Number of member availability submissions"))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	return &OpenTelemetry{
		meterProvider:       mp,
		logger:              logger,
		config:              cfg,
		meetingsCreated:     meetingsCreated,
		availabilityUpdates: availabilityUpdates,
	}, nil
}

func (t *OpenTelemetry) RecordMeetingCreated(ctx context.Context) {
	if t.meetingsCreated == nil {
		return
	}
	t.meetingsCreated.Add(ctx, 1)
}

func (t *OpenTelemetry) RecordAvailabilityUpdate(ctx context.Context, meetingID string, success bool) {
	if t.availabilityUpdates == nil {
		return
	}
	t.availabilityUpdates.Add(ctx, 1, metric.WithAttributes(
		attribute.String("meeting.id", meetingID),
		attribute.Bool("success", success),
	))
}

func (t *OpenTelemetry) Logger() *slog.Logger {
	return t.logger
}

func (t *OpenTelemetry) Shutdown(ctx context.Context) error {
	if t.meterProvider == nil {
		return nil
	}
	return t.meterProvider.Shutdown(ctx)
}
