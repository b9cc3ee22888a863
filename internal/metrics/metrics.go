package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Metrics exposes the business counters. Nil-safe: a nil *Metrics records
// nothing, which is how the service runs without an OTLP endpoint.
type Metrics struct {
	UsersRegistered    metric.Int64Counter
	CheckoutsCompleted metric.Int64Counter
	RevenueTotal       metric.Float64Counter

	provider *sdkmetric.MeterProvider
}

func Init(ctx context.Context, endpoint string) (*Metrics, error) {
	if endpoint == "" {
		return nil, nil
	}

	exporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(endpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName("tienda-api")),
	)
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)
	meter := provider.Meter("tienda-api")

	m := &Metrics{provider: provider}
	if m.UsersRegistered, err = meter.Int64Counter("users_registered_total"); err != nil {
		return nil, err
	}
	if m.CheckoutsCompleted, err = meter.Int64Counter("checkouts_completed_total"); err != nil {
		return nil, err
	}
	if m.RevenueTotal, err = meter.Float64Counter("revenue_total"); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) RecordRegistration(ctx context.Context) {
	if m == nil {
		return
	}
	m.UsersRegistered.Add(ctx, 1)
}

func (m *Metrics) RecordCheckout(ctx context.Context, total float64) {
	if m == nil {
		return
	}
	m.CheckoutsCompleted.Add(ctx, 1)
	m.RevenueTotal.Add(ctx, total)
}

func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}
