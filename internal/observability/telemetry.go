package observability

import (
	"context"
	"time"

	"github.com/annel0/sector-stream/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// TelemetryOptions описывает экспорт трассировок
type TelemetryOptions struct {
	ServiceName string
	Endpoint    string  // host:port OTLP HTTP, по умолчанию localhost:4318
	Insecure    bool    // Без TLS
	SampleRatio float64 // Доля трассируемых циклов, 0..1
}

// InitTelemetry настраивает OTLP экспортер и устанавливает глобальный TracerProvider.
// Возвращает функцию shutdown, которую нужно вызвать при завершении приложения.
func InitTelemetry(ctx context.Context, opts TelemetryOptions) (func(context.Context) error, error) {
	var exporterOpts []otlptracehttp.Option
	if opts.Endpoint != "" {
		exporterOpts = append(exporterOpts, otlptracehttp.WithEndpoint(opts.Endpoint))
	}
	if opts.Insecure {
		exporterOpts = append(exporterOpts, otlptracehttp.WithInsecure())
	}

	exp, err := otlptracehttp.New(ctx, exporterOpts...)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(opts.ServiceName)),
	)
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(clampRatio(opts.SampleRatio)))),
	)

	otel.SetTracerProvider(tp)
	logging.Info("📡 OpenTelemetry инициализирован (endpoint=%s, service=%s)", endpointName(opts.Endpoint), opts.ServiceName)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}
	return shutdown, nil
}

func clampRatio(r float64) float64 {
	if r <= 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

func endpointName(endpoint string) string {
	if endpoint == "" {
		return "localhost:4318"
	}
	return endpoint
}
