package collector

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("medicollector.internal.collector")
