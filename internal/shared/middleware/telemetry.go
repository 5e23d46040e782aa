package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HealthPath is polled by load balancers and kept out of telemetry.
const HealthPath = "/health"

// Telemetry wraps the API in otelhttp instrumentation: a span per request
// plus the standard request duration, size and active-request metrics.
// Health probes are not recorded.
func Telemetry(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "finman-api",
		otelhttp.WithFilter(traceable),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "HTTP " + r.Method
		}),
	)
}

func traceable(r *http.Request) bool {
	return r.URL.Path != HealthPath
}
