// Package middleware provides the gin middleware chain of the HomeFinder API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// TracerProvider defaults to the global provider when nil
	TracerProvider trace.TracerProvider
	// Filter excludes requests from tracing when it returns false
	Filter func(*http.Request) bool
}

// DefaultTracingConfig returns default tracing configuration.
// Health probes are not traced.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "homefinder",
		Enabled:     true,
		Filter: func(r *http.Request) bool {
			return r.URL.Path != "/health"
		},
	}
}

// TracingWithConfig returns the otelgin middleware. Span names follow the
// route pattern (e.g. "GET /api/v1/listings/:id").
// Place SpanEnricher right after it.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	var opts []otelgin.Option
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgin.WithTracerProvider(cfg.TracerProvider))
	}
	if cfg.Filter != nil {
		opts = append(opts, otelgin.WithFilter(cfg.Filter))
	}
	return otelgin.Middleware(cfg.ServiceName, opts...)
}

// SpanEnricher tags the request span with request and user IDs once the
// handlers ran, and marks 4xx/5xx responses as errors.
// It must run inside the span, after TracingWithConfig.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		enrichSpan(c, span)
		markSpanStatus(span, c.Writer.Status())
	}
}

func enrichSpan(c *gin.Context, span trace.Span) {
	if requestID := c.GetString(RequestIDKey); requestID != "" {
		span.SetAttributes(attribute.String("request_id", requestID))
	}
	if userID := c.GetString(JWTUserIDKey); userID != "" {
		span.SetAttributes(attribute.String("user_id", userID))
	}
}

func markSpanStatus(span trace.Span, status int) {
	if status < http.StatusBadRequest {
		return
	}
	span.SetStatus(codes.Error, http.StatusText(status))
	span.SetAttributes(attribute.Int("http.status_code", status))
}
