package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"yadoya/config"
	"yadoya/infras/otel"
	"yadoya/shared/cache"
	"yadoya/shared/constant"
	"yadoya/shared/locale"
	"yadoya/shared/metrics"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	Locale(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
	}
}

// statusWriter captures the response code for the span and the request
// counter.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Tracing opens a span per request and records the request metrics.
func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		spanName := fmt.Sprintf("%s %s", r.Method, r.URL.Path)

		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.method":     r.Method,
			"http.user_agent": r.Header.Get(constant.RequestHeaderUserAgent),
			"http.host":       r.Host,
			"http.source":     r.RemoteAddr,
		})

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(sw, r.WithContext(ctx))

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		scope.SetAttributes(map[string]any{
			"http.route":       route,
			"http.status_code": sw.status,
		})

		metrics.ObserveHTTP(route, r.Method, sw.status, time.Since(start))
	})
}

// Locale resolves the requested display language from the lang query
// parameter and stores the normalized code in the request context.
func (a *appMiddleware) Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := locale.Normalize(r.URL.Query().Get(constant.RequestParamLang), a.config.App.DefaultLocale)

		ctx := context.WithValue(r.Context(), constant.ContextKeyLocale, code)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LocaleFromContext reads the code set by the Locale middleware.
func LocaleFromContext(ctx context.Context, fallback string) string {
	if code, ok := ctx.Value(constant.ContextKeyLocale).(string); ok && code != "" {
		return code
	}

	return fallback
}
