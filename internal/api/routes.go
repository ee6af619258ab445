package api

import (
	"net/http"

	"growthpro/internal/models"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// endpoint describes one public operation.
type endpoint struct {
	method   string
	path     string
	governed bool
}

// endpoints is the complete operation set, in the order 404 responses list it.
var endpoints = []endpoint{
	{http.MethodGet, "/", true},
	{http.MethodPost, "/business-data", true},
	{http.MethodGet, "/regenerate-headline", true},
	{http.MethodGet, "/health", false},
}

// AvailableEndpoints lists every operation as "METHOD /path".
func AvailableEndpoints() []string {
	out := make([]string, 0, len(endpoints))
	for _, e := range endpoints {
		out = append(out, e.method+" "+e.path)
	}
	return out
}

// allowedMethods returns the methods registered for path.
func allowedMethods(path string) []string {
	var methods []string
	for _, e := range endpoints {
		if e.path == path {
			methods = append(methods, e.method)
		}
	}
	return methods
}

type routeOptions struct {
	routerMiddleware []mux.MiddlewareFunc
	governor         Middleware
}

// RouteOption configures optional route behavior.
type RouteOption func(*routeOptions)

// WithOTelMiddleware adds OpenTelemetry HTTP instrumentation middleware.
// Health probes are not traced.
func WithOTelMiddleware(serviceName string) RouteOption {
	return func(o *routeOptions) {
		o.routerMiddleware = append(o.routerMiddleware, otelmux.Middleware(serviceName,
			otelmux.WithFilter(func(r *http.Request) bool {
				return r.URL.Path != "/health"
			}),
		))
	}
}

// WithGovernor runs every governed route through middleware, typically
// ratelimit.Middleware. Ungoverned routes never see it.
func WithGovernor(middleware func(http.Handler) http.Handler) RouteOption {
	return func(o *routeOptions) {
		o.governor = middleware
	}
}

// SetupRoutes configures the HTTP routes for the API and wraps them in the
// request pipeline: request id, logging, panic recovery, security headers,
// CORS and compression, outermost first.
func SetupRoutes(handlers *Handlers, config *models.Config, opts ...RouteOption) http.Handler {
	var o routeOptions
	for _, opt := range opts {
		opt(&o)
	}

	router := mux.NewRouter()
	for _, mw := range o.routerMiddleware {
		router.Use(mw)
	}

	routeHandlers := map[string]http.HandlerFunc{
		"GET /":                    handlers.Index,
		"POST /business-data":      handlers.CreateBusinessData,
		"GET /regenerate-headline": handlers.RegenerateHeadline,
		"GET /health":              handlers.HealthCheck,
	}

	for _, e := range endpoints {
		var h http.Handler = routeHandlers[e.method+" "+e.path]
		if e.governed && o.governor != nil {
			h = o.governor(h)
		}
		router.Handle(e.path, h).Methods(e.method)
	}

	router.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedHandler)

	middlewares := []Middleware{
		requestIDMiddleware,
		loggingMiddleware,
		recoveryMiddleware,
		securityHeadersMiddleware(config.Server.TLSEnabled),
	}
	if config.Server.CORS.Enabled {
		middlewares = append(middlewares, corsMiddleware(config.Server.CORS))
	}
	middlewares = append(middlewares, compressionMiddleware)

	return chain(router, middlewares...)
}

// notFoundHandler answers unknown paths with the list of valid operations.
func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	errorResp := models.NewNotFoundErrorResponse(AvailableEndpoints())
	errorResp.RequestID = models.RequestIDFromContext(r.Context())
	writeJSON(w, http.StatusNotFound, errorResp)
}

// methodNotAllowedHandler handles requests with invalid HTTP methods
func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	if methods := allowedMethods(r.URL.Path); len(methods) > 0 {
		w.Header().Set("Allow", joinMethods(methods))
	}
	writeError(w, r, http.StatusMethodNotAllowed, models.ErrorCodeMethodNotAllowed,
		r.Method+" is not supported for "+r.URL.Path)
}
