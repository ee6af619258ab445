package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"growthpro/internal/business"
	"growthpro/internal/models"
	"growthpro/internal/version"
)

// maxBodyBytes caps the size of a JSON request body.
const maxBodyBytes = 1 << 20

// ComponentCheck reports whether a dependency is usable. A nil error means
// healthy.
type ComponentCheck func(ctx context.Context) error

type component struct {
	name    string
	message string
	check   ComponentCheck
}

// Handlers contains HTTP handlers for the growthpro API
type Handlers struct {
	service    business.ServiceInterface
	components []component
	gauges     map[string]func() int
}

// HandlerOption configures optional handler behavior.
type HandlerOption func(*Handlers)

// WithComponent adds a component to the health report. check may be nil for
// components that are always healthy once running.
func WithComponent(name, message string, check ComponentCheck) HandlerOption {
	return func(h *Handlers) {
		h.components = append(h.components, component{name: name, message: message, check: check})
	}
}

// WithHealthGauge adds a numeric value to the metrics section of the health
// report, read on every request.
func WithHealthGauge(name string, value func() int) HandlerOption {
	return func(h *Handlers) {
		h.gauges[name] = value
	}
}

// NewHandlers creates a new handlers instance
func NewHandlers(service business.ServiceInterface, opts ...HandlerOption) *Handlers {
	h := &Handlers{
		service: service,
		gauges:  make(map[string]func() int),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Index describes the service and its operations.
// GET /
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, models.IndexResponse{
		Message: "GrowthProAI Backend API",
		Version: version.APIVersion,
		Endpoints: map[string]string{
			"POST /business-data":      "Generate business dashboard data",
			"GET /regenerate-headline": "Regenerate SEO headline",
			"GET /health":              "Health check",
		},
	})
}

// CreateBusinessData synthesizes a business record.
// POST /business-data
func (h *Handlers) CreateBusinessData(w http.ResponseWriter, r *http.Request) {
	var req models.BusinessDataRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			h.writeErrorResponse(w, r, http.StatusRequestEntityTooLarge, models.ErrorCodeBadRequest, "Request body too large")
		case errors.Is(err, io.EOF):
			h.writeErrorResponse(w, r, http.StatusBadRequest, models.ErrorCodeBadRequest, "Request body is required")
		default:
			h.writeErrorResponse(w, r, http.StatusBadRequest, models.ErrorCodeBadRequest, "Invalid JSON body")
		}
		return
	}

	record, err := h.service.CreateRecord(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, models.BusinessDataResponse{
		Success: true,
		Data:    *record,
		Message: models.MessageRecordCreated,
	})
}

// RegenerateHeadline produces a fresh headline for a business.
// GET /regenerate-headline?name=...&location=...
func (h *Handlers) RegenerateHeadline(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.HeadlineRequest{
		Name:     query.Get("name"),
		Location: query.Get("location"),
	}

	headline, err := h.service.RegenerateHeadline(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, models.HeadlineResponse{
		Success:  true,
		Headline: headline,
		Message:  models.MessageHeadlineCreated,
	})
}

// HealthCheck handles health check requests. It is never governed.
// GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := models.NewHealthCheckResponse(models.StatusHealthy)
	response.Version = version.APIVersion
	response.Uptime = version.Uptime().String()

	response.AddComponent("api", models.StatusHealthy, "API is operational")

	for _, c := range h.components {
		if c.check == nil {
			response.AddComponent(c.name, models.StatusHealthy, c.message)
			continue
		}
		if err := c.check(r.Context()); err != nil {
			slog.Warn("Health check failed", "component", c.name, "error", err)
			response.AddComponent(c.name, models.StatusDegraded, err.Error())
			response.Status = models.StatusDegraded
			continue
		}
		response.AddComponent(c.name, models.StatusHealthy, c.message)
	}

	for name, value := range h.gauges {
		response.AddMetric(name, value())
	}

	// Degraded dependencies still leave the process serving, so the probe
	// answers 200 either way.
	h.writeJSONResponse(w, http.StatusOK, response)
}

// writeServiceError maps a service failure onto the error taxonomy. Anything
// that is not a validation error is reported with a generic message.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *business.ServiceError
	if errors.As(err, &svcErr) && svcErr.Code == models.ErrorCodeValidation {
		resp := models.NewValidationErrorResponse(svcErr.Field, svcErr.Message)
		resp.RequestID = models.RequestIDFromContext(r.Context())
		h.writeJSONResponse(w, svcErr.StatusCode, resp)
		return
	}

	slog.Error("Business operation failed",
		"error", err,
		"path", r.URL.Path,
		"request_id", models.RequestIDFromContext(r.Context()))

	message := models.MessageInternalError
	if svcErr != nil && svcErr.Message != "" {
		message = svcErr.Message
	}
	h.writeErrorResponse(w, r, http.StatusInternalServerError, models.ErrorCodeInternalError, message)
}

// writeJSONResponse writes a JSON response
func (h *Handlers) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	writeJSON(w, statusCode, data)
}

// writeErrorResponse writes an error response
func (h *Handlers) writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, errorCode, message string) {
	writeError(w, r, statusCode, errorCode, message)
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already written, nothing more can be sent
		slog.Error("Error encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, statusCode int, errorCode, message string) {
	errorResp := models.NewErrorResponse(message, errorCode)
	errorResp.RequestID = models.RequestIDFromContext(r.Context())
	writeJSON(w, statusCode, errorResp)
}
