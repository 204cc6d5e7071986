package routes

import (
	"net/http"

	"github.com/careroute/backend/internal/api/handlers"
	"github.com/careroute/backend/internal/api/middleware"
	"github.com/careroute/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	routingHandler  *handlers.RoutingHandler
	facilityHandler *handlers.FacilityHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	routingHandler *handlers.RoutingHandler,
	facilityHandler *handlers.FacilityHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		routingHandler:  routingHandler,
		facilityHandler: facilityHandler,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Routing endpoints
	r.mux.HandleFunc("POST /api/routing/find-nearest", r.routingHandler.FindNearest)
	r.mux.HandleFunc("POST /api/routing/alternatives", r.routingHandler.FindAlternatives)
	r.mux.HandleFunc("GET /api/routing/availability/{serviceID}", r.routingHandler.CheckAvailability)
	r.mux.HandleFunc("GET /api/routing/services/{serviceID}/timeline", r.routingHandler.StatusTimeline)
	r.mux.HandleFunc("GET /api/routing/coverage", r.routingHandler.CoverageMap)
	r.mux.HandleFunc("GET /api/routing/analytics", r.routingHandler.Analytics)
	r.mux.HandleFunc("POST /api/routing/feedback/{recordID}", r.routingHandler.SubmitFeedback)

	// Facility endpoints
	r.mux.HandleFunc("GET /api/facilities", r.facilityHandler.ListFacilities)
	r.mux.HandleFunc("GET /api/facilities/{id}", r.facilityHandler.GetFacility)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
