package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/careroute/backend/internal/application/services"
	"github.com/careroute/backend/internal/domain/entities"
	"github.com/careroute/backend/internal/domain/repositories"
)

// RoutingHandler handles patient routing HTTP requests
type RoutingHandler struct {
	routingService   *services.RoutingService
	resolver         *services.ScheduleResolver
	analyticsService *services.AnalyticsService
}

// NewRoutingHandler creates a new routing handler
func NewRoutingHandler(
	routingService *services.RoutingService,
	resolver *services.ScheduleResolver,
	analyticsService *services.AnalyticsService,
) *RoutingHandler {
	return &RoutingHandler{
		routingService:   routingService,
		resolver:         resolver,
		analyticsService: analyticsService,
	}
}

type findNearestRequest struct {
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	ServiceType   string   `json:"service_type"`
	At            *string  `json:"at,omitempty"`
	MaxDistanceKm float64  `json:"max_distance_km,omitempty"`
	Limit         int      `json:"limit,omitempty"`
	City          string   `json:"city,omitempty"`
	UrgencyTier   *int     `json:"urgency_tier,omitempty"`
}

// FindNearest handles POST /api/routing/find-nearest
func (h *RoutingHandler) FindNearest(w http.ResponseWriter, r *http.Request) {
	var req findNearestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	at, ok := parseInstant(w, req.At)
	if !ok {
		return
	}

	candidates, err := h.routingService.FindNearestWithService(r.Context(), services.RoutingQuery{
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		ServiceType:   entities.ServiceType(req.ServiceType),
		At:            at,
		MaxDistanceKm: req.MaxDistanceKm,
		Limit:         req.Limit,
		City:          req.City,
		UrgencyTier:   req.UrgencyTier,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"candidates": candidates,
		"count":      len(candidates),
	})
}

type alternativesRequest struct {
	FacilityID    string  `json:"facility_id"`
	ServiceType   string  `json:"service_type"`
	At            *string `json:"at,omitempty"`
	MaxDistanceKm float64 `json:"max_distance_km,omitempty"`
}

// FindAlternatives handles POST /api/routing/alternatives
func (h *RoutingHandler) FindAlternatives(w http.ResponseWriter, r *http.Request) {
	var req alternativesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	at, ok := parseInstant(w, req.At)
	if !ok {
		return
	}

	candidates, err := h.routingService.FindAlternativeServices(
		r.Context(), req.FacilityID, entities.ServiceType(req.ServiceType), at, req.MaxDistanceKm)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"candidates": candidates,
		"count":      len(candidates),
	})
}

// CheckAvailability handles GET /api/routing/availability/{serviceID}
func (h *RoutingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	serviceID := r.PathValue("serviceID")
	if serviceID == "" {
		respondWithError(w, http.StatusBadRequest, "service ID is required")
		return
	}

	at, ok := parseInstantQuery(w, r, "at")
	if !ok {
		return
	}

	availability, err := h.routingService.CheckAvailability(r.Context(), serviceID, at)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, availability)
}

// StatusTimeline handles GET /api/routing/services/{serviceID}/timeline
func (h *RoutingHandler) StatusTimeline(w http.ResponseWriter, r *http.Request) {
	serviceID := r.PathValue("serviceID")
	if serviceID == "" {
		respondWithError(w, http.StatusBadRequest, "service ID is required")
		return
	}

	var startDate, endDate time.Time
	if s := r.URL.Query().Get("start_date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
			return
		}
		startDate = parsed
	}
	if s := r.URL.Query().Get("end_date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
			return
		}
		endDate = parsed
	}

	timeline, err := h.resolver.StatusTimeline(r.Context(), serviceID, startDate, endDate)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"service_id": serviceID,
		"timeline":   timeline,
	})
}

// CoverageMap handles GET /api/routing/coverage
func (h *RoutingHandler) CoverageMap(w http.ResponseWriter, r *http.Request) {
	serviceType := r.URL.Query().Get("service_type")
	if serviceType == "" {
		respondWithError(w, http.StatusBadRequest, "service_type query parameter is required")
		return
	}

	at, ok := parseInstantQuery(w, r, "at")
	if !ok {
		return
	}

	coverage, err := h.routingService.ServiceCoverageMap(r.Context(), entities.ServiceType(serviceType), at)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"service_type": serviceType,
		"coverage":     coverage,
	})
}

// Analytics handles GET /api/routing/analytics
func (h *RoutingHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	filter := repositories.DecisionLogFilter{
		ServiceType: entities.ServiceType(r.URL.Query().Get("service_type")),
		City:        r.URL.Query().Get("city"),
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
			return
		}
		filter.StartDate = &parsed
	}
	if s := r.URL.Query().Get("end_date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
			return
		}
		filter.EndDate = &parsed
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 0 {
			respondWithError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}

	analytics, err := h.analyticsService.RoutingAnalytics(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, analytics)
}

type feedbackRequest struct {
	Accepted bool   `json:"accepted"`
	Feedback string `json:"feedback,omitempty"`
}

// SubmitFeedback handles POST /api/routing/feedback/{recordID}
func (h *RoutingHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	recordID := r.PathValue("recordID")
	if recordID == "" {
		respondWithError(w, http.StatusBadRequest, "record ID is required")
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.analyticsService.AttachFeedback(r.Context(), recordID, req.Accepted, req.Feedback); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// parseInstant parses an optional RFC 3339 timestamp from a request body
// field. A nil or empty value means "now" (zero time).
func parseInstant(w http.ResponseWriter, raw *string) (time.Time, bool) {
	if raw == nil || *raw == "" {
		return time.Time{}, true
	}
	at, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid timestamp, expected RFC 3339")
		return time.Time{}, false
	}
	return at, true
}

func parseInstantQuery(w http.ResponseWriter, r *http.Request, param string) (time.Time, bool) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return time.Time{}, true
	}
	return parseInstant(w, &raw)
}
