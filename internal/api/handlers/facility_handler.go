package handlers

import (
	"net/http"
	"strconv"

	"github.com/careroute/backend/internal/domain/entities"
	"github.com/careroute/backend/internal/domain/repositories"
)

// FacilityHandler handles facility-related HTTP requests
type FacilityHandler struct {
	facilityRepo repositories.FacilityRepository
}

// NewFacilityHandler creates a new facility handler
func NewFacilityHandler(facilityRepo repositories.FacilityRepository) *FacilityHandler {
	return &FacilityHandler{
		facilityRepo: facilityRepo,
	}
}

// GetFacility handles GET /api/facilities/{id}
func (h *FacilityHandler) GetFacility(w http.ResponseWriter, r *http.Request) {
	facilityID := r.PathValue("id")
	if facilityID == "" {
		respondWithError(w, http.StatusBadRequest, "facility ID is required")
		return
	}

	facility, err := h.facilityRepo.GetByID(r.Context(), facilityID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, facility)
}

// ListFacilities handles GET /api/facilities
func (h *FacilityHandler) ListFacilities(w http.ResponseWriter, r *http.Request) {
	filter := repositories.FacilityFilter{
		FacilityType: entities.FacilityType(r.URL.Query().Get("type")),
		City:         r.URL.Query().Get("city"),
		Limit:        30,
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 {
			respondWithError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		offset, err := strconv.Atoi(s)
		if err != nil || offset < 0 {
			respondWithError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = offset
	}

	facilities, err := h.facilityRepo.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"facilities": facilities,
		"count":      len(facilities),
	})
}
