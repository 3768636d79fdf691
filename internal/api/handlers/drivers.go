package handlers

import (
	"net/http"
	"strconv"
	"time"

	"driver-performance-service/internal/api/dto"
	"driver-performance-service/internal/apperr"
	"driver-performance-service/internal/ports"
	"driver-performance-service/internal/services"
)

// DriverHandler exposes read-only driver listing and workload endpoints.
type DriverHandler struct {
	Repo            ports.DriverRepository
	EligibilitySvc  *services.EligibilityService
	AvailabilitySvc *services.AvailabilityService
}

// List returns the active drivers at a warehouse.
func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	warehouseID, err := queryInt64(r, "warehouse_id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	drivers, err := h.Repo.FindActiveDriversByWarehouse(r.Context(), warehouseID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListDriversResponse{Drivers: make([]dto.DriverResponse, 0, len(drivers))}
	for _, d := range drivers {
		res.Drivers = append(res.Drivers, toDriverResponse(d))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Eligibility evaluates the weekly working-hours gate for one driver.
// The optional "at" query parameter (RFC 3339) overrides the reference time
// for pre-assignment checks; it defaults to now.
func (h *DriverHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	driverID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeServiceError(w, r, apperr.InvalidInput("driver id must be an integer, got %q", r.PathValue("id")))
		return
	}

	referenceTime := time.Now()
	if at := r.URL.Query().Get("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			writeServiceError(w, r, apperr.InvalidInput("at %q is not a valid RFC 3339 timestamp", at))
			return
		}
		referenceTime = parsed
	}

	result, err := h.EligibilitySvc.EvaluateEligibility(r.Context(), driverID, referenceTime)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.EligibilityResponse{
		DriverID:           result.DriverID,
		Eligible:           result.Eligible,
		TotalWorkedMinutes: result.TotalWorkedMinutes,
		WorkedHours:        result.WorkedHours,
		WorkedMinutes:      result.WorkedMinutes,
		LastTourEnd:        result.LastTourEnd,
		Message:            result.Message,
	}
	if result.RestSinceLastTour != nil {
		minutes := int64(result.RestSinceLastTour.Minutes())
		res.RestSinceLastTourMinutes = &minutes
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Availability partitions a warehouse's active drivers for a candidate tour
// date ("tour_date", YYYY-MM-DD).
func (h *DriverHandler) Availability(w http.ResponseWriter, r *http.Request) {
	warehouseID, err := queryInt64(r, "warehouse_id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	rawDate := r.URL.Query().Get("tour_date")
	if rawDate == "" {
		writeServiceError(w, r, apperr.InvalidInput("tour_date is required"))
		return
	}
	tourDate, err := time.Parse("2006-01-02", rawDate)
	if err != nil {
		writeServiceError(w, r, apperr.InvalidInput("tour_date %q is not a valid YYYY-MM-DD date", rawDate))
		return
	}

	result, err := h.AvailabilitySvc.ListAvailableDrivers(r.Context(), tourDate, warehouseID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.AvailabilityResponse{
		TourDate:    rawDate,
		WarehouseID: warehouseID,
		Available:   make([]dto.DriverResponse, 0, len(result.Available)),
		Unavailable: make([]dto.UnavailableDriverResponse, 0, len(result.Unavailable)),
	}
	for _, d := range result.Available {
		res.Available = append(res.Available, toDriverResponse(d))
	}
	for _, u := range result.Unavailable {
		res.Unavailable = append(res.Unavailable, dto.UnavailableDriverResponse{
			Driver: toDriverResponse(u.Driver),
			Reason: u.Reason,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
