package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"driver-performance-service/internal/api/dto"
	"driver-performance-service/internal/apperr"
	"driver-performance-service/internal/domain"
	"driver-performance-service/internal/ports"
	"driver-performance-service/internal/services"

	"github.com/rs/zerolog/log"
)

// PerformanceHandler exposes the KPI scoring engine over HTTP, with an
// optional response cache in front of it. Cache failures degrade to a
// recompute; they never fail the request.
type PerformanceHandler struct {
	Service *services.PerformanceService
	Cache   ports.ScorecardCache
}

// Get computes per-driver scorecards over an inclusive date range.
func (h *PerformanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, driverID, err := performanceParams(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	key := cacheKey("range", startDate, endDate, driverID)
	if h.serveCached(w, r, key) {
		return
	}

	cards, err := h.Service.GetDriverPerformance(r.Context(), startDate, endDate, driverID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.PerformanceResponse{
		StartDate:  startDate,
		EndDate:    endDate,
		Scorecards: make([]dto.ScorecardResponse, 0, len(cards)),
	}
	for _, c := range cards {
		res.Scorecards = append(res.Scorecards, toScorecardResponse(c))
	}

	h.writeAndCache(w, r, key, res)
}

// Weekly computes scorecards bucketed per calendar week.
func (h *PerformanceHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, driverID, err := performanceParams(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	key := cacheKey("weekly", startDate, endDate, driverID)
	if h.serveCached(w, r, key) {
		return
	}

	cards, err := h.Service.GetDriverPerformanceWeekly(r.Context(), startDate, endDate, driverID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.WeeklyPerformanceResponse{
		StartDate:  startDate,
		EndDate:    endDate,
		Scorecards: make([]dto.WeeklyScorecardResponse, 0, len(cards)),
	}
	for _, c := range cards {
		res.Scorecards = append(res.Scorecards, dto.WeeklyScorecardResponse{
			WeekStart:         c.WeekStart.Format("2006-01-02"),
			WeekEnd:           c.WeekEnd.Format("2006-01-02"),
			ScorecardResponse: toScorecardResponse(c.Scorecard),
		})
	}

	h.writeAndCache(w, r, key, res)
}

// InvalidateCache drops all cached scorecard responses.
func (h *PerformanceHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	if h.Cache == nil {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "cache disabled"})
		return
	}

	if err := h.Cache.Invalidate(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "cache invalidated"})
}

// serveCached writes a cached response when one exists. Cache read errors
// are logged and treated as misses.
func (h *PerformanceHandler) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if h.Cache == nil {
		return false
	}

	payload, hit, err := h.Cache.Get(r.Context(), key)
	if err != nil {
		log.Warn().Str("key", key).Err(err).Msg("scorecard cache read failed")
		return false
	}
	if !hit {
		return false
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "hit")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		log.Error().Str("key", key).Err(err).Msg("write cached response failed")
	}
	return true
}

func (h *PerformanceHandler) writeAndCache(w http.ResponseWriter, r *http.Request, key string, res any) {
	if h.Cache != nil {
		if payload, err := json.Marshal(res); err == nil {
			if err := h.Cache.Put(r.Context(), key, payload); err != nil {
				log.Warn().Str("key", key).Err(err).Msg("scorecard cache write failed")
			}
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

func performanceParams(r *http.Request) (startDate, endDate string, driverID *int64, err error) {
	q := r.URL.Query()
	startDate = q.Get("start_date")
	endDate = q.Get("end_date")

	if raw := q.Get("driver_id"); raw != "" {
		id, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			return "", "", nil, apperr.InvalidInput("driver_id must be an integer, got %q", raw)
		}
		driverID = &id
	}

	return startDate, endDate, driverID, nil
}

func cacheKey(kind, startDate, endDate string, driverID *int64) string {
	driver := "all"
	if driverID != nil {
		driver = strconv.FormatInt(*driverID, 10)
	}
	return fmt.Sprintf("%s:%s:%s:%s", kind, startDate, endDate, driver)
}

func toScorecardResponse(c domain.Scorecard) dto.ScorecardResponse {
	return dto.ScorecardResponse{
		DriverID:               c.DriverID,
		DriverName:             c.DriverName,
		CompletedTours:         c.CompletedTours,
		ImagesUploaded:         c.ImagesUploaded,
		ImagesPossible:         c.ImagesPossible,
		ImageScore:             c.ImageScore,
		ExpectedDeliveries:     c.ExpectedDeliveries,
		ActualDeliveries:       c.ActualDeliveries,
		DeliveryScore:          c.DeliveryScore,
		ValidPODs:              c.ValidPODs,
		PODScore:               c.PODScore,
		PlannedKM:              c.PlannedKM,
		ActualKM:               c.ActualKM,
		KMScore:                c.KMScore,
		PlannedDurationSeconds: c.PlannedDurationSeconds,
		ActualDurationSeconds:  c.ActualDurationSeconds,
		TimeScore:              c.TimeScore,
		FuelScore:              c.FuelScore,
		CustomerScore:          c.CustomerScore,
		Rating:                 c.Rating,
		LegacyRating:           c.LegacyRating,
	}
}
