package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"driver-performance-service/internal/api/dto"
	"driver-performance-service/internal/apperr"
	"driver-performance-service/internal/domain"

	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Str("method", r.Method).Str("path", r.URL.Path).Err(err).Msg("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps a service error onto the API taxonomy: apperr values
// keep their status and message, anything else is an opaque 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if e, ok := apperr.As(err); ok && e.Code != apperr.CodeInternal {
		writeError(w, r, e.HTTPStatus(), e.Message)
		return
	}

	log.Error().Str("method", r.Method).Str("path", r.URL.Path).Err(err).Msg("request failed")
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, apperr.InvalidInput("%s is required", name)
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.InvalidInput("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

func toDriverResponse(d *domain.Driver) dto.DriverResponse {
	return dto.DriverResponse{
		DriverID:    d.DriverID,
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		WarehouseID: d.WarehouseID,
		Active:      d.Active,
	}
}
