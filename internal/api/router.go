package api

import (
	"net/http"

	"driver-performance-service/internal/api/handlers"
	"driver-performance-service/internal/ports"
	"driver-performance-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	drivers ports.DriverRepository,
	tours ports.TourRepository,
	cache ports.ScorecardCache,
	kmPerFuelUnit float64,
) http.Handler {
	mux := http.NewServeMux()

	driverHandler := &handlers.DriverHandler{
		Repo:            drivers,
		EligibilitySvc:  &services.EligibilityService{Drivers: drivers, Tours: tours},
		AvailabilitySvc: &services.AvailabilityService{Drivers: drivers, Tours: tours},
	}
	perfHandler := &handlers.PerformanceHandler{
		Service: services.NewPerformanceService(drivers, tours, kmPerFuelUnit),
		Cache:   cache,
	}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("GET /api/v1/drivers", driverHandler.List)
	mux.HandleFunc("GET /api/v1/drivers/availability", driverHandler.Availability)
	mux.HandleFunc("GET /api/v1/drivers/{id}/eligibility", driverHandler.Eligibility)

	mux.HandleFunc("GET /api/v1/performance", perfHandler.Get)
	mux.HandleFunc("GET /api/v1/performance/weekly", perfHandler.Weekly)
	mux.HandleFunc("DELETE /api/v1/performance/cache", perfHandler.InvalidateCache)

	return requestIDMiddleware(loggingMiddleware(mux))
}
