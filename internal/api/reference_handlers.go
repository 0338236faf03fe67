package api

import (
	"net/http"
	"time"

	"airport-booking/skyport/internal/common"
	"airport-booking/skyport/internal/constants"
)

// Airports

func (h *Handlers) ListAirports() http.HandlerFunc {
	return listHandler(h.deps.Services.Airports.List, "Airports fetched")
}

func (h *Handlers) GetAirport() http.HandlerFunc {
	return getHandler(h.deps.Services.Airports.Get, "Airport fetched")
}

func (h *Handlers) CreateAirport() http.HandlerFunc {
	return createHandler(h.deps.Services.Airports.Create, "Airport created")
}

func (h *Handlers) UpdateAirport() http.HandlerFunc {
	return updateHandler(h.deps.Services.Airports.Update, "Airport updated")
}

func (h *Handlers) DeleteAirport() http.HandlerFunc {
	return deleteHandler(h.deps.Services.Airports.Delete, "Airport deleted")
}

// ImportAirports godoc
// POST /api/v1/admin/airports/import
// Body is an airport dump keyed by ICAO code. Existing names are skipped.
func (h *Handlers) ImportAirports() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		r.Body = http.MaxBytesReader(w, r.Body, 32*maxBodyBytes)
		result, err := h.deps.Services.AirportLoader.LoadFromJSON(r.Context(), r.Body)
		if err != nil {
			common.RespondError(w, initTime, err, constants.MsgInvalidPayload, http.StatusBadRequest)
			return
		}
		if result.Inserted > 0 {
			h.deps.Services.Airports.InvalidateCache()
		}
		common.RespondSuccess(w, initTime, "Airports imported", result)
	}
}

// Airplane types

func (h *Handlers) ListAirplaneTypes() http.HandlerFunc {
	return listHandler(h.deps.Services.AirplaneTypes.List, "Airplane types fetched")
}

func (h *Handlers) GetAirplaneType() http.HandlerFunc {
	return getHandler(h.deps.Services.AirplaneTypes.Get, "Airplane type fetched")
}

func (h *Handlers) CreateAirplaneType() http.HandlerFunc {
	return createHandler(h.deps.Services.AirplaneTypes.Create, "Airplane type created")
}

func (h *Handlers) UpdateAirplaneType() http.HandlerFunc {
	return updateHandler(h.deps.Services.AirplaneTypes.Update, "Airplane type updated")
}

func (h *Handlers) DeleteAirplaneType() http.HandlerFunc {
	return deleteHandler(h.deps.Services.AirplaneTypes.Delete, "Airplane type deleted")
}

// Airplanes

func (h *Handlers) ListAirplanes() http.HandlerFunc {
	return listHandler(h.deps.Services.Airplanes.List, "Airplanes fetched")
}

func (h *Handlers) GetAirplane() http.HandlerFunc {
	return getHandler(h.deps.Services.Airplanes.Get, "Airplane fetched")
}

func (h *Handlers) CreateAirplane() http.HandlerFunc {
	return createHandler(h.deps.Services.Airplanes.Create, "Airplane created")
}

func (h *Handlers) UpdateAirplane() http.HandlerFunc {
	return updateHandler(h.deps.Services.Airplanes.Update, "Airplane updated")
}

func (h *Handlers) DeleteAirplane() http.HandlerFunc {
	return deleteHandler(h.deps.Services.Airplanes.Delete, "Airplane deleted")
}

// Routes

func (h *Handlers) ListRoutes() http.HandlerFunc {
	return listHandler(h.deps.Services.Routes.List, "Routes fetched")
}

func (h *Handlers) GetRoute() http.HandlerFunc {
	return getHandler(h.deps.Services.Routes.Get, "Route fetched")
}

func (h *Handlers) CreateRoute() http.HandlerFunc {
	return createHandler(h.deps.Services.Routes.Create, "Route created")
}

func (h *Handlers) UpdateRoute() http.HandlerFunc {
	return updateHandler(h.deps.Services.Routes.Update, "Route updated")
}

func (h *Handlers) DeleteRoute() http.HandlerFunc {
	return deleteHandler(h.deps.Services.Routes.Delete, "Route deleted")
}

// Crew

func (h *Handlers) ListCrew() http.HandlerFunc {
	return listHandler(h.deps.Services.Crew.List, "Crew fetched")
}

func (h *Handlers) GetCrewMember() http.HandlerFunc {
	return getHandler(h.deps.Services.Crew.Get, "Crew member fetched")
}

func (h *Handlers) CreateCrewMember() http.HandlerFunc {
	return createHandler(h.deps.Services.Crew.Create, "Crew member created")
}

func (h *Handlers) UpdateCrewMember() http.HandlerFunc {
	return updateHandler(h.deps.Services.Crew.Update, "Crew member updated")
}

func (h *Handlers) DeleteCrewMember() http.HandlerFunc {
	return deleteHandler(h.deps.Services.Crew.Delete, "Crew member deleted")
}

// Flights

func (h *Handlers) ListFlights() http.HandlerFunc {
	return listHandler(h.deps.Services.Flights.List, "Flights fetched")
}

func (h *Handlers) GetFlight() http.HandlerFunc {
	return getHandler(h.deps.Services.Flights.Get, "Flight fetched")
}

func (h *Handlers) CreateFlight() http.HandlerFunc {
	return createHandler(h.deps.Services.Flights.Create, "Flight created")
}

func (h *Handlers) UpdateFlight() http.HandlerFunc {
	return updateHandler(h.deps.Services.Flights.Update, "Flight updated")
}

func (h *Handlers) DeleteFlight() http.HandlerFunc {
	return deleteHandler(h.deps.Services.Flights.Delete, "Flight deleted")
}
