package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/golfcompete/golf-server/internal/series"
	"github.com/golfcompete/golf-server/internal/service"
)

// EndpointGetSeriesList handles the 'GET /v1/series' endpoint
func (svc *Service) EndpointGetSeriesList(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()
	respondPage(writer, svc.Series.List(request.Context(), values.Get("ownerId"), values.Get("page"), values.Get("limit")))
}

// EndpointGetSeries handles the 'GET /v1/series/{id}' endpoint
func (svc *Service) EndpointGetSeries(writer http.ResponseWriter, request *http.Request) {
	respond(writer, svc.Series.Get(request.Context(), chi.URLParam(request, "id")))
}

// EndpointGetSeriesEvents handles the 'GET /v1/series/{id}/events' endpoint
func (svc *Service) EndpointGetSeriesEvents(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()
	respondPage(writer, svc.Series.ListEvents(request.Context(), chi.URLParam(request, "id"), values.Get("page"), values.Get("limit")))
}

// EndpointGetSeriesStandings handles the 'GET /v1/series/{id}/standings' endpoint
func (svc *Service) EndpointGetSeriesStandings(writer http.ResponseWriter, request *http.Request) {
	respond(writer, svc.Series.Standings(request.Context(), chi.URLParam(request, "id")))
}

// EndpointCreateSeries handles the 'POST /v1/series' endpoint
func (svc *Service) EndpointCreateSeries(writer http.ResponseWriter, request *http.Request) {
	payload, decodeErr := decodeBody[series.Series](request)
	if decodeErr != nil {
		respond(writer, service.Fail[series.Series](decodeErr))
		return
	}
	payload.OwnerID = profileOf(request).ID
	respond(writer, svc.Series.Create(request.Context(), *payload))
}

// EndpointEditSeries handles the 'PATCH /v1/series/{id}' endpoint
func (svc *Service) EndpointEditSeries(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	if denied := svc.denyForeignSeries(writer, request, id); denied {
		return
	}
	changes, decodeErr := decodeRecord(request)
	if decodeErr != nil {
		respond(writer, service.Fail[series.Series](decodeErr))
		return
	}
	delete(changes, "ownerId")
	respond(writer, svc.Series.Update(request.Context(), id, changes))
}

// EndpointDeleteSeries handles the 'DELETE /v1/series/{id}' endpoint
func (svc *Service) EndpointDeleteSeries(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	if denied := svc.denyForeignSeries(writer, request, id); denied {
		return
	}
	respond(writer, svc.Series.Delete(request.Context(), id))
}

// EndpointAddSeriesEvent handles the 'POST /v1/series/{id}/events' endpoint
func (svc *Service) EndpointAddSeriesEvent(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	if denied := svc.denyForeignSeries(writer, request, id); denied {
		return
	}
	payload, decodeErr := decodeBody[series.Event](request)
	if decodeErr != nil {
		respond(writer, service.Fail[series.Event](decodeErr))
		return
	}
	payload.SeriesID = id
	respond(writer, svc.Series.AddEvent(request.Context(), *payload))
}

// EndpointJoinEvent handles the 'POST /v1/events/{id}/join' endpoint
func (svc *Service) EndpointJoinEvent(writer http.ResponseWriter, request *http.Request) {
	respond(writer, svc.Series.Join(request.Context(), chi.URLParam(request, "id"), profileOf(request).ID))
}

// EndpointLeaveEvent handles the 'DELETE /v1/events/{id}/join' endpoint
func (svc *Service) EndpointLeaveEvent(writer http.ResponseWriter, request *http.Request) {
	respond(writer, svc.Series.Leave(request.Context(), chi.URLParam(request, "id"), profileOf(request).ID))
}

// EndpointRecordEventResult handles the 'PATCH /v1/participants/{id}' endpoint
func (svc *Service) EndpointRecordEventResult(writer http.ResponseWriter, request *http.Request) {
	changes, decodeErr := decodeRecord(request)
	if decodeErr != nil {
		respond(writer, service.Fail[series.Participant](decodeErr))
		return
	}
	respond(writer, svc.Series.RecordResult(request.Context(), chi.URLParam(request, "id"), changes))
}

// denyForeignSeries rejects modifications of series owned by another profile; administrators may
// modify every series. It writes the response itself whenever it returns true.
func (svc *Service) denyForeignSeries(writer http.ResponseWriter, request *http.Request, id string) bool {
	response := svc.Series.Get(request.Context(), id)
	if response.Error != nil {
		respond(writer, response)
		return true
	}
	profile := profileOf(request)
	if response.Data.OwnerID != profile.ID && !profile.IsAdmin {
		fail(writer, http.StatusForbidden, service.NewError(service.CodeAuthInvalidCredentials, "only the series owner may modify it", nil))
		return true
	}
	return false
}
