package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/golfcompete/golf-server/internal/round"
	"github.com/golfcompete/golf-server/internal/service"
)

type submitRoundPayload struct {
	Round  round.Round       `json:"round"`
	Scores []round.HoleScore `json:"scores"`
}

// EndpointGetRounds handles the 'GET /v1/rounds' endpoint.
// It only ever lists the rounds of the authenticated profile.
func (svc *Service) EndpointGetRounds(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()
	respondPage(writer, svc.Rounds.ListByProfile(request.Context(), profileOf(request).ID, values.Get("page"), values.Get("limit")))
}

// EndpointGetRound handles the 'GET /v1/rounds/{id}' endpoint
func (svc *Service) EndpointGetRound(writer http.ResponseWriter, request *http.Request) {
	response := svc.Rounds.Get(request.Context(), chi.URLParam(request, "id"))
	if denied := svc.denyForeignRound(writer, request, response); denied {
		return
	}
	respond(writer, response)
}

// EndpointGetRoundScores handles the 'GET /v1/rounds/{id}/scores' endpoint
func (svc *Service) EndpointGetRoundScores(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	if denied := svc.denyForeignRound(writer, request, svc.Rounds.Get(request.Context(), id)); denied {
		return
	}
	respondPage(writer, svc.Rounds.GetScores(request.Context(), id))
}

// EndpointSubmitRound handles the 'POST /v1/rounds' endpoint
func (svc *Service) EndpointSubmitRound(writer http.ResponseWriter, request *http.Request) {
	payload, decodeErr := decodeBody[submitRoundPayload](request)
	if decodeErr != nil {
		respond(writer, service.Fail[round.Round](decodeErr))
		return
	}
	// Rounds are always submitted on behalf of the authenticated profile
	payload.Round.ProfileID = profileOf(request).ID
	respond(writer, svc.Rounds.Submit(request.Context(), payload.Round, payload.Scores))
}

// EndpointEditRound handles the 'PATCH /v1/rounds/{id}' endpoint
func (svc *Service) EndpointEditRound(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	if denied := svc.denyForeignRound(writer, request, svc.Rounds.Get(request.Context(), id)); denied {
		return
	}
	changes, decodeErr := decodeRecord(request)
	if decodeErr != nil {
		respond(writer, service.Fail[round.Round](decodeErr))
		return
	}
	delete(changes, "profileId")
	respond(writer, svc.Rounds.Update(request.Context(), id, changes))
}

// EndpointDeleteRound handles the 'DELETE /v1/rounds/{id}' endpoint
func (svc *Service) EndpointDeleteRound(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	if denied := svc.denyForeignRound(writer, request, svc.Rounds.Get(request.Context(), id)); denied {
		return
	}
	respond(writer, svc.Rounds.Delete(request.Context(), id))
}

// denyForeignRound rejects access to rounds owned by another profile; administrators may access
// every round. It writes the response itself whenever it returns true.
func (svc *Service) denyForeignRound(writer http.ResponseWriter, request *http.Request, response *service.Response[round.Round]) bool {
	if response.Error != nil {
		respond(writer, response)
		return true
	}
	profile := profileOf(request)
	if response.Data.ProfileID != profile.ID && !profile.IsAdmin {
		// Reported as not found to avoid leaking the existence of foreign rounds
		respond(writer, service.Fail[round.Round](service.NewError(service.CodeNotFound, "no round with this ID exists", nil)))
		return true
	}
	return false
}
