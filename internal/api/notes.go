package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/golfcompete/golf-server/internal/note"
	"github.com/golfcompete/golf-server/internal/service"
)

type editNotePayload struct {
	Body string `json:"body"`
}

// EndpointGetNotes handles the 'GET /v1/notes' endpoint.
// The subject type is given via 'subjectType', the subject IDs via a comma-separated 'subjectIds'.
func (svc *Service) EndpointGetNotes(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()

	var subjectIDs []string
	if raw := values.Get("subjectIds"); raw != "" {
		subjectIDs = strings.Split(raw, ",")
	}

	respondPage(writer, svc.Notes.ListForSubjects(
		request.Context(),
		profileOf(request).ID,
		values.Get("subjectType"),
		subjectIDs,
		values.Get("page"),
		values.Get("limit"),
	))
}

// EndpointCreateNote handles the 'POST /v1/notes' endpoint
func (svc *Service) EndpointCreateNote(writer http.ResponseWriter, request *http.Request) {
	payload, decodeErr := decodeBody[note.Note](request)
	if decodeErr != nil {
		respond(writer, service.Fail[note.Note](decodeErr))
		return
	}
	payload.ProfileID = profileOf(request).ID
	respond(writer, svc.Notes.Create(request.Context(), *payload))
}

// EndpointEditNote handles the 'PATCH /v1/notes/{id}' endpoint
func (svc *Service) EndpointEditNote(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	if denied := svc.denyForeignNote(writer, request, id); denied {
		return
	}
	payload, decodeErr := decodeBody[editNotePayload](request)
	if decodeErr != nil {
		respond(writer, service.Fail[note.Note](decodeErr))
		return
	}
	respond(writer, svc.Notes.Update(request.Context(), id, payload.Body))
}

// EndpointDeleteNote handles the 'DELETE /v1/notes/{id}' endpoint
func (svc *Service) EndpointDeleteNote(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	if denied := svc.denyForeignNote(writer, request, id); denied {
		return
	}
	respond(writer, svc.Notes.Delete(request.Context(), id))
}

// denyForeignNote rejects access to notes owned by another profile. Notes are private, so even
// administrators are reported a not-found. It writes the response itself whenever it returns true.
func (svc *Service) denyForeignNote(writer http.ResponseWriter, request *http.Request, id string) bool {
	response := svc.Notes.Get(request.Context(), id)
	if response.Error != nil {
		respond(writer, response)
		return true
	}
	if response.Data.ProfileID != profileOf(request).ID {
		respond(writer, service.Fail[note.Note](service.NewError(service.CodeNotFound, "no note with this ID exists", nil)))
		return true
	}
	return false
}
