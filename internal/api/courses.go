package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/golfcompete/golf-server/internal/course"
	"github.com/golfcompete/golf-server/internal/service"
)

type createCoursePayload struct {
	Course course.Course `json:"course"`
	Holes  []course.Hole `json:"holes"`
}

// EndpointGetCourses handles the 'GET /v1/courses' endpoint.
// Besides the generic filter syntax ('par[gte]=4', 'state[in]=CA,OR') it recognizes the
// convenience parameters 'search', 'states' and 'minPar'.
func (svc *Service) EndpointGetCourses(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()
	raw := rawQuery(values)
	delete(raw.Filters, "search")
	delete(raw.Filters, "states")
	delete(raw.Filters, "minPar")

	filter := course.ListFilter{Search: values.Get("search")}
	if states := values.Get("states"); states != "" {
		filter.States = strings.Split(states, ",")
	}
	if minPar, err := strconv.Atoi(values.Get("minPar")); err == nil {
		filter.MinPar = minPar
	}

	respondPage(writer, svc.Courses.List(request.Context(), filter, raw))
}

// EndpointGetCourse handles the 'GET /v1/courses/{id}' endpoint
func (svc *Service) EndpointGetCourse(writer http.ResponseWriter, request *http.Request) {
	respond(writer, svc.Courses.Get(request.Context(), chi.URLParam(request, "id")))
}

// EndpointGetScorecard handles the 'GET /v1/courses/{id}/scorecard' endpoint
func (svc *Service) EndpointGetScorecard(writer http.ResponseWriter, request *http.Request) {
	respond(writer, svc.Courses.GetScorecard(request.Context(), chi.URLParam(request, "id")))
}

// EndpointCreateCourse handles the 'POST /v1/courses' endpoint
func (svc *Service) EndpointCreateCourse(writer http.ResponseWriter, request *http.Request) {
	payload, decodeErr := decodeBody[createCoursePayload](request)
	if decodeErr != nil {
		respond(writer, service.Fail[course.Scorecard](decodeErr))
		return
	}
	respond(writer, svc.Courses.Create(request.Context(), payload.Course, payload.Holes))
}

// EndpointEditCourse handles the 'PATCH /v1/courses/{id}' endpoint
func (svc *Service) EndpointEditCourse(writer http.ResponseWriter, request *http.Request) {
	changes, decodeErr := decodeRecord(request)
	if decodeErr != nil {
		respond(writer, service.Fail[course.Course](decodeErr))
		return
	}
	respond(writer, svc.Courses.Update(request.Context(), chi.URLParam(request, "id"), changes))
}

// EndpointDeleteCourse handles the 'DELETE /v1/courses/{id}' endpoint
func (svc *Service) EndpointDeleteCourse(writer http.ResponseWriter, request *http.Request) {
	respond(writer, svc.Courses.Delete(request.Context(), chi.URLParam(request, "id")))
}
