package api

import (
	"encoding/json"
	"net/http"

	"github.com/golfcompete/golf-server/internal/service"
	"github.com/golfcompete/golf-server/internal/store"
)

// statusOf maps a service error code to the HTTP status the boundary responds with.
// This mapping is owned by the route-handler adapter; the core stays transport-agnostic.
func statusOf(code service.Code) int {
	switch code {
	case service.CodeValidation, service.CodeAuthWeakPassword:
		return http.StatusBadRequest
	case service.CodeNotFound, service.CodeAuthUserNotFound:
		return http.StatusNotFound
	case service.CodeConstraintViolation, service.CodeAuthEmailInUse:
		return http.StatusConflict
	case service.CodeAuthInvalidCredentials, service.CodeAuthSessionExpired:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(writer http.ResponseWriter, status int, value any) {
	buf, _ := json.Marshal(value)
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	writer.Write(buf)
}

// respond writes a service envelope, deriving the HTTP status from its error code
func respond[T any](writer http.ResponseWriter, response *service.Response[T]) {
	if response.Error != nil {
		writeJSON(writer, statusOf(response.Error.Code), response)
		return
	}
	writeJSON(writer, http.StatusOK, response)
}

// respondPage writes a paginated service envelope, deriving the HTTP status from its error code
func respondPage[T any](writer http.ResponseWriter, response *service.Paginated[T]) {
	if response.Error != nil {
		writeJSON(writer, statusOf(response.Error.Code), response)
		return
	}
	writeJSON(writer, http.StatusOK, response)
}

// fail writes a bare error envelope with an explicit HTTP status
func fail(writer http.ResponseWriter, status int, err *service.Error) {
	writeJSON(writer, status, service.Fail[struct{}](err))
}

// decodeBody decodes a JSON request body, reporting malformed input as a validation error
func decodeBody[T any](request *http.Request) (*T, *service.Error) {
	target := new(T)
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return nil, service.NewError(service.CodeValidation, "the request body is not valid JSON", err)
	}
	return target, nil
}

// decodeRecord decodes a partial-update body. The record ID always comes from the URL, never from
// the body, so a smuggled 'id' field is dropped.
func decodeRecord(request *http.Request) (store.Record, *service.Error) {
	changes, err := decodeBody[store.Record](request)
	if err != nil {
		return nil, err
	}
	delete(*changes, "id")
	return *changes, nil
}
