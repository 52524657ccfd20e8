package api

import (
	"context"
	"net/http"

	"github.com/golfcompete/golf-server/internal/auth"
	"github.com/golfcompete/golf-server/internal/service"
)

type contextKey string

const contextKeyProfile contextKey = "profile"

// MiddlewareVerifySession resolves the session cookie of a request and injects the authenticated
// profile into the request context. Requests without a valid session are rejected.
func (svc *Service) MiddlewareVerifySession(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		rawToken := ""
		if cookie, err := request.Cookie(cookieNameSession); err == nil {
			rawToken = cookie.Value
		}

		response := svc.Auth.ResolveSession(request.Context(), rawToken)
		if response.Error != nil {
			respond(writer, response)
			return
		}

		ctx := context.WithValue(request.Context(), contextKeyProfile, response.Data)
		next(writer, request.WithContext(ctx))
	}
}

// MiddlewareCheckAdmin rejects requests whose authenticated profile is not an administrator
func (svc *Service) MiddlewareCheckAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		profile := profileOf(request)
		if profile == nil || !profile.IsAdmin {
			fail(writer, http.StatusForbidden, service.NewError(service.CodeAuthInvalidCredentials, "administrator privileges are required", nil))
			return
		}
		next(writer, request)
	}
}

// profileOf extracts the authenticated profile a preceding middleware put into the request context
func profileOf(request *http.Request) *auth.Profile {
	profile, _ := request.Context().Value(contextKeyProfile).(*auth.Profile)
	return profile
}
