package api

import (
	"net/http"
	"time"

	"github.com/golfcompete/golf-server/internal/auth"
	"github.com/golfcompete/golf-server/internal/service"
	"github.com/golfcompete/golf-server/internal/store"
)

var cookieNameSession = "session_token"

type signUpPayload struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

// EndpointSignUp handles the 'POST /v1/auth/signup' endpoint.
// A successful registration immediately starts a session for the new profile.
func (svc *Service) EndpointSignUp(writer http.ResponseWriter, request *http.Request) {
	payload, decodeErr := decodeBody[signUpPayload](request)
	if decodeErr != nil {
		respond(writer, service.Fail[auth.Profile](decodeErr))
		return
	}

	response := svc.Auth.SignUp(request.Context(), payload.Email, payload.DisplayName, payload.Password)
	if response.Error != nil {
		respond(writer, response)
		return
	}

	token, sessionErr := svc.Auth.StartSession(request.Context(), response.Data.ID)
	if sessionErr != nil {
		respond(writer, service.Fail[auth.Profile](sessionErr))
		return
	}
	svc.setSessionCookie(writer, token)
	respond(writer, response)
}

// EndpointLogOut handles the 'POST /v1/auth/logout' endpoint
func (svc *Service) EndpointLogOut(writer http.ResponseWriter, request *http.Request) {
	if cookie, err := request.Cookie(cookieNameSession); err == nil {
		response := svc.Auth.SignOut(request.Context(), cookie.Value)
		if response.Error != nil {
			respond(writer, response)
			return
		}
	}
	svc.clearSessionCookie(writer)
	respond(writer, service.OK(true))
}

// EndpointGetSelf handles the 'GET /v1/me' endpoint
func (svc *Service) EndpointGetSelf(writer http.ResponseWriter, request *http.Request) {
	respond(writer, service.OK(*profileOf(request)))
}

// EndpointEditSelf handles the 'PATCH /v1/me' endpoint
func (svc *Service) EndpointEditSelf(writer http.ResponseWriter, request *http.Request) {
	changes, decodeErr := decodeBody[store.Record](request)
	if decodeErr != nil {
		respond(writer, service.Fail[auth.Profile](decodeErr))
		return
	}
	// Privilege and identity fields are never editable through this endpoint
	delete(*changes, "id")
	delete(*changes, "isAdmin")
	delete(*changes, "email")

	respond(writer, svc.Auth.UpdateProfile(request.Context(), profileOf(request).ID, *changes))
}

// EndpointDeleteSelf handles the 'DELETE /v1/me' endpoint
func (svc *Service) EndpointDeleteSelf(writer http.ResponseWriter, request *http.Request) {
	response := svc.Auth.DeleteAccount(request.Context(), profileOf(request).ID)
	if response.Error == nil {
		svc.clearSessionCookie(writer)
	}
	respond(writer, response)
}

// EndpointGetSelfStats handles the 'GET /v1/me/stats' endpoint
func (svc *Service) EndpointGetSelfStats(writer http.ResponseWriter, request *http.Request) {
	respond(writer, svc.Rounds.StatsByProfile(request.Context(), profileOf(request).ID))
}

func (svc *Service) setSessionCookie(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     cookieNameSession,
		Value:    token,
		Path:     "/",
		MaxAge:   int(svc.Config.SessionLifetime.Seconds()),
		Secure:   svc.Config.IsSecure(),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (svc *Service) clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     cookieNameSession,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Second),
		HttpOnly: true,
	})
}
