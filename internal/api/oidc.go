package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golfcompete/golf-server/internal/random"
	"github.com/golfcompete/golf-server/internal/service"
	"github.com/rs/zerolog/log"
)

var (
	stateLength         = 16
	nonceLength         = 16
	cookieNameState     = "login_state"
	cookieLifetimeState = int(time.Hour.Seconds())
)

type oidcLoginFlowState struct {
	ID         string `json:"id"`
	Nonce      string `json:"nonce"`
	Afterwards string `json:"afterwards"`
}

type oidcClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// EndpointOIDCLoginFlow handles the 'GET /v1/auth/oidc/login_flow' endpoint
func (svc *Service) EndpointOIDCLoginFlow(writer http.ResponseWriter, request *http.Request) {
	afterwards := request.URL.Query().Get("afterwards")

	// Create and set the login flow state cookie
	state := oidcLoginFlowState{
		ID:         random.String(stateLength, random.CharsetAlphanumeric),
		Nonce:      random.String(nonceLength, random.CharsetAlphanumeric),
		Afterwards: afterwards,
	}
	stateJSON, err := json.Marshal(state)
	if err != nil {
		svc.internalError(writer, err)
		return
	}
	http.SetCookie(writer, &http.Cookie{
		Name:     cookieNameState,
		Value:    base64.StdEncoding.EncodeToString(stateJSON),
		MaxAge:   cookieLifetimeState,
		Secure:   svc.Config.IsSecure(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	// Redirect the user to the authentication endpoint of the OIDC provider
	http.Redirect(writer, request, svc.oidcOAuth2Config.AuthCodeURL(state.ID, oidc.Nonce(state.Nonce)), http.StatusFound)
}

// EndpointOIDCLoginCallback handles the 'GET /v1/auth/oidc/callback' endpoint.
// A verified ID token upserts the profile belonging to its email claim and starts a session.
func (svc *Service) EndpointOIDCLoginCallback(writer http.ResponseWriter, request *http.Request) {
	// Extract the state cookie
	stateCookie, err := request.Cookie(cookieNameState)
	if err != nil {
		svc.flowError(writer, http.StatusBadRequest, "no login flow initiated")
		return
	}
	stateJSON, err := base64.StdEncoding.DecodeString(stateCookie.Value)
	if err != nil {
		svc.flowError(writer, http.StatusBadRequest, "invalid state cookie")
		return
	}
	state := new(oidcLoginFlowState)
	if err := json.Unmarshal(stateJSON, state); err != nil {
		svc.flowError(writer, http.StatusBadRequest, "invalid state cookie")
		return
	}

	// Validate the state ID
	if request.URL.Query().Get("state") != state.ID {
		svc.flowError(writer, http.StatusBadRequest, "states do not match")
		return
	}

	// Unset the state cookie
	http.SetCookie(writer, &http.Cookie{
		Name:     cookieNameState,
		Value:    "",
		Expires:  time.Now().Add(-time.Second),
		HttpOnly: true,
	})

	// Retrieve the OAuth2 access token and extract and verify the ID token + nonce
	oauth2Token, err := svc.oidcOAuth2Config.Exchange(request.Context(), request.URL.Query().Get("code"))
	if err != nil {
		svc.flowError(writer, http.StatusForbidden, "invalid login code (expired?)")
		return
	}
	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		svc.internalError(writer, errors.New("no 'id_token' field in OAuth2 access token; most likely an OIDC provider error"))
		return
	}
	idToken, err := svc.oidcIDTokenVerifier.Verify(request.Context(), rawIDToken)
	if err != nil {
		svc.internalError(writer, errors.New("received invalid ID token; most likely an OIDC provider error"))
		return
	}
	if idToken.Nonce != state.Nonce {
		svc.flowError(writer, http.StatusForbidden, "nonces do not match")
		return
	}

	// Upsert the profile the ID token belongs to and start a session for it
	claims := new(oidcClaims)
	if err := idToken.Claims(claims); err != nil || claims.Email == "" {
		svc.internalError(writer, errors.New("the ID token carries no email claim"))
		return
	}
	profile := svc.Auth.EnsureProfile(request.Context(), claims.Email, claims.Name)
	if profile.Error != nil {
		respond(writer, profile)
		return
	}
	token, sessionErr := svc.Auth.StartSession(request.Context(), profile.Data.ID)
	if sessionErr != nil {
		respond(writer, service.Fail[struct{}](sessionErr))
		return
	}
	svc.setSessionCookie(writer, token)

	// Redirect the user to the URL specified on login flow initiation
	http.Redirect(writer, request, state.Afterwards, http.StatusFound)
}

func (svc *Service) flowError(writer http.ResponseWriter, status int, message string) {
	fail(writer, status, service.NewError(service.CodeAuthInvalidCredentials, message, nil))
}

func (svc *Service) internalError(writer http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("the HTTP API experienced an unexpected error")
	fail(writer, http.StatusInternalServerError, service.NewError(service.CodeQueryError, "an internal error occurred", nil))
}
