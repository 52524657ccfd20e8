package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golfcompete/golf-server/internal/auth"
	"github.com/golfcompete/golf-server/internal/config"
	"github.com/golfcompete/golf-server/internal/course"
	"github.com/golfcompete/golf-server/internal/function"
	"github.com/golfcompete/golf-server/internal/note"
	"github.com/golfcompete/golf-server/internal/round"
	"github.com/golfcompete/golf-server/internal/series"
	"github.com/golfcompete/golf-server/internal/service"
	"golang.org/x/oauth2"
)

// Service represents the HTTP API service.
// It adapts the transport-agnostic feature services to routes and owns the code-to-status mapping.
type Service struct {
	server *http.Server

	Config *config.Config

	Auth    *auth.Service
	Courses *course.Service
	Rounds  *round.Service
	Series  *series.Service
	Notes   *note.Service

	oidcOAuth2Config    *oauth2.Config
	oidcProvider        *oidc.Provider
	oidcIDTokenVerifier *oidc.IDTokenVerifier
}

// Startup starts up the HTTP API
func (svc *Service) Startup() error {
	// Set up the OIDC provider, ID token verifier and OAuth2 config if a provider is configured.
	// Without one the credential endpoints still work; only the OIDC login flow is unavailable.
	if svc.Config.OIDCProviderURL != "" {
		oidcProvider, err := oidc.NewProvider(context.Background(), svc.Config.OIDCProviderURL)
		if err != nil {
			return err
		}
		svc.oidcProvider = oidcProvider
		svc.oidcIDTokenVerifier = oidcProvider.Verifier(&oidc.Config{
			ClientID: svc.Config.OIDCClientID,
		})
		svc.oidcOAuth2Config = &oauth2.Config{
			ClientID:     svc.Config.OIDCClientID,
			ClientSecret: svc.Config.OIDCClientSecret,
			Endpoint:     oidcProvider.Endpoint(),
			RedirectURL:  svc.Config.BaseAddress + "/v1/auth/oidc/callback",
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		}
	}

	// Start up the server
	server := &http.Server{
		Addr:    svc.Config.ListenAddress,
		Handler: svc.routes(),
	}
	svc.server = server
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// routes builds the HTTP router with every endpoint registered
func (svc *Service) routes() http.Handler {
	// Create the HTTP router
	router := chi.NewRouter()
	router.Use(middleware.RedirectSlashes)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{svc.Config.AllowedOrigin},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		fail(writer, http.StatusNotFound, service.NewError(service.CodeNotFound, "resource not found", nil))
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		fail(writer, http.StatusMethodNotAllowed, service.NewError(service.CodeValidation, "method not allowed", nil))
	})

	// Register the OIDC login endpoints if a provider is configured
	if svc.oidcOAuth2Config != nil {
		router.Get("/v1/auth/oidc/login_flow", svc.EndpointOIDCLoginFlow)
		router.Get("/v1/auth/oidc/callback", svc.EndpointOIDCLoginCallback)
	}

	// Register the account & session endpoints
	router.Post("/v1/auth/signup", svc.EndpointSignUp)
	router.Post("/v1/auth/logout", svc.EndpointLogOut)
	router.Get("/v1/me", svc.authenticated(svc.EndpointGetSelf))
	router.Patch("/v1/me", svc.authenticated(svc.EndpointEditSelf))
	router.Delete("/v1/me", svc.authenticated(svc.EndpointDeleteSelf))
	router.Get("/v1/me/stats", svc.authenticated(svc.EndpointGetSelfStats))

	// Register the course endpoints
	router.Get("/v1/courses", svc.EndpointGetCourses)
	router.Get("/v1/courses/{id}", svc.EndpointGetCourse)
	router.Get("/v1/courses/{id}/scorecard", svc.EndpointGetScorecard)
	router.Post("/v1/courses", svc.admin(svc.EndpointCreateCourse))
	router.Patch("/v1/courses/{id}", svc.admin(svc.EndpointEditCourse))
	router.Delete("/v1/courses/{id}", svc.admin(svc.EndpointDeleteCourse))

	// Register the round endpoints
	router.Get("/v1/rounds", svc.authenticated(svc.EndpointGetRounds))
	router.Get("/v1/rounds/{id}", svc.authenticated(svc.EndpointGetRound))
	router.Get("/v1/rounds/{id}/scores", svc.authenticated(svc.EndpointGetRoundScores))
	router.Post("/v1/rounds", svc.authenticated(svc.EndpointSubmitRound))
	router.Patch("/v1/rounds/{id}", svc.authenticated(svc.EndpointEditRound))
	router.Delete("/v1/rounds/{id}", svc.authenticated(svc.EndpointDeleteRound))

	// Register the series & event endpoints
	router.Get("/v1/series", svc.EndpointGetSeriesList)
	router.Get("/v1/series/{id}", svc.EndpointGetSeries)
	router.Get("/v1/series/{id}/events", svc.EndpointGetSeriesEvents)
	router.Get("/v1/series/{id}/standings", svc.EndpointGetSeriesStandings)
	router.Post("/v1/series", svc.authenticated(svc.EndpointCreateSeries))
	router.Patch("/v1/series/{id}", svc.authenticated(svc.EndpointEditSeries))
	router.Delete("/v1/series/{id}", svc.authenticated(svc.EndpointDeleteSeries))
	router.Post("/v1/series/{id}/events", svc.authenticated(svc.EndpointAddSeriesEvent))
	router.Post("/v1/events/{id}/join", svc.authenticated(svc.EndpointJoinEvent))
	router.Delete("/v1/events/{id}/join", svc.authenticated(svc.EndpointLeaveEvent))
	router.Patch("/v1/participants/{id}", svc.admin(svc.EndpointRecordEventResult))

	// Register the note endpoints
	router.Get("/v1/notes", svc.authenticated(svc.EndpointGetNotes))
	router.Post("/v1/notes", svc.authenticated(svc.EndpointCreateNote))
	router.Patch("/v1/notes/{id}", svc.authenticated(svc.EndpointEditNote))
	router.Delete("/v1/notes/{id}", svc.authenticated(svc.EndpointDeleteNote))

	return router
}

// Shutdown shuts down the HTTP API
func (svc *Service) Shutdown() {
	if svc.server != nil {
		svc.server.Close()
		svc.server = nil
	}
}

func (svc *Service) authenticated(end http.HandlerFunc) http.HandlerFunc {
	return function.Nest(end, svc.MiddlewareVerifySession)
}

func (svc *Service) admin(end http.HandlerFunc) http.HandlerFunc {
	return function.Nest(end, svc.MiddlewareVerifySession, svc.MiddlewareCheckAdmin)
}
