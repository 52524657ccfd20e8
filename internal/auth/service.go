package auth

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/golfcompete/golf-server/internal/auth/session"
	"github.com/golfcompete/golf-server/internal/query"
	"github.com/golfcompete/golf-server/internal/service"
	"github.com/golfcompete/golf-server/internal/store"
	"github.com/google/uuid"
)

var minPasswordLength = 8

// Service provides profile & session management using the auth-specific subset of the error
// taxonomy. Password credentials are only validated here and then handed to the identity
// provider; they are never stored by this application.
type Service struct {
	profiles *service.Resources[Profile]
	sessions session.Storage
	lifetime time.Duration
}

// NewService creates a new auth service
func NewService(base *service.Base, sessions session.Storage, sessionLifetime time.Duration) *Service {
	return &Service{
		profiles: service.NewResources[Profile](base, "profiles"),
		sessions: sessions,
		lifetime: sessionLifetime,
	}
}

// GetProfile retrieves a profile by its ID
func (svc *Service) GetProfile(ctx context.Context, id string) *service.Response[Profile] {
	response := svc.profiles.FetchByID(ctx, id)
	if response.Error != nil && response.Error.Code == service.CodeNotFound {
		return service.Fail[Profile](service.NewError(service.CodeAuthUserNotFound, "no profile with this ID exists", response.Error.Cause))
	}
	return response
}

// SignUp validates the registration input and creates a new profile.
// The password itself is forwarded to the identity provider by the caller; this service only
// enforces the strength policy.
func (svc *Service) SignUp(ctx context.Context, email, displayName, password string) *service.Response[Profile] {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return service.Fail[Profile](service.NewError(service.CodeValidation, "a valid email address is required", nil))
	}
	if weakPassword(password) {
		return service.Fail[Profile](service.NewError(service.CodeAuthWeakPassword, "the password must be at least 8 characters long and contain a letter and a digit", nil))
	}

	count := svc.profiles.Count(ctx, map[string]any{"email": email})
	if count.Error != nil {
		return service.Fail[Profile](count.Error)
	}
	if *count.Data > 0 {
		return service.Fail[Profile](service.NewError(service.CodeAuthEmailInUse, "a profile with this email address already exists", nil))
	}

	return svc.profiles.InsertRecord(ctx, Profile{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
	})
}

// EnsureProfile retrieves the profile with the given email address, creating it if it does not
// exist yet. Used to upsert profiles on identity provider logins.
func (svc *Service) EnsureProfile(ctx context.Context, email, displayName string) *service.Response[Profile] {
	email = strings.TrimSpace(strings.ToLower(email))

	listing := svc.profiles.FetchRecords(ctx, query.Parse(query.Raw{
		Limit:   1,
		Filters: map[string]any{"email": email},
	}))
	if listing.Error != nil {
		return service.Fail[Profile](listing.Error)
	}
	if len(listing.Data) > 0 {
		return service.OK(listing.Data[0])
	}

	return svc.profiles.InsertRecord(ctx, Profile{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
	})
}

// UpdateProfile applies the given changes to a profile
func (svc *Service) UpdateProfile(ctx context.Context, id string, changes store.Record) *service.Response[Profile] {
	response := svc.profiles.UpdateRecord(ctx, id, changes)
	if response.Error != nil && response.Error.Code == service.CodeNotFound {
		return service.Fail[Profile](service.NewError(service.CodeAuthUserNotFound, "no profile with this ID exists", response.Error.Cause))
	}
	return response
}

// StartSession creates a new session for the given profile and returns its raw token
func (svc *Service) StartSession(ctx context.Context, profileID string) (string, *service.Error) {
	token, err := svc.sessions.Create(ctx, profileID, time.Now().Add(svc.lifetime).Unix())
	if err != nil {
		return "", service.NewError(service.CodeQueryError, "the session could not be created", err)
	}
	return token, nil
}

// ResolveSession resolves a raw session token into the profile it belongs to.
// An unknown token fails with invalid credentials, an expired one with an expired session.
func (svc *Service) ResolveSession(ctx context.Context, rawToken string) *service.Response[Profile] {
	if rawToken == "" {
		return service.Fail[Profile](service.NewError(service.CodeAuthInvalidCredentials, "no session token given", nil))
	}

	obj, err := svc.sessions.GetByRawToken(ctx, rawToken)
	if err != nil {
		return service.Fail[Profile](service.NewError(service.CodeQueryError, "the session could not be looked up", err))
	}
	if obj == nil {
		return service.Fail[Profile](service.NewError(service.CodeAuthInvalidCredentials, "invalid session token", nil))
	}
	if obj.Expires <= time.Now().Unix() {
		// Terminating eagerly keeps the expired session from lingering until the cleanup task runs
		_ = svc.sessions.TerminateByRawToken(ctx, rawToken)
		return service.Fail[Profile](service.NewError(service.CodeAuthSessionExpired, "the session is expired", nil))
	}

	return svc.GetProfile(ctx, obj.ProfileID)
}

// SignOut terminates the session belonging to the given raw token
func (svc *Service) SignOut(ctx context.Context, rawToken string) *service.Response[bool] {
	if err := svc.sessions.TerminateByRawToken(ctx, rawToken); err != nil {
		return service.Fail[bool](service.NewError(service.CodeQueryError, "the session could not be terminated", err))
	}
	return service.OK(true)
}

// DeleteAccount deletes a profile and terminates all of its sessions
func (svc *Service) DeleteAccount(ctx context.Context, id string) *service.Response[bool] {
	if err := svc.sessions.TerminateByProfileID(ctx, id); err != nil {
		return service.Fail[bool](service.NewError(service.CodeQueryError, "the profile's sessions could not be terminated", err))
	}
	return svc.profiles.DeleteRecord(ctx, id)
}

func weakPassword(password string) bool {
	if len(password) < minPasswordLength {
		return true
	}
	hasLetter, hasDigit := false, false
	for _, r := range password {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	return !hasLetter || !hasDigit
}
