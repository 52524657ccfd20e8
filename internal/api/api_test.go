package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golfcompete/golf-server/internal/auth"
	"github.com/golfcompete/golf-server/internal/auth/session/inmem"
	"github.com/golfcompete/golf-server/internal/config"
	"github.com/golfcompete/golf-server/internal/course"
	"github.com/golfcompete/golf-server/internal/note"
	"github.com/golfcompete/golf-server/internal/round"
	"github.com/golfcompete/golf-server/internal/series"
	"github.com/golfcompete/golf-server/internal/service"
	"github.com/golfcompete/golf-server/internal/store/memdb"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T) (*Service, http.Handler) {
	t.Helper()
	client, err := memdb.New("profiles", "courses", "holes", "rounds", "hole_scores", "series", "events", "event_participants", "notes")
	require.NoError(t, err)
	sessions, err := inmem.New()
	require.NoError(t, err)

	base := service.NewBase(client, zerolog.Nop())
	svc := &Service{
		Config: &config.Config{
			AllowedOrigin:   "http://localhost:3000",
			BaseAddress:     "http://localhost:8080",
			SessionLifetime: time.Hour,
		},
		Auth:    auth.NewService(base, sessions, time.Hour),
		Courses: course.NewService(base),
		Rounds:  round.NewService(base),
		Series:  series.NewService(base),
		Notes:   note.NewService(base),
	}
	return svc, svc.routes()
}

// signUp registers a profile through the HTTP API and returns its session cookie
func signUp(t *testing.T, handler http.Handler, email string) *http.Cookie {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"email":       email,
		"displayName": "Alice",
		"password":    "correct horse 1",
	})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/auth/signup", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, recorder.Code)

	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == cookieNameSession {
			return cookie
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	envelope := map[string]any{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		code   service.Code
		status int
	}{
		{service.CodeValidation, http.StatusBadRequest},
		{service.CodeAuthWeakPassword, http.StatusBadRequest},
		{service.CodeNotFound, http.StatusNotFound},
		{service.CodeAuthUserNotFound, http.StatusNotFound},
		{service.CodeConstraintViolation, http.StatusConflict},
		{service.CodeAuthEmailInUse, http.StatusConflict},
		{service.CodeAuthInvalidCredentials, http.StatusUnauthorized},
		{service.CodeAuthSessionExpired, http.StatusUnauthorized},
		{service.CodeQueryError, http.StatusInternalServerError},
	}
	for _, test := range tests {
		t.Run(string(test.code), func(t *testing.T) {
			assert.Equal(t, test.status, statusOf(test.code))
		})
	}
}

func TestSignUpEndpoint(t *testing.T) {
	_, handler := newTestAPI(t)
	cookie := signUp(t, handler, "alice@example.com")
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestSignUpEndpointWeakPassword(t *testing.T) {
	_, handler := newTestAPI(t)

	body := []byte(`{"email":"alice@example.com","displayName":"Alice","password":"short"}`)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/auth/signup", bytes.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	assert.Equal(t, "error", envelope["status"])
	assert.Equal(t, "AUTH_WEAK_PASSWORD", envelope["error"].(map[string]any)["code"])
}

func TestSignUpEndpointDuplicateEmail(t *testing.T) {
	_, handler := newTestAPI(t)
	signUp(t, handler, "alice@example.com")

	body := []byte(`{"email":"alice@example.com","displayName":"Alice II","password":"correct horse 2"}`)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/auth/signup", bytes.NewReader(body)))

	require.Equal(t, http.StatusConflict, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	assert.Equal(t, "AUTH_EMAIL_IN_USE", envelope["error"].(map[string]any)["code"])
}

func TestGetSelfRequiresSession(t *testing.T) {
	_, handler := newTestAPI(t)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/me", nil))

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	assert.Equal(t, "AUTH_INVALID_CREDENTIALS", envelope["error"].(map[string]any)["code"])
}

func TestGetSelf(t *testing.T) {
	_, handler := newTestAPI(t)
	cookie := signUp(t, handler, "alice@example.com")

	request := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	request.AddCookie(cookie)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	assert.Equal(t, "success", envelope["status"])
	assert.Equal(t, "alice@example.com", envelope["data"].(map[string]any)["email"])
}

func TestCreateCourseRequiresAdmin(t *testing.T) {
	_, handler := newTestAPI(t)
	cookie := signUp(t, handler, "alice@example.com")

	request := httptest.NewRequest(http.MethodPost, "/v1/courses", bytes.NewReader([]byte(`{"course":{"name":"Pebble Beach"}}`)))
	request.AddCookie(cookie)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestGetCoursesIsPublic(t *testing.T) {
	svc, handler := newTestAPI(t)

	created := svc.Courses.Create(context.Background(), course.Course{Name: "Pebble Beach", State: "CA", Par: 72}, nil)
	require.Equal(t, service.StatusSuccess, created.Status)
	other := svc.Courses.Create(context.Background(), course.Course{Name: "Bandon Dunes", State: "OR", Par: 71}, nil)
	require.Equal(t, service.StatusSuccess, other.Status)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/courses?par[gte]=72", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	data := envelope["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "Pebble Beach", data[0].(map[string]any)["name"])
	metadata := envelope["metadata"].(map[string]any)
	assert.Equal(t, float64(1), metadata["total"])
}

func TestSubmitRoundBindsProfile(t *testing.T) {
	svc, handler := newTestAPI(t)
	cookie := signUp(t, handler, "alice@example.com")

	body := []byte(`{"round":{"courseId":"7a90d0c7-10c6-4b49-ad0f-cda4873df64a","playedAt":"2024-06-01T09:00:00Z"},"scores":[{"holeNumber":1,"strokes":4}]}`)
	request := httptest.NewRequest(http.MethodPost, "/v1/rounds", bytes.NewReader(body))
	request.AddCookie(cookie)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	obj := envelope["data"].(map[string]any)
	assert.NotEmpty(t, obj["profileId"])
	assert.Equal(t, float64(4), obj["grossScore"])

	// The round is listed for the signed-up profile
	listing := svc.Rounds.ListByProfile(context.Background(), obj["profileId"].(string), nil, nil)
	require.Len(t, listing.Data, 1)
}

func TestForeignRoundReportedAsNotFound(t *testing.T) {
	_, handler := newTestAPI(t)
	owner := signUp(t, handler, "alice@example.com")
	intruder := signUp(t, handler, "mallory@example.com")

	body := []byte(`{"round":{"courseId":"7a90d0c7-10c6-4b49-ad0f-cda4873df64a","playedAt":"2024-06-01T09:00:00Z"}}`)
	request := httptest.NewRequest(http.MethodPost, "/v1/rounds", bytes.NewReader(body))
	request.AddCookie(owner)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	id := decodeEnvelope(t, recorder)["data"].(map[string]any)["id"].(string)

	// The owner can read it back
	request = httptest.NewRequest(http.MethodGet, "/v1/rounds/"+id, nil)
	request.AddCookie(owner)
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)

	// Another profile gets a not-found, not a forbidden
	request = httptest.NewRequest(http.MethodGet, "/v1/rounds/"+id, nil)
	request.AddCookie(intruder)
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestNotFoundRoute(t *testing.T) {
	_, handler := newTestAPI(t)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/nonexistent", nil))

	require.Equal(t, http.StatusNotFound, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	assert.Equal(t, "error", envelope["status"])
}
