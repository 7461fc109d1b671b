package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/apperror"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
	"github.com/dmitrijs2005/gophprofile/internal/server/models"
	"github.com/dmitrijs2005/gophprofile/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

func profile(id int64, email string) *models.Profile {
	return &models.Profile{ID: id, Email: email, CreatedAt: created, UpdatedAt: created}
}

type fakeAuth struct {
	payload *services.AuthPayload
	err     error

	gotEmail, gotPassword string
	gotName               *string
}

func (f *fakeAuth) Signup(_ context.Context, email, password string, name *string) (*services.AuthPayload, error) {
	f.gotEmail, f.gotPassword, f.gotName = email, password, name
	return f.payload, f.err
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*services.AuthPayload, error) {
	f.gotEmail, f.gotPassword = email, password
	return f.payload, f.err
}

func (f *fakeAuth) RefreshToken(context.Context) (*services.AuthPayload, error) {
	return f.payload, f.err
}

type fakeProfiles struct {
	profile *models.Profile
	list    []*models.Profile
	deleted bool
	err     error

	gotID    int64
	gotInput services.UpdateProfileInput
}

func (f *fakeProfiles) Me(context.Context) (*models.Profile, error) { return f.profile, f.err }

func (f *fakeProfiles) GetUser(_ context.Context, id int64) (*models.Profile, error) {
	f.gotID = id
	return f.profile, f.err
}

func (f *fakeProfiles) ListUsers(context.Context) ([]*models.Profile, error) { return f.list, f.err }

func (f *fakeProfiles) UpdateProfile(_ context.Context, in services.UpdateProfileInput) (*models.Profile, error) {
	f.gotInput = in
	return f.profile, f.err
}

func (f *fakeProfiles) DeleteAccount(context.Context) (bool, error) { return f.deleted, f.err }

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string `json:"message"`
		Extensions struct {
			Code string `json:"code"`
			HTTP struct {
				Status int `json:"status"`
			} `json:"http"`
		} `json:"extensions"`
	} `json:"errors"`
}

func newTestHandler(a *fakeAuth, p *fakeProfiles, logs *bytes.Buffer) *Handler {
	logger := logging.Nop()
	if logs != nil {
		logger = logging.New(logs, "debug", "json")
	}
	return NewHandler(NewSchema(NewResolver(a, p, logger)), logger)
}

func post(t *testing.T, h http.Handler, query string, vars map[string]interface{}) (*httptest.ResponseRecorder, gqlResponse) {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{"query": query, "variables": vars})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out gqlResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestNewSchema_MatchesResolver(t *testing.T) {
	assert.NotPanics(t, func() {
		NewSchema(NewResolver(&fakeAuth{}, &fakeProfiles{}, logging.Nop()))
	})
}

func TestSignup_Success(t *testing.T) {
	a := &fakeAuth{payload: &services.AuthPayload{AccessToken: "tok", User: profile(1, "a@b.com")}}
	h := newTestHandler(a, &fakeProfiles{}, nil)

	rec, out := post(t, h,
		`mutation($e: String!, $p: String!) { signup(email: $e, password: $p) { accessToken user { id email name createdAt updatedAt } } }`,
		map[string]interface{}{"e": "a@b.com", "p": "Abcdef12"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, out.Errors)
	assert.JSONEq(t,
		`{"accessToken":"tok","user":{"id":1,"email":"a@b.com","name":null,"createdAt":"2024-02-03T04:05:06Z","updatedAt":"2024-02-03T04:05:06Z"}}`,
		string(out.Data["signup"]))
	assert.Equal(t, "a@b.com", a.gotEmail)
	assert.Equal(t, "Abcdef12", a.gotPassword)
	assert.Nil(t, a.gotName)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestErrorEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"validation", apperror.Validation("Invalid email format"), 400, "BAD_USER_INPUT", "Invalid email format"},
		{"conflict", apperror.Conflict("User with this email already exists", errors.New("23505")), 400, "BAD_USER_INPUT", "User with this email already exists"},
		{"auth", apperror.Auth("Invalid credentials"), 401, "UNAUTHENTICATED", "Invalid credentials"},
		{"not found", apperror.NotFound("User not found"), 404, "NOT_FOUND", "User not found"},
		{"internal", apperror.Internal("error creating user", errors.New("pq: connection refused")), 500, "INTERNAL_SERVER_ERROR", "Internal server error"},
		{"untyped", errors.New("boom"), 500, "INTERNAL_SERVER_ERROR", "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&fakeAuth{err: tt.err}, &fakeProfiles{}, nil)

			rec, out := post(t, h, `mutation { login(email: "a@b.com", password: "x") { accessToken } }`, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			require.Len(t, out.Errors, 1)
			assert.Equal(t, tt.wantMsg, out.Errors[0].Message)
			assert.Equal(t, tt.wantCode, out.Errors[0].Extensions.Code)
			assert.Equal(t, tt.wantStatus, out.Errors[0].Extensions.HTTP.Status)
		})
	}
}

func TestInternalErrorIsLoggedNotLeaked(t *testing.T) {
	var logs bytes.Buffer
	h := newTestHandler(&fakeAuth{}, &fakeProfiles{err: apperror.Internal("error loading user", errors.New("secret driver detail"))}, &logs)

	rec, _ := post(t, h, `{ me { id } }`, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret driver detail")
	assert.Contains(t, logs.String(), "secret driver detail")
	assert.Contains(t, logs.String(), `"op":"me"`)
}

func TestMe(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		h := newTestHandler(&fakeAuth{}, &fakeProfiles{err: apperror.Auth("Authentication required")}, nil)
		rec, out := post(t, h, `{ me { id } }`, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "null", string(out.Data["me"]))
	})

	t.Run("no such user", func(t *testing.T) {
		h := newTestHandler(&fakeAuth{}, &fakeProfiles{}, nil)
		rec, out := post(t, h, `{ me { id } }`, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "null", string(out.Data["me"]))
	})

	t.Run("profile", func(t *testing.T) {
		name := "Ann"
		p := profile(5, "ann@b.com")
		p.Name = &name
		h := newTestHandler(&fakeAuth{}, &fakeProfiles{profile: p}, nil)
		_, out := post(t, h, `{ me { id name } }`, nil)

		assert.JSONEq(t, `{"id":5,"name":"Ann"}`, string(out.Data["me"]))
	})
}

func TestUserID_OutOfRange(t *testing.T) {
	h := newTestHandler(&fakeAuth{}, &fakeProfiles{profile: profile(1<<31, "big@b.com")}, nil)

	rec, out := post(t, h, `{ me { id } }`, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", out.Errors[0].Extensions.Code)
}

func TestUserAndUsers(t *testing.T) {
	p := &fakeProfiles{profile: profile(9, "x@y.z"), list: []*models.Profile{}}
	h := newTestHandler(&fakeAuth{}, p, nil)

	_, out := post(t, h, `query($id: Int!) { user(id: $id) { email } users { id } }`, map[string]interface{}{"id": 9})

	assert.Empty(t, out.Errors)
	assert.Equal(t, int64(9), p.gotID)
	assert.JSONEq(t, `{"email":"x@y.z"}`, string(out.Data["user"]))
	assert.JSONEq(t, `[]`, string(out.Data["users"]))
}

func TestUpdateProfileAndDelete(t *testing.T) {
	p := &fakeProfiles{profile: profile(1, "new@b.com"), deleted: true}
	h := newTestHandler(&fakeAuth{}, p, nil)

	_, out := post(t, h, `mutation { updateProfile(email: "new@b.com") { email } }`, nil)
	assert.Empty(t, out.Errors)
	require.NotNil(t, p.gotInput.Email)
	assert.Equal(t, "new@b.com", *p.gotInput.Email)
	assert.Nil(t, p.gotInput.Name)

	_, out = post(t, h, `mutation { deleteAccount }`, nil)
	assert.Equal(t, "true", string(out.Data["deleteAccount"]))
}

func TestRefreshToken(t *testing.T) {
	a := &fakeAuth{payload: &services.AuthPayload{AccessToken: "new", User: profile(1, "a@b.com")}}
	h := newTestHandler(a, &fakeProfiles{}, nil)

	_, out := post(t, h, `mutation { refreshToken { accessToken } }`, nil)
	assert.JSONEq(t, `{"accessToken":"new"}`, string(out.Data["refreshToken"]))
}

func TestHandler_DocumentErrors(t *testing.T) {
	h := newTestHandler(&fakeAuth{}, &fakeProfiles{}, nil)

	rec, out := post(t, h, `{ me { id `, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, out.Errors)

	rec, out = post(t, h, `{ nope }`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, out.Errors)
}

func TestHandler_RequestErrors(t *testing.T) {
	h := newTestHandler(&fakeAuth{}, &fakeProfiles{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":""}`))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Must provide query string")

	req = httptest.NewRequest(http.MethodDelete, "/graphql", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
}

func TestHandler_Get(t *testing.T) {
	p := &fakeProfiles{profile: profile(3, "g@b.com")}
	h := newTestHandler(&fakeAuth{}, p, nil)

	q := url.Values{}
	q.Set("query", `query($id: Int!) { user(id: $id) { email } }`)
	q.Set("variables", `{"id": 3}`)

	req := httptest.NewRequest(http.MethodGet, "/graphql?"+q.Encode(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "g@b.com")
	assert.Equal(t, int64(3), p.gotID)

	req = httptest.NewRequest(http.MethodGet, "/graphql?query=%7Bme%7Bid%7D%7D&variables=%7Bbroken", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
