package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/myconference/api/internal/auth"
	"github.com/myconference/api/internal/model"
	"github.com/myconference/api/internal/utils"
)

type authFixture struct {
	h      *AuthHandler
	users  *memUsers
	logins *memLoginMethods
	tokens *memTokens
}

func newAuthFixture() *authFixture {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	apps := &memApps{apps: map[string]*model.Application{
		"app-1": {ID: "app-1", Name: "web"},
	}}
	users := &memUsers{users: map[string]*model.User{}}
	logins := &memLoginMethods{methods: map[string]*model.LoginMethod{}}
	tokens := newMemTokens()

	return &authFixture{
		h: &AuthHandler{
			Apps:         apps,
			Users:        users,
			LoginMethods: logins,
			Tokens:       tokens,
			Verifier:     &auth.Verifier{Apps: apps, LoginMethods: logins, Tokens: tokens, Clock: clock},
			Issuer:       auth.NewIssuer(tokens, clock),
			BcryptCost:   4,
		},
		users:  users,
		logins: logins,
		tokens: tokens,
	}
}

func postJSON(t *testing.T, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func respCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestSignup(t *testing.T) {
	f := newAuthFixture()
	c, rec := postJSON(t, "/auth/signup",
		`{"application_id":"app-1","device_id":"d1","user_data":{"email":"Alice@Example.com","password":"longenough"}}`)
	require.NoError(t, f.h.Signup(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		User model.Ref `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.User.ID)
	require.Equal(t, "/users/"+resp.User.ID, resp.User.URI)

	// Exactly one login method, keyed by the normalized email, with a
	// verifying hash.
	lm, err := f.logins.GetByTypeAndKey(c.Request().Context(), model.LoginTypePassword, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, lm.UserID)
	require.True(t, utils.VerifyPassword(lm.Secret, "longenough"))
	require.False(t, utils.VerifyPassword(lm.Secret, "otherstring"))
	require.Len(t, f.logins.methods, 1)
	require.Contains(t, f.users.users, resp.User.ID)
}

func TestSignupRejections(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{
			name:   "unknown application",
			body:   `{"application_id":"nope","user_data":{"email":"a@b.com","password":"longenough"}}`,
			status: http.StatusUnauthorized, code: "invalid_application",
		},
		{
			name:   "malformed email",
			body:   `{"application_id":"app-1","user_data":{"email":"not-an-email","password":"longenough"}}`,
			status: http.StatusConflict, code: "invalid_email",
		},
		{
			name:   "short password",
			body:   `{"application_id":"app-1","user_data":{"email":"a@b.com","password":"seven77"}}`,
			status: http.StatusConflict, code: "invalid_password",
		},
		{
			name:   "missing application",
			body:   `{"user_data":{"email":"a@b.com","password":"longenough"}}`,
			status: http.StatusConflict, code: "invalid_body",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAuthFixture()
			c, rec := postJSON(t, "/auth/signup", tc.body)
			require.NoError(t, f.h.Signup(c))
			require.Equal(t, tc.status, rec.Code)
			require.Equal(t, tc.code, respCode(t, rec))
			require.Empty(t, f.logins.methods, "no login method on failed signup")
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	body := `{"application_id":"app-1","user_data":{"email":"a@b.com","password":"longenough"}}`

	c, rec := postJSON(t, "/auth/signup", body)
	require.NoError(t, f.h.Signup(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = postJSON(t, "/auth/signup", body)
	require.NoError(t, f.h.Signup(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "invalid_email", respCode(t, rec))
	require.Len(t, f.logins.methods, 1)
}

func signup(t *testing.T, f *authFixture, email, password string) string {
	t.Helper()
	c, rec := postJSON(t, "/auth/signup",
		`{"application_id":"app-1","user_data":{"email":"`+email+`","password":"`+password+`"}}`)
	require.NoError(t, f.h.Signup(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		User model.Ref `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.User.ID
}

func login(t *testing.T, f *authFixture, creds string) (*httptest.ResponseRecorder, loginResp) {
	t.Helper()
	c, rec := postJSON(t, "/auth",
		`{"application_id":"app-1","device_id":"d1","credentials":`+creds+`}`)
	require.NoError(t, f.h.Login(c))
	var resp loginResp
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestLoginPassword(t *testing.T) {
	f := newAuthFixture()
	userID := signup(t, f, "a@b.com", "longenough")

	rec, resp := login(t, f, `{"type":"password","email":"a@b.com","password":"longenough"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.True(t, resp.RefreshTokenExpires.After(resp.AccessTokenExpires))
	require.NotNil(t, resp.User)
	require.Equal(t, userID, resp.User.ID)

	at := f.tokens.access[resp.AccessToken]
	require.True(t, at.Active)
	require.Equal(t, userID, *at.UserID)
}

func TestLoginPasswordFailures(t *testing.T) {
	f := newAuthFixture()
	signup(t, f, "a@b.com", "longenough")

	rec, _ := login(t, f, `{"type":"password","email":"a@b.com","password":"wrongwrong"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_email_or_password", respCode(t, rec))

	rec, _ = login(t, f, `{"type":"password","email":"nobody@b.com","password":"longenough"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_email_or_password", respCode(t, rec))
}

func TestLoginAnonymous(t *testing.T) {
	f := newAuthFixture()
	rec, resp := login(t, f, `{"type":"anonymous"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, resp.User)
	require.NotEmpty(t, resp.AccessToken)
	require.Nil(t, f.tokens.access[resp.AccessToken].UserID)
}

func TestLoginRotatesPreviousSession(t *testing.T) {
	f := newAuthFixture()
	signup(t, f, "a@b.com", "longenough")

	_, first := login(t, f, `{"type":"password","email":"a@b.com","password":"longenough"}`)
	_, second := login(t, f, `{"type":"password","email":"a@b.com","password":"longenough"}`)

	require.False(t, f.tokens.access[first.AccessToken].Active)
	require.False(t, f.tokens.refresh[first.RefreshToken].Active)
	require.True(t, f.tokens.access[second.AccessToken].Active)
}

func TestLoginRefresh(t *testing.T) {
	f := newAuthFixture()
	userID := signup(t, f, "a@b.com", "longenough")
	_, first := login(t, f, `{"type":"password","email":"a@b.com","password":"longenough"}`)

	rec, next := login(t, f, `{"type":"refresh","refresh_token":"`+first.RefreshToken+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, userID, next.User.ID)
	require.NotEqual(t, first.AccessToken, next.AccessToken)
	require.False(t, f.tokens.refresh[first.RefreshToken].Active)

	// Single-use: the same refresh token cannot be redeemed again.
	rec, _ = login(t, f, `{"type":"refresh","refresh_token":"`+first.RefreshToken+`"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "invalid_refresh", respCode(t, rec))
}

func TestLogout(t *testing.T) {
	f := newAuthFixture()
	signup(t, f, "a@b.com", "longenough")
	_, session := login(t, f, `{"type":"password","email":"a@b.com","password":"longenough"}`)

	c, rec := postJSON(t, "/auth/logout", "")
	asToken(c, f.tokens.access[session.AccessToken])
	require.NoError(t, f.h.Logout(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	require.False(t, f.tokens.access[session.AccessToken].Active)
	require.False(t, f.tokens.refresh[session.RefreshToken].Active)
}

func TestCheckProbes(t *testing.T) {
	f := newAuthFixture()
	user := &model.User{ID: "user-1"}

	c, rec := postJSON(t, "/auth/check-user", "")
	asUser(c, user)
	require.NoError(t, f.h.CheckUser(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"/users/user-1"`)

	c, rec = postJSON(t, "/auth/check-anon", "")
	require.NoError(t, f.h.CheckAnon(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"user":null`)
}
