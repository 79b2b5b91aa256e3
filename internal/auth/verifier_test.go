package auth

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/myconference/api/internal/apierr"
	"github.com/myconference/api/internal/model"
	"github.com/myconference/api/internal/repository"
	"github.com/myconference/api/internal/utils"
)

// ----- in-memory store fakes -----

type fakeApps struct{ apps map[string]*model.Application }

func (f *fakeApps) GetByID(_ context.Context, id string) (*model.Application, error) {
	if a, ok := f.apps[id]; ok {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

type fakeLoginMethods struct{ methods map[string]*model.LoginMethod }

func (f *fakeLoginMethods) Create(_ context.Context, lm *model.LoginMethod) error {
	if _, ok := f.methods[lm.Type+"|"+lm.Key]; ok {
		return repository.ErrDuplicate
	}
	f.methods[lm.Type+"|"+lm.Key] = lm
	return nil
}

func (f *fakeLoginMethods) GetByTypeAndKey(_ context.Context, typ, key string) (*model.LoginMethod, error) {
	if lm, ok := f.methods[typ+"|"+key]; ok {
		return lm, nil
	}
	return nil, repository.ErrNotFound
}

type fakeTokens struct {
	access  map[string]*model.AccessToken
	refresh map[string]*model.RefreshToken
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{
		access:  map[string]*model.AccessToken{},
		refresh: map[string]*model.RefreshToken{},
	}
}

func (f *fakeTokens) GetAccess(_ context.Context, id string) (*model.AccessToken, error) {
	if at, ok := f.access[id]; ok {
		return at, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTokens) GetRefresh(_ context.Context, id string) (*model.RefreshToken, error) {
	if rt, ok := f.refresh[id]; ok {
		return rt, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTokens) CreatePair(_ context.Context, at *model.AccessToken, rt *model.RefreshToken) error {
	f.access[at.ID] = at
	f.refresh[rt.ID] = rt
	return nil
}

func sameUser(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (f *fakeTokens) DeactivateSession(_ context.Context, userID *string, applicationID, device string) error {
	for _, at := range f.access {
		if sameUser(at.UserID, userID) && at.ApplicationID == applicationID && at.Device == device {
			at.Active = false
		}
	}
	for _, rt := range f.refresh {
		if sameUser(rt.UserID, userID) && rt.ApplicationID == applicationID && rt.Device == device {
			rt.Active = false
		}
	}
	return nil
}

func (f *fakeTokens) RedeemRefresh(_ context.Context, id string) (bool, error) {
	rt, ok := f.refresh[id]
	if !ok || !rt.Active {
		return false, nil
	}
	rt.Active = false
	return true, nil
}

func (f *fakeTokens) Logout(_ context.Context, accessTokenID string) error {
	if at, ok := f.access[accessTokenID]; ok {
		at.Active = false
	}
	for _, rt := range f.refresh {
		if rt.AccessTokenID == accessTokenID {
			rt.Active = false
		}
	}
	return nil
}

// ----- fixtures -----

const (
	testAppID  = "app-1"
	testDevice = "device-1"
	testEmail  = "alice@example.com"
	testPass   = "correct-horse"
	testUserID = "user-1"
)

func newVerifier(t *testing.T) (*Verifier, *fakeTokens, *clockwork.FakeClock) {
	t.Helper()
	secret, err := utils.HashPassword(testPass, 4)
	require.NoError(t, err)

	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	tokens := newFakeTokens()
	v := &Verifier{
		Apps: &fakeApps{apps: map[string]*model.Application{
			testAppID: {ID: testAppID, Name: "web"},
		}},
		LoginMethods: &fakeLoginMethods{methods: map[string]*model.LoginMethod{
			model.LoginTypePassword + "|" + testEmail: {
				ID: "lm-1", Type: model.LoginTypePassword, Key: testEmail,
				UserID: testUserID, Secret: secret,
			},
		}},
		Tokens: tokens,
		Clock:  clock,
	}
	return v, tokens, clock
}

func seedRefresh(tokens *fakeTokens, clock clockwork.Clock, mutate func(*model.RefreshToken)) *model.RefreshToken {
	userID := testUserID
	rt := &model.RefreshToken{
		ID:            "rt-1",
		Active:        true,
		UserID:        &userID,
		AccessTokenID: "at-old",
		ApplicationID: testAppID,
		Device:        testDevice,
		Created:       clock.Now(),
		Expires:       clock.Now().Add(24 * time.Hour),
	}
	if mutate != nil {
		mutate(rt)
	}
	tokens.refresh[rt.ID] = rt
	return rt
}

// ----- tests -----

func TestVerifyUnknownApplication(t *testing.T) {
	v, _, _ := newVerifier(t)
	_, _, err := v.Verify(context.Background(), "nope", testDevice, Credentials{Type: TypeAnonymous})
	require.ErrorIs(t, err, apierr.ErrInvalidApplication)
}

func TestVerifyAnonymous(t *testing.T) {
	v, _, _ := newVerifier(t)
	app, user, err := v.Verify(context.Background(), testAppID, testDevice, Credentials{Type: TypeAnonymous})
	require.NoError(t, err)
	require.Equal(t, testAppID, app.ID)
	require.Nil(t, user)
}

func TestVerifyPassword(t *testing.T) {
	v, _, _ := newVerifier(t)

	app, user, err := v.Verify(context.Background(), testAppID, testDevice, Credentials{
		Type: TypePassword, Email: testEmail, Password: testPass,
	})
	require.NoError(t, err)
	require.Equal(t, testAppID, app.ID)
	require.Equal(t, testUserID, user.ID)

	// The email is normalized before lookup.
	_, user, err = v.Verify(context.Background(), testAppID, testDevice, Credentials{
		Type: TypePassword, Email: "  Alice@Example.COM ", Password: testPass,
	})
	require.NoError(t, err)
	require.Equal(t, testUserID, user.ID)
}

func TestVerifyPasswordFailuresIndistinguishable(t *testing.T) {
	v, _, _ := newVerifier(t)

	_, _, wrongPass := v.Verify(context.Background(), testAppID, testDevice, Credentials{
		Type: TypePassword, Email: testEmail, Password: "wrong-password",
	})
	_, _, unknownEmail := v.Verify(context.Background(), testAppID, testDevice, Credentials{
		Type: TypePassword, Email: "bob@example.com", Password: testPass,
	})
	require.ErrorIs(t, wrongPass, apierr.ErrInvalidEmailOrPassword)
	require.ErrorIs(t, unknownEmail, apierr.ErrInvalidEmailOrPassword)
}

func TestVerifyRefresh(t *testing.T) {
	v, tokens, clock := newVerifier(t)
	rt := seedRefresh(tokens, clock, nil)

	_, user, err := v.Verify(context.Background(), testAppID, testDevice, Credentials{
		Type: TypeRefresh, RefreshToken: rt.ID,
	})
	require.NoError(t, err)
	require.Equal(t, testUserID, user.ID)
	require.False(t, tokens.refresh[rt.ID].Active, "redeemed token must be deactivated")

	// Single-use: a second redemption fails.
	_, _, err = v.Verify(context.Background(), testAppID, testDevice, Credentials{
		Type: TypeRefresh, RefreshToken: rt.ID,
	})
	require.ErrorIs(t, err, apierr.ErrInvalidRefresh)
}

func TestVerifyRefreshRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.RefreshToken)
		token  string
	}{
		{name: "unknown token", token: "rt-missing"},
		{name: "inactive", mutate: func(rt *model.RefreshToken) { rt.Active = false }},
		{name: "expired", mutate: func(rt *model.RefreshToken) { rt.Expires = rt.Created.Add(-time.Minute) }},
		{name: "application mismatch", mutate: func(rt *model.RefreshToken) { rt.ApplicationID = "app-2" }},
		{name: "device mismatch", mutate: func(rt *model.RefreshToken) { rt.Device = "device-2" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, tokens, clock := newVerifier(t)
			id := tc.token
			if id == "" {
				id = seedRefresh(tokens, clock, tc.mutate).ID
			}
			_, _, err := v.Verify(context.Background(), testAppID, testDevice, Credentials{
				Type: TypeRefresh, RefreshToken: id,
			})
			require.ErrorIs(t, err, apierr.ErrInvalidRefresh)
		})
	}
}

func TestVerifyThirdPartyAndUnknownType(t *testing.T) {
	v, _, _ := newVerifier(t)

	_, _, err := v.Verify(context.Background(), testAppID, testDevice, Credentials{Type: TypeThirdParty})
	require.ErrorIs(t, err, apierr.ErrInvalidCredentials)

	_, _, err = v.Verify(context.Background(), testAppID, testDevice, Credentials{Type: "carrier-pigeon"})
	require.ErrorIs(t, err, apierr.ErrInvalidCredentials)
}
