package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/myconference/api/internal/model"
	"github.com/myconference/api/internal/repository"
)

// In-memory store fakes shared by the handler tests.

type memApps struct{ apps map[string]*model.Application }

func (m *memApps) GetByID(_ context.Context, id string) (*model.Application, error) {
	if a, ok := m.apps[id]; ok {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

type memUsers struct{ users map[string]*model.User }

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

type memLoginMethods struct{ methods map[string]*model.LoginMethod }

func (m *memLoginMethods) Create(_ context.Context, lm *model.LoginMethod) error {
	if _, ok := m.methods[lm.Type+"|"+lm.Key]; ok {
		return repository.ErrDuplicate
	}
	m.methods[lm.Type+"|"+lm.Key] = lm
	return nil
}

func (m *memLoginMethods) GetByTypeAndKey(_ context.Context, typ, key string) (*model.LoginMethod, error) {
	if lm, ok := m.methods[typ+"|"+key]; ok {
		return lm, nil
	}
	return nil, repository.ErrNotFound
}

type memTokens struct {
	access  map[string]*model.AccessToken
	refresh map[string]*model.RefreshToken
}

func newMemTokens() *memTokens {
	return &memTokens{
		access:  map[string]*model.AccessToken{},
		refresh: map[string]*model.RefreshToken{},
	}
}

func (m *memTokens) GetAccess(_ context.Context, id string) (*model.AccessToken, error) {
	if at, ok := m.access[id]; ok {
		return at, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memTokens) GetRefresh(_ context.Context, id string) (*model.RefreshToken, error) {
	if rt, ok := m.refresh[id]; ok {
		return rt, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memTokens) CreatePair(_ context.Context, at *model.AccessToken, rt *model.RefreshToken) error {
	m.access[at.ID] = at
	m.refresh[rt.ID] = rt
	return nil
}

func sameUserID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (m *memTokens) DeactivateSession(_ context.Context, userID *string, applicationID, device string) error {
	for _, at := range m.access {
		if sameUserID(at.UserID, userID) && at.ApplicationID == applicationID && at.Device == device {
			at.Active = false
		}
	}
	for _, rt := range m.refresh {
		if sameUserID(rt.UserID, userID) && rt.ApplicationID == applicationID && rt.Device == device {
			rt.Active = false
		}
	}
	return nil
}

func (m *memTokens) RedeemRefresh(_ context.Context, id string) (bool, error) {
	rt, ok := m.refresh[id]
	if !ok || !rt.Active {
		return false, nil
	}
	rt.Active = false
	return true, nil
}

func (m *memTokens) Logout(_ context.Context, accessTokenID string) error {
	if at, ok := m.access[accessTokenID]; ok {
		at.Active = false
	}
	for _, rt := range m.refresh {
		if rt.AccessTokenID == accessTokenID {
			rt.Active = false
		}
	}
	return nil
}

type memConferences struct {
	confs    map[string]*model.Conference
	children map[string]*model.ConferenceChildren
}

func newMemConferences() *memConferences {
	return &memConferences{
		confs:    map[string]*model.Conference{},
		children: map[string]*model.ConferenceChildren{},
	}
}

func (m *memConferences) Create(_ context.Context, conf *model.Conference, ownerID string) error {
	conf.Members = model.RoleSet{model.RoleOwner: {ownerID}}
	m.confs[conf.ID] = conf
	return nil
}

func (m *memConferences) Get(_ context.Context, id string) (*model.Conference, error) {
	if conf, ok := m.confs[id]; ok {
		return conf, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memConferences) Children(_ context.Context, id string) (*model.ConferenceChildren, error) {
	if ch, ok := m.children[id]; ok {
		return ch, nil
	}
	return &model.ConferenceChildren{}, nil
}

func (m *memConferences) Update(_ context.Context, conf *model.Conference) error {
	if _, ok := m.confs[conf.ID]; !ok {
		return repository.ErrNotFound
	}
	m.confs[conf.ID] = conf
	return nil
}

func (m *memConferences) Delete(_ context.Context, id string) error {
	if _, ok := m.confs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.confs, id)
	delete(m.children, id)
	return nil
}

func (m *memConferences) AddMember(_ context.Context, conferenceID, userID string, role model.Role) error {
	conf, ok := m.confs[conferenceID]
	if !ok {
		return repository.ErrNotFound
	}
	if _, member := conf.Members.Lookup(userID); member {
		return nil
	}
	conf.Members[role] = append(conf.Members[role], userID)
	return nil
}

type memDocuments struct{ docs map[string]*model.Document }

func (m *memDocuments) GetByID(_ context.Context, id string) (*model.Document, error) {
	if d, ok := m.docs[id]; ok {
		return d, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memDocuments) Create(_ context.Context, d *model.Document) error {
	m.docs[d.ID] = d
	return nil
}

func (m *memDocuments) Update(_ context.Context, d *model.Document) error {
	if _, ok := m.docs[d.ID]; !ok {
		return repository.ErrNotFound
	}
	m.docs[d.ID] = d
	return nil
}

func (m *memDocuments) Delete(_ context.Context, id string) error {
	if _, ok := m.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

type memInvites struct{ codes map[string]*model.InviteCode }

func (m *memInvites) GetByID(_ context.Context, id string) (*model.InviteCode, error) {
	if ic, ok := m.codes[id]; ok {
		return ic, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memInvites) Create(_ context.Context, ic *model.InviteCode) error {
	m.codes[ic.ID] = ic
	return nil
}

func (m *memInvites) Redeem(_ context.Context, id, userID string, at time.Time) (bool, error) {
	ic, ok := m.codes[id]
	if !ok || !ic.Active || ic.UsedBy != nil {
		return false, nil
	}
	ic.Active = false
	ic.UsedBy = &userID
	ic.UsedDate = &at
	return true, nil
}

// asUser attaches an authenticated user to the context the way the
// token middleware does.
func asUser(c echo.Context, u *model.User) {
	if u != nil {
		c.Set("user", u)
	}
}

func asToken(c echo.Context, at *model.AccessToken) {
	c.Set("access_token", at)
	if at.User != nil {
		c.Set("user", at.User)
	}
}
