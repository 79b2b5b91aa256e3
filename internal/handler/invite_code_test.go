package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/myconference/api/internal/model"
	"github.com/myconference/api/internal/queue"
)

func newInviteFixture() (*InviteCodeHandler, *memInvites, *memConferences) {
	confs := newMemConferences()
	seedConference(confs, "conf-1", model.RoleSet{
		model.RoleOwner:        {"owner-1"},
		model.RoleCollaborator: {"collab-1"},
		model.RoleAssistant:    {"assistant-1"},
	})
	invites := &memInvites{codes: map[string]*model.InviteCode{}}
	h := &InviteCodeHandler{
		Invites:     invites,
		Conferences: confs,
		Publisher:   queue.NewPublisher("", nil), // disabled
		Clock:       clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
	}
	return h, invites, confs
}

func seedInvite(invites *memInvites, active bool) *model.InviteCode {
	ic := &model.InviteCode{
		ID:             "inv-1",
		Active:         active,
		ConferenceID:   "conf-1",
		CreatedBy:      "owner-1",
		RecipientEmail: "guest@example.com",
		RecipientName:  "Guest",
		CreatedDate:    time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	invites.codes[ic.ID] = ic
	return ic
}

func TestInviteCreate(t *testing.T) {
	h, invites, _ := newInviteFixture()

	c, rec := request(t, http.MethodPost, "/invite-codes",
		`{"conference_id":"conf-1","recipient_email":"Guest@Example.com","recipient_name":"Guest"}`,
		&model.User{ID: "collab-1"})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp model.InviteCodeFullRepr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Active)
	require.Equal(t, "guest@example.com", resp.RecipientEmail)
	require.Equal(t, "/users/collab-1", resp.CreatedBy.URI)
	require.Equal(t, "/conferences/conf-1", resp.Conference.URI)
	require.Nil(t, resp.UsedBy)
	require.Len(t, invites.codes, 1)
}

func TestInviteCreateGuard(t *testing.T) {
	h, invites, _ := newInviteFixture()
	c, rec := request(t, http.MethodPost, "/invite-codes",
		`{"conference_id":"conf-1","recipient_email":"guest@example.com"}`,
		&model.User{ID: "assistant-1"})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Empty(t, invites.codes)
}

func TestInviteGetCreatorOnly(t *testing.T) {
	h, invites, _ := newInviteFixture()
	seedInvite(invites, true)

	c, rec := request(t, http.MethodGet, "/invite-codes/inv-1", "", &model.User{ID: "owner-1"}, "id", "inv-1")
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// Even another editor of the conference cannot inspect it.
	c, rec = request(t, http.MethodGet, "/invite-codes/inv-1", "", &model.User{ID: "collab-1"}, "id", "inv-1")
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestInviteRedeem(t *testing.T) {
	h, invites, confs := newInviteFixture()
	seedInvite(invites, true)

	c, rec := request(t, http.MethodPost, "/invite-codes/inv-1/redeem", "",
		&model.User{ID: "newcomer"}, "id", "inv-1")
	require.NoError(t, h.Redeem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	ic := invites.codes["inv-1"]
	require.False(t, ic.Active)
	require.Equal(t, "newcomer", *ic.UsedBy)
	require.NotNil(t, ic.UsedDate)

	role, member := confs.confs["conf-1"].Members.Lookup("newcomer")
	require.True(t, member)
	require.Equal(t, model.RoleAssistant, role)
}

func TestInviteRedeemSingleUse(t *testing.T) {
	h, invites, _ := newInviteFixture()
	seedInvite(invites, true)

	c, rec := request(t, http.MethodPost, "/invite-codes/inv-1/redeem", "",
		&model.User{ID: "first"}, "id", "inv-1")
	require.NoError(t, h.Redeem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = request(t, http.MethodPost, "/invite-codes/inv-1/redeem", "",
		&model.User{ID: "second"}, "id", "inv-1")
	require.NoError(t, h.Redeem(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "invalid_invite_code", respCode(t, rec))
	require.Equal(t, "first", *invites.codes["inv-1"].UsedBy)
}

func TestInviteRedeemExistingMemberKeepsRole(t *testing.T) {
	h, invites, confs := newInviteFixture()
	seedInvite(invites, true)

	c, rec := request(t, http.MethodPost, "/invite-codes/inv-1/redeem", "",
		&model.User{ID: "collab-1"}, "id", "inv-1")
	require.NoError(t, h.Redeem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	role, _ := confs.confs["conf-1"].Members.Lookup("collab-1")
	require.Equal(t, model.RoleCollaborator, role)
	require.False(t, invites.codes["inv-1"].Active, "code is still consumed")
}

func TestInviteRedeemUnknown(t *testing.T) {
	h, _, _ := newInviteFixture()
	c, rec := request(t, http.MethodPost, "/invite-codes/nope/redeem", "",
		&model.User{ID: "u"}, "id", "nope")
	require.NoError(t, h.Redeem(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
