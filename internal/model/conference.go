package model

// Role buckets conference membership. Owners and collaborators may edit
// the conference and its children; assistants are read-only.
type Role string

const (
	RoleOwner        Role = "owner"
	RoleCollaborator Role = "collaborator"
	RoleAssistant    Role = "assistant"
)

// AllRoles lists the roles in their canonical order. Representations and
// derived views iterate in this order so output is deterministic.
var AllRoles = []Role{RoleOwner, RoleCollaborator, RoleAssistant}

// RoleSet maps each role to the ids of the users holding it on one
// conference. The "all members" view is derived on demand and never
// stored, so the role rows stay the single source of truth.
type RoleSet map[Role][]string

// Lookup returns the role a user holds on the conference, if any. When a
// user somehow appears under several roles the most privileged wins.
func (s RoleSet) Lookup(userID string) (Role, bool) {
	for _, role := range AllRoles {
		for _, id := range s[role] {
			if id == userID {
				return role, true
			}
		}
	}
	return "", false
}

// CanEdit reports whether the user may mutate the conference or its
// child resources: owners and collaborators only.
func (s RoleSet) CanEdit(userID string) bool {
	role, ok := s.Lookup(userID)
	return ok && role != RoleAssistant
}

// IsOwner reports whether the user holds the owner role.
func (s RoleSet) IsOwner(userID string) bool {
	role, ok := s.Lookup(userID)
	return ok && role == RoleOwner
}

// Member pairs a user id with the role it holds on a conference.
type Member struct {
	UserID string
	Role   Role
}

// All returns every member with its role, owners first.
func (s RoleSet) All() []Member {
	var out []Member
	for _, role := range AllRoles {
		for _, id := range s[role] {
			out = append(out, Member{UserID: id, Role: role})
		}
	}
	return out
}

// Conference is the tenant entity. Child resources reference it by id;
// membership lives in conference_users rows exposed here as Members.
type Conference struct {
	ID          string // conferences.id
	Name        string // conferences.name
	Description string // conferences.description
	CSS         string // conferences.css

	Members RoleSet
}

// ConferenceChildren holds the loaded child resources of one conference,
// used to build the full and reduced representations.
type ConferenceChildren struct {
	Documents     []Document
	Venues        []Venue
	Announcements []Announcement
	Organizers    []Organizer
	Speakers      []Speaker
}

func (c *Conference) URI() string { return "/conferences/" + c.ID }

func (c *Conference) MicroRepr() Ref { return Ref{ID: c.ID, URI: c.URI()} }

// ConferenceMicroRef builds a conference micro representation from a
// bare id.
func ConferenceMicroRef(id string) Ref { return Ref{ID: id, URI: "/conferences/" + id} }

// ConferenceSimpleRepr adds the descriptive fields to the micro view.
type ConferenceSimpleRepr struct {
	Ref
	Name        string `json:"name"`
	Description string `json:"description"`
	CSS         string `json:"css"`
}

func (c *Conference) SimpleRepr() ConferenceSimpleRepr {
	return ConferenceSimpleRepr{
		Ref:         c.MicroRepr(),
		Name:        c.Name,
		Description: c.Description,
		CSS:         c.CSS,
	}
}

// MemberRepr is one entry of the full representation's users list.
type MemberRepr struct {
	Ref
	Role Role `json:"role"`
}

// ConferenceFullRepr is returned to members: child resources as simple
// representations plus the role-tagged users list.
type ConferenceFullRepr struct {
	ConferenceSimpleRepr
	Documents     []DocumentSimpleRepr     `json:"documents"`
	Venues        []VenueSimpleRepr        `json:"venues"`
	Announcements []AnnouncementSimpleRepr `json:"announcements"`
	Organizers    []OrganizerSimpleRepr    `json:"organizers"`
	Speakers      []SpeakerSimpleRepr      `json:"speakers"`
	Users         []MemberRepr             `json:"users"`
}

// ConferenceReducedRepr is returned to non-members: no users list and
// child resources as micro references only.
type ConferenceReducedRepr struct {
	ConferenceSimpleRepr
	Documents     []Ref `json:"documents"`
	Venues        []Ref `json:"venues"`
	Announcements []Ref `json:"announcements"`
	Organizers    []Ref `json:"organizers"`
	Speakers      []Ref `json:"speakers"`
}

// FullRepr builds the member view from the loaded children and the role
// set. Slices are always non-nil so the JSON lists render as [].
func (c *Conference) FullRepr(ch *ConferenceChildren) ConferenceFullRepr {
	repr := ConferenceFullRepr{
		ConferenceSimpleRepr: c.SimpleRepr(),
		Documents:            []DocumentSimpleRepr{},
		Venues:               []VenueSimpleRepr{},
		Announcements:        []AnnouncementSimpleRepr{},
		Organizers:           []OrganizerSimpleRepr{},
		Speakers:             []SpeakerSimpleRepr{},
		Users:                []MemberRepr{},
	}
	for i := range ch.Documents {
		repr.Documents = append(repr.Documents, ch.Documents[i].SimpleRepr())
	}
	for i := range ch.Venues {
		repr.Venues = append(repr.Venues, ch.Venues[i].SimpleRepr())
	}
	for i := range ch.Announcements {
		repr.Announcements = append(repr.Announcements, ch.Announcements[i].SimpleRepr())
	}
	for i := range ch.Organizers {
		repr.Organizers = append(repr.Organizers, ch.Organizers[i].SimpleRepr())
	}
	for i := range ch.Speakers {
		repr.Speakers = append(repr.Speakers, ch.Speakers[i].SimpleRepr())
	}
	for _, m := range c.Members.All() {
		repr.Users = append(repr.Users, MemberRepr{Ref: UserMicroRef(m.UserID), Role: m.Role})
	}
	return repr
}

// ReducedRepr builds the non-member view.
func (c *Conference) ReducedRepr(ch *ConferenceChildren) ConferenceReducedRepr {
	repr := ConferenceReducedRepr{
		ConferenceSimpleRepr: c.SimpleRepr(),
		Documents:            []Ref{},
		Venues:               []Ref{},
		Announcements:        []Ref{},
		Organizers:           []Ref{},
		Speakers:             []Ref{},
	}
	for i := range ch.Documents {
		repr.Documents = append(repr.Documents, ch.Documents[i].MicroRepr())
	}
	for i := range ch.Venues {
		repr.Venues = append(repr.Venues, ch.Venues[i].MicroRepr())
	}
	for i := range ch.Announcements {
		repr.Announcements = append(repr.Announcements, ch.Announcements[i].MicroRepr())
	}
	for i := range ch.Organizers {
		repr.Organizers = append(repr.Organizers, ch.Organizers[i].MicroRepr())
	}
	for i := range ch.Speakers {
		repr.Speakers = append(repr.Speakers, ch.Speakers[i].MicroRepr())
	}
	return repr
}
