package model

// Organizer is a person or entity running part of a conference. Group
// labels the organizing team the entry belongs to.
type Organizer struct {
	ID      string // organizers.id
	Name    string // organizers.name
	Origin  string // organizers.origin
	Details string // organizers.details
	Group   string // organizers.group_name

	ConferenceID string // organizers.conference_id
}

func (o *Organizer) URI() string { return "/organizers/" + o.ID }

func (o *Organizer) MicroRepr() Ref { return Ref{ID: o.ID, URI: o.URI()} }

type OrganizerSimpleRepr struct {
	Ref
	Name    string `json:"name"`
	Origin  string `json:"origin"`
	Details string `json:"details"`
	Group   string `json:"group"`
}

func (o *Organizer) SimpleRepr() OrganizerSimpleRepr {
	return OrganizerSimpleRepr{
		Ref:     o.MicroRepr(),
		Name:    o.Name,
		Origin:  o.Origin,
		Details: o.Details,
		Group:   o.Group,
	}
}

type OrganizerFullRepr struct {
	OrganizerSimpleRepr
	Conference ConferenceSimpleRepr `json:"conference"`
}

func (o *Organizer) FullRepr(conf *Conference) OrganizerFullRepr {
	return OrganizerFullRepr{OrganizerSimpleRepr: o.SimpleRepr(), Conference: conf.SimpleRepr()}
}
