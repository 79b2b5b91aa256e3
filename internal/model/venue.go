package model

// Location is a geographic point attached to a venue.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Venue is a physical place belonging to a conference.
type Venue struct {
	ID      string   // venues.id
	Name    string   // venues.name
	Loc     Location // venues.lat, venues.lng
	Details string   // venues.details

	ConferenceID string // venues.conference_id
}

func (v *Venue) URI() string { return "/venues/" + v.ID }

func (v *Venue) MicroRepr() Ref { return Ref{ID: v.ID, URI: v.URI()} }

type VenueSimpleRepr struct {
	Ref
	Name     string   `json:"name"`
	Location Location `json:"location"`
	Details  string   `json:"details"`
}

func (v *Venue) SimpleRepr() VenueSimpleRepr {
	return VenueSimpleRepr{Ref: v.MicroRepr(), Name: v.Name, Location: v.Loc, Details: v.Details}
}

type VenueFullRepr struct {
	VenueSimpleRepr
	Conference ConferenceSimpleRepr `json:"conference"`
}

func (v *Venue) FullRepr(conf *Conference) VenueFullRepr {
	return VenueFullRepr{VenueSimpleRepr: v.SimpleRepr(), Conference: conf.SimpleRepr()}
}
