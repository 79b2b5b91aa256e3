package model

// Speaker is a person presenting at a conference.
type Speaker struct {
	ID          string // speakers.id
	Name        string // speakers.name
	Charge      string // speakers.charge
	Origin      string // speakers.origin
	Description string // speakers.description
	PictureURL  string // speakers.picture_url

	ConferenceID string // speakers.conference_id
}

func (s *Speaker) URI() string { return "/speakers/" + s.ID }

func (s *Speaker) MicroRepr() Ref { return Ref{ID: s.ID, URI: s.URI()} }

type SpeakerSimpleRepr struct {
	Ref
	Name        string `json:"name"`
	Charge      string `json:"charge"`
	Origin      string `json:"origin"`
	Description string `json:"description"`
	PictureURL  string `json:"picture_url"`
}

func (s *Speaker) SimpleRepr() SpeakerSimpleRepr {
	return SpeakerSimpleRepr{
		Ref:         s.MicroRepr(),
		Name:        s.Name,
		Charge:      s.Charge,
		Origin:      s.Origin,
		Description: s.Description,
		PictureURL:  s.PictureURL,
	}
}

type SpeakerFullRepr struct {
	SpeakerSimpleRepr
	Conference ConferenceSimpleRepr `json:"conference"`
}

func (s *Speaker) FullRepr(conf *Conference) SpeakerFullRepr {
	return SpeakerFullRepr{SpeakerSimpleRepr: s.SimpleRepr(), Conference: conf.SimpleRepr()}
}
