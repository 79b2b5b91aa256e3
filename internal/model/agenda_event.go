package model

import "time"

// AgendaEvent is a scheduled slot in a conference programme.
type AgendaEvent struct {
	ID          string    // agenda_events.id
	Title       string    // agenda_events.title
	Description string    // agenda_events.description
	Date        time.Time // agenda_events.date

	ConferenceID string // agenda_events.conference_id
}

func (e *AgendaEvent) URI() string { return "/agenda-events/" + e.ID }

func (e *AgendaEvent) MicroRepr() Ref { return Ref{ID: e.ID, URI: e.URI()} }

type AgendaEventSimpleRepr struct {
	Ref
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

func (e *AgendaEvent) SimpleRepr() AgendaEventSimpleRepr {
	return AgendaEventSimpleRepr{Ref: e.MicroRepr(), Title: e.Title, Description: e.Description, Date: e.Date}
}

type AgendaEventFullRepr struct {
	AgendaEventSimpleRepr
	Conference ConferenceSimpleRepr `json:"conference"`
}

func (e *AgendaEvent) FullRepr(conf *Conference) AgendaEventFullRepr {
	return AgendaEventFullRepr{AgendaEventSimpleRepr: e.SimpleRepr(), Conference: conf.SimpleRepr()}
}
