package model

import "time"

// Announcement is a dated notice published on a conference.
type Announcement struct {
	ID    string    // announcements.id
	Title string    // announcements.title
	Body  string    // announcements.body
	Date  time.Time // announcements.date

	ConferenceID string // announcements.conference_id
}

func (a *Announcement) URI() string { return "/announcements/" + a.ID }

func (a *Announcement) MicroRepr() Ref { return Ref{ID: a.ID, URI: a.URI()} }

type AnnouncementSimpleRepr struct {
	Ref
	Title string    `json:"title"`
	Body  string    `json:"body"`
	Date  time.Time `json:"date"`
}

func (a *Announcement) SimpleRepr() AnnouncementSimpleRepr {
	return AnnouncementSimpleRepr{Ref: a.MicroRepr(), Title: a.Title, Body: a.Body, Date: a.Date}
}

type AnnouncementFullRepr struct {
	AnnouncementSimpleRepr
	Conference ConferenceSimpleRepr `json:"conference"`
}

func (a *Announcement) FullRepr(conf *Conference) AnnouncementFullRepr {
	return AnnouncementFullRepr{AnnouncementSimpleRepr: a.SimpleRepr(), Conference: conf.SimpleRepr()}
}
