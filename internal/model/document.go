package model

import "encoding/json"

// Document is an arbitrary piece of conference content. Data carries the
// type-specific payload verbatim.
type Document struct {
	ID          string          // documents.id
	Title       string          // documents.title
	Description string          // documents.description
	Type        string          // documents.doc_type
	Data        json.RawMessage // documents.data

	ConferenceID string // documents.conference_id
}

func (d *Document) URI() string { return "/documents/" + d.ID }

func (d *Document) MicroRepr() Ref { return Ref{ID: d.ID, URI: d.URI()} }

type DocumentSimpleRepr struct {
	Ref
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Data        json.RawMessage `json:"data"`
}

func (d *Document) SimpleRepr() DocumentSimpleRepr {
	return DocumentSimpleRepr{
		Ref:         d.MicroRepr(),
		Title:       d.Title,
		Description: d.Description,
		Type:        d.Type,
		Data:        d.Data,
	}
}

type DocumentFullRepr struct {
	DocumentSimpleRepr
	Conference ConferenceSimpleRepr `json:"conference"`
}

// FullRepr includes the parent conference's simple representation.
func (d *Document) FullRepr(conf *Conference) DocumentFullRepr {
	return DocumentFullRepr{DocumentSimpleRepr: d.SimpleRepr(), Conference: conf.SimpleRepr()}
}
