package model

import "time"

// InviteCode is a single-use token granting assistant membership on a
// conference. Redemption flips Active and records who redeemed it and
// when; redeemed codes are kept for audit.
type InviteCode struct {
	ID     string // invite_codes.id
	Active bool   // invite_codes.active

	ConferenceID string  // invite_codes.conference_id
	CreatedBy    string  // invite_codes.created_by
	UsedBy       *string // invite_codes.used_by (NULL until redeemed)

	RecipientEmail string // invite_codes.recipient_email
	RecipientName  string // invite_codes.recipient_name

	CreatedDate time.Time  // invite_codes.created_date
	UsedDate    *time.Time // invite_codes.used_date (NULL until redeemed)
}

func (ic *InviteCode) URI() string { return "/invite-codes/" + ic.ID }

func (ic *InviteCode) MicroRepr() Ref { return Ref{ID: ic.ID, URI: ic.URI()} }

type InviteCodeFullRepr struct {
	Ref
	Active         bool       `json:"active"`
	RecipientEmail string     `json:"recipient_email"`
	RecipientName  string     `json:"recipient_name"`
	CreatedDate    time.Time  `json:"created_date"`
	UsedDate       *time.Time `json:"used_date,omitempty"`
	CreatedBy      Ref        `json:"created_by"`
	UsedBy         *Ref       `json:"used_by,omitempty"`
	Conference     Ref        `json:"conference"`
}

// FullRepr is only shown to the creator, so it carries the recipient
// details alongside the redemption state.
func (ic *InviteCode) FullRepr() InviteCodeFullRepr {
	repr := InviteCodeFullRepr{
		Ref:            ic.MicroRepr(),
		Active:         ic.Active,
		RecipientEmail: ic.RecipientEmail,
		RecipientName:  ic.RecipientName,
		CreatedDate:    ic.CreatedDate,
		UsedDate:       ic.UsedDate,
		CreatedBy:      UserMicroRef(ic.CreatedBy),
		Conference:     ConferenceMicroRef(ic.ConferenceID),
	}
	if ic.UsedBy != nil {
		used := UserMicroRef(*ic.UsedBy)
		repr.UsedBy = &used
	}
	return repr
}
