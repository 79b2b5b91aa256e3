package model

import "time"

// AccessToken is the short-lived bearer credential presented on every
// authenticated request as `Authorization: Token <id>`. UserID is nil
// for anonymous sessions. Tokens are deactivated, never deleted, so the
// session history stays auditable.
type AccessToken struct {
	ID     string // access_tokens.id
	Active bool   // access_tokens.active

	UserID        *string // access_tokens.user_id (NULL for anonymous)
	ApplicationID string  // access_tokens.application_id
	Device        string  // access_tokens.device

	Created time.Time // access_tokens.created
	Used    time.Time // access_tokens.used
	Expires time.Time // access_tokens.expires

	// User is populated on lookup when the token belongs to a user.
	User *User
}

// RefreshToken is the long-lived single-use credential bound to one
// access token at issuance. Redeeming it deactivates it and yields a
// fresh pair.
type RefreshToken struct {
	ID     string // refresh_tokens.id
	Active bool   // refresh_tokens.active

	UserID        *string // refresh_tokens.user_id (NULL for anonymous)
	AccessTokenID string  // refresh_tokens.access_token_id
	ApplicationID string  // refresh_tokens.application_id
	Device        string  // refresh_tokens.device

	Created time.Time // refresh_tokens.created
	Expires time.Time // refresh_tokens.expires
}
