package model

import "time"

// User is an account record from the `users` table. Users carry no
// profile data of their own; credentials live in login_methods and
// conference roles live in conference_users.
type User struct {
	ID      string    // users.id
	Created time.Time // users.created
}

// URI returns the canonical path of the user resource.
func (u *User) URI() string { return "/users/" + u.ID }

// MicroRepr returns the {id, uri} view of the user.
func (u *User) MicroRepr() Ref { return Ref{ID: u.ID, URI: u.URI()} }

// UserMicroRef builds a user micro representation from a bare id, for
// records that reference users without loading them.
func UserMicroRef(id string) Ref { return Ref{ID: id, URI: "/users/" + id} }

// LoginMethod binds a credential key of a given type to a user. At most
// one row exists per (type, key); for the password type the key is the
// normalized email and Secret holds the bcrypt hash.
type LoginMethod struct {
	ID     string // login_methods.id
	Type   string // login_methods.type
	Key    string // login_methods.login_key
	UserID string // login_methods.user_id
	Secret string // login_methods.secret
}

// LoginTypePassword is the only credential type with stored secrets.
const LoginTypePassword = "password"
