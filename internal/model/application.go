package model

// Application identifies a calling client (web, iOS, Android). Rows are
// created out-of-band; tokens are always scoped to one application.
type Application struct {
	ID   string // applications.id
	Name string // applications.name
}
