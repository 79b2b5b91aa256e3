package model

// Ref is the micro representation of an entity: its id and URI.
type Ref struct {
	ID  string `json:"id"`
	URI string `json:"uri"`
}
