package model

// Item is the domain model for a todo entry: one row of the lists table.
// ID is assigned by the store and never changes for the row's lifetime.
type Item struct {
	ID   int64  `db:"id" json:"id" yaml:"id"`
	Name string `db:"name" json:"name" yaml:"name"`
}
