package model

// Group is a named category posts may optionally belong to. Groups are
// created out-of-band (seed/admin) and never mutated by the handlers.
type Group struct {
	Id          int64  `db:"id" json:"id"`
	Slug        string `db:"slug" json:"slug"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
}
