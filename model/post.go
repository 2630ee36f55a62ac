package model

import (
	"time"
)

type Post struct {
	Id            int64     `json:"id"`
	Text          string    `json:"text"`
	Author        *User     `json:"author"`
	Group         *Group    `json:"group,omitempty"`
	ImageBlobName string    `json:"imageBlobName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CanEdit reports whether user may mutate the post. Only the original
// author may; authorship itself is never reassigned.
func (p *Post) CanEdit(user *User) bool {
	return user != nil && user.Id == p.Author.Id
}
