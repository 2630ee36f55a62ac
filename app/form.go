package app

import (
	"context"
	"strings"

	appDb "github.com/akoreshkov/bloghub-be/db"
	"github.com/akoreshkov/bloghub-be/util"
)

// PostForm is the raw user-submitted payload for create and edit.
type PostForm struct {
	Text          string `json:"text"`
	GroupId       *int64 `json:"group"`
	ImageBlobName string `json:"imageBlobName"`
}

// ValidatedPost is a normalized form ready for persistence.
type ValidatedPost struct {
	Text          string
	GroupId       *int64
	ImageBlobName string
}

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

// ValidatePostForm checks and normalizes a submitted post form. Text is
// sanitized then trimmed and must be non-empty; the group reference,
// when present, must resolve to an existing group. The function never
// writes; the error return is for store failures only.
func ValidatePostForm(ctx context.Context, groupDB appDb.GroupDatabase, form *PostForm) (*ValidatedPost, FieldErrors, error) {
	fieldErrs := FieldErrors{}

	text := strings.TrimSpace(util.XSSSanitize(form.Text))
	if text == "" {
		fieldErrs["text"] = "text must not be empty"
	}

	if form.GroupId != nil {
		group, err := groupDB.GetGroupById(ctx, *form.GroupId)
		if err != nil {
			return nil, nil, err
		}
		if group == nil {
			fieldErrs["group"] = "group does not exist"
		}
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}
	return &ValidatedPost{
		Text:          text,
		GroupId:       form.GroupId,
		ImageBlobName: form.ImageBlobName,
	}, nil, nil
}
