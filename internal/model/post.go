package model

import "strings"

// Post is a blog entry as the remote API returns it.
// The id is assigned by the server and travels as "_id".
type Post struct {
	ID      string `json:"_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Draft holds the unsaved form values for a post being created or edited.
type Draft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DraftOf copies a post's editable fields into a draft.
func DraftOf(p Post) Draft {
	return Draft{Title: p.Title, Content: p.Content}
}

// Field names used as keys in Errors.
const (
	FieldTitle   = "title"
	FieldContent = "content"
)

// Errors maps a form field to its validation message.
type Errors map[string]string

// Validate reports every required field that is empty or whitespace only.
// An empty result means the draft can be submitted.
func Validate(d Draft) Errors {
	errs := Errors{}
	if strings.TrimSpace(d.Title) == "" {
		errs[FieldTitle] = "Title is required"
	}
	if strings.TrimSpace(d.Content) == "" {
		errs[FieldContent] = "Content is required"
	}
	return errs
}
