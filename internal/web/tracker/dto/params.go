// Package dto defines the tracker write-request shapes.
package dto

import "github.com/Laisky/notion-blog/internal/web/tracker/model"

// CreateParams parameters for creating a tracker item. Title is required;
// everything else is optional and gets the documented default.
type CreateParams struct {
	Title      string
	Status     model.Status
	Progress   int
	Priority   model.Priority
	DueDate    string
	Tags       []string
	Tasks      string
	BlogPostID string
}

// UpdateParams is a partial update: a nil field means "leave unchanged" on
// the remote side. For DueDate and BlogPostID a pointer to the empty
// string means "clear", which is a different wire shape than omitting the
// field.
type UpdateParams struct {
	Title            *string
	Status           *model.Status
	Progress         *int
	Priority         *model.Priority
	DueDate          *string
	Tags             *[]string
	Tasks            *string
	BlogPostID       *string
	XContent         *string
	LinkedInContent  *string
	ThreadsContent   *string
	ContentGenerated *bool
	SocialPosted     *bool
}
