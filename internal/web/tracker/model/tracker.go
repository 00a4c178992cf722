// Package model contains the content tracker models.
package model

// Status editorial workflow state of a tracker item.
type Status string

// Workflow states, in editorial order.
const (
	StatusResearch  Status = "Research"
	StatusOutline   Status = "Outline"
	StatusDraft     Status = "Draft"
	StatusEdit      Status = "Edit"
	StatusReview    Status = "Review"
	StatusPublished Status = "Published"
	StatusPromoted  Status = "Promoted"
)

// ParseStatus coerces a remote status value to a known state. The remote
// schema is not statically enforced, so unknown values coerce to
// StatusResearch rather than being rejected.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusResearch, StatusOutline, StatusDraft,
		StatusEdit, StatusReview, StatusPublished, StatusPromoted:
		return Status(s)
	default:
		return StatusResearch
	}
}

// Priority urgency of a tracker item.
type Priority string

// Priorities, lowest first.
const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// ParsePriority coerces a remote priority value, defaulting unknown values
// to PriorityMedium.
func ParsePriority(s string) Priority {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return Priority(s)
	default:
		return PriorityMedium
	}
}

// TrackerItem is one record of the editorial workflow database. DueDate
// and BlogPostID use the empty string for "unset".
type TrackerItem struct {
	// ID unique identifier assigned by the CMS
	ID string `json:"id"`
	// Title title of the tracked post
	Title string `json:"title"`
	// Status editorial workflow state
	Status Status `json:"status"`
	// Progress completion percentage, 0-100
	Progress int `json:"progress"`
	// DueDate target date, ISO-8601, empty when unset
	DueDate string `json:"due_date,omitempty"`
	// BlogPostID weak reference to the related blog post record
	BlogPostID string `json:"blog_post_id,omitempty"`
	// Tags tags of the item
	Tags []string `json:"tags"`
	// Priority urgency of the item
	Priority Priority `json:"priority"`
	// Tasks multi-step breakdown as free text
	Tasks string `json:"tasks"`
	// XContent drafted X (Twitter) thread
	XContent string `json:"x_content"`
	// LinkedInContent drafted LinkedIn post
	LinkedInContent string `json:"linkedin_content"`
	// ThreadsContent drafted Threads post
	ThreadsContent string `json:"threads_content"`
	// ContentGenerated whether social copy has been drafted
	ContentGenerated bool `json:"content_generated"`
	// SocialPosted whether the copy has been posted
	SocialPosted bool `json:"social_posted"`
	// CreatedAt record creation timestamp
	CreatedAt string `json:"created_at"`
	// UpdatedAt record last-edit timestamp
	UpdatedAt string `json:"updated_at"`
}
