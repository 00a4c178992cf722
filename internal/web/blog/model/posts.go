// Package model contains the blog read models.
package model

// Post is the normalized projection of one blog post record. It is
// recomputed on every fetch and never persisted locally.
type Post struct {
	// ID unique identifier assigned by the CMS
	ID string `json:"id"`
	// Title title of the post
	Title string `json:"title"`
	// Slug public-facing lookup key
	Slug string `json:"slug"`
	// Date publication date, ISO-8601
	Date string `json:"date"`
	// Tags tags of the post
	Tags []string `json:"tags"`
	// Description short summary of the post
	Description string `json:"description"`
	// Published whether the post is publicly visible
	Published bool `json:"published"`
}

// PostWithContent is a Post plus its full markdown body. The body is
// fetched only for the detail view.
type PostWithContent struct {
	Post
	// Content markdown body of the post
	Content string `json:"content"`
}
