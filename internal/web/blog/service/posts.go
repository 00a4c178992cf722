// Package service is the service layer of blog.
package service

import (
	"context"
	"sort"

	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	"github.com/Laisky/notion-blog/internal/web/blog/model"
	"github.com/Laisky/notion-blog/library/db/notion"
)

// Property names of the posts database.
const (
	propTitle       = "Title"
	propName        = "Name"
	propSlug        = "Slug"
	propDate        = "Date"
	propTags        = "Tags"
	propDescription = "Description"
	propPublished   = "Published"
)

// Settings configures the blog service.
type Settings struct {
	// DatabaseID id of the posts database
	DatabaseID string
}

// Blog reads posts from the CMS.
type Blog struct {
	logger     glog.Logger
	cli        *notion.Client
	databaseID string
}

// New creates a blog service.
func New(logger glog.Logger, cli *notion.Client, settings Settings) *Blog {
	return &Blog{
		logger:     logger,
		cli:        cli,
		databaseID: settings.DatabaseID,
	}
}

// PostFromPage maps one fully-resolved record to a Post.
//
// Every field has a fallback so a half-filled user schema still yields a
// renderable post: Title falls back to Name then "Untitled", Slug to the
// record id, Date to the date portion of the creation timestamp, and a
// record with no Published property at all counts as published.
func PostFromPage(page *notion.Page) *model.Post {
	title, ok := page.Text(propTitle)
	if !ok || title == "" {
		if name, ok := page.Text(propName); ok && name != "" {
			title = name
		} else {
			title = "Untitled"
		}
	}

	slug, _ := page.Text(propSlug)
	if slug == "" {
		slug = page.ID
	}

	date := page.DateStart(propDate)
	if date == "" {
		date = page.CreatedDate()
	}

	tags := page.Strings(propTags)
	if tags == nil {
		tags = []string{}
	}

	description, _ := page.Text(propDescription)

	published, ok := page.Checkbox(propPublished)
	if !ok {
		published = true
	}

	return &model.Post{
		ID:          page.ID,
		Title:       title,
		Slug:        slug,
		Date:        date,
		Tags:        tags,
		Description: description,
		Published:   published,
	}
}

// LoadPosts returns all published posts, newest first.
//
// Fail-soft: on a backend failure the returned slice is empty and the
// error is returned alongside, so callers can render "no posts" and still
// surface a degraded state. LoadPosts never panics a render path.
func (s *Blog) LoadPosts(ctx context.Context) ([]*model.Post, error) {
	if s.databaseID == "" {
		return []*model.Post{}, errors.New("posts database id not configured")
	}

	pages, err := s.cli.QueryDatabase(ctx, s.databaseID, notion.QueryRequest{
		Filter: notion.FilterCheckboxEquals(propPublished, true),
		Sorts: []notion.Sort{
			{Property: propDate, Direction: notion.DirectionDescending},
		},
	})
	if err != nil {
		s.logger.Error("load posts", zap.Error(err))
		return []*model.Post{}, errors.Wrap(err, "load posts")
	}

	return mapFullPages(pages), nil
}

// LoadPostsByTag returns published posts carrying the given tag, newest
// first, with the same fail-soft contract as LoadPosts.
func (s *Blog) LoadPostsByTag(ctx context.Context, tag string) ([]*model.Post, error) {
	if s.databaseID == "" {
		return []*model.Post{}, errors.New("posts database id not configured")
	}

	pages, err := s.cli.QueryDatabase(ctx, s.databaseID, notion.QueryRequest{
		Filter: notion.FilterAnd(
			notion.FilterMultiSelectContains(propTags, tag),
			notion.FilterCheckboxEquals(propPublished, true),
		),
		Sorts: []notion.Sort{
			{Property: propDate, Direction: notion.DirectionDescending},
		},
	})
	if err != nil {
		s.logger.Error("load posts by tag", zap.Error(err), zap.String("tag", tag))
		return []*model.Post{}, errors.Wrapf(err, "load posts by tag `%s`", tag)
	}

	return mapFullPages(pages), nil
}

// LoadPostBySlug returns the unique published post with the given slug,
// including its converted markdown body. A missing slug yields (nil, nil);
// a backend failure yields (nil, err); both render as not-found.
func (s *Blog) LoadPostBySlug(ctx context.Context, slug string) (*model.PostWithContent, error) {
	if s.databaseID == "" {
		return nil, errors.New("posts database id not configured")
	}

	pages, err := s.cli.QueryDatabase(ctx, s.databaseID, notion.QueryRequest{
		Filter: notion.FilterAnd(
			notion.FilterRichTextEquals(propSlug, slug),
			notion.FilterCheckboxEquals(propPublished, true),
		),
	})
	if err != nil {
		s.logger.Error("load post by slug", zap.Error(err), zap.String("slug", slug))
		return nil, errors.Wrapf(err, "load post by slug `%s`", slug)
	}

	if len(pages) == 0 || !pages[0].Full() {
		return nil, nil
	}

	page := pages[0]
	md, err := s.cli.PageToMarkdown(ctx, page.ID)
	if err != nil {
		s.logger.Error("convert post content",
			zap.Error(err), zap.String("slug", slug))
		return nil, errors.Wrapf(err, "convert content of post `%s`", slug)
	}

	return &model.PostWithContent{
		Post:    *PostFromPage(&page),
		Content: md.Parent,
	}, nil
}

// LoadPostSlugs returns the slugs of all published posts, used to
// pre-enumerate the detail route space.
func (s *Blog) LoadPostSlugs(ctx context.Context) ([]string, error) {
	posts, err := s.LoadPosts(ctx)
	if err != nil {
		return []string{}, err
	}

	slugs := make([]string, 0, len(posts))
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}

	return slugs, nil
}

// LoadTags returns the distinct tags across all published posts in
// lexicographic order, recomputed from the listing on every call.
func (s *Blog) LoadTags(ctx context.Context) ([]string, error) {
	posts, err := s.LoadPosts(ctx)
	if err != nil {
		return []string{}, err
	}

	seen := map[string]struct{}{}
	tags := []string{}
	for _, p := range posts {
		for _, tag := range p.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}

			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	sort.Strings(tags)
	return tags, nil
}

// mapFullPages maps fully-resolved pages, dropping partial records.
func mapFullPages(pages []notion.Page) []*model.Post {
	posts := make([]*model.Post, 0, len(pages))
	for i := range pages {
		if !pages[i].Full() {
			continue
		}

		posts = append(posts, PostFromPage(&pages[i]))
	}

	return posts
}
