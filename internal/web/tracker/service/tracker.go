// Package service is the service layer of the content tracker.
package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	"github.com/Laisky/notion-blog/internal/web/tracker/dto"
	"github.com/Laisky/notion-blog/internal/web/tracker/model"
	"github.com/Laisky/notion-blog/library/db/notion"
)

// Property names of the tracker database.
const (
	propTitle            = "Title"
	propStatus           = "Status"
	propProgress         = "Progress"
	propDueDate          = "Due Date"
	propBlogPost         = "Blog Post"
	propTags             = "Tags"
	propPriority         = "Priority"
	propTasks            = "Tasks"
	propXContent         = "X Content"
	propLinkedInContent  = "LinkedIn Content"
	propThreadsContent   = "Threads Content"
	propContentGenerated = "Content Generated"
	propSocialPosted     = "Social Posted"
)

// Settings configures the tracker service.
type Settings struct {
	// DatabaseID id of the tracker database; empty degrades every
	// operation to a warning and an empty result
	DatabaseID string
}

// Tracker reads and mutates tracker items.
type Tracker struct {
	logger     glog.Logger
	cli        *notion.Client
	databaseID string
}

// New creates a tracker service. A missing database id is a warning, not
// a startup failure: the blog keeps serving, the tracker degrades.
func New(logger glog.Logger, cli *notion.Client, settings Settings) *Tracker {
	if settings.DatabaseID == "" {
		logger.Warn("tracker database id not configured, tracker operations degraded")
	}

	return &Tracker{
		logger:     logger,
		cli:        cli,
		databaseID: settings.DatabaseID,
	}
}

// ItemFromPage maps one fully-resolved record to a TrackerItem, coercing
// unknown status and priority values to their defaults.
func ItemFromPage(page *notion.Page) *model.TrackerItem {
	title, ok := page.Text(propTitle)
	if !ok || title == "" {
		title = "Untitled"
	}

	tags := page.Strings(propTags)
	if tags == nil {
		tags = []string{}
	}

	generated, _ := page.Checkbox(propContentGenerated)
	posted, _ := page.Checkbox(propSocialPosted)

	xContent, _ := page.Text(propXContent)
	linkedInContent, _ := page.Text(propLinkedInContent)
	threadsContent, _ := page.Text(propThreadsContent)
	tasks, _ := page.Text(propTasks)

	return &model.TrackerItem{
		ID:               page.ID,
		Title:            title,
		Status:           model.ParseStatus(page.SelectName(propStatus)),
		Progress:         int(page.Number(propProgress)),
		DueDate:          page.DateStart(propDueDate),
		BlogPostID:       page.RelationID(propBlogPost),
		Tags:             tags,
		Priority:         model.ParsePriority(page.SelectName(propPriority)),
		Tasks:            tasks,
		XContent:         xContent,
		LinkedInContent:  linkedInContent,
		ThreadsContent:   threadsContent,
		ContentGenerated: generated,
		SocialPosted:     posted,
		CreatedAt:        page.CreatedTime,
		UpdatedAt:        page.LastEditedTime,
	}
}

// Create creates a tracker item. Title is required; status, progress and
// priority are always written with their defaults, the remaining fields
// only when supplied; create never writes a field to "unset".
func (s *Tracker) Create(ctx context.Context, params dto.CreateParams) (*model.TrackerItem, error) {
	if s.databaseID == "" {
		return nil, errors.New("tracker database id not configured")
	}
	if params.Title == "" {
		return nil, errors.New("title is required")
	}

	status := params.Status
	if status == "" {
		status = model.StatusResearch
	}

	priority := params.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	props := notion.PropertyValues{}
	props.SetTitle(propTitle, params.Title)
	props.SetSelect(propStatus, string(status))
	props.SetNumber(propProgress, float64(params.Progress))
	props.SetSelect(propPriority, string(priority))

	if params.DueDate != "" {
		props.SetDate(propDueDate, params.DueDate)
	}
	if len(params.Tags) > 0 {
		props.SetMultiSelect(propTags, params.Tags)
	}
	if params.Tasks != "" {
		props.SetRichText(propTasks, params.Tasks)
	}
	if params.BlogPostID != "" {
		props.SetRelation(propBlogPost, params.BlogPostID)
	}

	page, err := s.cli.CreatePage(ctx, s.databaseID, props)
	if err != nil {
		return nil, errors.Wrap(err, "create tracker item")
	}
	if !page.Full() {
		return nil, nil
	}

	return ItemFromPage(page), nil
}

// Update applies a partial update: only non-nil params reach the wire,
// everything else keeps its remote value.
func (s *Tracker) Update(ctx context.Context, id string, params dto.UpdateParams) (*model.TrackerItem, error) {
	props := notion.PropertyValues{}

	if params.Title != nil {
		props.SetTitle(propTitle, *params.Title)
	}
	if params.Status != nil {
		props.SetSelect(propStatus, string(*params.Status))
	}
	if params.Progress != nil {
		props.SetNumber(propProgress, float64(*params.Progress))
	}
	if params.Priority != nil {
		props.SetSelect(propPriority, string(*params.Priority))
	}
	if params.DueDate != nil {
		if *params.DueDate == "" {
			props.ClearDate(propDueDate)
		} else {
			props.SetDate(propDueDate, *params.DueDate)
		}
	}
	if params.Tags != nil {
		props.SetMultiSelect(propTags, *params.Tags)
	}
	if params.Tasks != nil {
		props.SetRichText(propTasks, *params.Tasks)
	}
	if params.BlogPostID != nil {
		if *params.BlogPostID == "" {
			props.ClearRelation(propBlogPost)
		} else {
			props.SetRelation(propBlogPost, *params.BlogPostID)
		}
	}
	if params.XContent != nil {
		props.SetRichText(propXContent, *params.XContent)
	}
	if params.LinkedInContent != nil {
		props.SetRichText(propLinkedInContent, *params.LinkedInContent)
	}
	if params.ThreadsContent != nil {
		props.SetRichText(propThreadsContent, *params.ThreadsContent)
	}
	if params.ContentGenerated != nil {
		props.SetCheckbox(propContentGenerated, *params.ContentGenerated)
	}
	if params.SocialPosted != nil {
		props.SetCheckbox(propSocialPosted, *params.SocialPosted)
	}

	page, err := s.cli.UpdatePage(ctx, id, props)
	if err != nil {
		return nil, errors.Wrapf(err, "update tracker item `%s`", id)
	}
	if !page.Full() {
		return nil, nil
	}

	return ItemFromPage(page), nil
}

// Load fetches one tracker item by id.
func (s *Tracker) Load(ctx context.Context, id string) (*model.TrackerItem, error) {
	page, err := s.cli.RetrievePage(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "load tracker item `%s`", id)
	}
	if !page.Full() {
		return nil, nil
	}

	return ItemFromPage(page), nil
}

// LoadAll returns every tracker item, due date ascending. Degrades to an
// empty result when the tracker database is not configured.
func (s *Tracker) LoadAll(ctx context.Context) ([]*model.TrackerItem, error) {
	return s.query(ctx, notion.QueryRequest{
		Sorts: []notion.Sort{
			{Property: propDueDate, Direction: notion.DirectionAscending},
		},
	})
}

// LoadByStatus returns items in the given workflow state, due date
// ascending.
func (s *Tracker) LoadByStatus(ctx context.Context, status model.Status) ([]*model.TrackerItem, error) {
	return s.query(ctx, notion.QueryRequest{
		Filter: notion.FilterSelectEquals(propStatus, string(status)),
		Sorts: []notion.Sort{
			{Property: propDueDate, Direction: notion.DirectionAscending},
		},
	})
}

// LoadNeedingSocialContent returns published items whose social copy has
// not been generated yet.
func (s *Tracker) LoadNeedingSocialContent(ctx context.Context) ([]*model.TrackerItem, error) {
	return s.query(ctx, notion.QueryRequest{
		Filter: notion.FilterAnd(
			notion.FilterSelectEquals(propStatus, string(model.StatusPublished)),
			notion.FilterCheckboxEquals(propContentGenerated, false),
		),
	})
}

// UpdateSocialContent stores the three drafted social posts and marks the
// item's content as generated.
func (s *Tracker) UpdateSocialContent(ctx context.Context,
	id, xContent, linkedInContent, threadsContent string) (*model.TrackerItem, error) {
	generated := true
	return s.Update(ctx, id, dto.UpdateParams{
		XContent:         &xContent,
		LinkedInContent:  &linkedInContent,
		ThreadsContent:   &threadsContent,
		ContentGenerated: &generated,
	})
}

// LinkToBlogPost sets the item's blog post relation.
func (s *Tracker) LinkToBlogPost(ctx context.Context, id, blogPostID string) (*model.TrackerItem, error) {
	return s.Update(ctx, id, dto.UpdateParams{
		BlogPostID: &blogPostID,
	})
}

func (s *Tracker) query(ctx context.Context, req notion.QueryRequest) ([]*model.TrackerItem, error) {
	if s.databaseID == "" {
		s.logger.Warn("tracker database id not configured")
		return []*model.TrackerItem{}, nil
	}

	pages, err := s.cli.QueryDatabase(ctx, s.databaseID, req)
	if err != nil {
		s.logger.Error("query tracker items", zap.Error(err))
		return []*model.TrackerItem{}, errors.Wrap(err, "query tracker items")
	}

	items := make([]*model.TrackerItem, 0, len(pages))
	for i := range pages {
		if !pages[i].Full() {
			continue
		}

		items = append(items, ItemFromPage(&pages[i]))
	}

	return items, nil
}
