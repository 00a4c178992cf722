package social

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	blogModel "github.com/Laisky/notion-blog/internal/web/blog/model"
	blogSvc "github.com/Laisky/notion-blog/internal/web/blog/service"
	trackerModel "github.com/Laisky/notion-blog/internal/web/tracker/model"
	trackerSvc "github.com/Laisky/notion-blog/internal/web/tracker/service"
)

// Workflow drives one interactive run of the social-copy pipeline: pick a
// tracker item needing copy, fetch the matching post, draft the copy, and
// write it back. Every step is a single awaited round trip; any failure
// ends the run and a new invocation starts over.
type Workflow struct {
	logger    glog.Logger
	blog      *blogSvc.Blog
	tracker   *trackerSvc.Tracker
	generator Generator
	in        *bufio.Scanner
	out       io.Writer
}

// NewWorkflow creates a workflow reading the interactive selection from in
// and printing to out.
func NewWorkflow(logger glog.Logger,
	blog *blogSvc.Blog, tracker *trackerSvc.Tracker,
	generator Generator, in io.Reader, out io.Writer) *Workflow {
	return &Workflow{
		logger:    logger,
		blog:      blog,
		tracker:   tracker,
		generator: generator,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// Run executes one pass of the pipeline. Soft conditions (nothing to do,
// user quits, no matching post) print a message and return nil; only
// backend failures surface as errors.
func (w *Workflow) Run(ctx context.Context) error {
	fmt.Fprintln(w.out, "Social Content Generator")
	fmt.Fprintln(w.out, strings.Repeat("=", 50))

	posts, err := w.blog.LoadPosts(ctx)
	if err != nil {
		return errors.Wrap(err, "load published posts")
	}
	if len(posts) == 0 {
		fmt.Fprintln(w.out, "No published blog posts found. Publish a post first.")
		return nil
	}
	fmt.Fprintf(w.out, "Found %d published post(s)\n", len(posts))

	items, err := w.tracker.LoadAll(ctx)
	if err != nil {
		return errors.Wrap(err, "load tracker items")
	}

	needing, err := w.tracker.LoadNeedingSocialContent(ctx)
	if err != nil {
		return errors.Wrap(err, "load items needing social content")
	}

	fmt.Fprintf(w.out, "Tracker: %d item(s), %d needing social content\n",
		len(items), len(needing))
	w.reportUntracked(posts, items)

	if len(needing) == 0 {
		fmt.Fprintln(w.out, "All published posts have social content generated.")
		return nil
	}

	item, ok := w.pickItem(needing)
	if !ok {
		return nil
	}

	post, err := MatchPost(item, posts)
	if err != nil {
		fmt.Fprintf(w.out, "Could not match %q to a blog post: %v\n", item.Title, err)
		return nil
	}

	fmt.Fprintf(w.out, "Fetching content of %q...\n", post.Title)
	full, err := w.blog.LoadPostBySlug(ctx, post.Slug)
	if err != nil {
		return errors.Wrapf(err, "fetch post `%s`", post.Slug)
	}
	if full == nil {
		fmt.Fprintf(w.out, "No content found at slug %q.\n", post.Slug)
		return nil
	}

	content, err := w.generator.Generate(ctx, PromptInput{
		Title:       full.Title,
		Description: full.Description,
		Tags:        full.Tags,
		Content:     full.Content,
	})
	if err != nil {
		return errors.Wrap(err, "draft social content")
	}

	if _, err = w.tracker.UpdateSocialContent(ctx,
		item.ID, content.X, content.LinkedIn, content.Threads); err != nil {
		return errors.Wrap(err, "save social content")
	}

	// keep the tracker link authoritative for the next run
	if item.BlogPostID == "" {
		if _, err = w.tracker.LinkToBlogPost(ctx, item.ID, post.ID); err != nil {
			w.logger.Warn("link tracker item to blog post", zap.Error(err))
		}
	}

	fmt.Fprintf(w.out, "Social content saved for %q.\n", item.Title)
	fmt.Fprintln(w.out, "Review it in the tracker and mark 'Social Posted' once published.")
	return nil
}

// reportUntracked lists published posts with no tracker item.
func (w *Workflow) reportUntracked(posts []*blogModel.Post, items []*trackerModel.TrackerItem) {
	var untracked []string
	for _, post := range posts {
		matched := false
		for _, item := range items {
			if item.BlogPostID == post.ID || item.Title == post.Title {
				matched = true
				break
			}
		}
		if !matched {
			untracked = append(untracked, post.Title)
		}
	}

	if len(untracked) == 0 {
		return
	}

	fmt.Fprintln(w.out, "Posts without tracker items:")
	for i, title := range untracked {
		fmt.Fprintf(w.out, "  %d. %q\n", i+1, title)
	}
}

// pickItem prompts for a numeric selection or 'q' to quit.
func (w *Workflow) pickItem(needing []*trackerModel.TrackerItem) (*trackerModel.TrackerItem, bool) {
	fmt.Fprintln(w.out, "Posts needing social content:")
	for i, item := range needing {
		fmt.Fprintf(w.out, "%d. %q (status %s, progress %d%%)\n",
			i+1, item.Title, item.Status, item.Progress)
		if item.DueDate != "" {
			fmt.Fprintf(w.out, "   due %s\n", item.DueDate)
		}
	}

	fmt.Fprintf(w.out, "Which post to generate social content for? (1-%d, or 'q' to quit): ",
		len(needing))
	if !w.in.Scan() {
		return nil, false
	}

	choice := strings.TrimSpace(w.in.Text())
	if strings.EqualFold(choice, "q") {
		fmt.Fprintln(w.out, "Goodbye!")
		return nil, false
	}

	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(needing) {
		fmt.Fprintln(w.out, "Invalid choice.")
		return nil, false
	}

	return needing[n-1], true
}

// MatchPost resolves the blog post a tracker item refers to. The blog post
// relation wins when set; exact title equality is only a fallback, and an
// ambiguous title (several posts with the same title) is an error rather
// than a silent first pick.
func MatchPost(item *trackerModel.TrackerItem, posts []*blogModel.Post) (*blogModel.Post, error) {
	if item.BlogPostID != "" {
		for _, post := range posts {
			if post.ID == item.BlogPostID {
				return post, nil
			}
		}

		return nil, errors.Errorf("linked blog post `%s` is not published", item.BlogPostID)
	}

	var matched *blogModel.Post
	for _, post := range posts {
		if post.Title != item.Title {
			continue
		}

		if matched != nil {
			return nil, errors.Errorf("title %q matches multiple posts", item.Title)
		}

		matched = post
	}

	if matched == nil {
		return nil, errors.Errorf("no published post titled %q", item.Title)
	}

	return matched, nil
}
