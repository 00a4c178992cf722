// Package controller renders the public site.
package controller

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/Laisky/notion-blog/internal/web/blog/model"
	"github.com/Laisky/notion-blog/internal/web/blog/service"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// DefaultRevalidate how long a rendered page is served before the next
// request triggers a re-fetch.
const DefaultRevalidate = 60 * time.Second

// Settings configures the site controller.
type Settings struct {
	// SiteTitle title shown on every page
	SiteTitle string
	// SiteURL base url for canonical links, no trailing slash
	SiteURL string
	// Revalidate cache lifetime of a rendered page
	Revalidate time.Duration
}

// cachedPage is one rendered page. Not-found outcomes are cached too,
// so an unknown slug cannot hammer the backend.
type cachedPage struct {
	body       []byte
	status     int
	renderedAt time.Time
}

// Site serves the listing and detail pages from a revalidating cache of
// rendered HTML. A page older than the revalidation window is re-rendered
// on the next request; concurrent requests during that window may get the
// stale copy or the fresh one.
type Site struct {
	logger   glog.Logger
	blog     *service.Blog
	settings Settings

	mu    sync.Mutex
	home  *cachedPage
	posts map[string]*cachedPage
}

// New creates a site controller.
func New(logger glog.Logger, blog *service.Blog, settings Settings) *Site {
	if settings.SiteTitle == "" {
		settings.SiteTitle = "Blog"
	}
	if settings.Revalidate <= 0 {
		settings.Revalidate = DefaultRevalidate
	}

	return &Site{
		logger:   logger,
		blog:     blog,
		settings: settings,
		posts:    map[string]*cachedPage{},
	}
}

// RegisterRoutes mounts the site routes on the engine.
func (s *Site) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/", s.Home)
	engine.GET("/posts/:slug", s.PostDetail)
}

// Warm pre-renders the home page and every published post so the first
// visitor after startup does not pay the fetch latency.
func (s *Site) Warm(ctx context.Context) error {
	page := s.renderHome(ctx)
	s.mu.Lock()
	s.home = page
	s.mu.Unlock()

	slugs, err := s.blog.LoadPostSlugs(ctx)
	if err != nil {
		return errors.Wrap(err, "enumerate post slugs")
	}

	for _, slug := range slugs {
		page := s.renderPost(ctx, slug)
		s.mu.Lock()
		s.posts[slug] = page
		s.mu.Unlock()
	}

	s.logger.Info("warmed page cache", zap.Int("posts", len(slugs)))
	return nil
}

// Home serves the listing page.
func (s *Site) Home(ctx *gin.Context) {
	s.mu.Lock()
	page := s.home
	s.mu.Unlock()

	if page == nil || time.Since(page.renderedAt) > s.settings.Revalidate {
		page = s.renderHome(ctx.Request.Context())
		s.mu.Lock()
		s.home = page
		s.mu.Unlock()
	}

	ctx.Data(page.status, "text/html; charset=utf-8", page.body)
}

// PostDetail serves one post page.
func (s *Site) PostDetail(ctx *gin.Context) {
	slug := ctx.Param("slug")

	s.mu.Lock()
	page := s.posts[slug]
	s.mu.Unlock()

	if page == nil || time.Since(page.renderedAt) > s.settings.Revalidate {
		page = s.renderPost(ctx.Request.Context(), slug)
		s.mu.Lock()
		s.posts[slug] = page
		s.mu.Unlock()
	}

	ctx.Data(page.status, "text/html; charset=utf-8", page.body)
}

type homeData struct {
	SiteTitle string
	SiteURL   string
	Degraded  bool
	Posts     []*model.Post
}

// renderHome renders the listing. A backend failure still yields a page:
// the empty state plus a degraded banner.
func (s *Site) renderHome(ctx context.Context) *cachedPage {
	posts, err := s.blog.LoadPosts(ctx)
	if err != nil {
		s.logger.Warn("render home degraded", zap.Error(err))
	}

	data := homeData{
		SiteTitle: s.settings.SiteTitle,
		SiteURL:   s.settings.SiteURL,
		Degraded:  err != nil,
		Posts:     posts,
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "home", data); err != nil {
		s.logger.Error("execute home template", zap.Error(err))
		return &cachedPage{
			body:       []byte("internal error"),
			status:     http.StatusInternalServerError,
			renderedAt: time.Now(),
		}
	}

	return &cachedPage{
		body:       buf.Bytes(),
		status:     http.StatusOK,
		renderedAt: time.Now(),
	}
}

type postData struct {
	SiteTitle string
	SiteURL   string
	Post      *model.Post
	Content   template.HTML
}

// renderPost renders one post, or the not-found page when the slug is
// unknown or the backend failed.
func (s *Site) renderPost(ctx context.Context, slug string) *cachedPage {
	post, err := s.blog.LoadPostBySlug(ctx, slug)
	if err != nil {
		s.logger.Warn("render post degraded",
			zap.Error(err), zap.String("slug", slug))
	}
	if post == nil {
		return s.renderNotFound()
	}

	data := postData{
		SiteTitle: s.settings.SiteTitle,
		SiteURL:   s.settings.SiteURL,
		Post:      &post.Post,
		Content:   template.HTML(service.RenderMarkdown([]byte(post.Content))),
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "post", data); err != nil {
		s.logger.Error("execute post template",
			zap.Error(err), zap.String("slug", slug))
		return &cachedPage{
			body:       []byte("internal error"),
			status:     http.StatusInternalServerError,
			renderedAt: time.Now(),
		}
	}

	return &cachedPage{
		body:       buf.Bytes(),
		status:     http.StatusOK,
		renderedAt: time.Now(),
	}
}

func (s *Site) renderNotFound() *cachedPage {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "notfound", homeData{
		SiteTitle: s.settings.SiteTitle,
	}); err != nil {
		s.logger.Error("execute notfound template", zap.Error(err))
		buf.Reset()
		buf.WriteString("not found")
	}

	return &cachedPage{
		body:       buf.Bytes(),
		status:     http.StatusNotFound,
		renderedAt: time.Now(),
	}
}
