package controller

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/notion-blog/internal/web/blog/service"
	"github.com/Laisky/notion-blog/library/db/notion"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestSite(t *testing.T, settings Settings, handler http.Handler) (*Site, *gin.Engine) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cli, err := notion.NewClient(glog.Shared, notion.DialInfo{
		Token:   "secret",
		APIBase: server.URL,
	})
	require.NoError(t, err)

	site := New(glog.Shared, service.New(glog.Shared, cli,
		service.Settings{DatabaseID: "posts-db"}), settings)

	engine := gin.New()
	site.RegisterRoutes(engine)
	return site, engine
}

func pageJSON(id, title, slug string) string {
	return fmt.Sprintf(`{
		"object":"page","id":"%s","created_time":"2024-06-01T08:00:00.000Z",
		"properties":{
			"Title":{"type":"title","title":[{"plain_text":"%s"}]},
			"Slug":{"type":"rich_text","rich_text":[{"plain_text":"%s"}]},
			"Date":{"type":"date","date":{"start":"2024-06-02"}},
			"Published":{"type":"checkbox","checkbox":true}
		}}`, id, title, slug)
}

func TestHomeListsPosts(t *testing.T) {
	t.Parallel()

	_, engine := newTestSite(t, Settings{SiteTitle: "My Blog"},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"results":[%s],"has_more":false}`,
				pageJSON("p1", "Going concurrent", "going-concurrent"))
		}))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "My Blog")
	require.Contains(t, rec.Body.String(), `href="/posts/going-concurrent"`)
	require.Contains(t, rec.Body.String(), "Going concurrent")
	require.NotContains(t, rec.Body.String(), "No posts yet")
}

// TestHomeEmptyState verifies a healthy backend with zero published posts
// renders the explicit empty state, without the degraded banner.
func TestHomeEmptyState(t *testing.T) {
	t.Parallel()

	_, engine := newTestSite(t, Settings{},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"results":[],"has_more":false}`)
		}))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "No posts yet")
	require.NotContains(t, rec.Body.String(), "could not be loaded")
}

// TestHomeDegradedBanner verifies a backend failure still yields the home
// page, with the degraded banner on top of the empty state.
func TestHomeDegradedBanner(t *testing.T) {
	t.Parallel()

	_, engine := newTestSite(t, Settings{},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "could not be loaded")
	require.Contains(t, rec.Body.String(), "No posts yet")
}

func TestPostDetail(t *testing.T) {
	t.Parallel()

	_, engine := newTestSite(t, Settings{SiteURL: "https://blog.example.com"},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/v1/databases/posts-db/query":
				fmt.Fprintf(w, `{"results":[%s],"has_more":false}`,
					pageJSON("p1", "Going concurrent", "going-concurrent"))
			case "/v1/blocks/p1/children":
				fmt.Fprint(w, `{"results":[
					{"id":"b1","type":"heading_2","heading_2":{"rich_text":[{"plain_text":"Channels"}]}},
					{"id":"b2","type":"paragraph","paragraph":{"rich_text":[{"plain_text":"body text"}]}}
				],"has_more":false}`)
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/posts/going-concurrent", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Going concurrent")
	require.Contains(t, rec.Body.String(), "<h2")
	require.Contains(t, rec.Body.String(), "Channels")
	require.Contains(t, rec.Body.String(), "body text")
	require.Contains(t, rec.Body.String(),
		`href="https://blog.example.com/posts/going-concurrent"`)
}

func TestPostDetailNotFound(t *testing.T) {
	t.Parallel()

	_, engine := newTestSite(t, Settings{},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"results":[],"has_more":false}`)
		}))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/posts/missing-post", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "404")
}

// TestHomeCacheRevalidation verifies the listing is served from cache
// within the revalidation window and re-fetched after it elapses.
func TestHomeCacheRevalidation(t *testing.T) {
	t.Parallel()

	var queries atomic.Int64
	_, engine := newTestSite(t, Settings{Revalidate: 50 * time.Millisecond},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			queries.Add(1)
			fmt.Fprint(w, `{"results":[],"has_more":false}`)
		}))

	for range 3 {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	require.EqualValues(t, 1, queries.Load(), "fresh cache serves without a fetch")

	time.Sleep(60 * time.Millisecond)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 2, queries.Load(), "stale cache triggers a re-fetch")
}

// TestWarm verifies warming pre-renders the home page and every post so
// subsequent requests hit the cache.
func TestWarm(t *testing.T) {
	t.Parallel()

	var queries atomic.Int64
	site, engine := newTestSite(t, Settings{},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/v1/databases/posts-db/query":
				queries.Add(1)
				fmt.Fprintf(w, `{"results":[%s],"has_more":false}`,
					pageJSON("p1", "Going concurrent", "going-concurrent"))
			case "/v1/blocks/p1/children":
				fmt.Fprint(w, `{"results":[],"has_more":false}`)
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))

	require.NoError(t, site.Warm(context.Background()))
	warmed := queries.Load()

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/posts/going-concurrent", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, warmed, queries.Load(), "warmed pages serve without a fetch")
}
