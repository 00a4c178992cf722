// Package notion is a minimal client for the Notion REST API, covering the
// database query, page create/update/retrieve, and block children
// endpoints used by this service.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	glog "github.com/Laisky/go-utils/v6/log"
)

const (
	defaultAPIBase = "https://api.notion.com"
	// apiVersion pinned Notion-Version header; property payload shapes
	// depend on it.
	apiVersion     = "2022-06-28"
	defaultTimeout = 20 * time.Second
	maxPageSize    = 100
)

// DialInfo defines the Notion API connection information.
type DialInfo struct {
	// Token integration secret, sent as a bearer token
	Token string
	// APIBase override of the API endpoint, mainly for tests
	APIBase string
}

// Client talks to the Notion REST API.
type Client struct {
	logger  glog.Logger
	apiBase string
	token   string
	httpcli *http.Client
}

// NewClient creates a Notion API client.
func NewClient(logger glog.Logger, dialInfo DialInfo) (*Client, error) {
	if dialInfo.Token == "" {
		return nil, errors.New("notion token is required")
	}

	apiBase := dialInfo.APIBase
	if apiBase == "" {
		apiBase = defaultAPIBase
	}

	httpcli, err := gutils.NewHTTPClient(
		gutils.WithHTTPClientTimeout(defaultTimeout),
	)
	if err != nil {
		return nil, errors.Wrap(err, "new http client")
	}

	return &Client{
		logger:  logger,
		apiBase: apiBase,
		token:   dialInfo.Token,
		httpcli: httpcli,
	}, nil
}

// Sort directions accepted by database queries.
const (
	DirectionAscending  = "ascending"
	DirectionDescending = "descending"
)

// Sort one sort instruction of a database query.
type Sort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

// QueryRequest body of a database query.
type QueryRequest struct {
	Filter      map[string]any `json:"filter,omitempty"`
	Sorts       []Sort         `json:"sorts,omitempty"`
	StartCursor string         `json:"start_cursor,omitempty"`
	PageSize    int            `json:"page_size,omitempty"`
}

// FilterCheckboxEquals filter matching a checkbox property's value.
func FilterCheckboxEquals(property string, equals bool) map[string]any {
	return map[string]any{
		"property": property,
		"checkbox": map[string]any{"equals": equals},
	}
}

// FilterRichTextEquals filter matching a rich_text property exactly.
func FilterRichTextEquals(property, value string) map[string]any {
	return map[string]any{
		"property":  property,
		"rich_text": map[string]any{"equals": value},
	}
}

// FilterSelectEquals filter matching a select property's option name.
func FilterSelectEquals(property, value string) map[string]any {
	return map[string]any{
		"property": property,
		"select":   map[string]any{"equals": value},
	}
}

// FilterMultiSelectContains filter matching pages whose multi_select
// contains the given option.
func FilterMultiSelectContains(property, value string) map[string]any {
	return map[string]any{
		"property":     property,
		"multi_select": map[string]any{"contains": value},
	}
}

// FilterAnd combines filters conjunctively.
func FilterAnd(filters ...map[string]any) map[string]any {
	conds := make([]any, 0, len(filters))
	for _, f := range filters {
		conds = append(conds, f)
	}

	return map[string]any{"and": conds}
}

type queryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// QueryDatabase runs a filtered, sorted query against a database and
// follows pagination until all matching pages are collected.
func (c *Client) QueryDatabase(ctx context.Context,
	databaseID string, req QueryRequest) (pages []Page, err error) {
	if databaseID == "" {
		return nil, errors.New("database id is required")
	}

	req.PageSize = maxPageSize
	for {
		var resp queryResponse
		if err = c.do(ctx, http.MethodPost,
			fmt.Sprintf("/v1/databases/%s/query", databaseID),
			req, &resp); err != nil {
			return nil, errors.Wrapf(err, "query database `%s`", databaseID)
		}

		pages = append(pages, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			return pages, nil
		}

		req.StartCursor = resp.NextCursor
	}
}

// CreatePage creates a page in a database with the given properties.
func (c *Client) CreatePage(ctx context.Context,
	databaseID string, props PropertyValues) (*Page, error) {
	if databaseID == "" {
		return nil, errors.New("database id is required")
	}

	body := map[string]any{
		"parent":     map[string]any{"database_id": databaseID},
		"properties": props,
	}

	page := new(Page)
	if err := c.do(ctx, http.MethodPost, "/v1/pages", body, page); err != nil {
		return nil, errors.Wrapf(err, "create page in database `%s`", databaseID)
	}

	return page, nil
}

// UpdatePage applies a partial property update to a page. Property names
// absent from props keep their remote value.
func (c *Client) UpdatePage(ctx context.Context,
	pageID string, props PropertyValues) (*Page, error) {
	body := map[string]any{"properties": props}

	page := new(Page)
	if err := c.do(ctx, http.MethodPatch,
		fmt.Sprintf("/v1/pages/%s", pageID), body, page); err != nil {
		return nil, errors.Wrapf(err, "update page `%s`", pageID)
	}

	return page, nil
}

// RetrievePage fetches a single page by id.
func (c *Client) RetrievePage(ctx context.Context, pageID string) (*Page, error) {
	page := new(Page)
	if err := c.do(ctx, http.MethodGet,
		fmt.Sprintf("/v1/pages/%s", pageID), nil, page); err != nil {
		return nil, errors.Wrapf(err, "retrieve page `%s`", pageID)
	}

	return page, nil
}

type blockChildrenResponse struct {
	Results    []Block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor"`
}

// BlockChildren fetches the direct child blocks of a block (or page),
// following pagination.
func (c *Client) BlockChildren(ctx context.Context, blockID string) (blocks []Block, err error) {
	cursor := ""
	for {
		path := fmt.Sprintf("/v1/blocks/%s/children?page_size=%d", blockID, maxPageSize)
		if cursor != "" {
			path += "&start_cursor=" + cursor
		}

		var resp blockChildrenResponse
		if err = c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, errors.Wrapf(err, "fetch children of block `%s`", blockID)
		}

		blocks = append(blocks, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			return blocks, nil
		}

		cursor = resp.NextCursor
	}
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// do sends one API request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request body")
		}

		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiBase+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpcli.Do(req)
	if err != nil {
		return errors.Wrapf(err, "do request `%s`", req.URL.String())
	}
	defer gutils.CloseWithLog(resp.Body, c.logger)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := new(apiError)
		if decodeErr := json.NewDecoder(resp.Body).Decode(apiErr); decodeErr == nil &&
			apiErr.Message != "" {
			return errors.Errorf("notion api status %d: %s", resp.StatusCode, apiErr.Message)
		}

		return errors.Errorf("notion api status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}

	return nil
}
