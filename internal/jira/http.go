package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// HTTPClient implements Client against the tracker's REST API (core v2 and
// agile 1.0), authenticated with basic credentials (account email + API
// token).
type HTTPClient struct {
	BaseURL    *url.URL
	HTTP       *http.Client
	email      string
	token      string
	maxResults int
}

var _ Client = (*HTTPClient)(nil)

// Options configure an HTTPClient beyond the required credentials.
type Options struct {
	Timeout       time.Duration
	MaxResults    int
	StoryPointsID string
}

// NewHTTPClient builds a tracker client for the given base URL and basic
// credentials. The timeout guards each request; the core above performs no
// retries, so a single failure surfaces immediately.
func NewHTTPClient(baseURL, email, token string, opts Options) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing base URL: %w", ErrUpstream, err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 50
	}
	SetStoryPointsField(opts.StoryPointsID)
	return &HTTPClient{
		BaseURL:    u,
		HTTP:       &http.Client{Timeout: opts.Timeout},
		email:      email,
		token:      token,
		maxResults: opts.MaxResults,
	}, nil
}

// doJSON performs one request against the tracker and decodes the response
// into out (when out is non-nil). Non-2xx statuses are mapped onto the
// adapter's error taxonomy by classify.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, body any, out any, classify func(status int, detail string) error) error {
	var reqBody io.Reader
	var rawBody []byte
	if body != nil {
		var err error
		rawBody, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: marshaling request body: %w", ErrUpstream, err)
		}
		reqBody = bytes.NewReader(rawBody)
	}

	// JoinPath keeps any context path the tracker is mounted under,
	// e.g. a base URL of https://host/jira.
	endpoint := c.BaseURL.JoinPath(path)
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reqBody)
	if err != nil {
		return fmt.Errorf("%w: building request: %w", ErrUpstream, err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug().Str("method", method).Str("url", endpoint.String()).Msg("Sending tracker request")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBytes, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return fmt.Errorf("%w: reading response body: %w", ErrUpstream, readErr)
	}
	log.Debug().Int("status_code", resp.StatusCode).Str("url", endpoint.String()).Msg("Received tracker response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := errorDetail(respBytes)
		if classify != nil {
			if err := classify(resp.StatusCode, detail); err != nil {
				return err
			}
		}
		return defaultClassify(resp.StatusCode, detail)
	}

	if out != nil && len(respBytes) > 0 {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("%w: decoding response body: %w", ErrUpstream, err)
		}
	}
	return nil
}

// errorDetail pulls the tracker's errorMessages out of an error payload.
func errorDetail(body []byte) string {
	var payload struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	parts := payload.ErrorMessages
	for field, msg := range payload.Errors {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

func defaultClassify(status int, detail string) error {
	var base error
	switch {
	case status == http.StatusNotFound:
		base = ErrNotFound
	case status == http.StatusConflict:
		base = ErrConflict
	case status == http.StatusBadRequest:
		base = ErrValidation
	default:
		base = ErrUpstream
	}
	if detail == "" {
		return fmt.Errorf("%w (status %d)", base, status)
	}
	return fmt.Errorf("%w (status %d): %s", base, status, detail)
}

// Search implements Client.
func (c *HTTPClient) Search(ctx context.Context, jql string, opts SearchOptions) (*SearchPage, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = c.maxResults
	}
	reqBody := map[string]any{
		"jql":        jql,
		"startAt":    opts.StartAt,
		"maxResults": opts.MaxResults,
	}
	if len(opts.Fields) > 0 {
		reqBody["fields"] = opts.Fields
	}
	var page SearchPage
	err := c.doJSON(ctx, http.MethodPost, "/rest/api/2/search", nil, reqBody, &page, func(status int, detail string) error {
		if status == http.StatusBadRequest {
			if detail == "" {
				detail = jql
			}
			return fmt.Errorf("%w: %s", ErrQuerySyntax, detail)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// GetIssue implements Client.
func (c *HTTPClient) GetIssue(ctx context.Context, idOrKey string, fields []string) (*Issue, error) {
	query := url.Values{}
	if len(fields) > 0 {
		query.Set("fields", strings.Join(fields, ","))
	}
	var issue Issue
	err := c.doJSON(ctx, http.MethodGet, "/rest/api/2/issue/"+idOrKey, query, nil, &issue, func(status int, detail string) error {
		if status == http.StatusNotFound {
			return fmt.Errorf("%w: issue %s", ErrNotFound, idOrKey)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// createPayload shapes CreateIssueFields into the tracker's nested field
// objects.
func createPayload(f CreateIssueFields) map[string]any {
	fields := map[string]any{
		"project":   map[string]string{"key": f.ProjectKey},
		"summary":   f.Summary,
		"issuetype": map[string]string{"name": f.IssueType},
	}
	if f.Description != "" {
		fields["description"] = f.Description
	}
	if f.Priority != "" {
		fields["priority"] = map[string]string{"name": f.Priority}
	}
	if f.Assignee != "" {
		fields["assignee"] = map[string]string{"name": f.Assignee}
	}
	if len(f.Labels) > 0 {
		fields["labels"] = f.Labels
	}
	if f.StoryPoints != nil {
		fields[storyPointsField] = *f.StoryPoints
	}
	if f.EpicLink != "" {
		fields["customfield_10014"] = f.EpicLink
	}
	return map[string]any{"fields": fields}
}

// CreateIssue implements Client.
func (c *HTTPClient) CreateIssue(ctx context.Context, fields CreateIssueFields) (*Issue, error) {
	var created Issue
	err := c.doJSON(ctx, http.MethodPost, "/rest/api/2/issue", nil, createPayload(fields), &created, nil)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateIssue implements Client. Only non-nil fields are sent, so the
// tracker leaves everything else untouched.
func (c *HTTPClient) UpdateIssue(ctx context.Context, idOrKey string, fields UpdateIssueFields) error {
	payload := map[string]any{}
	if fields.Summary != nil {
		payload["summary"] = *fields.Summary
	}
	if fields.Description != nil {
		payload["description"] = *fields.Description
	}
	if fields.Priority != nil {
		payload["priority"] = map[string]string{"name": *fields.Priority}
	}
	if fields.Assignee != nil {
		payload["assignee"] = map[string]string{"name": *fields.Assignee}
	}
	if fields.Labels != nil {
		payload["labels"] = *fields.Labels
	}
	if fields.StoryPoints != nil {
		payload[storyPointsField] = *fields.StoryPoints
	}
	return c.doJSON(ctx, http.MethodPut, "/rest/api/2/issue/"+idOrKey, nil, map[string]any{"fields": payload}, nil, func(status int, detail string) error {
		if status == http.StatusNotFound {
			return fmt.Errorf("%w: issue %s", ErrNotFound, idOrKey)
		}
		return nil
	})
}

// GetProject implements Client.
func (c *HTTPClient) GetProject(ctx context.Context, key string) (*Project, error) {
	var project Project
	err := c.doJSON(ctx, http.MethodGet, "/rest/api/2/project/"+key, nil, nil, &project, func(status int, detail string) error {
		if status == http.StatusNotFound {
			return fmt.Errorf("%w: project %s", ErrNotFound, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListBoards implements Client.
func (c *HTTPClient) ListBoards(ctx context.Context, projectKey string) ([]Board, error) {
	query := url.Values{"projectKeyOrId": {projectKey}}
	var page struct {
		Values []Board `json:"values"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/rest/agile/1.0/board", query, nil, &page, func(status int, detail string) error {
		if status == http.StatusNotFound {
			return fmt.Errorf("%w: project %s", ErrNotFound, projectKey)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page.Values, nil
}

// CreateSprint implements Client.
func (c *HTTPClient) CreateSprint(ctx context.Context, spec SprintSpec) (*Sprint, error) {
	body := map[string]any{
		"name":          spec.Name,
		"originBoardId": spec.BoardID,
	}
	if spec.StartDate != "" {
		body["startDate"] = spec.StartDate
	}
	if spec.EndDate != "" {
		body["endDate"] = spec.EndDate
	}
	if spec.Goal != "" {
		body["goal"] = spec.Goal
	}
	var sprint Sprint
	err := c.doJSON(ctx, http.MethodPost, "/rest/agile/1.0/sprint", nil, body, &sprint, nil)
	if err != nil {
		return nil, err
	}
	return &sprint, nil
}

// MoveIssuesToSprint implements Client.
func (c *HTTPClient) MoveIssuesToSprint(ctx context.Context, sprintID int, issueKeys []string) error {
	path := fmt.Sprintf("/rest/agile/1.0/sprint/%d/issue", sprintID)
	return c.doJSON(ctx, http.MethodPost, path, nil, map[string]any{"issues": issueKeys}, nil, func(status int, detail string) error {
		if status == http.StatusNotFound {
			return fmt.Errorf("%w: sprint %d", ErrNotFound, sprintID)
		}
		return nil
	})
}

// TransitionIssue implements Client. The tracker addresses transitions by
// id, so the name is resolved against the issue's currently available
// transitions first (case-insensitive).
func (c *HTTPClient) TransitionIssue(ctx context.Context, idOrKey string, transitionName string) error {
	var available struct {
		Transitions []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"transitions"`
	}
	path := "/rest/api/2/issue/" + idOrKey + "/transitions"
	err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &available, func(status int, detail string) error {
		if status == http.StatusNotFound {
			return fmt.Errorf("%w: issue %s", ErrNotFound, idOrKey)
		}
		return nil
	})
	if err != nil {
		return err
	}

	transitionID := ""
	for _, t := range available.Transitions {
		if strings.EqualFold(t.Name, transitionName) {
			transitionID = t.ID
			break
		}
	}
	if transitionID == "" {
		return fmt.Errorf("%w: transition %q on issue %s", ErrNotFound, transitionName, idOrKey)
	}

	body := map[string]any{"transition": map[string]string{"id": transitionID}}
	return c.doJSON(ctx, http.MethodPost, path, nil, body, nil, nil)
}

// GetSprint implements Client.
func (c *HTTPClient) GetSprint(ctx context.Context, sprintID int) (*Sprint, error) {
	var sprint Sprint
	path := "/rest/agile/1.0/sprint/" + strconv.Itoa(sprintID)
	err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &sprint, func(status int, detail string) error {
		if status == http.StatusNotFound {
			return fmt.Errorf("%w: sprint %d", ErrNotFound, sprintID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sprint, nil
}

// GetActiveSprint implements Client.
func (c *HTTPClient) GetActiveSprint(ctx context.Context, boardID int) (*Sprint, error) {
	query := url.Values{"state": {"active"}}
	var page struct {
		Values []Sprint `json:"values"`
	}
	path := fmt.Sprintf("/rest/agile/1.0/board/%d/sprint", boardID)
	err := c.doJSON(ctx, http.MethodGet, path, query, nil, &page, func(status int, detail string) error {
		if status == http.StatusNotFound {
			return fmt.Errorf("%w: board %d", ErrNotFound, boardID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(page.Values) == 0 {
		return nil, fmt.Errorf("%w: no active sprint on board %d", ErrNotFound, boardID)
	}
	return &page.Values[0], nil
}

// SprintIssues implements Client.
func (c *HTTPClient) SprintIssues(ctx context.Context, sprintID int) ([]Issue, error) {
	var page struct {
		Issues []Issue `json:"issues"`
	}
	path := fmt.Sprintf("/rest/agile/1.0/sprint/%d/issue", sprintID)
	err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &page, func(status int, detail string) error {
		if status == http.StatusNotFound {
			return fmt.Errorf("%w: sprint %d", ErrNotFound, sprintID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page.Issues, nil
}
