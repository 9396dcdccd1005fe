package tools

import (
	"context"

	"github.com/jiragate/jiragate/internal/dispatch"
	"github.com/jiragate/jiragate/internal/jira"
)

type createIssueRequest struct {
	Project     string   `json:"project"`
	Summary     string   `json:"summary"`
	IssueType   string   `json:"issueType"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Assignee    string   `json:"assignee"`
	Labels      []string `json:"labels"`
	StoryPoints *float64 `json:"storyPoints"`
	EpicLink    string   `json:"epicLink"`
}

func (c *catalog) createIssue(ctx context.Context, args map[string]any) (dispatch.Result, error) {
	var req createIssueRequest
	if err := decodeArgs(args, &req); err != nil {
		return dispatch.Result{}, err
	}

	projectKey, link := c.resolveProject(req.Project)
	issueType := req.IssueType
	if issueType == "" && link != nil {
		issueType = link.DefaultIssueType
	}

	created, err := c.client.CreateIssue(ctx, jira.CreateIssueFields{
		ProjectKey:  projectKey,
		Summary:     req.Summary,
		IssueType:   issueType,
		Description: req.Description,
		Priority:    req.Priority,
		Assignee:    req.Assignee,
		Labels:      req.Labels,
		StoryPoints: req.StoryPoints,
		EpicLink:    req.EpicLink,
	})
	if err != nil {
		return dispatch.Result{}, err
	}
	return okJSON(created)
}

type getIssueRequest struct {
	IssueIDOrKey string   `json:"issueIdOrKey"`
	Fields       []string `json:"fields"`
}

func (c *catalog) getIssue(ctx context.Context, args map[string]any) (dispatch.Result, error) {
	var req getIssueRequest
	if err := decodeArgs(args, &req); err != nil {
		return dispatch.Result{}, err
	}
	issue, err := c.client.GetIssue(ctx, req.IssueIDOrKey, req.Fields)
	if err != nil {
		return dispatch.Result{}, err
	}
	return okJSON(issue)
}

type updateIssueRequest struct {
	IssueIDOrKey string    `json:"issueIdOrKey"`
	Summary      *string   `json:"summary"`
	Description  *string   `json:"description"`
	Priority     *string   `json:"priority"`
	Assignee     *string   `json:"assignee"`
	Labels       *[]string `json:"labels"`
	StoryPoints  *float64  `json:"storyPoints"`
}

func (c *catalog) updateIssue(ctx context.Context, args map[string]any) (dispatch.Result, error) {
	var req updateIssueRequest
	if err := decodeArgs(args, &req); err != nil {
		return dispatch.Result{}, err
	}
	err := c.client.UpdateIssue(ctx, req.IssueIDOrKey, jira.UpdateIssueFields{
		Summary:     req.Summary,
		Description: req.Description,
		Priority:    req.Priority,
		Assignee:    req.Assignee,
		Labels:      req.Labels,
		StoryPoints: req.StoryPoints,
	})
	if err != nil {
		return dispatch.Result{}, err
	}
	return okJSON(map[string]any{"key": req.IssueIDOrKey, "updated": true})
}

type searchIssuesRequest struct {
	JQL        string   `json:"jql"`
	MaxResults int      `json:"maxResults"`
	StartAt    int      `json:"startAt"`
	Fields     []string `json:"fields"`
}

func (c *catalog) searchIssues(ctx context.Context, args map[string]any) (dispatch.Result, error) {
	var req searchIssuesRequest
	if err := decodeArgs(args, &req); err != nil {
		return dispatch.Result{}, err
	}
	page, err := c.client.Search(ctx, req.JQL, jira.SearchOptions{
		MaxResults: req.MaxResults,
		StartAt:    req.StartAt,
		Fields:     req.Fields,
	})
	if err != nil {
		return dispatch.Result{}, err
	}
	return okJSON(page)
}

type getProjectRequest struct {
	ProjectKey string `json:"projectKey"`
}

func (c *catalog) getProject(ctx context.Context, args map[string]any) (dispatch.Result, error) {
	var req getProjectRequest
	if err := decodeArgs(args, &req); err != nil {
		return dispatch.Result{}, err
	}
	key, _ := c.resolveProject(req.ProjectKey)
	project, err := c.projects.GetOrLoad(key, func() (*jira.Project, error) {
		return c.client.GetProject(ctx, key)
	})
	if err != nil {
		return dispatch.Result{}, err
	}
	return okJSON(project)
}

type listBoardsRequest struct {
	ProjectKey string `json:"projectKey"`
}

func (c *catalog) listBoards(ctx context.Context, args map[string]any) (dispatch.Result, error) {
	var req listBoardsRequest
	if err := decodeArgs(args, &req); err != nil {
		return dispatch.Result{}, err
	}
	key, _ := c.resolveProject(req.ProjectKey)
	boards, err := c.client.ListBoards(ctx, key)
	if err != nil {
		return dispatch.Result{}, err
	}
	return okJSON(map[string]any{"boards": boards})
}
