package tools

import (
	"context"
	"fmt"

	"github.com/jiragate/jiragate/internal/dispatch"
	"github.com/jiragate/jiragate/internal/jira"
	"github.com/jiragate/jiragate/internal/scrum"
)

type createSprintRequest struct {
	BoardID   int    `json:"boardId"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Goal      string `json:"goal"`
}

func (c *catalog) createSprint(ctx context.Context, args map[string]any) (dispatch.Result, error) {
	var req createSprintRequest
	if err := decodeArgs(args, &req); err != nil {
		return dispatch.Result{}, err
	}
	sprint, err := c.client.CreateSprint(ctx, jira.SprintSpec{
		BoardID:   req.BoardID,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Goal:      req.Goal,
	})
	if err != nil {
		return dispatch.Result{}, err
	}
	return okJSON(sprint)
}

type moveIssuesRequest struct {
	SprintID  int      `json:"sprintId"`
	IssueKeys []string `json:"issueKeys"`
}

func (c *catalog) moveIssuesToSprint(ctx context.Context, args map[string]any) (dispatch.Result, error) {
	var req moveIssuesRequest
	if err := decodeArgs(args, &req); err != nil {
		return dispatch.Result{}, err
	}
	if err := c.client.MoveIssuesToSprint(ctx, req.SprintID, req.IssueKeys); err != nil {
		return dispatch.Result{}, err
	}
	return okJSON(map[string]any{"sprintId": req.SprintID, "moved": len(req.IssueKeys)})
}

type transitionIssueRequest struct {
	IssueIDOrKey   string `json:"issueIdOrKey"`
	TransitionName string `json:"transitionName"`
}

func (c *catalog) transitionIssue(ctx context.Context, args map[string]any) (dispatch.Result, error) {
	var req transitionIssueRequest
	if err := decodeArgs(args, &req); err != nil {
		return dispatch.Result{}, err
	}
	if err := c.client.TransitionIssue(ctx, req.IssueIDOrKey, req.TransitionName); err != nil {
		return dispatch.Result{}, err
	}
	return okJSON(map[string]any{"key": req.IssueIDOrKey, "transition": req.TransitionName})
}

type planSprintRequest struct {
	ProjectKey   string  `json:"projectKey"`
	TeamCapacity float64 `json:"teamCapacity"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	SprintName   string  `json:"sprintName"`
	BoardID      int     `json:"boardId"`
	DryRun       bool    `json:"dryRun"`
}

func (c *catalog) planSprint(ctx context.Context, args map[string]any) (dispatch.Result, error) {
	var req planSprintRequest
	if err := decodeArgs(args, &req); err != nil {
		return dispatch.Result{}, err
	}
	key, link := c.resolveProject(req.ProjectKey)
	boardID := c.boardFor(req.BoardID, link)
	if boardID == 0 {
		boards, err := c.boards.GetOrLoad(key, func() ([]jira.Board, error) {
			return c.client.ListBoards(ctx, key)
		})
		if err != nil {
			return dispatch.Result{}, fmt.Errorf("listing boards for %s: %w", key, err)
		}
		if len(boards) > 0 {
			boardID = boards[0].ID
		}
	}
	plan, err := c.planner.PlanSprint(ctx, scrum.PlanRequest{
		ProjectKey: key,
		BoardID:    boardID,
		Capacity:   req.TeamCapacity,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		SprintName: req.SprintName,
		DryRun:     req.DryRun,
	})
	if err != nil {
		return dispatch.Result{}, err
	}
	return okJSON(plan)
}

type sprintStatusRequest struct {
	SprintID int `json:"sprintId"`
	BoardID  int `json:"boardId"`
}

func (c *catalog) sprintStatus(ctx context.Context, args map[string]any) (dispatch.Result, error) {
	var req sprintStatusRequest
	if err := decodeArgs(args, &req); err != nil {
		return dispatch.Result{}, err
	}
	boardID := c.boardFor(req.BoardID, nil)
	if req.SprintID == 0 && boardID == 0 {
		return dispatch.Result{}, fmt.Errorf("either sprintId or boardId is required (no default board configured)")
	}
	report, err := c.reporter.SprintStatus(ctx, req.SprintID, boardID)
	if err != nil {
		return dispatch.Result{}, err
	}
	return dispatch.OkText(report), nil
}

type teamWorkloadRequest struct {
	TeamMembers []string `json:"teamMembers"`
}

func (c *catalog) teamWorkload(ctx context.Context, args map[string]any) (dispatch.Result, error) {
	var req teamWorkloadRequest
	if err := decodeArgs(args, &req); err != nil {
		return dispatch.Result{}, err
	}
	report, err := c.reporter.TeamWorkload(ctx, req.TeamMembers)
	if err != nil {
		return dispatch.Result{}, err
	}
	return dispatch.OkText(report), nil
}

type standupRequest struct {
	BoardID int `json:"boardId"`
}

func (c *catalog) standupReport(ctx context.Context, args map[string]any) (dispatch.Result, error) {
	var req standupRequest
	if err := decodeArgs(args, &req); err != nil {
		return dispatch.Result{}, err
	}
	boardID := c.boardFor(req.BoardID, nil)
	if boardID == 0 {
		return dispatch.Result{}, fmt.Errorf("boardId is required (no default board configured)")
	}
	report, err := c.reporter.Standup(ctx, boardID)
	if err != nil {
		return dispatch.Result{}, err
	}
	return dispatch.OkText(report), nil
}
