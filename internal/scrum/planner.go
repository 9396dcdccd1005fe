// Package scrum holds the sprint planning and reporting logic built on top
// of the backend adapter: capacity packing for new sprints, sprint progress
// metrics, team workload summaries and standup reports. Everything here is
// pure given the adapter's outputs.
package scrum

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jiragate/jiragate/internal/jira"
)

// IssueRef identifies one selected backlog issue in a plan.
type IssueRef struct {
	Key         string  `json:"key"`
	Summary     string  `json:"summary"`
	Priority    string  `json:"priority,omitempty"`
	StoryPoints float64 `json:"storyPoints"`
}

// BacklogPlan is the outcome of capacity-packing a backlog into a sprint.
// Built fresh per call and never cached: sprint state changes too quickly
// for memoization to be safe.
type BacklogPlan struct {
	SelectedIssues    []IssueRef   `json:"selectedIssues"`
	TotalPoints       float64      `json:"totalPoints"`
	RemainingCapacity float64      `json:"remainingCapacity"`
	Skipped           int          `json:"skippedIssues,omitempty"`
	Sprint            *jira.Sprint `json:"sprint,omitempty"`
}

// Planner plans sprints against a backend adapter.
type Planner struct {
	client jira.Client
}

// NewPlanner returns a planner over the given adapter.
func NewPlanner(client jira.Client) *Planner {
	return &Planner{client: client}
}

// backlogJQL is the query that defines the backlog: issues of the project
// not yet assigned to a sprint and not done, in priority order. Stable
// backlog order breaks capacity ties, so the ordering clause matters.
func backlogJQL(projectKey string) string {
	return fmt.Sprintf("project = %s AND sprint is EMPTY AND statusCategory != Done ORDER BY priority DESC, created ASC", projectKey)
}

// Pack selects backlog issues into a sprint of the given capacity using
// first-fit in backlog order: an issue that does not fit is skipped and
// packing continues with the next one. Issues without an estimate are
// skipped and counted. Input order is preserved in the selection.
func Pack(backlog []jira.Issue, capacity float64) BacklogPlan {
	plan := BacklogPlan{SelectedIssues: []IssueRef{}, RemainingCapacity: capacity}
	for _, issue := range backlog {
		points := issue.Fields.StoryPoints
		if points <= 0 {
			plan.Skipped++
			continue
		}
		if plan.TotalPoints+points > capacity {
			plan.Skipped++
			continue
		}
		plan.SelectedIssues = append(plan.SelectedIssues, IssueRef{
			Key:         issue.Key,
			Summary:     issue.Fields.Summary,
			Priority:    issue.Fields.Priority,
			StoryPoints: points,
		})
		plan.TotalPoints += points
	}
	plan.RemainingCapacity = capacity - plan.TotalPoints
	return plan
}

// PlanRequest parameterizes PlanSprint.
type PlanRequest struct {
	ProjectKey string
	BoardID    int // 0 means resolve from the project's boards
	Capacity   float64
	StartDate  string
	EndDate    string
	SprintName string
	DryRun     bool
}

// PlanSprint runs the planning chain: resolve the board, fetch the backlog,
// pack it to capacity, then (unless DryRun) create the sprint and move the
// selected issues into it. The steps are strictly sequential; each one
// needs the previous step's output.
func (p *Planner) PlanSprint(ctx context.Context, req PlanRequest) (*BacklogPlan, error) {
	boardID := req.BoardID
	if boardID == 0 {
		boards, err := p.client.ListBoards(ctx, req.ProjectKey)
		if err != nil {
			return nil, fmt.Errorf("listing boards for %s: %w", req.ProjectKey, err)
		}
		if len(boards) == 0 {
			return nil, fmt.Errorf("project %s has no boards: %w", req.ProjectKey, jira.ErrNotFound)
		}
		boardID = boards[0].ID
	}

	page, err := p.client.Search(ctx, backlogJQL(req.ProjectKey), jira.SearchOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetching backlog for %s: %w", req.ProjectKey, err)
	}

	plan := Pack(page.Issues, req.Capacity)
	log.Debug().
		Str("project", req.ProjectKey).
		Int("backlog", len(page.Issues)).
		Int("selected", len(plan.SelectedIssues)).
		Float64("points", plan.TotalPoints).
		Msg("Packed backlog into sprint plan")

	if req.DryRun {
		return &plan, nil
	}

	name := req.SprintName
	if name == "" {
		name = fmt.Sprintf("%s Sprint %s", req.ProjectKey, req.StartDate)
	}
	sprint, err := p.client.CreateSprint(ctx, jira.SprintSpec{
		BoardID:   boardID,
		Name:      name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("creating sprint on board %d: %w", boardID, err)
	}
	plan.Sprint = sprint

	if len(plan.SelectedIssues) > 0 {
		keys := make([]string, len(plan.SelectedIssues))
		for i, ref := range plan.SelectedIssues {
			keys[i] = ref.Key
		}
		if err := p.client.MoveIssuesToSprint(ctx, sprint.ID, keys); err != nil {
			return nil, fmt.Errorf("moving issues into sprint %d: %w", sprint.ID, err)
		}
	}
	return &plan, nil
}
