//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiragate/jiragate/internal/dispatch"
)

func seedBacklog(t *testing.T, d *dispatch.Dispatcher, points ...float64) []string {
	t.Helper()
	ctx := context.Background()
	var keys []string
	for _, p := range points {
		result := d.Dispatch(ctx, dispatch.Call{
			Name: "create_issue",
			Arguments: map[string]any{
				"project":     "PROJ",
				"summary":     "Backlog item",
				"issueType":   "Story",
				"storyPoints": p,
			},
		})
		var issue wireIssue
		unmarshalBody(t, result, &issue)
		keys = append(keys, issue.Key)
	}
	return keys
}

type planBody struct {
	SelectedIssues []struct {
		Key         string  `json:"key"`
		StoryPoints float64 `json:"storyPoints"`
	} `json:"selectedIssues"`
	TotalPoints       float64 `json:"totalPoints"`
	RemainingCapacity float64 `json:"remainingCapacity"`
	SkippedIssues     int     `json:"skippedIssues"`
	Sprint            *struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"sprint"`
}

// TestSprintPlanningWorkflow seeds a backlog through the gateway, plans a
// sprint against it, and verifies both the packing decision and the
// mutations on the tracker side.
func TestSprintPlanningWorkflow(t *testing.T) {
	ts := newTrackerServer(t)
	d := newGateway(t, ts)
	ctx := context.Background()

	keys := seedBacklog(t, d, 3, 2, 4)

	t.Run("DryRunMutatesNothing", func(t *testing.T) {
		result := d.Dispatch(ctx, dispatch.Call{
			Name: "plan_sprint",
			Arguments: map[string]any{
				"projectKey":   "PROJ",
				"teamCapacity": float64(5),
				"startDate":    "2026-01-05",
				"endDate":      "2026-01-19",
				"dryRun":       true,
			},
		})
		var plan planBody
		unmarshalBody(t, result, &plan)

		require.Len(t, plan.SelectedIssues, 2)
		assert.Equal(t, keys[0], plan.SelectedIssues[0].Key)
		assert.Equal(t, keys[1], plan.SelectedIssues[1].Key)
		assert.Equal(t, 5.0, plan.TotalPoints)
		assert.Equal(t, 0.0, plan.RemainingCapacity)
		assert.Equal(t, 1, plan.SkippedIssues)
		assert.Nil(t, plan.Sprint, "A dry run must not create a sprint")
		assert.Empty(t, ts.sprints)
	})

	var sprintID int
	t.Run("PlanCreatesSprintAndMovesIssues", func(t *testing.T) {
		result := d.Dispatch(ctx, dispatch.Call{
			Name: "plan_sprint",
			Arguments: map[string]any{
				"projectKey":   "PROJ",
				"teamCapacity": float64(5),
				"startDate":    "2026-01-05",
				"endDate":      "2026-01-19",
				"sprintName":   "Sprint 12",
			},
		})
		var plan planBody
		unmarshalBody(t, result, &plan)

		require.NotNil(t, plan.Sprint)
		assert.Equal(t, "Sprint 12", plan.Sprint.Name)
		assert.Equal(t, []string{keys[0], keys[1]}, ts.sprintItems[plan.Sprint.ID])
		sprintID = plan.Sprint.ID
	})

	t.Run("PlannedIssuesLeaveTheBacklog", func(t *testing.T) {
		result := d.Dispatch(ctx, dispatch.Call{
			Name: "plan_sprint",
			Arguments: map[string]any{
				"projectKey":   "PROJ",
				"teamCapacity": float64(10),
				"startDate":    "2026-01-19",
				"endDate":      "2026-02-02",
				"dryRun":       true,
			},
		})
		var plan planBody
		unmarshalBody(t, result, &plan)

		require.Len(t, plan.SelectedIssues, 1)
		assert.Equal(t, keys[2], plan.SelectedIssues[0].Key)
	})

	t.Run("SprintStatusReport", func(t *testing.T) {
		result := d.Dispatch(ctx, dispatch.Call{
			Name:      "get_sprint_status",
			Arguments: map[string]any{"sprintId": float64(sprintID)},
		})
		require.True(t, result.OK, result.Message)
		assert.Equal(t, dispatch.ContentTypeText, result.ContentType)
		assert.Contains(t, result.Body, "Sprint 12")
		assert.Contains(t, result.Body, "0.0% (0/5 points)")
	})
}
