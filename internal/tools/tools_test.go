package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jiragate/jiragate/internal/config"
	"github.com/jiragate/jiragate/internal/dispatch"
	"github.com/jiragate/jiragate/internal/jira"
)

func newDispatcher(t *testing.T, deps Deps) *dispatch.Dispatcher {
	t.Helper()
	d := dispatch.NewDispatcher()
	require.NoError(t, Register(d, deps))
	return d
}

func TestRegisterCatalogOrder(t *testing.T) {
	d := newDispatcher(t, Deps{Client: jira.NewFake()})

	var names []string
	for _, desc := range d.Tools() {
		names = append(names, desc.Name)
	}
	assert.Equal(t, []string{
		"create_issue",
		"get_issue",
		"update_issue",
		"search_issues",
		"get_project",
		"list_boards",
		"create_sprint",
		"move_issues_to_sprint",
		"transition_issue",
		"plan_sprint",
		"get_sprint_status",
		"get_team_workload",
		"generate_standup_report",
	}, names)
}

func TestCreateIssue(t *testing.T) {
	client := new(MockClient)
	client.On("CreateIssue", mock.Anything, mock.MatchedBy(func(f jira.CreateIssueFields) bool {
		return f.ProjectKey == "PROJ" && f.Summary == "Fix login bug" && f.IssueType == "Bug"
	})).Return(&jira.Issue{ID: "1001", Key: "PROJ-42"}, nil).Once()

	d := newDispatcher(t, Deps{Client: client})
	result := d.Dispatch(context.Background(), dispatch.Call{
		Name: "create_issue",
		Arguments: map[string]any{
			"project":   "PROJ",
			"summary":   "Fix login bug",
			"issueType": "Bug",
		},
	})

	require.True(t, result.OK, result.Message)
	assert.Equal(t, dispatch.ContentTypeJSON, result.ContentType)
	assert.Contains(t, result.Body, "PROJ-42")
	client.AssertExpectations(t)
}

func TestCreateIssueResolvesAlias(t *testing.T) {
	client := new(MockClient)
	client.On("CreateIssue", mock.Anything, mock.MatchedBy(func(f jira.CreateIssueFields) bool {
		return f.ProjectKey == "PROJ"
	})).Return(&jira.Issue{ID: "1002", Key: "PROJ-43"}, nil).Once()

	links := &config.LinksConfig{Projects: []config.ProjectLink{
		{Name: "backend", Key: "PROJ", DefaultIssueType: "Task"},
	}}
	d := newDispatcher(t, Deps{Client: client, Links: links})
	result := d.Dispatch(context.Background(), dispatch.Call{
		Name: "create_issue",
		Arguments: map[string]any{
			"project":   "backend",
			"summary":   "Alias resolution",
			"issueType": "Task",
		},
	})

	require.True(t, result.OK, result.Message)
	client.AssertExpectations(t)
}

func TestCreateIssueEnumViolationNeverReachesBackend(t *testing.T) {
	client := new(MockClient)
	d := newDispatcher(t, Deps{Client: client})

	result := d.Dispatch(context.Background(), dispatch.Call{
		Name: "create_issue",
		Arguments: map[string]any{
			"project":   "PROJ",
			"summary":   "Bad priority",
			"issueType": "Bug",
			"priority":  "Urgent",
		},
	})

	require.False(t, result.OK)
	assert.Contains(t, result.Message, "priority")
	client.AssertNotCalled(t, "CreateIssue", mock.Anything, mock.Anything)
}

func TestCreateIssueMissingRequiredNeverReachesBackend(t *testing.T) {
	client := new(MockClient)
	d := newDispatcher(t, Deps{Client: client})

	result := d.Dispatch(context.Background(), dispatch.Call{
		Name:      "create_issue",
		Arguments: map[string]any{"project": "PROJ", "summary": "No type"},
	})

	require.False(t, result.OK)
	assert.Contains(t, result.Message, "issueType")
	client.AssertNotCalled(t, "CreateIssue", mock.Anything, mock.Anything)
}

func TestGetIssueNotFound(t *testing.T) {
	client := new(MockClient)
	client.On("GetIssue", mock.Anything, "PROJ-999", []string(nil)).
		Return(nil, fmt.Errorf("%w: issue PROJ-999", jira.ErrNotFound)).Once()

	d := newDispatcher(t, Deps{Client: client})
	result := d.Dispatch(context.Background(), dispatch.Call{
		Name:      "get_issue",
		Arguments: map[string]any{"issueIdOrKey": "PROJ-999"},
	})

	require.False(t, result.OK)
	assert.Contains(t, result.Message, "PROJ-999")
	client.AssertNumberOfCalls(t, "GetIssue", 1)
}

func TestUpdateIssueEnvelope(t *testing.T) {
	fake := jira.NewFake()
	fake.IssuesByKey["PROJ-7"] = &jira.Issue{Key: "PROJ-7", Fields: jira.IssueFields{Summary: "Old"}}

	d := newDispatcher(t, Deps{Client: fake})
	result := d.Dispatch(context.Background(), dispatch.Call{
		Name: "update_issue",
		Arguments: map[string]any{
			"issueIdOrKey": "PROJ-7",
			"summary":      "New summary",
		},
	})

	require.True(t, result.OK, result.Message)
	assert.JSONEq(t, `{"key":"PROJ-7","updated":true}`, result.Body)
	assert.Equal(t, "New summary", fake.IssuesByKey["PROJ-7"].Fields.Summary)
}

func TestSearchIssuesPassesOptions(t *testing.T) {
	client := new(MockClient)
	client.On("Search", mock.Anything, "project = PROJ", jira.SearchOptions{MaxResults: 5}).
		Return(&jira.SearchPage{Total: 0}, nil).Once()

	d := newDispatcher(t, Deps{Client: client})
	result := d.Dispatch(context.Background(), dispatch.Call{
		Name: "search_issues",
		Arguments: map[string]any{
			"jql":        "project = PROJ",
			"maxResults": float64(5),
		},
	})

	require.True(t, result.OK, result.Message)
	client.AssertExpectations(t)
}

func TestGetProjectIsCached(t *testing.T) {
	fake := jira.NewFake()
	fake.Projects["PROJ"] = &jira.Project{ID: "10000", Key: "PROJ", Name: "Project"}

	d := newDispatcher(t, Deps{Client: fake})
	call := dispatch.Call{Name: "get_project", Arguments: map[string]any{"projectKey": "PROJ"}}

	first := d.Dispatch(context.Background(), call)
	second := d.Dispatch(context.Background(), call)

	require.True(t, first.OK, first.Message)
	require.True(t, second.OK, second.Message)
	assert.Equal(t, first.Body, second.Body)
	assert.Equal(t, 1, fake.CallCount("GetProject"))
}

func TestTransitionIssue(t *testing.T) {
	fake := jira.NewFake()
	fake.IssuesByKey["PROJ-5"] = &jira.Issue{Key: "PROJ-5", Fields: jira.IssueFields{Status: jira.StatusToDo}}
	fake.Transitions["PROJ-5"] = []string{"In Progress", "Done"}

	d := newDispatcher(t, Deps{Client: fake})
	result := d.Dispatch(context.Background(), dispatch.Call{
		Name: "transition_issue",
		Arguments: map[string]any{
			"issueIdOrKey":   "PROJ-5",
			"transitionName": "in progress",
		},
	})

	require.True(t, result.OK, result.Message)
	assert.Equal(t, "In Progress", fake.IssuesByKey["PROJ-5"].Fields.Status)
}

func TestPlanSprintDispatch(t *testing.T) {
	fake := jira.NewFake()
	fake.Boards["PROJ"] = []jira.Board{{ID: 7, Name: "PROJ board", Type: "scrum"}}
	fake.Backlog = []jira.Issue{
		{Key: "PROJ-1", Fields: jira.IssueFields{Summary: "A", Priority: jira.PriorityHigh, StoryPoints: 3}},
		{Key: "PROJ-2", Fields: jira.IssueFields{Summary: "B", Priority: jira.PriorityMedium, StoryPoints: 2}},
		{Key: "PROJ-3", Fields: jira.IssueFields{Summary: "C", Priority: jira.PriorityLow, StoryPoints: 4}},
	}

	d := newDispatcher(t, Deps{Client: fake})
	result := d.Dispatch(context.Background(), dispatch.Call{
		Name: "plan_sprint",
		Arguments: map[string]any{
			"projectKey":   "PROJ",
			"teamCapacity": float64(5),
			"startDate":    "2026-01-05",
			"endDate":      "2026-01-19",
			"sprintName":   "Sprint 12",
		},
	})

	require.True(t, result.OK, result.Message)

	var plan struct {
		SelectedIssues []struct {
			Key string `json:"key"`
		} `json:"selectedIssues"`
		TotalPoints       float64 `json:"totalPoints"`
		RemainingCapacity float64 `json:"remainingCapacity"`
		SkippedIssues     int     `json:"skippedIssues"`
		Sprint            *struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"sprint"`
	}
	require.NoError(t, json.Unmarshal([]byte(result.Body), &plan))

	require.Len(t, plan.SelectedIssues, 2)
	assert.Equal(t, "PROJ-1", plan.SelectedIssues[0].Key)
	assert.Equal(t, "PROJ-2", plan.SelectedIssues[1].Key)
	assert.Equal(t, 5.0, plan.TotalPoints)
	assert.Equal(t, 0.0, plan.RemainingCapacity)
	assert.Equal(t, 1, plan.SkippedIssues)
	require.NotNil(t, plan.Sprint)
	assert.Equal(t, "Sprint 12", plan.Sprint.Name)
	assert.Equal(t, []string{"PROJ-1", "PROJ-2"}, fake.SprintItems[plan.Sprint.ID])
}

func TestSprintStatusRequiresSprintOrBoard(t *testing.T) {
	d := newDispatcher(t, Deps{Client: jira.NewFake()})
	result := d.Dispatch(context.Background(), dispatch.Call{
		Name:      "get_sprint_status",
		Arguments: map[string]any{},
	})

	require.False(t, result.OK)
	assert.Contains(t, result.Message, "boardId")
}

func TestStandupUsesDefaultBoard(t *testing.T) {
	fake := jira.NewFake()
	fake.Sprints[3] = &jira.Sprint{ID: 3, Name: "Sprint 3", State: "active", BoardID: 7}

	d := newDispatcher(t, Deps{Client: fake, DefaultBoardID: 7})
	result := d.Dispatch(context.Background(), dispatch.Call{
		Name:      "generate_standup_report",
		Arguments: map[string]any{},
	})

	require.True(t, result.OK, result.Message)
	assert.Equal(t, dispatch.ContentTypeText, result.ContentType)
	assert.Contains(t, result.Body, "Sprint 3")
}
