package scrum

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiragate/jiragate/internal/jira"
)

func sprintIssue(key, status, assignee string, points float64, updated time.Time) jira.Issue {
	return jira.Issue{
		Key: key,
		Fields: jira.IssueFields{
			Summary:     "Issue " + key,
			Status:      status,
			Assignee:    assignee,
			StoryPoints: points,
			Updated:     updated,
		},
	}
}

func activeSprintFake(t *testing.T, issues []jira.Issue) *jira.Fake {
	t.Helper()
	fake := jira.NewFake()
	fake.Sprints[5] = &jira.Sprint{
		ID:        5,
		Name:      "Sprint 5",
		State:     "active",
		BoardID:   7,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-14",
	}
	for i := range issues {
		fake.IssuesByKey[issues[i].Key] = &issues[i]
		fake.SprintItems[5] = append(fake.SprintItems[5], issues[i].Key)
	}
	return fake
}

func TestSprintStatus(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	issues := []jira.Issue{
		sprintIssue("PROJ-1", jira.StatusDone, "dana", 3, now),
		sprintIssue("PROJ-2", jira.StatusInProgress, "omar", 2, now),
		sprintIssue("PROJ-3", jira.StatusBlocked, "", 4, now),
	}
	fake := activeSprintFake(t, issues)

	reporter := NewReporter(fake)
	reporter.now = func() time.Time { return now }

	t.Run("ActiveSprintByBoard", func(t *testing.T) {
		report, err := reporter.SprintStatus(context.Background(), 0, 7)
		require.NoError(t, err)
		assert.Contains(t, report, "Sprint Status: Sprint 5")
		assert.Contains(t, report, "33.3% (3/9 points)")
		assert.Contains(t, report, "**In Progress**: 1")
		assert.Contains(t, report, "**Blocked**: 1")
		assert.Contains(t, report, "**Days Remaining**: 3")
	})

	t.Run("ExplicitSprintID", func(t *testing.T) {
		report, err := reporter.SprintStatus(context.Background(), 5, 0)
		require.NoError(t, err)
		assert.Contains(t, report, "Sprint 5")
	})

	t.Run("NoActiveSprint", func(t *testing.T) {
		empty := jira.NewFake()
		r := NewReporter(empty)
		_, err := r.SprintStatus(context.Background(), 0, 7)
		assert.ErrorIs(t, err, jira.ErrNotFound)
	})
}

func TestTeamWorkload(t *testing.T) {
	fake := jira.NewFake()
	fake.IssuesByKey["PROJ-1"] = &jira.Issue{Key: "PROJ-1", Fields: jira.IssueFields{Status: jira.StatusInProgress, StoryPoints: 5}}

	reporter := NewReporter(fake)
	report, err := reporter.TeamWorkload(context.Background(), []string{"dana"})
	require.NoError(t, err)
	assert.Contains(t, report, "### dana")
	assert.Contains(t, report, "**Open Points**: 5")
	assert.Contains(t, report, "**Active Issues**: 1")
}

func TestTeamWorkloadMemberErrorIsInline(t *testing.T) {
	fake := jira.NewFake()
	fake.FailWith["Search"] = jira.ErrUpstream

	reporter := NewReporter(fake)
	report, err := reporter.TeamWorkload(context.Background(), []string{"dana", "omar"})
	require.NoError(t, err, "per-member failures must not fail the report")
	assert.Contains(t, report, "### dana")
	assert.Contains(t, report, "**Error**")
	assert.Contains(t, report, "### omar")
}

func TestStandup(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	issues := []jira.Issue{
		sprintIssue("PROJ-1", jira.StatusDone, "dana", 3, yesterday),
		sprintIssue("PROJ-2", jira.StatusDone, "omar", 1, now.AddDate(0, 0, -5)),
		sprintIssue("PROJ-3", jira.StatusInProgress, "omar", 2, now),
		sprintIssue("PROJ-4", jira.StatusBlocked, "", 4, now),
	}
	fake := activeSprintFake(t, issues)

	reporter := NewReporter(fake)
	reporter.now = func() time.Time { return now }

	report, err := reporter.Standup(context.Background(), 7)
	require.NoError(t, err)

	assert.Contains(t, report, "Daily Standup - 2024-01-10")
	assert.Contains(t, report, "### Completed Yesterday")
	assert.Contains(t, report, "PROJ-1")
	assert.NotContains(t, report, "PROJ-2**: Issue PROJ-2 (omar)", "older completions are not 'yesterday'")
	assert.Contains(t, report, "### In Progress")
	assert.Contains(t, report, "PROJ-3")
	assert.Contains(t, report, "### Blocked")
	assert.Contains(t, report, "(Unassigned)")
	assert.Contains(t, report, "4/10 points")
}
