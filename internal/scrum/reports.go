package scrum

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jiragate/jiragate/internal/jira"
)

// Reporter builds the markdown scrum reports (sprint status, team
// workload, standup) from adapter data.
type Reporter struct {
	client jira.Client
	now    func() time.Time
}

// NewReporter returns a reporter over the given adapter.
func NewReporter(client jira.Client) *Reporter {
	return &Reporter{client: client, now: time.Now}
}

// parseSprintDate parses the tracker's sprint date strings, tolerating both
// date-only and full timestamp forms.
func parseSprintDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, jiraTimeLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

const jiraTimeLayout = "2006-01-02T15:04:05.000-0700"

// SprintStatus renders a progress report for the given sprint, or for the
// board's active sprint when sprintID is zero.
func (r *Reporter) SprintStatus(ctx context.Context, sprintID int, boardID int) (string, error) {
	var sprint *jira.Sprint
	var err error
	if sprintID != 0 {
		sprint, err = r.client.GetSprint(ctx, sprintID)
	} else {
		sprint, err = r.client.GetActiveSprint(ctx, boardID)
	}
	if err != nil {
		return "", err
	}

	issues, err := r.client.SprintIssues(ctx, sprint.ID)
	if err != nil {
		return "", err
	}

	var totalPoints, completedPoints float64
	inProgress, blocked := 0, 0
	for _, issue := range issues {
		totalPoints += issue.Fields.StoryPoints
		switch issue.Fields.Status {
		case jira.StatusDone:
			completedPoints += issue.Fields.StoryPoints
		case jira.StatusInProgress:
			inProgress++
		case jira.StatusBlocked:
			blocked++
		}
	}
	completion := 0.0
	if totalPoints > 0 {
		completion = completedPoints / totalPoints * 100
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Sprint Status: %s\n\n", sprint.Name)
	fmt.Fprintf(&b, "**State**: %s\n", sprint.State)
	if sprint.Goal != "" {
		fmt.Fprintf(&b, "**Goal**: %s\n", sprint.Goal)
	}
	if sprint.StartDate != "" && sprint.EndDate != "" {
		fmt.Fprintf(&b, "**Duration**: %s to %s\n", sprint.StartDate, sprint.EndDate)
		if end, ok := parseSprintDate(sprint.EndDate); ok {
			remaining := int(end.Sub(r.now()).Hours() / 24)
			if remaining < 0 {
				remaining = 0
			}
			fmt.Fprintf(&b, "**Days Remaining**: %d\n", remaining)
		}
	}
	b.WriteString("\n### Progress\n")
	fmt.Fprintf(&b, "- **Completion**: %.1f%% (%.0f/%.0f points)\n", completion, completedPoints, totalPoints)
	fmt.Fprintf(&b, "- **Total Issues**: %d\n", len(issues))
	fmt.Fprintf(&b, "- **In Progress**: %d\n", inProgress)
	if blocked > 0 {
		fmt.Fprintf(&b, "- **Blocked**: %d\n", blocked)
	}
	return b.String(), nil
}

// TeamWorkload renders per-member open workload. A fetch failure for one
// member is reported inline and never fails the whole report.
func (r *Reporter) TeamWorkload(ctx context.Context, members []string) (string, error) {
	var b strings.Builder
	b.WriteString("## Team Workload\n\n")
	for _, member := range members {
		jql := fmt.Sprintf("assignee = %q AND statusCategory != Done", member)
		page, err := r.client.Search(ctx, jql, jira.SearchOptions{})
		if err != nil {
			fmt.Fprintf(&b, "### %s\n- **Error**: could not fetch assigned issues (%s)\n\n", member, err)
			continue
		}
		var points float64
		active := 0
		for _, issue := range page.Issues {
			points += issue.Fields.StoryPoints
			if issue.Fields.Status == jira.StatusInProgress {
				active++
			}
		}
		fmt.Fprintf(&b, "### %s\n", member)
		fmt.Fprintf(&b, "- **Open Points**: %.0f\n", points)
		fmt.Fprintf(&b, "- **Active Issues**: %d\n", active)
		fmt.Fprintf(&b, "- **Total Issues**: %d\n\n", len(page.Issues))
	}
	return b.String(), nil
}

// Standup renders the daily standup report for a board's active sprint:
// done yesterday, in progress, blocked, plus sprint metrics.
func (r *Reporter) Standup(ctx context.Context, boardID int) (string, error) {
	sprint, err := r.client.GetActiveSprint(ctx, boardID)
	if err != nil {
		return "", err
	}
	issues, err := r.client.SprintIssues(ctx, sprint.ID)
	if err != nil {
		return "", err
	}

	today := r.now()
	yesterday := today.AddDate(0, 0, -1)
	var doneYesterday, inProgress, blocked []jira.Issue
	var totalPoints, completedPoints float64
	for _, issue := range issues {
		totalPoints += issue.Fields.StoryPoints
		switch issue.Fields.Status {
		case jira.StatusDone:
			completedPoints += issue.Fields.StoryPoints
			if sameDay(issue.Fields.Updated, yesterday) {
				doneYesterday = append(doneYesterday, issue)
			}
		case jira.StatusInProgress:
			inProgress = append(inProgress, issue)
		case jira.StatusBlocked:
			blocked = append(blocked, issue)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Daily Standup - %s\n\n", today.Format("2006-01-02"))
	fmt.Fprintf(&b, "**Sprint**: %s\n\n", sprint.Name)
	writeSection(&b, "Completed Yesterday", doneYesterday)
	writeSection(&b, "In Progress", inProgress)
	writeSection(&b, "Blocked", blocked)

	b.WriteString("### Sprint Metrics\n")
	completion := 0.0
	if totalPoints > 0 {
		completion = completedPoints / totalPoints * 100
	}
	fmt.Fprintf(&b, "- **Progress**: %.0f/%.0f points (%.1f%%)\n", completedPoints, totalPoints, completion)
	fmt.Fprintf(&b, "- **Active Issues**: %d\n", len(inProgress))
	if len(blocked) > 0 {
		fmt.Fprintf(&b, "- **Blocked Issues**: %d\n", len(blocked))
	}
	return b.String(), nil
}

func writeSection(b *strings.Builder, title string, issues []jira.Issue) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n", title)
	for _, issue := range issues {
		assignee := issue.Fields.Assignee
		if assignee == "" {
			assignee = "Unassigned"
		}
		points := ""
		if issue.Fields.StoryPoints > 0 {
			points = fmt.Sprintf(" [%.0fpts]", issue.Fields.StoryPoints)
		}
		fmt.Fprintf(b, "- **%s**: %s (%s)%s\n", issue.Key, issue.Fields.Summary, assignee, points)
	}
	b.WriteString("\n")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
