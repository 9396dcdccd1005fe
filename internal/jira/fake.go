package jira

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Fake is an in-memory Client for tests. It records every call, serves
// issues, boards and sprints from maps, and can be primed with canned
// errors per operation.
type Fake struct {
	mu sync.Mutex

	IssuesByKey map[string]*Issue
	Projects    map[string]*Project
	Boards      map[string][]Board
	Sprints     map[int]*Sprint
	Backlog     []Issue
	SprintItems map[int][]string
	Transitions map[string][]string

	// FailWith, when set for an operation name, is returned verbatim by
	// that operation before anything else happens.
	FailWith map[string]error

	// Calls records operation names in invocation order.
	Calls []string

	nextIssueID  int
	nextSprintID int
}

var _ Client = (*Fake)(nil)

// NewFake returns an empty fake tracker.
func NewFake() *Fake {
	return &Fake{
		IssuesByKey:  make(map[string]*Issue),
		Projects:     make(map[string]*Project),
		Boards:       make(map[string][]Board),
		Sprints:      make(map[int]*Sprint),
		SprintItems:  make(map[int][]string),
		Transitions:  make(map[string][]string),
		FailWith:     make(map[string]error),
		nextIssueID:  1000,
		nextSprintID: 1,
	}
}

// CallCount reports how many times the named operation ran.
func (f *Fake) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *Fake) begin(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, op)
	return f.FailWith[op]
}

// Search implements Client. The fake does not interpret JQL: queries
// mentioning "sprint is EMPTY" serve the primed backlog in order, anything
// else serves all stored issues.
func (f *Fake) Search(ctx context.Context, jql string, opts SearchOptions) (*SearchPage, error) {
	if err := f.begin("Search"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var issues []Issue
	if strings.Contains(jql, "sprint is EMPTY") {
		issues = append(issues, f.Backlog...)
	} else {
		for _, issue := range f.IssuesByKey {
			issues = append(issues, *issue)
		}
	}
	if opts.MaxResults > 0 && len(issues) > opts.MaxResults {
		issues = issues[:opts.MaxResults]
	}
	return &SearchPage{Total: len(issues), MaxResults: opts.MaxResults, Issues: issues}, nil
}

// GetIssue implements Client.
func (f *Fake) GetIssue(ctx context.Context, idOrKey string, fields []string) (*Issue, error) {
	if err := f.begin("GetIssue"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.IssuesByKey[idOrKey]
	if !ok {
		return nil, fmt.Errorf("%w: issue %s", ErrNotFound, idOrKey)
	}
	copied := *issue
	return &copied, nil
}

// CreateIssue implements Client.
func (f *Fake) CreateIssue(ctx context.Context, fields CreateIssueFields) (*Issue, error) {
	if err := f.begin("CreateIssue"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Projects[fields.ProjectKey]; !ok && len(f.Projects) > 0 {
		return nil, fmt.Errorf("%w: project %s", ErrValidation, fields.ProjectKey)
	}
	f.nextIssueID++
	key := fmt.Sprintf("%s-%d", fields.ProjectKey, f.nextIssueID)
	issue := &Issue{
		ID:  fmt.Sprintf("%d", f.nextIssueID),
		Key: key,
		Fields: IssueFields{
			Summary:     fields.Summary,
			Description: fields.Description,
			IssueType:   fields.IssueType,
			Priority:    fields.Priority,
			Assignee:    fields.Assignee,
			Labels:      fields.Labels,
			Status:      StatusToDo,
		},
	}
	if fields.StoryPoints != nil {
		issue.Fields.StoryPoints = *fields.StoryPoints
	}
	f.IssuesByKey[key] = issue
	copied := *issue
	return &copied, nil
}

// UpdateIssue implements Client.
func (f *Fake) UpdateIssue(ctx context.Context, idOrKey string, fields UpdateIssueFields) error {
	if err := f.begin("UpdateIssue"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.IssuesByKey[idOrKey]
	if !ok {
		return fmt.Errorf("%w: issue %s", ErrNotFound, idOrKey)
	}
	if fields.Summary != nil {
		issue.Fields.Summary = *fields.Summary
	}
	if fields.Description != nil {
		issue.Fields.Description = *fields.Description
	}
	if fields.Priority != nil {
		issue.Fields.Priority = *fields.Priority
	}
	if fields.Assignee != nil {
		issue.Fields.Assignee = *fields.Assignee
	}
	if fields.Labels != nil {
		issue.Fields.Labels = *fields.Labels
	}
	if fields.StoryPoints != nil {
		issue.Fields.StoryPoints = *fields.StoryPoints
	}
	return nil
}

// GetProject implements Client.
func (f *Fake) GetProject(ctx context.Context, key string) (*Project, error) {
	if err := f.begin("GetProject"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	project, ok := f.Projects[key]
	if !ok {
		return nil, fmt.Errorf("%w: project %s", ErrNotFound, key)
	}
	copied := *project
	return &copied, nil
}

// ListBoards implements Client.
func (f *Fake) ListBoards(ctx context.Context, projectKey string) ([]Board, error) {
	if err := f.begin("ListBoards"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Board(nil), f.Boards[projectKey]...), nil
}

// CreateSprint implements Client.
func (f *Fake) CreateSprint(ctx context.Context, spec SprintSpec) (*Sprint, error) {
	if err := f.begin("CreateSprint"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextSprintID++
	sprint := &Sprint{
		ID:        f.nextSprintID,
		Name:      spec.Name,
		State:     "future",
		Goal:      spec.Goal,
		StartDate: spec.StartDate,
		EndDate:   spec.EndDate,
		BoardID:   spec.BoardID,
	}
	f.Sprints[sprint.ID] = sprint
	copied := *sprint
	return &copied, nil
}

// MoveIssuesToSprint implements Client.
func (f *Fake) MoveIssuesToSprint(ctx context.Context, sprintID int, issueKeys []string) error {
	if err := f.begin("MoveIssuesToSprint"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Sprints[sprintID]; !ok {
		return fmt.Errorf("%w: sprint %d", ErrNotFound, sprintID)
	}
	f.SprintItems[sprintID] = append(f.SprintItems[sprintID], issueKeys...)
	return nil
}

// TransitionIssue implements Client.
func (f *Fake) TransitionIssue(ctx context.Context, idOrKey string, transitionName string) error {
	if err := f.begin("TransitionIssue"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.IssuesByKey[idOrKey]
	if !ok {
		return fmt.Errorf("%w: issue %s", ErrNotFound, idOrKey)
	}
	for _, name := range f.Transitions[idOrKey] {
		if strings.EqualFold(name, transitionName) {
			issue.Fields.Status = name
			return nil
		}
	}
	return fmt.Errorf("%w: transition %q on issue %s", ErrNotFound, transitionName, idOrKey)
}

// GetSprint implements Client.
func (f *Fake) GetSprint(ctx context.Context, sprintID int) (*Sprint, error) {
	if err := f.begin("GetSprint"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	sprint, ok := f.Sprints[sprintID]
	if !ok {
		return nil, fmt.Errorf("%w: sprint %d", ErrNotFound, sprintID)
	}
	copied := *sprint
	return &copied, nil
}

// GetActiveSprint implements Client.
func (f *Fake) GetActiveSprint(ctx context.Context, boardID int) (*Sprint, error) {
	if err := f.begin("GetActiveSprint"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sprint := range f.Sprints {
		if sprint.BoardID == boardID && sprint.State == "active" {
			copied := *sprint
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("%w: no active sprint on board %d", ErrNotFound, boardID)
}

// SprintIssues implements Client.
func (f *Fake) SprintIssues(ctx context.Context, sprintID int) ([]Issue, error) {
	if err := f.begin("SprintIssues"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Sprints[sprintID]; !ok {
		return nil, fmt.Errorf("%w: sprint %d", ErrNotFound, sprintID)
	}
	var issues []Issue
	for _, key := range f.SprintItems[sprintID] {
		if issue, ok := f.IssuesByKey[key]; ok {
			issues = append(issues, *issue)
		}
	}
	return issues, nil
}
