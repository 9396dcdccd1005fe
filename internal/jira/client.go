// Package jira is the backend adapter: a capability-typed façade over the
// issue tracker's REST API. All network side effects of the gateway are
// confined to this package; everything above it is pure given its outputs.
package jira

import "context"

// Client is the capability set the tool handlers program against. The HTTP
// implementation talks to a real tracker; the Fake implements the same
// interface in memory for tests.
type Client interface {
	// Search runs a JQL query. Fails with ErrQuerySyntax on a malformed
	// expression, ErrUpstream on transport or auth failure.
	Search(ctx context.Context, jql string, opts SearchOptions) (*SearchPage, error)
	// GetIssue fetches one issue by id or key. Fails with ErrNotFound if
	// the issue does not exist.
	GetIssue(ctx context.Context, idOrKey string, fields []string) (*Issue, error)
	// CreateIssue creates an issue and returns its identity. Fails with
	// ErrValidation if the tracker rejects the field combination.
	CreateIssue(ctx context.Context, fields CreateIssueFields) (*Issue, error)
	// UpdateIssue applies a partial update; only supplied fields change.
	// Fails with ErrNotFound or ErrConflict.
	UpdateIssue(ctx context.Context, idOrKey string, fields UpdateIssueFields) error
	// GetProject fetches project metadata by key.
	GetProject(ctx context.Context, key string) (*Project, error)
	// ListBoards lists the boards attached to a project.
	ListBoards(ctx context.Context, projectKey string) ([]Board, error)
	// CreateSprint creates a future sprint on a board.
	CreateSprint(ctx context.Context, spec SprintSpec) (*Sprint, error)
	// MoveIssuesToSprint assigns issues to a sprint. Distinct from issue
	// transitions; never emulated through them.
	MoveIssuesToSprint(ctx context.Context, sprintID int, issueKeys []string) error
	// TransitionIssue applies the named workflow transition to an issue.
	// Fails with ErrNotFound if the issue or the transition is absent.
	TransitionIssue(ctx context.Context, idOrKey string, transitionName string) error
	// GetSprint fetches one sprint by id.
	GetSprint(ctx context.Context, sprintID int) (*Sprint, error)
	// GetActiveSprint returns the active sprint of a board, or ErrNotFound
	// when the board has none.
	GetActiveSprint(ctx context.Context, boardID int) (*Sprint, error)
	// SprintIssues lists the issues currently assigned to a sprint.
	SprintIssues(ctx context.Context, sprintID int) ([]Issue, error)
}
