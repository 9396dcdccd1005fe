package tools

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jiragate/jiragate/internal/jira"
)

// MockClient is a mock implementation of jira.Client for spying on adapter
// interactions from handler tests.
type MockClient struct {
	mock.Mock
}

var _ jira.Client = (*MockClient)(nil)

func (m *MockClient) Search(ctx context.Context, jql string, opts jira.SearchOptions) (*jira.SearchPage, error) {
	args := m.Called(ctx, jql, opts)
	page, _ := args.Get(0).(*jira.SearchPage)
	return page, args.Error(1)
}

func (m *MockClient) GetIssue(ctx context.Context, idOrKey string, fields []string) (*jira.Issue, error) {
	args := m.Called(ctx, idOrKey, fields)
	issue, _ := args.Get(0).(*jira.Issue)
	return issue, args.Error(1)
}

func (m *MockClient) CreateIssue(ctx context.Context, fields jira.CreateIssueFields) (*jira.Issue, error) {
	args := m.Called(ctx, fields)
	issue, _ := args.Get(0).(*jira.Issue)
	return issue, args.Error(1)
}

func (m *MockClient) UpdateIssue(ctx context.Context, idOrKey string, fields jira.UpdateIssueFields) error {
	args := m.Called(ctx, idOrKey, fields)
	return args.Error(0)
}

func (m *MockClient) GetProject(ctx context.Context, key string) (*jira.Project, error) {
	args := m.Called(ctx, key)
	project, _ := args.Get(0).(*jira.Project)
	return project, args.Error(1)
}

func (m *MockClient) ListBoards(ctx context.Context, projectKey string) ([]jira.Board, error) {
	args := m.Called(ctx, projectKey)
	boards, _ := args.Get(0).([]jira.Board)
	return boards, args.Error(1)
}

func (m *MockClient) CreateSprint(ctx context.Context, spec jira.SprintSpec) (*jira.Sprint, error) {
	args := m.Called(ctx, spec)
	sprint, _ := args.Get(0).(*jira.Sprint)
	return sprint, args.Error(1)
}

func (m *MockClient) MoveIssuesToSprint(ctx context.Context, sprintID int, issueKeys []string) error {
	args := m.Called(ctx, sprintID, issueKeys)
	return args.Error(0)
}

func (m *MockClient) TransitionIssue(ctx context.Context, idOrKey string, transitionName string) error {
	args := m.Called(ctx, idOrKey, transitionName)
	return args.Error(0)
}

func (m *MockClient) GetSprint(ctx context.Context, sprintID int) (*jira.Sprint, error) {
	args := m.Called(ctx, sprintID)
	sprint, _ := args.Get(0).(*jira.Sprint)
	return sprint, args.Error(1)
}

func (m *MockClient) GetActiveSprint(ctx context.Context, boardID int) (*jira.Sprint, error) {
	args := m.Called(ctx, boardID)
	sprint, _ := args.Get(0).(*jira.Sprint)
	return sprint, args.Error(1)
}

func (m *MockClient) SprintIssues(ctx context.Context, sprintID int) ([]jira.Issue, error) {
	args := m.Called(ctx, sprintID)
	issues, _ := args.Get(0).([]jira.Issue)
	return issues, args.Error(1)
}
