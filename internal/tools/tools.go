// Package tools defines the gateway's tool catalog: one schema-described
// descriptor plus handler per Jira operation, registered on the dispatcher
// at startup. Handlers decode validated arguments into typed requests, call
// the backend adapter (consulting the result cache for read-mostly
// lookups), and serialize results into the response envelope.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/jiragate/jiragate/internal/cache"
	"github.com/jiragate/jiragate/internal/config"
	"github.com/jiragate/jiragate/internal/dispatch"
	"github.com/jiragate/jiragate/internal/jira"
	"github.com/jiragate/jiragate/internal/scrum"
)

// Deps are the collaborators the tool handlers need.
type Deps struct {
	Client         jira.Client
	Links          *config.LinksConfig
	DefaultBoardID int
}

// catalog binds the handlers to their collaborators.
type catalog struct {
	client         jira.Client
	links          *config.LinksConfig
	planner        *scrum.Planner
	reporter       *scrum.Reporter
	projects       *cache.Cache[string, *jira.Project]
	boards         *cache.Cache[string, []jira.Board]
	defaultBoardID int
}

// Register builds the full tool catalog and registers it on d in catalog
// order. It fails only on a duplicate tool name, which would be a
// programming error in the table below.
func Register(d *dispatch.Dispatcher, deps Deps) error {
	links := deps.Links
	if links == nil {
		links = &config.LinksConfig{}
	}
	c := &catalog{
		client:         deps.Client,
		links:          links,
		planner:        scrum.NewPlanner(deps.Client),
		reporter:       scrum.NewReporter(deps.Client),
		projects:       cache.New[string, *jira.Project](),
		boards:         cache.New[string, []jira.Board](),
		defaultBoardID: deps.DefaultBoardID,
	}

	for _, entry := range []struct {
		desc    dispatch.Descriptor
		handler dispatch.Handler
	}{
		{createIssueDescriptor, c.createIssue},
		{getIssueDescriptor, c.getIssue},
		{updateIssueDescriptor, c.updateIssue},
		{searchIssuesDescriptor, c.searchIssues},
		{getProjectDescriptor, c.getProject},
		{listBoardsDescriptor, c.listBoards},
		{createSprintDescriptor, c.createSprint},
		{moveIssuesDescriptor, c.moveIssuesToSprint},
		{transitionIssueDescriptor, c.transitionIssue},
		{planSprintDescriptor, c.planSprint},
		{sprintStatusDescriptor, c.sprintStatus},
		{teamWorkloadDescriptor, c.teamWorkload},
		{standupDescriptor, c.standupReport},
	} {
		if err := d.Register(entry.desc, entry.handler); err != nil {
			return err
		}
	}
	return nil
}

// decodeArgs converts a validated argument map into a typed request struct.
// The schema validator has already established shape and types, so this is
// a mechanical re-marshal.
func decodeArgs(args map[string]any, into any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encoding arguments: %w", err)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("decoding arguments: %w", err)
	}
	return nil
}

// okJSON marshals v into a JSON success envelope.
func okJSON(v any) (dispatch.Result, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return dispatch.Result{}, fmt.Errorf("encoding result: %w", err)
	}
	return dispatch.OkJSON(string(raw)), nil
}

// resolveProject maps a project alias or key through the links table and
// verifies it against the tracker via the project cache. The cache has no
// TTL; project metadata is effectively static for the process lifetime.
func (c *catalog) resolveProject(key string) (string, *config.ProjectLink) {
	return c.links.Resolve(key)
}

// boardFor picks the board id for a project reference: explicit argument,
// then the project link's board, then the configured default.
func (c *catalog) boardFor(explicit int, link *config.ProjectLink) int {
	if explicit != 0 {
		return explicit
	}
	if link != nil && link.BoardID != 0 {
		return link.BoardID
	}
	return c.defaultBoardID
}
