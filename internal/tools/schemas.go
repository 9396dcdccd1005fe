package tools

import (
	"github.com/jiragate/jiragate/internal/dispatch"
	"github.com/jiragate/jiragate/internal/jira"
	"github.com/jiragate/jiragate/internal/schema"
)

// Tool descriptors, one per catalog entry. Names are the stable, public
// identifiers callers dispatch on; they never change meaning once shipped.

var createIssueDescriptor = dispatch.Descriptor{
	Name:        "create_issue",
	Description: "Create a new Jira issue",
	Schema: schema.Object(
		schema.ReqProp("project", schema.String("Project key or configured alias")),
		schema.ReqProp("summary", schema.String("Brief summary of the issue")),
		schema.ReqProp("issueType", schema.StringEnum("Type of issue to create", jira.IssueTypes...)),
		schema.Prop("description", schema.String("Detailed description of the issue")),
		schema.Prop("priority", schema.StringEnum("Priority level", jira.Priorities...)),
		schema.Prop("assignee", schema.String("Username to assign the issue to")),
		schema.Prop("labels", schema.Array("Labels to apply", schema.String("Label"))),
		schema.Prop("storyPoints", schema.Number("Story point estimate")),
		schema.Prop("epicLink", schema.String("Key of the epic this issue belongs to")),
	),
}

var getIssueDescriptor = dispatch.Descriptor{
	Name:        "get_issue",
	Description: "Fetch a Jira issue by id or key",
	Schema: schema.Object(
		schema.ReqProp("issueIdOrKey", schema.String("Issue id or key, e.g. PROJ-42")),
		schema.Prop("fields", schema.Array("Restrict the returned fields", schema.String("Field name"))),
	),
}

var updateIssueDescriptor = dispatch.Descriptor{
	Name:        "update_issue",
	Description: "Update fields of an existing issue; omitted fields are left untouched",
	Schema: schema.Object(
		schema.ReqProp("issueIdOrKey", schema.String("Issue id or key")),
		schema.Prop("summary", schema.String("New summary")),
		schema.Prop("description", schema.String("New description")),
		schema.Prop("priority", schema.StringEnum("New priority", jira.Priorities...)),
		schema.Prop("assignee", schema.String("New assignee username")),
		schema.Prop("labels", schema.Array("Replacement label set", schema.String("Label"))),
		schema.Prop("storyPoints", schema.Number("New story point estimate")),
	),
}

var searchIssuesDescriptor = dispatch.Descriptor{
	Name:        "search_issues",
	Description: "Search for Jira issues using JQL",
	Schema: schema.Object(
		schema.ReqProp("jql", schema.String("JQL query to search for issues")),
		schema.Prop("maxResults", schema.Integer("Maximum number of results to return")),
		schema.Prop("startAt", schema.Integer("Pagination offset")),
		schema.Prop("fields", schema.Array("Restrict the returned fields", schema.String("Field name"))),
	),
}

var getProjectDescriptor = dispatch.Descriptor{
	Name:        "get_project",
	Description: "Fetch project metadata by key or configured alias",
	Schema: schema.Object(
		schema.ReqProp("projectKey", schema.String("Project key or configured alias")),
	),
}

var listBoardsDescriptor = dispatch.Descriptor{
	Name:        "list_boards",
	Description: "List the boards of a project",
	Schema: schema.Object(
		schema.ReqProp("projectKey", schema.String("Project key or configured alias")),
	),
}

var createSprintDescriptor = dispatch.Descriptor{
	Name:        "create_sprint",
	Description: "Create a future sprint on a board",
	Schema: schema.Object(
		schema.ReqProp("boardId", schema.Integer("Board to create the sprint on")),
		schema.ReqProp("name", schema.String("Sprint name")),
		schema.Prop("startDate", schema.String("Sprint start date (YYYY-MM-DD)")),
		schema.Prop("endDate", schema.String("Sprint end date (YYYY-MM-DD)")),
		schema.Prop("goal", schema.String("Sprint goal")),
	),
}

var moveIssuesDescriptor = dispatch.Descriptor{
	Name:        "move_issues_to_sprint",
	Description: "Assign issues to a sprint",
	Schema: schema.Object(
		schema.ReqProp("sprintId", schema.Integer("Target sprint id")),
		schema.ReqProp("issueKeys", schema.Array("Issues to move", schema.String("Issue key"))),
	),
}

var transitionIssueDescriptor = dispatch.Descriptor{
	Name:        "transition_issue",
	Description: "Apply a named workflow transition to an issue",
	Schema: schema.Object(
		schema.ReqProp("issueIdOrKey", schema.String("Issue id or key")),
		schema.ReqProp("transitionName", schema.String("Transition name, e.g. 'In Progress'")),
	),
}

var planSprintDescriptor = dispatch.Descriptor{
	Name:        "plan_sprint",
	Description: "Pack the project backlog into a new sprint by priority until capacity is exhausted",
	Schema: schema.Object(
		schema.ReqProp("projectKey", schema.String("Project key or configured alias")),
		schema.ReqProp("teamCapacity", schema.Number("Sprint capacity in story points")),
		schema.ReqProp("startDate", schema.String("Sprint start date (YYYY-MM-DD)")),
		schema.ReqProp("endDate", schema.String("Sprint end date (YYYY-MM-DD)")),
		schema.Prop("sprintName", schema.String("Name for the new sprint")),
		schema.Prop("boardId", schema.Integer("Board to plan on; defaults to the project's first board")),
		schema.Prop("dryRun", schema.Boolean("Compute the plan without creating a sprint or moving issues")),
	),
}

var sprintStatusDescriptor = dispatch.Descriptor{
	Name:        "get_sprint_status",
	Description: "Get sprint status and progress metrics",
	Schema: schema.Object(
		schema.Prop("sprintId", schema.Integer("Sprint to analyze; defaults to the active sprint")),
		schema.Prop("boardId", schema.Integer("Board whose active sprint to analyze")),
	),
}

var teamWorkloadDescriptor = dispatch.Descriptor{
	Name:        "get_team_workload",
	Description: "Analyze team workload and capacity",
	Schema: schema.Object(
		schema.ReqProp("teamMembers", schema.Array("Team member usernames to analyze", schema.String("Username"))),
	),
}

var standupDescriptor = dispatch.Descriptor{
	Name:        "generate_standup_report",
	Description: "Generate the daily standup report for the active sprint",
	Schema: schema.Object(
		schema.Prop("boardId", schema.Integer("Board whose active sprint to report on")),
	),
}
