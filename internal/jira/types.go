package jira

import (
	"encoding/json"
	"time"
)

// Issue type names accepted by the tracker.
const (
	TypeEpic    = "Epic"
	TypeStory   = "Story"
	TypeTask    = "Task"
	TypeBug     = "Bug"
	TypeSubTask = "Sub-task"
)

// Priority names accepted by the tracker, highest first.
const (
	PriorityHighest = "Highest"
	PriorityHigh    = "High"
	PriorityMedium  = "Medium"
	PriorityLow     = "Low"
	PriorityLowest  = "Lowest"
)

// Status names the scrum reports care about.
const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusBlocked    = "Blocked"
	StatusDone       = "Done"
)

// IssueTypes lists the accepted issue type names in catalog order.
var IssueTypes = []string{TypeEpic, TypeStory, TypeTask, TypeBug, TypeSubTask}

// Priorities lists the accepted priority names, highest first.
var Priorities = []string{PriorityHighest, PriorityHigh, PriorityMedium, PriorityLow, PriorityLowest}

// Issue is the adapter's view of a tracker issue. Fields the adapter does
// not understand are kept verbatim in Fields.Extra so result bodies echo
// them back unchanged.
type Issue struct {
	ID     string      `json:"id,omitempty"`
	Key    string      `json:"key"`
	Self   string      `json:"self,omitempty"`
	Fields IssueFields `json:"fields"`
}

// IssueFields holds the issue fields the gateway maps, plus a raw bag of
// everything else the tracker sent.
type IssueFields struct {
	Summary     string
	Description string
	IssueType   string
	Status      string
	Priority    string
	Assignee    string
	Labels      []string
	StoryPoints float64
	Updated     time.Time

	// Extra carries tracker fields outside the mapped set, keyed by their
	// wire names. They round-trip untouched.
	Extra map[string]json.RawMessage
}

// jiraTime is the timestamp layout the tracker uses for updated/created.
const jiraTime = "2006-01-02T15:04:05.000-0700"

type namedField struct {
	Name string `json:"name"`
}

// storyPointsField is the custom field the tracker stores estimates in.
// Overridable through configuration; the default matches Jira Cloud's
// standard scrum template.
var storyPointsField = "customfield_10026"

// SetStoryPointsField overrides the custom field id used for story point
// estimates. Called once at startup from configuration, before any decoding.
func SetStoryPointsField(id string) {
	if id != "" {
		storyPointsField = id
	}
}

// UnmarshalJSON maps the tracker's nested field objects (status.name,
// priority.name, the story points custom field) onto flat fields and
// collects everything unrecognized into Extra.
func (f *IssueFields) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	take := func(key string, dst any) {
		if v, ok := raw[key]; ok {
			if json.Unmarshal(v, dst) == nil {
				delete(raw, key)
			}
		}
	}

	take("summary", &f.Summary)
	take("description", &f.Description)
	take("labels", &f.Labels)
	take(storyPointsField, &f.StoryPoints)

	var n namedField
	if v, ok := raw["issuetype"]; ok && json.Unmarshal(v, &n) == nil {
		f.IssueType = n.Name
		delete(raw, "issuetype")
	}
	if v, ok := raw["status"]; ok && json.Unmarshal(v, &n) == nil {
		f.Status = n.Name
		delete(raw, "status")
	}
	if v, ok := raw["priority"]; ok && json.Unmarshal(v, &n) == nil {
		f.Priority = n.Name
		delete(raw, "priority")
	}
	if v, ok := raw["assignee"]; ok {
		var a struct {
			DisplayName string `json:"displayName"`
			Name        string `json:"name"`
		}
		if json.Unmarshal(v, &a) == nil {
			f.Assignee = a.DisplayName
			if f.Assignee == "" {
				f.Assignee = a.Name
			}
			delete(raw, "assignee")
		}
	}
	if v, ok := raw["updated"]; ok {
		var s string
		if json.Unmarshal(v, &s) == nil {
			if t, err := time.Parse(jiraTime, s); err == nil {
				f.Updated = t
				delete(raw, "updated")
			}
		}
	}

	if len(raw) > 0 {
		f.Extra = raw
	}
	return nil
}

// MarshalJSON re-emits the mapped fields in the tracker's shape and merges
// the Extra bag back in, so unknown fields are never dropped from a result
// body.
func (f IssueFields) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(f.Extra)+8)
	for k, v := range f.Extra {
		out[k] = v
	}
	if f.Summary != "" {
		out["summary"] = f.Summary
	}
	if f.Description != "" {
		out["description"] = f.Description
	}
	if f.IssueType != "" {
		out["issuetype"] = namedField{Name: f.IssueType}
	}
	if f.Status != "" {
		out["status"] = namedField{Name: f.Status}
	}
	if f.Priority != "" {
		out["priority"] = namedField{Name: f.Priority}
	}
	if f.Assignee != "" {
		out["assignee"] = map[string]string{"displayName": f.Assignee}
	}
	if len(f.Labels) > 0 {
		out["labels"] = f.Labels
	}
	if f.StoryPoints != 0 {
		out[storyPointsField] = f.StoryPoints
	}
	if !f.Updated.IsZero() {
		out["updated"] = f.Updated.Format(jiraTime)
	}
	return json.Marshal(out)
}

// SearchPage is one page of JQL search results.
type SearchPage struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// Project identifies a tracker project.
type Project struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Board is a scrum or kanban board.
type Board struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Sprint is a time-boxed unit of work on a board.
type Sprint struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	Goal      string `json:"goal,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	BoardID   int    `json:"originBoardId,omitempty"`
}

// CreateIssueFields are the fields accepted when creating an issue.
// ProjectKey, Summary and IssueType are required; the rest are optional.
type CreateIssueFields struct {
	ProjectKey  string
	Summary     string
	IssueType   string
	Description string
	Priority    string
	Assignee    string
	Labels      []string
	StoryPoints *float64
	EpicLink    string
}

// UpdateIssueFields is a partial update: only non-nil fields change, absent
// fields are left untouched by the tracker.
type UpdateIssueFields struct {
	Summary     *string
	Description *string
	Priority    *string
	Assignee    *string
	Labels      *[]string
	StoryPoints *float64
}

// SprintSpec describes a sprint to create on a board.
type SprintSpec struct {
	BoardID   int
	Name      string
	StartDate string
	EndDate   string
	Goal      string
}

// SearchOptions tune a JQL search.
type SearchOptions struct {
	StartAt    int
	MaxResults int
	Fields     []string
}
