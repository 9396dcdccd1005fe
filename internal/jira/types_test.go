package jira

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueFieldsRoundTrip(t *testing.T) {
	wire := `{
		"summary": "Fix login bug",
		"description": "Users cannot log in",
		"issuetype": {"name": "Bug"},
		"status": {"name": "In Progress"},
		"priority": {"name": "High"},
		"assignee": {"displayName": "Dana Developer"},
		"labels": ["auth"],
		"customfield_10026": 5,
		"customfield_99999": {"vendor": "plugin data"},
		"resolution": null
	}`

	var fields IssueFields
	require.NoError(t, json.Unmarshal([]byte(wire), &fields))

	assert.Equal(t, "Fix login bug", fields.Summary)
	assert.Equal(t, "Bug", fields.IssueType)
	assert.Equal(t, "In Progress", fields.Status)
	assert.Equal(t, "High", fields.Priority)
	assert.Equal(t, "Dana Developer", fields.Assignee)
	assert.Equal(t, 5.0, fields.StoryPoints)
	require.Contains(t, fields.Extra, "customfield_99999", "unmapped fields must be retained")

	// Re-encode and verify the unknown field survives untouched.
	encoded, err := json.Marshal(fields)
	require.NoError(t, err)

	var echoed map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &echoed))
	assert.JSONEq(t, `{"vendor": "plugin data"}`, string(echoed["customfield_99999"]))
	assert.JSONEq(t, `{"name": "Bug"}`, string(echoed["issuetype"]))
	assert.JSONEq(t, `"Fix login bug"`, string(echoed["summary"]))
}

func TestIssueFieldsUpdatedTimestamp(t *testing.T) {
	wire := `{"summary": "s", "updated": "2024-01-10T09:30:00.000+0000"}`
	var fields IssueFields
	require.NoError(t, json.Unmarshal([]byte(wire), &fields))
	assert.Equal(t, 2024, fields.Updated.Year())
	assert.Equal(t, 10, fields.Updated.Day())
}
