//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jiragate/jiragate/internal/dispatch"
	"github.com/jiragate/jiragate/internal/jira"
	"github.com/jiragate/jiragate/internal/tools"
)

// trackerServer is a stateful in-memory stand-in for a Jira Cloud instance,
// covering just the REST surface the gateway talks to. Issues are stored in
// the tracker's own wire shape so the adapter's field mapping is exercised
// for real.
type trackerServer struct {
	t  *testing.T
	mu sync.Mutex

	issues      map[string]map[string]any
	issueOrder  []string
	sprints     map[int]map[string]any
	sprintItems map[int][]string
	nextIssue   int
	nextSprint  int

	srv *httptest.Server
}

func newTrackerServer(t *testing.T) *trackerServer {
	t.Helper()
	ts := &trackerServer{
		t:           t,
		issues:      make(map[string]map[string]any),
		sprints:     make(map[int]map[string]any),
		sprintItems: make(map[int][]string),
		nextIssue:   100,
		nextSprint:  40,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /rest/api/2/issue", ts.createIssue)
	mux.HandleFunc("GET /rest/api/2/issue/{key}", ts.getIssue)
	mux.HandleFunc("PUT /rest/api/2/issue/{key}", ts.updateIssue)
	mux.HandleFunc("GET /rest/api/2/issue/{key}/transitions", ts.listTransitions)
	mux.HandleFunc("POST /rest/api/2/issue/{key}/transitions", ts.applyTransition)
	mux.HandleFunc("POST /rest/api/2/search", ts.search)
	mux.HandleFunc("GET /rest/api/2/project/{key}", ts.getProject)
	mux.HandleFunc("GET /rest/agile/1.0/board", ts.listBoards)
	mux.HandleFunc("POST /rest/agile/1.0/sprint", ts.createSprint)
	mux.HandleFunc("GET /rest/agile/1.0/sprint/{id}", ts.getSprint)
	mux.HandleFunc("POST /rest/agile/1.0/sprint/{id}/issue", ts.moveToSprint)
	mux.HandleFunc("GET /rest/agile/1.0/sprint/{id}/issue", ts.sprintIssues)

	ts.srv = httptest.NewServer(mux)
	t.Cleanup(ts.srv.Close)
	return ts
}

func (ts *trackerServer) URL() string { return ts.srv.URL }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusNotFound, map[string]any{"errorMessages": []string{msg}})
}

func (ts *trackerServer) createIssue(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Fields map[string]any `json:"fields"`
	}
	require.NoError(ts.t, json.NewDecoder(r.Body).Decode(&payload))

	project, _ := payload.Fields["project"].(map[string]any)
	projectKey, _ := project["key"].(string)
	if projectKey == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": map[string]string{"project": "project is required"}})
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.nextIssue++
	key := fmt.Sprintf("%s-%d", projectKey, ts.nextIssue)
	payload.Fields["status"] = map[string]any{"name": jira.StatusToDo}
	ts.issues[key] = payload.Fields
	ts.issueOrder = append(ts.issueOrder, key)

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":   strconv.Itoa(ts.nextIssue),
		"key":  key,
		"self": ts.srv.URL + "/rest/api/2/issue/" + key,
	})
}

func (ts *trackerServer) getIssue(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	ts.mu.Lock()
	defer ts.mu.Unlock()
	fields, ok := ts.issues[key]
	if !ok {
		notFound(w, "Issue does not exist or you do not have permission to see it.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"key": key, "fields": fields})
}

func (ts *trackerServer) updateIssue(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	var payload struct {
		Fields map[string]any `json:"fields"`
	}
	require.NoError(ts.t, json.NewDecoder(r.Body).Decode(&payload))

	ts.mu.Lock()
	defer ts.mu.Unlock()
	fields, ok := ts.issues[key]
	if !ok {
		notFound(w, "Issue does not exist or you do not have permission to see it.")
		return
	}
	for name, value := range payload.Fields {
		fields[name] = value
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ts *trackerServer) listTransitions(w http.ResponseWriter, r *http.Request) {
	if _, ok := ts.lookup(r.PathValue("key")); !ok {
		notFound(w, "Issue does not exist or you do not have permission to see it.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transitions": []map[string]string{
			{"id": "11", "name": "To Do"},
			{"id": "21", "name": "In Progress"},
			{"id": "31", "name": "Done"},
		},
	})
}

func (ts *trackerServer) applyTransition(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	var payload struct {
		Transition struct {
			ID string `json:"id"`
		} `json:"transition"`
	}
	require.NoError(ts.t, json.NewDecoder(r.Body).Decode(&payload))

	names := map[string]string{"11": "To Do", "21": "In Progress", "31": "Done"}
	name, ok := names[payload.Transition.ID]
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errorMessages": []string{"Invalid transition id"}})
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	fields, exists := ts.issues[key]
	if !exists {
		notFound(w, "Issue does not exist or you do not have permission to see it.")
		return
	}
	fields["status"] = map[string]any{"name": name}
	w.WriteHeader(http.StatusNoContent)
}

func (ts *trackerServer) lookup(key string) (map[string]any, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	fields, ok := ts.issues[key]
	return fields, ok
}

// search interprets just enough JQL for the gateway's queries: a query
// mentioning "sprint is EMPTY" serves issues not yet in any sprint;
// anything else serves every stored issue.
func (ts *trackerServer) search(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		JQL        string `json:"jql"`
		MaxResults int    `json:"maxResults"`
		StartAt    int    `json:"startAt"`
	}
	require.NoError(ts.t, json.NewDecoder(r.Body).Decode(&payload))
	if strings.Contains(payload.JQL, "syntax-error") {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errorMessages": []string{"Error in the JQL Query."}})
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	inSprint := map[string]bool{}
	for _, keys := range ts.sprintItems {
		for _, key := range keys {
			inSprint[key] = true
		}
	}

	backlogOnly := strings.Contains(payload.JQL, "sprint is EMPTY")
	var issues []map[string]any
	for _, key := range ts.issueOrder {
		if backlogOnly && inSprint[key] {
			continue
		}
		issues = append(issues, map[string]any{"key": key, "fields": ts.issues[key]})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"startAt":    payload.StartAt,
		"maxResults": payload.MaxResults,
		"total":      len(issues),
		"issues":     issues,
	})
}

func (ts *trackerServer) getProject(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	writeJSON(w, http.StatusOK, map[string]any{"id": "10000", "key": key, "name": key + " project"})
}

func (ts *trackerServer) listBoards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"values": []map[string]any{{"id": 7, "name": "Gateway board", "type": "scrum"}},
	})
}

func (ts *trackerServer) createSprint(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	require.NoError(ts.t, json.NewDecoder(r.Body).Decode(&payload))

	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.nextSprint++
	payload["id"] = ts.nextSprint
	payload["state"] = "future"
	ts.sprints[ts.nextSprint] = payload
	writeJSON(w, http.StatusCreated, payload)
}

func (ts *trackerServer) getSprint(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	require.NoError(ts.t, err)

	ts.mu.Lock()
	defer ts.mu.Unlock()
	sprint, ok := ts.sprints[id]
	if !ok {
		notFound(w, "Sprint does not exist.")
		return
	}
	writeJSON(w, http.StatusOK, sprint)
}

func (ts *trackerServer) moveToSprint(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	require.NoError(ts.t, err)
	var payload struct {
		Issues []string `json:"issues"`
	}
	require.NoError(ts.t, json.NewDecoder(r.Body).Decode(&payload))

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if _, ok := ts.sprints[id]; !ok {
		notFound(w, "Sprint does not exist.")
		return
	}
	ts.sprintItems[id] = append(ts.sprintItems[id], payload.Issues...)
	w.WriteHeader(http.StatusNoContent)
}

func (ts *trackerServer) sprintIssues(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	require.NoError(ts.t, err)

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if _, ok := ts.sprints[id]; !ok {
		notFound(w, "Sprint does not exist.")
		return
	}
	var issues []map[string]any
	for _, key := range ts.sprintItems[id] {
		issues = append(issues, map[string]any{"key": key, "fields": ts.issues[key]})
	}
	writeJSON(w, http.StatusOK, map[string]any{"issues": issues})
}

// newGateway wires a dispatcher onto a real HTTP adapter pointed at the mock
// tracker, the same composition the serve command performs.
func newGateway(t *testing.T, ts *trackerServer) *dispatch.Dispatcher {
	t.Helper()
	client, err := jira.NewHTTPClient(ts.URL(), "it@example.com", "it-token", jira.Options{
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)

	d := dispatch.NewDispatcher()
	require.NoError(t, tools.Register(d, tools.Deps{Client: client}))
	return d
}

// unmarshalBody decodes a JSON success body into out.
func unmarshalBody(t *testing.T, result dispatch.Result, out any) {
	t.Helper()
	require.True(t, result.OK, "expected a success envelope, got: %s", result.Message)
	require.Equal(t, dispatch.ContentTypeJSON, result.ContentType)
	require.NoError(t, json.Unmarshal([]byte(result.Body), out))
}
