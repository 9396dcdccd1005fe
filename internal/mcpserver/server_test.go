package mcpserver

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiragate/jiragate/internal/dispatch"
	"github.com/jiragate/jiragate/internal/schema"
)

func newCallToolRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func newEchoDispatcher(t *testing.T) *dispatch.Dispatcher {
	t.Helper()
	d := dispatch.NewDispatcher()
	require.NoError(t, d.Register(dispatch.Descriptor{
		Name:        "echo",
		Description: "Echo the message back",
		Schema: schema.Object(
			schema.ReqProp("message", schema.String("Message to echo")),
		),
	}, func(ctx context.Context, args map[string]any) (dispatch.Result, error) {
		return dispatch.OkText(args["message"].(string)), nil
	}))
	return d
}

func TestNewPublishesCatalog(t *testing.T) {
	s := New(newEchoDispatcher(t), "test")
	require.NotNil(t, s)
	require.NotNil(t, s.mcp)
}

func TestToolHandlerSuccess(t *testing.T) {
	d := newEchoDispatcher(t)
	handler := toolHandler(d, "echo")

	result, err := handler(context.Background(), newCallToolRequest(map[string]any{"message": "hello"}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Equal(t, "hello", text.Text)
}

func TestToolHandlerValidationFailure(t *testing.T) {
	d := newEchoDispatcher(t)
	handler := toolHandler(d, "echo")

	// Missing the required argument: the failure must come back as an
	// error-flagged tool result, never as a transport error.
	result, err := handler(context.Background(), newCallToolRequest(map[string]any{}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Contains(t, text.Text, "message")
}

func TestToolHandlerNonMapArguments(t *testing.T) {
	d := newEchoDispatcher(t)
	handler := toolHandler(d, "echo")

	result, err := handler(context.Background(), newCallToolRequest(nil))
	require.NoError(t, err)
	require.True(t, result.IsError, "missing arguments should fail validation, not panic")
}
