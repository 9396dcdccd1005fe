// Package mcpserver binds the tool dispatcher to the Model Context
// Protocol transport using the mcp-go library. It owns serialization to and
// from the wire; the dispatcher and everything below it never see MCP
// types.
package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/jiragate/jiragate/internal/dispatch"
)

// Server exposes a dispatcher's catalog over MCP.
type Server struct {
	mcp        *server.MCPServer
	dispatcher *dispatch.Dispatcher
}

// New builds an MCP server publishing every tool the dispatcher knows, in
// catalog order. Tool input schemas are the registry descriptors' schemas,
// serialized verbatim.
func New(d *dispatch.Dispatcher, version string) *Server {
	s := server.NewMCPServer(
		"jiragate",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	for _, desc := range d.Tools() {
		tool := mcp.NewToolWithRawSchema(desc.Name, desc.Description, desc.Schema.JSON())
		s.AddTool(tool, toolHandler(d, desc.Name))
	}
	log.Info().Int("tools", len(d.Tools())).Msg("MCP server configured")

	return &Server{mcp: s, dispatcher: d}
}

// toolHandler adapts one catalog entry to the mcp-go handler signature.
// Dispatch is total, so the handler never returns a Go error; every failure
// becomes an error-flagged tool result on the wire.
func toolHandler(d *dispatch.Dispatcher, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		result := d.Dispatch(ctx, dispatch.Call{Name: name, Arguments: args})
		if !result.OK {
			return mcp.NewToolResultError(result.Message), nil
		}
		return mcp.NewToolResultText(result.Body), nil
	}
}

// ServeStdio serves MCP over stdin/stdout until the stream closes.
func (s *Server) ServeStdio() error {
	log.Info().Msg("Serving MCP over stdio")
	return server.ServeStdio(s.mcp)
}

// ServeHTTP serves MCP over the streamable HTTP transport on addr.
func (s *Server) ServeHTTP(addr string) error {
	log.Info().Str("addr", addr).Msg("Serving MCP over streamable HTTP")
	httpServer := server.NewStreamableHTTPServer(s.mcp)
	return httpServer.Start(addr)
}
