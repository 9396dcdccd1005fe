package dispatch

import "errors"

// Sentinel errors for tool registration and lookup.

// ErrDuplicateTool indicates a tool name was registered twice.
var ErrDuplicateTool = errors.New("tool name already registered")

// ErrUnknownTool indicates a lookup for a name no descriptor was registered under.
var ErrUnknownTool = errors.New("unknown tool")
