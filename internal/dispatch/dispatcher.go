package dispatch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jiragate/jiragate/internal/schema"
)

// Handler executes one tool call. Arguments have already passed schema
// validation when a handler runs; a returned error becomes the Err envelope.
type Handler func(ctx context.Context, args map[string]any) (Result, error)

// Call is one inbound tool invocation as received from the transport.
type Call struct {
	Name      string
	Arguments map[string]any
}

// Dispatcher routes calls to handlers by tool name. It holds no business
// logic itself: lookup, validate, execute, envelope. Dispatch is a total
// function; every failure path is converted to an Err result and nothing
// escapes the call boundary.
type Dispatcher struct {
	registry *Registry
	handlers map[string]Handler
}

// NewDispatcher returns a dispatcher with an empty catalog.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		registry: NewRegistry(),
		handlers: make(map[string]Handler),
	}
}

// Register adds a tool descriptor together with its handler.
func (d *Dispatcher) Register(desc Descriptor, h Handler) error {
	if err := d.registry.Register(desc); err != nil {
		return err
	}
	d.handlers[desc.Name] = h
	return nil
}

// Tools returns the catalog in registration order, for capability discovery.
func (d *Dispatcher) Tools() []Descriptor {
	return d.registry.List()
}

// Dispatch executes one call to completion. Tool names match the catalog
// exactly, case-sensitive. Validation runs fully before the handler, so a
// malformed call can never have reached the backend.
func (d *Dispatcher) Dispatch(ctx context.Context, call Call) Result {
	callID := uuid.NewString()
	logger := log.With().Str("call_id", callID).Str("tool", call.Name).Logger()
	logger.Debug().Interface("arguments", call.Arguments).Msg("Dispatching tool call")

	desc, err := d.registry.Lookup(call.Name)
	if err != nil {
		logger.Warn().Msg("Tool not found in catalog")
		return Errf(fmt.Sprintf("Unknown tool: %s", call.Name), nil)
	}

	args := call.Arguments
	if args == nil {
		args = map[string]any{}
	}
	if viol := schema.Validate(desc.Schema, args); viol != nil {
		logger.Warn().Str("reason", viol.Reason).Strs("path", viol.Path).Msg("Argument validation failed")
		return Errf(viol.Error(), nil)
	}

	result, err := d.handlers[call.Name](ctx, args)
	if err != nil {
		logger.Error().Err(err).Msg("Tool handler failed")
		return Errf(fmt.Sprintf("%s failed: %s", call.Name, err.Error()), err)
	}
	logger.Debug().Str("content_type", result.ContentType).Msg("Tool call succeeded")
	return result
}
