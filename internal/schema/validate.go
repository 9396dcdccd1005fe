package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Violation describes why an argument value failed validation, with Path
// locating the offending value inside the argument tree (property names and
// array indices, root-first).
type Violation struct {
	Path   []string
	Reason string
}

// Error renders the violation as a single human-readable message.
func (v *Violation) Error() string {
	if len(v.Path) == 0 {
		return "invalid arguments: " + v.Reason
	}
	return fmt.Sprintf("invalid argument %q: %s", strings.Join(v.Path, "."), v.Reason)
}

// Validate checks args against the schema's compiled JSON-Schema form. It
// returns nil when args conform, or a *Violation carrying the path to the
// first failing value. Unknown properties are ignored for forward
// compatibility; only declared properties are checked. Validation performs
// no I/O, so a failed call can never have caused a side effect.
func Validate(s *Schema, args map[string]any) *Violation {
	compiled, err := compiledFor(s)
	if err != nil {
		return &Violation{Reason: fmt.Sprintf("schema does not compile: %v", err)}
	}
	err = compiled.Validate(args)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return &Violation{Reason: err.Error()}
	}
	return violationFrom(verr)
}

// compiledSchemas caches compiled forms keyed by schema identity. Schema
// trees are built once at startup and never mutated, so the pointer is a
// stable key.
var compiledSchemas sync.Map // *Schema -> compiledEntry

type compiledEntry struct {
	schema *jsonschema.Schema
	err    error
}

func compiledFor(s *Schema) (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(s); ok {
		entry := cached.(compiledEntry)
		return entry.schema, entry.err
	}
	var entry compiledEntry
	entry.schema, entry.err = compile(s)
	compiledSchemas.Store(s, entry)
	return entry.schema, entry.err
}

func compile(s *Schema) (*jsonschema.Schema, error) {
	var doc any
	if err := json.Unmarshal(s.JSON(), &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling schema document: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	return c.Compile("schema.json")
}

// violationFrom maps the validator's first leaf cause onto a Violation.
// The instance location already carries property names and array indices
// as path segments; a missing required property is reported at the
// property's own path, not the enclosing object's.
func violationFrom(verr *jsonschema.ValidationError) *Violation {
	leaf := verr
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	path := append([]string(nil), leaf.InstanceLocation...)
	switch k := leaf.ErrorKind.(type) {
	case *kind.Required:
		return &Violation{Path: append(path, k.Missing[0]), Reason: "required property is missing"}
	case *kind.Type:
		return &Violation{
			Path:   path,
			Reason: fmt.Sprintf("expected %s, got %s", strings.Join(k.Want, " or "), k.Got),
		}
	case *kind.Enum:
		return &Violation{
			Path:   path,
			Reason: fmt.Sprintf("value %s is not one of [%s]", renderEnumValue(k.Got), renderEnumValues(k.Want)),
		}
	default:
		return &Violation{
			Path:   path,
			Reason: leaf.ErrorKind.LocalizedString(message.NewPrinter(language.English)),
		}
	}
}

func renderEnumValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}

func renderEnumValues(values []any) string {
	rendered := make([]string, len(values))
	for i, v := range values {
		rendered[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(rendered, ", ")
}
