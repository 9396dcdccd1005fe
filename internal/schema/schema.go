// Package schema defines the parameter schema tree that describes a tool's
// arguments and the validator that checks an argument map against it before
// dispatch. Schemas are a restricted JSON-Schema subset: object, array and
// scalar nodes with required-property sets, enum constraints and defaults.
// Validation compiles the serialized document and evaluates argument maps
// against the compiled schema.
package schema

import "encoding/json"

// Type identifies the kind of a schema node.
type Type string

// Supported schema node types.
const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
)

// Schema is one node of a parameter schema tree. Object nodes carry
// Properties and Required; array nodes carry Items; scalar nodes may carry
// an Enum constraint and a Default. Schemas are built once at startup and
// never mutated afterwards.
type Schema struct {
	Type        Type               `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []any              `json:"enum,omitempty"`
	Default     any                `json:"default,omitempty"`
}

// Object builds an object node from property pairs created with Prop.
func Object(props ...Property) *Schema {
	s := &Schema{Type: TypeObject, Properties: make(map[string]*Schema, len(props))}
	for _, p := range props {
		s.Properties[p.Name] = p.Schema
		if p.Required {
			s.Required = append(s.Required, p.Name)
		}
	}
	return s
}

// Property pairs a property name with its child schema for Object.
type Property struct {
	Name     string
	Schema   *Schema
	Required bool
}

// Prop declares an optional object property.
func Prop(name string, s *Schema) Property {
	return Property{Name: name, Schema: s}
}

// ReqProp declares a required object property.
func ReqProp(name string, s *Schema) Property {
	return Property{Name: name, Schema: s, Required: true}
}

// String builds a string scalar node.
func String(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

// StringEnum builds a string scalar node constrained to the given values.
func StringEnum(description string, values ...string) *Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return &Schema{Type: TypeString, Description: description, Enum: enum}
}

// IntegerEnum builds an integer scalar node constrained to the given values.
func IntegerEnum(description string, values ...int) *Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return &Schema{Type: TypeInteger, Description: description, Enum: enum}
}

// Number builds a number scalar node.
func Number(description string) *Schema {
	return &Schema{Type: TypeNumber, Description: description}
}

// Integer builds an integer scalar node.
func Integer(description string) *Schema {
	return &Schema{Type: TypeInteger, Description: description}
}

// Boolean builds a boolean scalar node.
func Boolean(description string) *Schema {
	return &Schema{Type: TypeBoolean, Description: description}
}

// Array builds an array node whose elements validate against items.
func Array(description string, items *Schema) *Schema {
	return &Schema{Type: TypeArray, Description: description, Items: items}
}

// JSON serializes the schema as a JSON-Schema document for catalog listings.
func (s *Schema) JSON() json.RawMessage {
	// Schemas are static trees of plain types; marshalling cannot fail.
	raw, err := json.Marshal(s)
	if err != nil {
		return json.RawMessage(`{"type":"object"}`)
	}
	return raw
}
