package models

import "encoding/json"

// Schema is a minimal JSON-schema fragment describing tool parameters.
// It covers what the finance tools need: typed named properties with
// required/optional markers. Converted to genai.Schema at the Gemini
// boundary and to raw JSON schema at the MCP boundary.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// ObjectSchema builds an object schema from named properties.
func ObjectSchema(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: "object", Properties: props, Required: required}
}

// StringProp builds a string property schema with a description.
func StringProp(description string) *Schema {
	return &Schema{Type: "string", Description: description}
}

// ToolDefinition declares a tool to the model: unique name, natural-language
// description, and the parameter schema. Immutable after registration.
type ToolDefinition struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	InputSchema *Schema `json:"input_schema"`
}

// RawSchema returns the input schema as raw JSON for transports that take
// schema documents verbatim (MCP).
func (d *ToolDefinition) RawSchema() json.RawMessage {
	schema := d.InputSchema
	if schema == nil {
		schema = &Schema{Type: "object"}
	}
	raw, err := json.Marshal(schema)
	if err != nil {
		return json.RawMessage(`{"type":"object"}`)
	}
	return raw
}
