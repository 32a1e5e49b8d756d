package rpcdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is the generated OpenAPI 3.0.3 description.
//
// Only the subset of the OpenAPI object model this generator produces is
// represented. Paths are keyed by the synthesized "/{endpoint}/{method}"
// string and offer key-based lookup only; no ordering is promised.
type Document struct {
	OpenAPI    string              `json:"openapi"`
	Info       Info                `json:"info"`
	Servers    []Server            `json:"servers,omitempty"`
	Paths      map[string]PathItem `json:"paths"`
	Components Components          `json:"components"`
}

// Info carries the document metadata.
type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// Server describes one target server for documented calls.
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// PathItem maps a lowercase HTTP verb to its operation.
type PathItem map[string]*Operation

// Operation documents a single method of a single endpoint.
//
// The x-rpc extension fields record the true transport call shape for
// consumers that need to bypass the semantic-verb fiction: the transport
// only ever POSTs to the endpoint path with the method name in the body.
type Operation struct {
	OperationID string       `json:"operationId"`
	Summary     string       `json:"summary,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	RequestBody *RequestBody `json:"requestBody,omitempty"`
	Responses   Responses    `json:"responses"`

	// Security is present only when the endpoint requires authentication
	// and the method is not part of an authentication flow.
	Security []SecurityRequirement `json:"security,omitempty"`

	RPCPath   string `json:"x-rpc-path"`
	RPCMethod string `json:"x-rpc-method"`
	RPCVerb   string `json:"x-rpc-verb"`
}

// SecurityRequirement names a security scheme and its required scopes.
type SecurityRequirement map[string][]string

// RequestBody wraps the request schema.
type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

// Responses maps a status code to its response description.
type Responses map[string]*Response

// Response documents one response status.
type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

// MediaType wraps a schema under a content type key.
type MediaType struct {
	Schema *Schema `json:"schema,omitempty"`
}

// Components holds the document's reusable pieces. This generator emits a
// single fixed bearer security scheme and nothing else.
type Components struct {
	SecuritySchemes map[string]*SecurityScheme `json:"securitySchemes,omitempty"`
}

// SecurityScheme describes an authentication scheme.
type SecurityScheme struct {
	Type         string `json:"type"`
	Scheme       string `json:"scheme,omitempty"`
	BearerFormat string `json:"bearerFormat,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Schema is a JSON-Schema-like fragment.
type Schema struct {
	Type        string   `json:"type,omitempty"`
	Format      string   `json:"format,omitempty"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`

	Properties Properties `json:"properties,omitempty"`
	Required   []string   `json:"required,omitempty"`
	Items      *Schema    `json:"items,omitempty"`

	// OneOf and Nullable are emitted together for nullable parameters: the
	// union carries the null alternative for modern consumers, the legacy
	// flag keeps OpenAPI 3.0 tooling working.
	OneOf    []*Schema `json:"oneOf,omitempty"`
	Nullable bool      `json:"nullable,omitempty"`

	AdditionalProperties *bool `json:"additionalProperties,omitempty"`
	Example              any   `json:"example,omitempty"`
}

// Property is one named schema within an object.
type Property struct {
	Name   string
	Schema *Schema
}

// Properties is an ordered set of named schemas. Declaration order of the
// underlying parameters is preserved through JSON encoding, which a plain
// map cannot do.
type Properties []Property

// Get returns the schema for name, if present.
func (p Properties) Get(name string) (*Schema, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Schema, true
		}
	}
	return nil, false
}

// MarshalJSON implements json.Marshaler, emitting a JSON object whose keys
// appear in insertion order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(prop.Schema)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, reading object keys in the
// order they appear in the input.
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties: expected object, got %v", tok)
	}

	out := Properties{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("properties: expected string key, got %v", keyTok)
		}
		var schema Schema
		if err := dec.Decode(&schema); err != nil {
			return err
		}
		out = append(out, Property{Name: key, Schema: &schema})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*p = out
	return nil
}
