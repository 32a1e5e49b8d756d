package rpcdoc

import (
	"strings"
)

// TypeTag is the closed set of semantic parameter types the registry's
// code generation layer can produce. Unknown types are tagged TypeObject
// and carry the original type name for the documented fallback.
type TypeTag string

const (
	TypeInteger   TypeTag = "integer"
	TypeFloat     TypeTag = "float"
	TypeText      TypeTag = "text"
	TypeBoolean   TypeTag = "boolean"
	TypeTimestamp TypeTag = "timestamp"
	TypeUUID      TypeTag = "uuid"
	TypeMapping   TypeTag = "mapping"
	TypeSequence  TypeTag = "sequence"
	TypeObject    TypeTag = "object"
)

// Param describes one method parameter.
type Param struct {
	// Name is the parameter name as it appears in the request body.
	Name string

	// Type is the semantic type classifier.
	Type TypeTag

	// TypeName is the original type name from the registry, used in the
	// fallback schema description when Type is TypeObject.
	TypeName string

	// Nullable marks the parameter as optional: it is excluded from the
	// request schema's required list and its schema admits null.
	Nullable bool
}

// Method describes one remotely callable operation within an endpoint.
// Params preserve declaration order, which determines schema property order.
type Method struct {
	Name   string
	Params []Param
}

// Endpoint is a named group of remotely callable methods.
type Endpoint struct {
	Name string

	// RequiresAuth is set by the registry. Individual methods may still be
	// exempted by the naming-convention classifier.
	RequiresAuth bool

	Methods []Method
}

// Snapshot is a read-only view of the endpoint registry taken at
// generation time. It is never mutated by this package; concurrent
// generation over the same snapshot needs no synchronization.
type Snapshot struct {
	endpoints []Endpoint
}

// Endpoints returns the endpoints in registry iteration order.
func (s *Snapshot) Endpoints() []Endpoint {
	return s.endpoints
}

// NewSnapshot validates the given endpoints and returns an immutable
// snapshot. An endpoint with zero methods is legal and simply contributes
// no paths.
//
// Validation enforces the registry collaborator's contract so the
// generator never has to resolve collisions itself:
//   - endpoint names must be non-empty and unique (case-sensitive;
//     differing-case endpoint names are legal and produce distinct
//     operation ids)
//   - method names must be non-empty and unique within their endpoint
//     case-insensitively, since two names differing only in case would
//     document the same call
func NewSnapshot(endpoints ...Endpoint) (*Snapshot, error) {
	seenEndpoints := make(map[string]bool, len(endpoints))
	for _, ep := range endpoints {
		if ep.Name == "" {
			return nil, NewError(CodeInvalidRegistry, "endpoint name must not be empty")
		}
		if seenEndpoints[ep.Name] {
			return nil, Errorf(CodeInvalidRegistry, "duplicate endpoint %q", ep.Name).
				WithDetail("endpoint", ep.Name)
		}
		seenEndpoints[ep.Name] = true

		seenMethods := make(map[string]string, len(ep.Methods))
		for _, m := range ep.Methods {
			if m.Name == "" {
				return nil, Errorf(CodeInvalidRegistry, "endpoint %q has a method with an empty name", ep.Name).
					WithDetail("endpoint", ep.Name)
			}
			lower := strings.ToLower(m.Name)
			if prev, ok := seenMethods[lower]; ok {
				return nil, Errorf(CodeInvalidRegistry,
					"endpoint %q: method %q collides with %q (method names must be unique ignoring case)",
					ep.Name, m.Name, prev).
					WithDetail("endpoint", ep.Name).
					WithDetail("method", m.Name)
			}
			seenMethods[lower] = m.Name

			seenParams := make(map[string]bool, len(m.Params))
			for _, p := range m.Params {
				if p.Name == "" {
					return nil, Errorf(CodeInvalidRegistry,
						"endpoint %q: method %q has a parameter with an empty name", ep.Name, m.Name).
						WithDetail("endpoint", ep.Name).
						WithDetail("method", m.Name)
				}
				if seenParams[p.Name] {
					return nil, Errorf(CodeInvalidRegistry,
						"endpoint %q: method %q: duplicate parameter %q", ep.Name, m.Name, p.Name).
						WithDetail("endpoint", ep.Name).
						WithDetail("method", m.Name).
						WithDetail("param", p.Name)
				}
				seenParams[p.Name] = true
			}
		}
	}

	snap := &Snapshot{endpoints: make([]Endpoint, len(endpoints))}
	copy(snap.endpoints, endpoints)
	return snap, nil
}
