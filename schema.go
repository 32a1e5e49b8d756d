package rpcdoc

import (
	"github.com/google/uuid"
)

// SynthesizeParam maps a parameter descriptor to its schema fragment.
// It is a total function: unknown type tags degrade to an opaque object
// schema carrying the original type name, never an error.
func SynthesizeParam(p Param) *Schema {
	base := baseSchema(p)
	if !p.Nullable {
		return base
	}
	// Both the oneOf union and the legacy nullable flag are emitted so
	// consumers on either side of the OpenAPI 3.0/3.1 split understand the
	// parameter admits null.
	return &Schema{
		OneOf:    []*Schema{base, {Type: "null"}},
		Nullable: true,
	}
}

func baseSchema(p Param) *Schema {
	switch p.Type {
	case TypeInteger:
		return &Schema{Type: "integer", Format: "int64"}
	case TypeFloat:
		return &Schema{Type: "number", Format: "double"}
	case TypeText:
		return &Schema{Type: "string"}
	case TypeBoolean:
		return &Schema{Type: "boolean"}
	case TypeTimestamp:
		return &Schema{Type: "string", Format: "date-time"}
	case TypeUUID:
		return &Schema{Type: "string", Format: "uuid"}
	case TypeMapping:
		return &Schema{Type: "object", AdditionalProperties: boolPtr(true)}
	case TypeSequence:
		return &Schema{Type: "array", Items: &Schema{Type: "object"}}
	default:
		name := p.TypeName
		if name == "" {
			name = string(p.Type)
		}
		return &Schema{Type: "object", Description: "Type: " + name}
	}
}

// loginKeyExample keeps the worked example's key id a structurally valid
// UUID so copy-pasting it into clients exercises real parsing paths.
var loginKeyExample = uuid.MustParse("7d9f42a1-63c8-4f0b-9b1e-2a54c7d8e90f")

// loginResponseSchema is the fixed authentication-success shape emitted
// for a method named exactly "login".
func loginResponseSchema() *Schema {
	return &Schema{
		Type: "object",
		Properties: Properties{
			{Name: "keyId", Schema: &Schema{Type: "string", Format: "uuid"}},
			{Name: "key", Schema: &Schema{Type: "string"}},
			{Name: "userInfo", Schema: &Schema{Type: "object", AdditionalProperties: boolPtr(true)}},
		},
		Required: []string{"keyId", "key"},
		Example: map[string]any{
			"keyId": loginKeyExample.String(),
			"key":   "base64-encoded-session-key",
			"userInfo": map[string]any{
				"email": "user@example.com",
			},
		},
	}
}

// genericResponseSchema is the open object shape documented for every
// method that is not a login.
func genericResponseSchema() *Schema {
	return &Schema{Type: "object", AdditionalProperties: boolPtr(true)}
}

func boolPtr(b bool) *bool {
	return &b
}
