package rpcdoc

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Meta is the document metadata supplied by the caller.
type Meta struct {
	Title       string `validate:"required"`
	Version     string `validate:"required"`
	Description string

	// ServerURL, when set, is emitted as the document's single server.
	ServerURL         string `validate:"omitempty,url"`
	ServerDescription string
}

// openAPIVersion is the only target document format version.
const openAPIVersion = "3.0.3"

// bearerDescription is the fixed instructional text on the security scheme.
const bearerDescription = "Call your identity provider endpoint's login method to obtain a session " +
	"token, then send it on every authenticated call as: Authorization: Bearer <token>."

// Generate walks the registry snapshot and produces the OpenAPI document.
//
// Generation is deterministic for identical snapshot contents: endpoints
// and methods are visited in registry iteration order, and every run
// allocates a fresh document, so concurrent callers may share a snapshot
// freely.
func Generate(snap *Snapshot, meta Meta) (*Document, error) {
	if snap == nil {
		return nil, NewError(CodeInvalidRegistry, "nil registry snapshot")
	}
	if err := validate.Struct(meta); err != nil {
		return nil, metadataError(err)
	}

	doc := &Document{
		OpenAPI: openAPIVersion,
		Info: Info{
			Title:       meta.Title,
			Version:     meta.Version,
			Description: meta.Description,
		},
		Paths: make(map[string]PathItem),
		Components: Components{
			SecuritySchemes: map[string]*SecurityScheme{
				"bearerAuth": {
					Type:         "http",
					Scheme:       "bearer",
					BearerFormat: "JWT",
					Description:  bearerDescription,
				},
			},
		},
	}
	if meta.ServerURL != "" {
		doc.Servers = []Server{{URL: meta.ServerURL, Description: meta.ServerDescription}}
	}

	seenOperationIDs := make(map[string]bool)
	for _, ep := range snap.Endpoints() {
		for _, m := range ep.Methods {
			op := buildOperation(ep, m)
			if seenOperationIDs[op.OperationID] {
				// Structurally impossible given snapshot validation, but an
				// operationId collision would silently corrupt the document,
				// so it is checked rather than assumed away.
				return nil, Errorf(CodeConflict, "duplicate operationId %q", op.OperationID).
					WithDetail("endpoint", ep.Name).
					WithDetail("method", m.Name)
			}
			seenOperationIDs[op.OperationID] = true

			path := "/" + ep.Name + "/" + m.Name
			verb := strings.ToLower(string(ClassifyVerb(m.Name)))
			if doc.Paths[path] == nil {
				doc.Paths[path] = make(PathItem)
			}
			doc.Paths[path][verb] = op
		}
	}

	return doc, nil
}

func buildOperation(ep Endpoint, m Method) *Operation {
	op := &Operation{
		OperationID: ep.Name + "_" + m.Name,
		Summary:     DisplayLabel(m.Name),
		Tags:        []string{ep.Name},
		RequestBody: &RequestBody{
			Required: true,
			Content: map[string]MediaType{
				"application/json": {Schema: requestSchema(m)},
			},
		},
		Responses: Responses{
			"200": {
				Description: "Successful response",
				Content: map[string]MediaType{
					"application/json": {Schema: responseSchema(m)},
				},
			},
		},
		RPCPath:   "/" + ep.Name,
		RPCMethod: m.Name,
		RPCVerb:   string(VerbPost),
	}

	if ep.RequiresAuth && !AuthExempt(ep.Name, m.Name) {
		op.Security = []SecurityRequirement{{"bearerAuth": {}}}
	}
	return op
}

// requestSchema builds the request body schema: the transport's method
// discriminator, then one property per declared parameter in order.
// Required lists the method field first and every non-nullable parameter.
func requestSchema(m Method) *Schema {
	props := make(Properties, 0, len(m.Params)+1)
	props = append(props, Property{
		Name:   "method",
		Schema: &Schema{Type: "string", Enum: []string{m.Name}},
	})
	required := []string{"method"}

	for _, p := range m.Params {
		props = append(props, Property{Name: p.Name, Schema: SynthesizeParam(p)})
		if !p.Nullable {
			required = append(required, p.Name)
		}
	}

	return &Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

// responseSchema is method-name-sensitive: a method named exactly "login"
// documents the fixed authentication-success shape.
func responseSchema(m Method) *Schema {
	if m.Name == "login" {
		return loginResponseSchema()
	}
	return genericResponseSchema()
}
