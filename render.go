package rpcdoc

import (
	"encoding/json"
)

// RenderJSON serializes the document in compact form.
//
// The document is always built internally from acyclic value types, so a
// marshal failure indicates a construction bug; it is surfaced as a
// render_failed error rather than a panic.
func RenderJSON(doc *Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, Errorf(CodeRenderFailed, "marshal document: %v", err)
	}
	return data, nil
}

// RenderJSONIndent serializes the document in pretty (indented) form.
func RenderJSONIndent(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, Errorf(CodeRenderFailed, "marshal document: %v", err)
	}
	return data, nil
}

// ParseDocument parses a serialized document back into its structured
// form. Together with RenderJSON it satisfies the round-trip law:
// parsing a rendered document yields a structurally equal document.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, Errorf(CodeRenderFailed, "parse document: %v", err)
	}
	return &doc, nil
}
