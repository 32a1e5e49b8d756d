package rpcdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RenderYAML serializes the document in a YAML-like text form.
//
// This is a minimal emitter for the shapes this generator produces, not a
// general-purpose YAML library: keys and strings are always double-quoted,
// booleans and numbers are emitted bare, lists put one leading dash per
// line with composite content indented one level further.
func RenderYAML(doc *Document) ([]byte, error) {
	data, err := RenderJSON(doc)
	if err != nil {
		return nil, err
	}

	// Going through the structured form keeps numbers exact (no float
	// round-trip) and reduces the emitter to four value kinds.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, Errorf(CodeRenderFailed, "decode document: %v", err)
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil, Errorf(CodeRenderFailed, "document did not serialize to an object")
	}

	var buf bytes.Buffer
	writeYAMLMap(&buf, m, 0)
	return buf.Bytes(), nil
}

const yamlIndent = "  "

func writeYAMLMap(buf *bytes.Buffer, m map[string]any, depth int) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	indent := strings.Repeat(yamlIndent, depth)
	for _, k := range keys {
		switch val := m[k].(type) {
		case map[string]any:
			if len(val) == 0 {
				fmt.Fprintf(buf, "%s%s: {}\n", indent, strconv.Quote(k))
				continue
			}
			fmt.Fprintf(buf, "%s%s:\n", indent, strconv.Quote(k))
			writeYAMLMap(buf, val, depth+1)
		case []any:
			if len(val) == 0 {
				fmt.Fprintf(buf, "%s%s: []\n", indent, strconv.Quote(k))
				continue
			}
			fmt.Fprintf(buf, "%s%s:\n", indent, strconv.Quote(k))
			writeYAMLList(buf, val, depth+1)
		default:
			fmt.Fprintf(buf, "%s%s: %s\n", indent, strconv.Quote(k), yamlScalar(val))
		}
	}
}

func writeYAMLList(buf *bytes.Buffer, items []any, depth int) {
	indent := strings.Repeat(yamlIndent, depth)
	for _, item := range items {
		switch val := item.(type) {
		case map[string]any:
			fmt.Fprintf(buf, "%s-\n", indent)
			writeYAMLMap(buf, val, depth+1)
		case []any:
			fmt.Fprintf(buf, "%s-\n", indent)
			writeYAMLList(buf, val, depth+1)
		default:
			fmt.Fprintf(buf, "%s- %s\n", indent, yamlScalar(val))
		}
	}
}

func yamlScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	case string:
		return strconv.Quote(val)
	default:
		return strconv.Quote(fmt.Sprint(val))
	}
}
