package rpcdoc

import (
	"encoding/json"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

func TestSynthesizeParamTable(t *testing.T) {
	cases := []struct {
		tag      TypeTag
		typeName string
		want     string
	}{
		{TypeInteger, "", `{"type":"integer","format":"int64"}`},
		{TypeFloat, "", `{"type":"number","format":"double"}`},
		{TypeText, "", `{"type":"string"}`},
		{TypeBoolean, "", `{"type":"boolean"}`},
		{TypeTimestamp, "", `{"type":"string","format":"date-time"}`},
		{TypeUUID, "", `{"type":"string","format":"uuid"}`},
		{TypeMapping, "", `{"type":"object","additionalProperties":true}`},
		{TypeSequence, "", `{"type":"array","items":{"type":"object"}}`},
		{TypeObject, "SessionInfo", `{"type":"object","description":"Type: SessionInfo"}`},
		// Unknown tags degrade to the opaque object fallback.
		{TypeTag("mystery"), "", `{"type":"object","description":"Type: mystery"}`},
	}

	for _, c := range cases {
		got := SynthesizeParam(Param{Name: "p", Type: c.tag, TypeName: c.typeName})
		data, err := json.Marshal(got)
		if err != nil {
			t.Fatalf("%s: marshal: %v", c.tag, err)
		}
		assertEqualJSON(t, string(c.tag), c.want, data)
	}
}

// Nullable parameters must carry both the oneOf union with a null-typed
// alternative and the legacy top-level nullable flag.
func TestSynthesizeParamNullable(t *testing.T) {
	got := SynthesizeParam(Param{Name: "bio", Type: TypeText, Nullable: true})

	if !got.Nullable {
		t.Error("expected nullable flag")
	}
	if len(got.OneOf) != 2 {
		t.Fatalf("expected oneOf with 2 alternatives, got %d", len(got.OneOf))
	}
	if got.OneOf[0].Type != "string" {
		t.Errorf("expected base alternative first, got %q", got.OneOf[0].Type)
	}
	if got.OneOf[1].Type != "null" {
		t.Errorf("expected null alternative, got %q", got.OneOf[1].Type)
	}
}

// The synthesized fragments must be real JSON Schema: compile each one and
// check it accepts and rejects the right instances.
func TestSynthesizedFragmentsValidate(t *testing.T) {
	cases := []struct {
		name    string
		param   Param
		valid   []string
		invalid []string
	}{
		{"integer", Param{Type: TypeInteger}, []string{`42`}, []string{`"x"`, `1.5`}},
		{"float", Param{Type: TypeFloat}, []string{`1.5`, `3`}, []string{`"x"`}},
		{"text", Param{Type: TypeText}, []string{`"hello"`}, []string{`5`, `null`}},
		{"boolean", Param{Type: TypeBoolean}, []string{`true`, `false`}, []string{`"true"`}},
		{"mapping", Param{Type: TypeMapping}, []string{`{"a":1}`}, []string{`[1]`}},
		{"sequence", Param{Type: TypeSequence}, []string{`[{"a":1}]`}, []string{`{"a":1}`, `[1]`}},
		{"nullable text", Param{Type: TypeText, Nullable: true}, []string{`"hello"`, `null`}, []string{`5`}},
	}

	for _, c := range cases {
		fragment, err := json.Marshal(SynthesizeParam(c.param))
		if err != nil {
			t.Fatalf("%s: marshal: %v", c.name, err)
		}
		sch, err := jsonschema.CompileString(c.name+".json", string(fragment))
		if err != nil {
			t.Fatalf("%s: compile %s: %v", c.name, fragment, err)
		}

		for _, instance := range c.valid {
			var v any
			if err := json.Unmarshal([]byte(instance), &v); err != nil {
				t.Fatalf("%s: bad instance %s: %v", c.name, instance, err)
			}
			if err := sch.Validate(v); err != nil {
				t.Errorf("%s: expected %s to validate: %v", c.name, instance, err)
			}
		}
		for _, instance := range c.invalid {
			var v any
			if err := json.Unmarshal([]byte(instance), &v); err != nil {
				t.Fatalf("%s: bad instance %s: %v", c.name, instance, err)
			}
			if err := sch.Validate(v); err == nil {
				t.Errorf("%s: expected %s to be rejected", c.name, instance)
			}
		}
	}
}

func TestLoginResponseSchema(t *testing.T) {
	s := loginResponseSchema()

	if got := s.Required; len(got) != 2 || got[0] != "keyId" || got[1] != "key" {
		t.Errorf("expected required [keyId key], got %v", got)
	}
	if _, ok := s.Properties.Get("userInfo"); !ok {
		t.Error("expected optional userInfo property")
	}
	example, ok := s.Example.(map[string]any)
	if !ok {
		t.Fatal("expected a worked example")
	}
	if _, ok := example["keyId"]; !ok {
		t.Error("expected example keyId")
	}
}

func assertEqualJSON(t *testing.T, name, want string, got []byte) {
	t.Helper()
	var wantV, gotV any
	if err := json.Unmarshal([]byte(want), &wantV); err != nil {
		t.Fatalf("%s: bad want: %v", name, err)
	}
	if err := json.Unmarshal(got, &gotV); err != nil {
		t.Fatalf("%s: bad got: %v", name, err)
	}
	wantN, _ := json.Marshal(wantV)
	gotN, _ := json.Marshal(gotV)
	if string(wantN) != string(gotN) {
		t.Errorf("%s: got %s, want %s", name, got, want)
	}
}
