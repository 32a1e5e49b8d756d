package rpcdoc

import (
	"errors"
	"testing"
)

func TestNewSnapshot(t *testing.T) {
	snap, err := NewSnapshot(
		Endpoint{Name: "user", RequiresAuth: true, Methods: []Method{
			{Name: "listUsers"},
			{Name: "createUser", Params: []Param{
				{Name: "name", Type: TypeText},
				{Name: "email", Type: TypeText},
			}},
		}},
		Endpoint{Name: "health"},
	)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	if got := len(snap.Endpoints()); got != 2 {
		t.Errorf("expected 2 endpoints, got %d", got)
	}
}

func TestNewSnapshotZeroMethodEndpoint(t *testing.T) {
	// An endpoint with zero methods is legal; it simply contributes no paths.
	snap, err := NewSnapshot(Endpoint{Name: "empty"})
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	doc, err := Generate(snap, Meta{Title: "t", Version: "1"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(doc.Paths) != 0 {
		t.Errorf("expected no paths, got %d", len(doc.Paths))
	}
}

func TestNewSnapshotRejectsDuplicateEndpoint(t *testing.T) {
	_, err := NewSnapshot(Endpoint{Name: "user"}, Endpoint{Name: "user"})
	assertRegistryError(t, err)
}

// Method names differing only in case document the same call and must be
// rejected by the registry layer, never silently merged downstream.
func TestNewSnapshotRejectsCaseInsensitiveMethodCollision(t *testing.T) {
	_, err := NewSnapshot(Endpoint{Name: "user", Methods: []Method{
		{Name: "listUsers"},
		{Name: "ListUsers"},
	}})
	assertRegistryError(t, err)
}

func TestNewSnapshotAllowsDifferingCaseEndpoints(t *testing.T) {
	// Endpoint uniqueness is case-sensitive; the operation ids stay distinct.
	snap, err := NewSnapshot(Endpoint{Name: "user", Methods: []Method{{Name: "get"}}},
		Endpoint{Name: "User", Methods: []Method{{Name: "get"}}})
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	doc, err := Generate(snap, Meta{Title: "t", Version: "1"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if doc.Paths["/user/get"]["get"].OperationID == doc.Paths["/User/get"]["get"].OperationID {
		t.Error("expected distinct operation ids for differing-case endpoints")
	}
}

func TestNewSnapshotRejectsEmptyNames(t *testing.T) {
	cases := []struct {
		name      string
		endpoints []Endpoint
	}{
		{"endpoint", []Endpoint{{Name: ""}}},
		{"method", []Endpoint{{Name: "user", Methods: []Method{{Name: ""}}}}},
		{"param", []Endpoint{{Name: "user", Methods: []Method{
			{Name: "createUser", Params: []Param{{Name: "", Type: TypeText}}},
		}}}},
	}
	for _, c := range cases {
		if _, err := NewSnapshot(c.endpoints...); err == nil {
			t.Errorf("%s: expected error for empty name", c.name)
		}
	}
}

func TestNewSnapshotRejectsDuplicateParam(t *testing.T) {
	_, err := NewSnapshot(Endpoint{Name: "user", Methods: []Method{
		{Name: "createUser", Params: []Param{
			{Name: "name", Type: TypeText},
			{Name: "name", Type: TypeText},
		}},
	}})
	assertRegistryError(t, err)
}

func TestSnapshotIsolatedFromCallerSlice(t *testing.T) {
	endpoints := []Endpoint{{Name: "user", Methods: []Method{{Name: "listUsers"}}}}
	snap, err := NewSnapshot(endpoints...)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	endpoints[0] = Endpoint{Name: "mutated"}
	if snap.Endpoints()[0].Name != "user" {
		t.Error("snapshot shares backing storage with caller slice")
	}
}

func assertRegistryError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	var docErr *Error
	if !errors.As(err, &docErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if docErr.Code != CodeInvalidRegistry {
		t.Errorf("expected code %s, got %s", CodeInvalidRegistry, docErr.Code)
	}
}
