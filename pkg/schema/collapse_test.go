// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import "testing"

func TestCollapseInlinesReference(t *testing.T) {
	root, err := FromJSON([]byte(`{
		"type": "object",
		"definitions": {
			"positiveInt": {"type": "integer", "minimum": 0, "exclusiveMinimum": true}
		},
		"properties": {
			"count": {"$ref": "#/definitions/positiveInt"}
		}
	}`))
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}

	collapsed, err := Collapse(root)
	if err != nil {
		t.Fatalf("Collapse() error = %v", err)
	}

	count, ok := collapsed.Properties.Get("count")
	if !ok {
		t.Fatal(`Properties.Get("count") not found`)
	}
	if count.Reference != nil {
		t.Error("collapsed node still carries a Reference")
	}
	if len(count.Type) != 1 || count.Type[0] != TypeInteger {
		t.Errorf("Type = %v, want [integer]", count.Type)
	}
	// "minimum" and "exclusiveMinimum" are not among the fields collapse
	// copies from a definition.
	if count.Minimum != nil {
		t.Errorf("Minimum = %v, want nil", *count.Minimum)
	}
	if count.ExclusiveMinimum != nil {
		t.Errorf("ExclusiveMinimum = %v, want nil", *count.ExclusiveMinimum)
	}
}

func TestCollapseDoesNotDescendIntoAllOf(t *testing.T) {
	root, err := FromJSON([]byte(`{
		"definitions": {"str": {"type": "string"}},
		"allOf": [{"$ref": "#/definitions/str"}]
	}`))
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}

	collapsed, err := Collapse(root)
	if err != nil {
		t.Fatalf("Collapse() error = %v", err)
	}
	if collapsed.AllOf[0].Reference == nil {
		t.Error("collapse inlined a $ref nested under allOf, but it should be left untouched")
	}
}

func TestCollapseUnsupportedReferenceForm(t *testing.T) {
	root, err := FromJSON([]byte(`{"$ref": "https://example.com/other.json"}`))
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if _, err := Collapse(root); err == nil {
		t.Fatal("Collapse() with a non-fragment $ref: got nil error, want one")
	}
}

func TestCollapseDefinitionNotFound(t *testing.T) {
	root, err := FromJSON([]byte(`{"$ref": "#/definitions/missing"}`))
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if _, err := Collapse(root); err == nil {
		t.Fatal("Collapse() with a missing definition: got nil error, want one")
	}
}

func TestCollapseDoesNotMutateOriginal(t *testing.T) {
	root, err := FromJSON([]byte(`{
		"definitions": {"str": {"type": "string"}},
		"properties": {"name": {"$ref": "#/definitions/str"}}
	}`))
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if _, err := Collapse(root); err != nil {
		t.Fatalf("Collapse() error = %v", err)
	}
	name, _ := root.Properties.Get("name")
	if name.Reference == nil {
		t.Error("Collapse mutated the original schema's property, want a clone left untouched")
	}
}
