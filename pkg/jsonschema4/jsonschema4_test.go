// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema4

import "testing"

func TestValidateEndToEnd(t *testing.T) {
	schemaData := []byte(`{
		"type": "object",
		"definitions": {"nonNegative": {"type": "integer", "minimum": 0}},
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"age": {"$ref": "#/definitions/nonNegative"}
		},
		"required": ["name"]
	}`)

	msgs, err := Validate(schemaData, []byte(`{"name": "", "age": 1.5}`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("Validate() = %v, want 2 diagnostics", msgs)
	}
}

func TestValidateRejectsMalformedSchema(t *testing.T) {
	if _, err := Validate([]byte(`{`), []byte(`{}`)); err == nil {
		t.Fatal("Validate() with malformed schema JSON: got nil error, want one")
	}
}

func TestNewValidatorReuse(t *testing.T) {
	s, err := New([]byte(`{"type": "integer"}`))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	collapsed, err := Collapse(s)
	if err != nil {
		t.Fatalf("Collapse() error = %v", err)
	}
	v := NewValidator(collapsed)

	if msgs, err := v.Validate([]byte(`5`)); err != nil || len(msgs) != 0 {
		t.Errorf("Validate(5) = (%v, %v), want (nil, nil)", msgs, err)
	}
	if msgs, err := v.Validate([]byte(`"x"`)); err != nil || len(msgs) != 1 {
		t.Errorf(`Validate("x") = (%v, %v), want one diagnostic`, msgs, err)
	}
}
