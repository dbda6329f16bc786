// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator

import (
	"testing"

	"github.com/go-schemakit/draft4/pkg/schema"
)

func mustSchema(t *testing.T, text string) *schema.Schema {
	t.Helper()
	s, err := schema.FromJSON([]byte(text))
	if err != nil {
		t.Fatalf("schema.FromJSON() error = %v", err)
	}
	collapsed, err := schema.Collapse(s)
	if err != nil {
		t.Fatalf("schema.Collapse() error = %v", err)
	}
	return collapsed
}

func TestValidateValid(t *testing.T) {
	s := mustSchema(t, `{
		"type": "object",
		"properties": {"name": {"type": "string"}},
		"required": ["name"]
	}`)
	msgs, err := New(s).Validate([]byte(`{"name": "ok"}`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("Validate() = %v, want no diagnostics", msgs)
	}
}

func TestValidateWrongType(t *testing.T) {
	s := mustSchema(t, `{"type": "string"}`)
	msgs, err := New(s).Validate([]byte(`42`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("Validate() = %v, want exactly one diagnostic", msgs)
	}
	want := `#: value has type "Integer", want one of [String]`
	if msgs[0] != want {
		t.Errorf("Validate()[0] = %q, want %q", msgs[0], want)
	}
}

func TestValidateIntegerSatisfiesNumber(t *testing.T) {
	s := mustSchema(t, `{"type": "number"}`)
	msgs, err := New(s).Validate([]byte(`3`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("Validate() = %v, want no diagnostics (Integer is a subset of Number)", msgs)
	}
}

func TestValidateRequiredPropertyMissing(t *testing.T) {
	s := mustSchema(t, `{"type": "object", "required": ["id"]}`)
	msgs, err := New(s).Validate([]byte(`{}`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(msgs) != 1 || msgs[0] != `#: required property "id" is missing` {
		t.Errorf("Validate() = %v", msgs)
	}
}

func TestValidateAdditionalPropertiesProhibited(t *testing.T) {
	s := mustSchema(t, `{
		"type": "object",
		"properties": {"a": {}},
		"additionalProperties": false
	}`)
	msgs, err := New(s).Validate([]byte(`{"a": 1, "b": 2}`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(msgs) != 1 || msgs[0] != `#: additional property "b" is not permitted` {
		t.Errorf("Validate() = %v", msgs)
	}
}

func TestValidatePatternProperties(t *testing.T) {
	s := mustSchema(t, `{
		"type": "object",
		"patternProperties": {"^x-": {"type": "string"}},
		"additionalProperties": false
	}`)
	msgs, err := New(s).Validate([]byte(`{"x-note": "ok"}`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("Validate() = %v, want no diagnostics", msgs)
	}
}

func TestValidateEnum(t *testing.T) {
	s := mustSchema(t, `{"enum": ["a", "b"]}`)
	msgs, err := New(s).Validate([]byte(`"c"`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(msgs) != 1 || msgs[0] != `#: value "c" does not match any enum value` {
		t.Errorf("Validate() = %v", msgs)
	}
}

func TestValidateAllOf(t *testing.T) {
	s := mustSchema(t, `{"allOf": [{"type": "integer"}, {"minimum": 0}]}`)
	msgs, err := New(s).Validate([]byte(`-1`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(msgs) != 1 || msgs[0] != `#: value does not satisfy all 2 allOf schemas` {
		t.Errorf("Validate() = %v", msgs)
	}
}

func TestValidateAnyOf(t *testing.T) {
	s := mustSchema(t, `{"anyOf": [{"type": "string"}, {"type": "integer"}]}`)
	msgs, err := New(s).Validate([]byte(`true`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(msgs) != 1 || msgs[0] != `#: value does not satisfy any of 2 anyOf schemas` {
		t.Errorf("Validate() = %v", msgs)
	}
}

func TestValidateOneOfMultipleMatch(t *testing.T) {
	s := mustSchema(t, `{"oneOf": [{"type": "integer"}, {"minimum": 0}]}`)
	msgs, err := New(s).Validate([]byte(`5`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(msgs) != 1 || msgs[0] != `#: value satisfies 2 of 2 oneOf schemas, want exactly one` {
		t.Errorf("Validate() = %v", msgs)
	}
}

func TestValidateNot(t *testing.T) {
	s := mustSchema(t, `{"not": {"type": "string"}}`)
	msgs, err := New(s).Validate([]byte(`"hi"`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(msgs) != 1 || msgs[0] != `#: value validates against the not schema` {
		t.Errorf("Validate() = %v", msgs)
	}
}

func TestValidateUniqueItems(t *testing.T) {
	s := mustSchema(t, `{"type": "array", "uniqueItems": true}`)
	msgs, err := New(s).Validate([]byte(`[1, 2, 1]`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(msgs) != 1 || msgs[0] != `#: array items are not unique` {
		t.Errorf("Validate() = %v", msgs)
	}
}

func TestValidateItemsTuple(t *testing.T) {
	s := mustSchema(t, `{"items": [{"type": "string"}, {"type": "integer"}]}`)
	msgs, err := New(s).Validate([]byte(`["ok", "not-int"]`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("Validate() = %v, want exactly one diagnostic", msgs)
	}
	want := `#/1: value has type "String", want one of [Integer]`
	if msgs[0] != want {
		t.Errorf("Validate()[0] = %q, want %q", msgs[0], want)
	}
}

func TestValidateNestedPathPointer(t *testing.T) {
	s := mustSchema(t, `{
		"type": "object",
		"properties": {"tags": {"type": "array", "items": {"type": "string"}}}
	}`)
	msgs, err := New(s).Validate([]byte(`{"tags": ["a", 2]}`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	want := `#/tags/1: value has type "Integer", want one of [String]`
	if len(msgs) != 1 || msgs[0] != want {
		t.Errorf("Validate() = %v, want [%q]", msgs, want)
	}
}

func TestValidateMultipleOf(t *testing.T) {
	s := mustSchema(t, `{"multipleOf": 2}`)
	msgs, err := New(s).Validate([]byte(`3`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("Validate() = %v, want exactly one diagnostic", msgs)
	}
}

func TestValidateFormatOptIn(t *testing.T) {
	s := mustSchema(t, `{"type": "string", "format": "ipv4"}`)

	msgs, err := New(s).Validate([]byte(`"not-an-ip"`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("Validate() with format checking disabled = %v, want no diagnostics", msgs)
	}

	msgs, err = NewWithOptions(s, Options{CheckFormat: true}).Validate([]byte(`"not-an-ip"`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(msgs) != 1 {
		t.Errorf("Validate() with format checking enabled = %v, want one diagnostic", msgs)
	}
}

func TestValidateUnresolvableReference(t *testing.T) {
	raw, err := schema.FromJSON([]byte(`{"$ref": "#/definitions/missing"}`))
	if err != nil {
		t.Fatalf("schema.FromJSON() error = %v", err)
	}
	if _, err := New(raw).Validate([]byte(`{}`)); err == nil {
		t.Fatal("Validate() against an unresolvable $ref: got nil error, want one")
	}
}
