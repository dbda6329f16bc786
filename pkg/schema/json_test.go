// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestFromJSONBasicKeywords(t *testing.T) {
	data := []byte(`{
		"title": "Address",
		"type": "object",
		"properties": {
			"street": {"type": "string", "minLength": 1},
			"zip": {"type": "integer", "minimum": 0}
		},
		"required": ["street"],
		"additionalProperties": false
	}`)

	s, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if s.Title == nil || *s.Title != "Address" {
		t.Errorf("Title = %v, want %q", s.Title, "Address")
	}
	if len(s.Type) != 1 || s.Type[0] != TypeObject {
		t.Errorf("Type = %v, want [object]", s.Type)
	}
	if s.Properties.Len() != 2 {
		t.Fatalf("Properties.Len() = %d, want 2", s.Properties.Len())
	}
	street, ok := s.Properties.Get("street")
	if !ok || street.MinLength == nil || *street.MinLength != 1 {
		t.Errorf("street.MinLength = %v, want 1", street.MinLength)
	}
	if len(s.Required) != 1 || s.Required[0] != "street" {
		t.Errorf("Required = %v, want [street]", s.Required)
	}
	if s.AdditionalProperties == nil || s.AdditionalProperties.Bool == nil || *s.AdditionalProperties.Bool != false {
		t.Errorf("AdditionalProperties = %+v, want Bool=false", s.AdditionalProperties)
	}
}

func TestFromJSONTypeArray(t *testing.T) {
	s, err := FromJSON([]byte(`{"type": ["string", "null"]}`))
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	want := []Type{TypeString, TypeNull}
	if !reflect.DeepEqual(s.Type, want) {
		t.Errorf("Type = %v, want %v", s.Type, want)
	}
}

func TestFromJSONRejectsNonObject(t *testing.T) {
	if _, err := FromJSON([]byte(`true`)); err == nil {
		t.Fatal("FromJSON(true): got nil error, want one (Draft 4 has no boolean schemas)")
	}
}

func TestFromJSONMalformed(t *testing.T) {
	if _, err := FromJSON([]byte(`{`)); err == nil {
		t.Fatal("FromJSON on truncated JSON: got nil error, want one")
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	original := []byte(`{"type":"object","properties":{"a":{"type":"string"},"b":{"type":"integer"}},"required":["a"],"minProperties":1}`)

	s, err := FromJSON(original)
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var gotAny, wantAny any
	if err := json.Unmarshal(out, &gotAny); err != nil {
		t.Fatalf("re-unmarshal of written JSON failed: %v", err)
	}
	if err := json.Unmarshal(original, &wantAny); err != nil {
		t.Fatalf("unmarshal of original JSON failed: %v", err)
	}
	if !reflect.DeepEqual(gotAny, wantAny) {
		t.Errorf("write(read(t)) not JSON-equivalent to t:\ngot  %s\nwant %s", out, original)
	}
}

func TestReadWriteReadStructuralEquality(t *testing.T) {
	data := []byte(`{
		"type": "object",
		"definitions": {"pos": {"type": "integer", "minimum": 0}},
		"properties": {"count": {"$ref": "#/definitions/pos"}},
		"patternProperties": {"^x-": {"type": "string"}},
		"oneOf": [{"type": "string"}, {"type": "null"}]
	}`)

	s1, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	out, err := json.Marshal(s1)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	s2, err := FromJSON(out)
	if err != nil {
		t.Fatalf("re-parse of written JSON failed: %v", err)
	}
	if !s1.Equal(s2) {
		t.Errorf("read(write(s)) is not structurally equal to s")
	}
}

func TestPropertyOrderPreserved(t *testing.T) {
	data := []byte(`{"type":"object","properties":{"z":{},"a":{},"m":{}}}`)
	s, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	want := []string{"z", "a", "m"}
	if !reflect.DeepEqual(s.Properties.Names, want) {
		t.Errorf("Properties.Names = %v, want %v", s.Properties.Names, want)
	}

	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	// Confirm the written bytes mention z before a before m.
	iz := indexOf(out, `"z"`)
	ia := indexOf(out, `"a"`)
	im := indexOf(out, `"m"`)
	if !(iz < ia && ia < im) {
		t.Errorf("written property order not preserved: %s", out)
	}
}

func indexOf(b []byte, sub string) int {
	for i := 0; i+len(sub) <= len(b); i++ {
		if string(b[i:i+len(sub)]) == sub {
			return i
		}
	}
	return -1
}

func TestUnrecognizedKeywordPreserved(t *testing.T) {
	data := []byte(`{"type":"string","x-vendor":{"note":"kept"}}`)
	s, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if indexOf(out, `"x-vendor"`) < 0 {
		t.Errorf("unrecognized keyword dropped by round trip: %s", out)
	}
}
