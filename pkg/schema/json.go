// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-schemakit/draft4/pkg/diag"
	"github.com/go-schemakit/draft4/pkg/instance"
	"github.com/go-schemakit/draft4/pkg/uriref"
)

// This module hand-decodes into an ordered representation before
// building a Schema, rather than unmarshaling into map[string]any:
// Go's map iteration order is randomized, and the specification
// requires that a "properties"/"definitions"/"patternProperties" map
// preserve its input order on the way back out.

// jval is a parsed JSON value that keeps object key order.
type jval struct {
	kind jkind
	b    bool
	num  json.Number
	str  string
	arr  []jval
	obj  *jobj
}

type jkind int

const (
	jNull jkind = iota
	jBool
	jNumber
	jString
	jArray
	jObject
)

type jobj struct {
	names []string
	m     map[string]jval
}

func (o *jobj) get(name string) (jval, bool) {
	v, ok := o.m[name]
	return v, ok
}

func (o *jobj) set(name string, v jval) {
	if o.m == nil {
		o.m = make(map[string]jval)
	}
	if _, ok := o.m[name]; !ok {
		o.names = append(o.names, name)
	}
	o.m[name] = v
}

func decodeJVal(dec *json.Decoder) (jval, error) {
	tok, err := dec.Token()
	if err != nil {
		return jval{}, err
	}
	return decodeJValToken(dec, tok)
}

func decodeJValToken(dec *json.Decoder, tok json.Token) (jval, error) {
	switch t := tok.(type) {
	case nil:
		return jval{kind: jNull}, nil
	case bool:
		return jval{kind: jBool, b: t}, nil
	case string:
		return jval{kind: jString, str: t}, nil
	case json.Number:
		return jval{kind: jNumber, num: t}, nil
	case json.Delim:
		switch t {
		case '[':
			var arr []jval
			for dec.More() {
				e, err := decodeJVal(dec)
				if err != nil {
					return jval{}, err
				}
				arr = append(arr, e)
			}
			if _, err := dec.Token(); err != nil {
				return jval{}, err
			}
			return jval{kind: jArray, arr: arr}, nil
		case '{':
			obj := &jobj{}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return jval{}, err
				}
				key, ok := kt.(string)
				if !ok {
					return jval{}, fmt.Errorf("object key is not a string")
				}
				v, err := decodeJVal(dec)
				if err != nil {
					return jval{}, err
				}
				obj.set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return jval{}, err
			}
			return jval{kind: jObject, obj: obj}, nil
		}
	}
	return jval{}, fmt.Errorf("unexpected JSON token %v", tok)
}

// UnmarshalJSON decodes a schema from JSON text. This implements
// [encoding/json.Unmarshaler] so that a Schema embedded in a larger
// document decodes correctly, but the primary entry point most callers
// want is [FromJSON], which reports parse failures as a
// [diag.StructuralError].
func (s *Schema) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	jv, err := decodeJVal(dec)
	if err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("trailing data after schema JSON")
	}
	return s.fromJVal(jv)
}

// FromJSON parses data into a new Schema. Failures are reported as a
// [*diag.StructuralError] with kind [diag.MalformedJson] or
// [diag.TypeMismatch] or [diag.InvalidReferenceForm].
func FromJSON(data []byte) (*Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	jv, err := decodeJVal(dec)
	if err != nil {
		return nil, &diag.StructuralError{Kind: diag.MalformedJson, Args: []any{err.Error()}}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &diag.StructuralError{Kind: diag.MalformedJson, Args: []any{"trailing data"}}
	}
	s := New()
	if err := s.fromJVal(jv); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schema) fromJVal(jv jval) error {
	if jv.kind != jObject {
		return &diag.StructuralError{Kind: diag.TypeMismatch, Args: []any{"schema", "object"}}
	}
	for _, name := range jv.obj.names {
		val, _ := jv.obj.get(name)
		if err := s.setKeyword(name, val); err != nil {
			return err
		}
	}
	return nil
}

func typeMismatch(keyword, want string) error {
	return &diag.StructuralError{Kind: diag.TypeMismatch, Args: []any{keyword, want}}
}

func (s *Schema) setKeyword(name string, v jval) error {
	switch name {
	case "id":
		str, err := wantString(name, v)
		if err != nil {
			return err
		}
		u := uriref.Parse(str)
		s.ID = &u
	case "$schema":
		str, err := wantString(name, v)
		if err != nil {
			return err
		}
		s.SchemaVersion = &str
	case "title":
		str, err := wantString(name, v)
		if err != nil {
			return err
		}
		s.Title = &str
	case "description":
		str, err := wantString(name, v)
		if err != nil {
			return err
		}
		s.Description = &str
	case "type":
		types, err := parseTypeValue(v)
		if err != nil {
			return err
		}
		s.Type = types
	case "enum":
		if v.kind != jArray {
			return typeMismatch(name, "array")
		}
		for _, e := range v.arr {
			iv, err := jvalToInstance(e)
			if err != nil {
				return err
			}
			s.Enum = append(s.Enum, iv)
		}
	case "items":
		items, err := parseItems(v)
		if err != nil {
			return err
		}
		s.Items = items
	case "properties":
		m, err := parseSchemaMap(name, v)
		if err != nil {
			return err
		}
		s.Properties = m
	case "definitions":
		m, err := parseSchemaMap(name, v)
		if err != nil {
			return err
		}
		s.Definitions = m
	case "patternProperties":
		m, err := parseSchemaMap(name, v)
		if err != nil {
			return err
		}
		s.PatternProps = m
	case "required":
		strs, err := wantStringArray(name, v)
		if err != nil {
			return err
		}
		s.Required = strs
	case "additionalProperties":
		ap, err := parseAdditionalProperties(v)
		if err != nil {
			return err
		}
		s.AdditionalProperties = ap
	case "maxProperties":
		n, err := wantInt(name, v)
		if err != nil {
			return err
		}
		s.MaxProperties = &n
	case "minProperties":
		n, err := wantInt(name, v)
		if err != nil {
			return err
		}
		s.MinProperties = &n
	case "maxLength":
		n, err := wantInt(name, v)
		if err != nil {
			return err
		}
		s.MaxLength = &n
	case "minLength":
		n, err := wantInt(name, v)
		if err != nil {
			return err
		}
		s.MinLength = &n
	case "maxItems":
		n, err := wantInt(name, v)
		if err != nil {
			return err
		}
		s.MaxItems = &n
	case "minItems":
		n, err := wantInt(name, v)
		if err != nil {
			return err
		}
		s.MinItems = &n
	case "pattern":
		str, err := wantString(name, v)
		if err != nil {
			return err
		}
		s.Pattern = &str
	case "format":
		str, err := wantString(name, v)
		if err != nil {
			return err
		}
		s.Format = &str
	case "multipleOf":
		f, err := wantFloat(name, v)
		if err != nil {
			return err
		}
		s.MultipleOf = &f
	case "maximum":
		f, err := wantFloat(name, v)
		if err != nil {
			return err
		}
		s.Maximum = &f
	case "minimum":
		f, err := wantFloat(name, v)
		if err != nil {
			return err
		}
		s.Minimum = &f
	case "exclusiveMaximum":
		b, err := wantBool(name, v)
		if err != nil {
			return err
		}
		s.ExclusiveMaximum = &b
	case "exclusiveMinimum":
		b, err := wantBool(name, v)
		if err != nil {
			return err
		}
		s.ExclusiveMinimum = &b
	case "uniqueItems":
		b, err := wantBool(name, v)
		if err != nil {
			return err
		}
		s.UniqueItems = &b
	case "allOf":
		schemas, err := parseSchemaArray(name, v)
		if err != nil {
			return err
		}
		s.AllOf = schemas
	case "anyOf":
		schemas, err := parseSchemaArray(name, v)
		if err != nil {
			return err
		}
		s.AnyOf = schemas
	case "oneOf":
		schemas, err := parseSchemaArray(name, v)
		if err != nil {
			return err
		}
		s.OneOf = schemas
	case "not":
		sub := New()
		if err := sub.fromJVal(v); err != nil {
			return err
		}
		s.Not = sub
	case "$ref":
		str, err := wantString(name, v)
		if err != nil {
			return err
		}
		u := uriref.Parse(str)
		if u.IsFragment() {
			if _, err := u.DefinitionName(); err != nil {
				return err
			}
		}
		s.Reference = &u
	default:
		// Unrecognized keywords have no validation semantics but are
		// preserved so a round trip does not silently drop them.
		iv, err := jvalToInstance(v)
		if err != nil {
			return err
		}
		if s.extra == nil {
			s.extra = newExtra()
		}
		s.extra.set(name, iv)
	}
	return nil
}

func wantString(keyword string, v jval) (string, error) {
	if v.kind != jString {
		return "", typeMismatch(keyword, "string")
	}
	return v.str, nil
}

func wantBool(keyword string, v jval) (bool, error) {
	if v.kind != jBool {
		return false, typeMismatch(keyword, "boolean")
	}
	return v.b, nil
}

func wantFloat(keyword string, v jval) (float64, error) {
	if v.kind != jNumber {
		return 0, typeMismatch(keyword, "number")
	}
	f, err := v.num.Float64()
	if err != nil {
		return 0, typeMismatch(keyword, "number")
	}
	return f, nil
}

func wantInt(keyword string, v jval) (int64, error) {
	if v.kind != jNumber {
		return 0, typeMismatch(keyword, "integer")
	}
	if i, err := v.num.Int64(); err == nil {
		return i, nil
	}
	f, err := v.num.Float64()
	if err != nil || f != float64(int64(f)) {
		return 0, typeMismatch(keyword, "integer")
	}
	return int64(f), nil
}

func wantStringArray(keyword string, v jval) ([]string, error) {
	if v.kind != jArray {
		return nil, typeMismatch(keyword, "array")
	}
	out := make([]string, 0, len(v.arr))
	for _, e := range v.arr {
		if e.kind != jString {
			return nil, typeMismatch(keyword, "array of string")
		}
		out = append(out, e.str)
	}
	return out, nil
}

func parseTypeValue(v jval) ([]Type, error) {
	switch v.kind {
	case jString:
		t, ok := ParseType(v.str)
		if !ok {
			return nil, typeMismatch("type", "a Draft-4 type name")
		}
		return []Type{t}, nil
	case jArray:
		out := make([]Type, 0, len(v.arr))
		for _, e := range v.arr {
			if e.kind != jString {
				return nil, typeMismatch("type", "string or array of string")
			}
			t, ok := ParseType(e.str)
			if !ok {
				return nil, typeMismatch("type", "a Draft-4 type name")
			}
			out = append(out, t)
		}
		return out, nil
	default:
		return nil, typeMismatch("type", "string or array of string")
	}
}

func parseSchemaMap(keyword string, v jval) (*OrderedSchemaMap, error) {
	if v.kind != jObject {
		return nil, typeMismatch(keyword, "object")
	}
	m := NewOrderedSchemaMap()
	for _, name := range v.obj.names {
		sub, _ := v.obj.get(name)
		subSchema := New()
		if err := subSchema.fromJVal(sub); err != nil {
			return nil, err
		}
		m.Set(name, subSchema)
	}
	return m, nil
}

func parseSchemaArray(keyword string, v jval) ([]*Schema, error) {
	if v.kind != jArray {
		return nil, typeMismatch(keyword, "array")
	}
	out := make([]*Schema, 0, len(v.arr))
	for _, e := range v.arr {
		sub := New()
		if err := sub.fromJVal(e); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, nil
}

func parseItems(v jval) (*Items, error) {
	switch v.kind {
	case jObject:
		sub := New()
		if err := sub.fromJVal(v); err != nil {
			return nil, err
		}
		return &Items{Single: sub}, nil
	case jArray:
		seq, err := parseSchemaArray("items", v)
		if err != nil {
			return nil, err
		}
		return &Items{Seq: seq}, nil
	default:
		return nil, typeMismatch("items", "object or array")
	}
}

func parseAdditionalProperties(v jval) (*AdditionalProperties, error) {
	switch v.kind {
	case jBool:
		b := v.b
		return &AdditionalProperties{Bool: &b}, nil
	case jObject:
		sub := New()
		if err := sub.fromJVal(v); err != nil {
			return nil, err
		}
		return &AdditionalProperties{Schema: sub}, nil
	default:
		return nil, typeMismatch("additionalProperties", "boolean or object")
	}
}

func jvalToInstance(v jval) (*instance.Value, error) {
	switch v.kind {
	case jNull:
		return &instance.Value{Kind: instance.Null}, nil
	case jBool:
		return &instance.Value{Kind: instance.Boolean, Bool: v.b}, nil
	case jString:
		return &instance.Value{Kind: instance.String, Str: v.str}, nil
	case jNumber:
		s := string(v.num)
		if !strings.ContainsAny(s, ".eE") {
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return &instance.Value{Kind: instance.Integer, Int: i}, nil
			}
		}
		f, err := v.num.Float64()
		if err != nil {
			return nil, err
		}
		return &instance.Value{Kind: instance.Number, Flt: f}, nil
	case jArray:
		out := &instance.Value{Kind: instance.Array}
		for _, e := range v.arr {
			ev, err := jvalToInstance(e)
			if err != nil {
				return nil, err
			}
			out.Arr = append(out.Arr, ev)
		}
		return out, nil
	case jObject:
		out := &instance.Value{Kind: instance.Object, Obj: instance.NewObject()}
		for _, name := range v.obj.names {
			ev, _ := v.obj.get(name)
			iv, err := jvalToInstance(ev)
			if err != nil {
				return nil, err
			}
			out.Obj.Set(name, iv)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected JSON kind")
	}
}

// MarshalJSON writes s as JSON, omitting every absent field, in the
// fixed keyword order below. That order is arbitrary but deterministic;
// unlike "properties"/"definitions"/"patternProperties" (whose *entry*
// order is significant to a round trip), the order in which top-level
// keywords themselves appear is not.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Schema) writeJSON(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	first := true
	sep := func() {
		if first {
			first = false
		} else {
			buf.WriteByte(',')
		}
	}

	if s.ID != nil {
		sep()
		writeKeyString(buf, "id", s.ID.String())
	}
	if s.SchemaVersion != nil {
		sep()
		writeKeyString(buf, "$schema", *s.SchemaVersion)
	}
	if s.Title != nil {
		sep()
		writeKeyString(buf, "title", *s.Title)
	}
	if s.Description != nil {
		sep()
		writeKeyString(buf, "description", *s.Description)
	}
	if len(s.Type) > 0 {
		sep()
		buf.WriteString(`"type":`)
		if len(s.Type) == 1 {
			writeString(buf, s.Type[0].String())
		} else {
			buf.WriteByte('[')
			for i, t := range s.Type {
				if i > 0 {
					buf.WriteByte(',')
				}
				writeString(buf, t.String())
			}
			buf.WriteByte(']')
		}
	}
	if s.Enum != nil {
		sep()
		buf.WriteString(`"enum":[`)
		for i, e := range s.Enum {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(e.CompactJSON())
		}
		buf.WriteByte(']')
	}
	if s.Items != nil {
		sep()
		buf.WriteString(`"items":`)
		if s.Items.Single != nil {
			if err := s.Items.Single.writeJSON(buf); err != nil {
				return err
			}
		} else {
			buf.WriteByte('[')
			for i, sub := range s.Items.Seq {
				if i > 0 {
					buf.WriteByte(',')
				}
				if err := sub.writeJSON(buf); err != nil {
					return err
				}
			}
			buf.WriteByte(']')
		}
	}
	if err := writeSchemaMap(buf, &first, "properties", s.Properties); err != nil {
		return err
	}
	if err := writeSchemaMap(buf, &first, "definitions", s.Definitions); err != nil {
		return err
	}
	if err := writeSchemaMap(buf, &first, "patternProperties", s.PatternProps); err != nil {
		return err
	}
	if s.Required != nil {
		sep()
		buf.WriteString(`"required":[`)
		for i, r := range s.Required {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, r)
		}
		buf.WriteByte(']')
	}
	if s.AdditionalProperties != nil {
		sep()
		buf.WriteString(`"additionalProperties":`)
		ap := s.AdditionalProperties
		if ap.Bool != nil {
			if *ap.Bool {
				buf.WriteString("true")
			} else {
				buf.WriteString("false")
			}
		} else {
			if err := ap.Schema.writeJSON(buf); err != nil {
				return err
			}
		}
	}
	writeIntField(buf, &first, "maxProperties", s.MaxProperties)
	writeIntField(buf, &first, "minProperties", s.MinProperties)
	writeIntField(buf, &first, "maxLength", s.MaxLength)
	writeIntField(buf, &first, "minLength", s.MinLength)
	writeIntField(buf, &first, "maxItems", s.MaxItems)
	writeIntField(buf, &first, "minItems", s.MinItems)
	if s.Pattern != nil {
		sep()
		writeKeyString(buf, "pattern", *s.Pattern)
	}
	if s.Format != nil {
		sep()
		writeKeyString(buf, "format", *s.Format)
	}
	writeFloatField(buf, &first, "multipleOf", s.MultipleOf)
	writeFloatField(buf, &first, "maximum", s.Maximum)
	writeFloatField(buf, &first, "minimum", s.Minimum)
	writeBoolField(buf, &first, "exclusiveMaximum", s.ExclusiveMaximum)
	writeBoolField(buf, &first, "exclusiveMinimum", s.ExclusiveMinimum)
	writeBoolField(buf, &first, "uniqueItems", s.UniqueItems)
	if err := writeSchemaArray(buf, &first, "allOf", s.AllOf); err != nil {
		return err
	}
	if err := writeSchemaArray(buf, &first, "anyOf", s.AnyOf); err != nil {
		return err
	}
	if err := writeSchemaArray(buf, &first, "oneOf", s.OneOf); err != nil {
		return err
	}
	if s.Not != nil {
		sep()
		buf.WriteString(`"not":`)
		if err := s.Not.writeJSON(buf); err != nil {
			return err
		}
	}
	if s.Reference != nil {
		sep()
		writeKeyString(buf, "$ref", s.Reference.String())
	}
	if s.extra != nil {
		for _, name := range s.extra.Names {
			sep()
			v, _ := s.extra.Get(name)
			writeString(buf, name)
			buf.WriteByte(':')
			buf.WriteString(v.CompactJSON())
		}
	}

	buf.WriteByte('}')
	return nil
}

func writeString(buf *bytes.Buffer, s string) {
	data, err := json.Marshal(s)
	if err != nil {
		panic("schema: json.Marshal of a string failed: " + err.Error())
	}
	buf.Write(data)
}

func writeKeyString(buf *bytes.Buffer, key, val string) {
	writeString(buf, key)
	buf.WriteByte(':')
	writeString(buf, val)
}

func writeIntField(buf *bytes.Buffer, first *bool, key string, v *int64) {
	if v == nil {
		return
	}
	if *first {
		*first = false
	} else {
		buf.WriteByte(',')
	}
	writeString(buf, key)
	fmt.Fprintf(buf, ":%d", *v)
}

func writeFloatField(buf *bytes.Buffer, first *bool, key string, v *float64) {
	if v == nil {
		return
	}
	if *first {
		*first = false
	} else {
		buf.WriteByte(',')
	}
	writeString(buf, key)
	if *v == float64(int64(*v)) {
		fmt.Fprintf(buf, ":%d", int64(*v))
	} else {
		fmt.Fprintf(buf, ":%g", *v)
	}
}

func writeBoolField(buf *bytes.Buffer, first *bool, key string, v *bool) {
	if v == nil {
		return
	}
	if *first {
		*first = false
	} else {
		buf.WriteByte(',')
	}
	writeString(buf, key)
	if *v {
		buf.WriteString(":true")
	} else {
		buf.WriteString(":false")
	}
}

func writeSchemaMap(buf *bytes.Buffer, first *bool, key string, m *OrderedSchemaMap) error {
	if m == nil {
		return nil
	}
	if *first {
		*first = false
	} else {
		buf.WriteByte(',')
	}
	writeString(buf, key)
	buf.WriteString(":{")
	for i, name := range m.Names {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(buf, name)
		buf.WriteByte(':')
		sub, _ := m.Get(name)
		if err := sub.writeJSON(buf); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeSchemaArray(buf *bytes.Buffer, first *bool, key string, schemas []*Schema) error {
	if schemas == nil {
		return nil
	}
	if *first {
		*first = false
	} else {
		buf.WriteByte(',')
	}
	writeString(buf, key)
	buf.WriteString(":[")
	for i, sub := range schemas {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := sub.writeJSON(buf); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}
