// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schema defines the JSON Schema Draft 4 data model: a
// recursive record with every keyword modeled as present-or-absent,
// never conflated with a zero-valued default. It also implements the
// loss-preserving JSON reader and writer (see json.go) and the $ref
// collapse engine (see collapse.go).
package schema

import (
	"strings"

	"github.com/go-schemakit/draft4/pkg/instance"
	"github.com/go-schemakit/draft4/pkg/uriref"
)

// Type is one of the seven JSON type tags a Draft-4 schema's "type"
// keyword may name.
type Type int

const (
	TypeNull Type = iota
	TypeBoolean
	TypeInteger
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

var typeNames = [...]string{
	TypeNull:    "null",
	TypeBoolean: "boolean",
	TypeInteger: "integer",
	TypeNumber:  "number",
	TypeString:  "string",
	TypeArray:   "array",
	TypeObject:  "object",
}

func (t Type) String() string {
	if int(t) >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// ParseType maps a wire type-tag string to a Type.
func ParseType(s string) (Type, bool) {
	for i, n := range typeNames {
		if n == s {
			return Type(i), true
		}
	}
	return 0, false
}

// OrderedSchemaMap is an insertion-ordered mapping from a property or
// pattern name to its schema, used for "properties", "definitions",
// and "patternProperties". Order is not semantically meaningful to
// validation but must survive a write/read round trip.
type OrderedSchemaMap struct {
	Names  []string
	byName map[string]*Schema
}

// NewOrderedSchemaMap returns an empty, ready-to-use map.
func NewOrderedSchemaMap() *OrderedSchemaMap {
	return &OrderedSchemaMap{byName: make(map[string]*Schema)}
}

// Set appends name if new, or replaces its schema in place.
func (m *OrderedSchemaMap) Set(name string, s *Schema) {
	if m.byName == nil {
		m.byName = make(map[string]*Schema)
	}
	if _, ok := m.byName[name]; !ok {
		m.Names = append(m.Names, name)
	}
	m.byName[name] = s
}

// Get returns the schema for name, and whether it is present.
func (m *OrderedSchemaMap) Get(name string) (*Schema, bool) {
	if m == nil {
		return nil, false
	}
	s, ok := m.byName[name]
	return s, ok
}

// Len returns the number of entries.
func (m *OrderedSchemaMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Names)
}

// Clone returns a deep copy.
func (m *OrderedSchemaMap) Clone() *OrderedSchemaMap {
	if m == nil {
		return nil
	}
	out := NewOrderedSchemaMap()
	for _, name := range m.Names {
		out.Set(name, m.byName[name].Clone())
	}
	return out
}

// Equal reports whether two ordered maps hold the same key/value pairs.
// Per the specification, order is not part of equality for maps (only
// for sequences), so this compares as an unordered set of pairs.
func (m *OrderedSchemaMap) Equal(o *OrderedSchemaMap) bool {
	if m.Len() != o.Len() {
		return false
	}
	for _, name := range m.Names {
		os, ok := o.Get(name)
		if !ok {
			return false
		}
		ms, _ := m.Get(name)
		if !ms.Equal(os) {
			return false
		}
	}
	return true
}

// Items is the variant value of the "items" keyword: either a single
// schema applied to every element, or an ordered sequence of schemas
// applied positionally. Exactly one field is non-nil.
type Items struct {
	Single *Schema
	Seq    []*Schema
}

// Clone returns a deep copy.
func (it *Items) Clone() *Items {
	if it == nil {
		return nil
	}
	out := &Items{}
	if it.Single != nil {
		out.Single = it.Single.Clone()
	}
	for _, s := range it.Seq {
		out.Seq = append(out.Seq, s.Clone())
	}
	return out
}

func (it *Items) Equal(o *Items) bool {
	if it == nil || o == nil {
		return it == o
	}
	if !it.Single.Equal(o.Single) {
		return false
	}
	if len(it.Seq) != len(o.Seq) {
		return false
	}
	for i := range it.Seq {
		if !it.Seq[i].Equal(o.Seq[i]) {
			return false
		}
	}
	return true
}

// AdditionalProperties is the variant value of the
// "additionalProperties" keyword: a boolean flag or a schema. Exactly
// one of Bool and Schema is non-nil; an absent keyword is a nil
// *AdditionalProperties on the Schema.
type AdditionalProperties struct {
	Bool   *bool
	Schema *Schema
}

func (a *AdditionalProperties) Clone() *AdditionalProperties {
	if a == nil {
		return nil
	}
	out := &AdditionalProperties{}
	if a.Bool != nil {
		b := *a.Bool
		out.Bool = &b
	}
	if a.Schema != nil {
		out.Schema = a.Schema.Clone()
	}
	return out
}

func (a *AdditionalProperties) Equal(o *AdditionalProperties) bool {
	if a == nil || o == nil {
		return a == o
	}
	if !equalBoolPtr(a.Bool, o.Bool) {
		return false
	}
	return a.Schema.Equal(o.Schema)
}

// Extra holds a keyword this module does not recognize, preserved
// verbatim (as parsed JSON) so a schema round trip does not silently
// drop vendor extensions or forward-looking keywords. Per the
// specification, unrecognized keywords have no validation semantics.
type Extra struct {
	Names []string
	byKey map[string]*instance.Value
}

func newExtra() *Extra {
	return &Extra{byKey: make(map[string]*instance.Value)}
}

func (e *Extra) set(name string, v *instance.Value) {
	if e.byKey == nil {
		e.byKey = make(map[string]*instance.Value)
	}
	if _, ok := e.byKey[name]; !ok {
		e.Names = append(e.Names, name)
	}
	e.byKey[name] = v
}

func (e *Extra) Get(name string) (*instance.Value, bool) {
	if e == nil {
		return nil, false
	}
	v, ok := e.byKey[name]
	return v, ok
}

func (e *Extra) clone() *Extra {
	if e == nil {
		return nil
	}
	out := newExtra()
	for _, name := range e.Names {
		out.set(name, e.byKey[name])
	}
	return out
}

func (e *Extra) equal(o *Extra) bool {
	if e.Len() != o.Len() {
		return false
	}
	if e == nil {
		return true
	}
	for _, name := range e.Names {
		ov, ok := o.Get(name)
		if !ok {
			return false
		}
		ev, _ := e.Get(name)
		if !instance.DeepEqual(ev, ov) {
			return false
		}
	}
	return true
}

// Len reports the number of unrecognized keywords.
func (e *Extra) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Names)
}

// Schema is a JSON Schema Draft 4 schema: a record with every keyword
// modeled as present-or-absent. Do not construct one directly except
// via zero value plus field assignment, [New], or the JSON reader; a
// program that builds a schema by hand must take care that a bounded
// keyword left at its Go zero value (nil) means absent, not
// present-with-default.
type Schema struct {
	ID            *uriref.UriOrFragment
	SchemaVersion *string
	Title         *string
	Description   *string
	Type          []Type
	Enum          []*instance.Value
	Items         *Items
	Properties    *OrderedSchemaMap
	Definitions   *OrderedSchemaMap
	PatternProps  *OrderedSchemaMap
	Required      []string

	AdditionalProperties *AdditionalProperties

	MaxProperties *int64
	MinProperties *int64
	MaxLength     *int64
	MinLength     *int64
	MaxItems      *int64
	MinItems      *int64

	Pattern *string
	Format  *string

	MultipleOf *float64
	Maximum    *float64
	Minimum    *float64

	ExclusiveMaximum *bool
	ExclusiveMinimum *bool
	UniqueItems      *bool

	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema
	Not   *Schema

	Reference *uriref.UriOrFragment

	extra *Extra
}

// New returns an empty schema (matches every instance).
func New() *Schema {
	return &Schema{}
}

// Clone returns a deep copy of s. Sub-schemas are never shared between
// a schema and its clone.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := &Schema{
		SchemaVersion:        clonePtr(s.SchemaVersion),
		Title:                clonePtr(s.Title),
		Description:          clonePtr(s.Description),
		Type:                 append([]Type(nil), s.Type...),
		Items:                s.Items.Clone(),
		Properties:           s.Properties.Clone(),
		Definitions:          s.Definitions.Clone(),
		PatternProps:         s.PatternProps.Clone(),
		Required:             append([]string(nil), s.Required...),
		AdditionalProperties: s.AdditionalProperties.Clone(),
		MaxProperties:        cloneInt(s.MaxProperties),
		MinProperties:        cloneInt(s.MinProperties),
		MaxLength:            cloneInt(s.MaxLength),
		MinLength:            cloneInt(s.MinLength),
		MaxItems:             cloneInt(s.MaxItems),
		MinItems:             cloneInt(s.MinItems),
		Pattern:              clonePtr(s.Pattern),
		Format:               clonePtr(s.Format),
		MultipleOf:           cloneFloat(s.MultipleOf),
		Maximum:              cloneFloat(s.Maximum),
		Minimum:              cloneFloat(s.Minimum),
		ExclusiveMaximum:     cloneBool(s.ExclusiveMaximum),
		ExclusiveMinimum:     cloneBool(s.ExclusiveMinimum),
		UniqueItems:          cloneBool(s.UniqueItems),
		Not:                  s.Not.Clone(),
		extra:                s.extra.clone(),
	}
	if s.ID != nil {
		id := *s.ID
		out.ID = &id
	}
	if s.Reference != nil {
		ref := *s.Reference
		out.Reference = &ref
	}
	for _, e := range s.Enum {
		out.Enum = append(out.Enum, e)
	}
	for _, sub := range s.AllOf {
		out.AllOf = append(out.AllOf, sub.Clone())
	}
	for _, sub := range s.AnyOf {
		out.AnyOf = append(out.AnyOf, sub.Clone())
	}
	for _, sub := range s.OneOf {
		out.OneOf = append(out.OneOf, sub.Clone())
	}
	return out
}

// Equal reports whether two schemas are structurally identical.
// Absence is only equal to absence; a present field with a zero value
// is never equal to an absent field. Order is significant for "type",
// "enum", "required", and the combinator sequences, but not for the
// property/definition/patternProperties maps.
func (s *Schema) Equal(o *Schema) bool {
	if s == nil || o == nil {
		return s == o
	}
	switch {
	case !equalUriPtr(s.ID, o.ID):
		return false
	case !equalStrPtr(s.SchemaVersion, o.SchemaVersion):
		return false
	case !equalStrPtr(s.Title, o.Title):
		return false
	case !equalStrPtr(s.Description, o.Description):
		return false
	case !equalTypes(s.Type, o.Type):
		return false
	case !equalEnums(s.Enum, o.Enum):
		return false
	case !s.Items.Equal(o.Items):
		return false
	case !equalSchemaMapPtr(s.Properties, o.Properties):
		return false
	case !equalSchemaMapPtr(s.Definitions, o.Definitions):
		return false
	case !equalSchemaMapPtr(s.PatternProps, o.PatternProps):
		return false
	case !equalStrSlice(s.Required, o.Required):
		return false
	case !s.AdditionalProperties.Equal(o.AdditionalProperties):
		return false
	case !equalIntPtr(s.MaxProperties, o.MaxProperties):
		return false
	case !equalIntPtr(s.MinProperties, o.MinProperties):
		return false
	case !equalIntPtr(s.MaxLength, o.MaxLength):
		return false
	case !equalIntPtr(s.MinLength, o.MinLength):
		return false
	case !equalIntPtr(s.MaxItems, o.MaxItems):
		return false
	case !equalIntPtr(s.MinItems, o.MinItems):
		return false
	case !equalStrPtr(s.Pattern, o.Pattern):
		return false
	case !equalStrPtr(s.Format, o.Format):
		return false
	case !equalFloatPtr(s.MultipleOf, o.MultipleOf):
		return false
	case !equalFloatPtr(s.Maximum, o.Maximum):
		return false
	case !equalFloatPtr(s.Minimum, o.Minimum):
		return false
	case !equalBoolPtr(s.ExclusiveMaximum, o.ExclusiveMaximum):
		return false
	case !equalBoolPtr(s.ExclusiveMinimum, o.ExclusiveMinimum):
		return false
	case !equalBoolPtr(s.UniqueItems, o.UniqueItems):
		return false
	case !equalSchemaSlice(s.AllOf, o.AllOf):
		return false
	case !equalSchemaSlice(s.AnyOf, o.AnyOf):
		return false
	case !equalSchemaSlice(s.OneOf, o.OneOf):
		return false
	case !s.Not.Equal(o.Not):
		return false
	case !equalUriPtr(s.Reference, o.Reference):
		return false
	case !s.extra.equal(o.extra):
		return false
	}
	return true
}

// --- small pointer/slice helpers used by Clone and Equal ---

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func equalStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalIntPtr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalBoolPtr(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalUriPtr(a, b *uriref.UriOrFragment) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func equalStrSlice(a, b []string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalTypes(a, b []Type) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalEnums(a, b []*instance.Value) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !instance.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalSchemaSlice(a, b []*Schema) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func equalSchemaMapPtr(a, b *OrderedSchemaMap) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b)
}

// String returns a debug rendering of s. This is not JSON; use
// [Schema.MarshalJSON] for the wire format.
func (s *Schema) String() string {
	var sb strings.Builder
	sb.WriteString("Schema(")
	if s.Reference != nil {
		sb.WriteString("$ref=" + s.Reference.String())
	}
	if len(s.Type) > 0 {
		names := make([]string, len(s.Type))
		for i, t := range s.Type {
			names[i] = t.String()
		}
		sb.WriteString("type=" + strings.Join(names, "|"))
	}
	sb.WriteByte(')')
	return sb.String()
}
