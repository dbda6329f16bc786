// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package validator implements the Draft-4 instance walk: a recursive,
// depth-first traversal of a JSON instance guided by a schema, with
// combinator keywords ("allOf", "anyOf", "oneOf", "not") implemented by
// scoping a fresh validator per sub-schema so its diagnostics can be
// observed, then discarded, without polluting the outer message list.
package validator

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-schemakit/draft4/pkg/diag"
	"github.com/go-schemakit/draft4/pkg/format"
	"github.com/go-schemakit/draft4/pkg/instance"
	"github.com/go-schemakit/draft4/pkg/schema"
)

// Options configures an InstanceWalker. The zero value matches the
// specification's default behavior exactly: format is stored but never
// enforced.
type Options struct {
	// CheckFormat enables the opt-in format extension registry
	// (package format). Left false, a "format" keyword has no effect
	// on validation, matching the base specification.
	CheckFormat bool
}

// InstanceWalker walks instances against one schema. It is not
// reentrant: concurrent callers must use separate InstanceWalker
// instances, though the schema and its definitions may be shared
// read-only.
type InstanceWalker struct {
	root         *schema.Schema
	checkFormat  bool
	messages     []*diag.Diagnostic
	patternCache map[string]*regexp.Regexp
}

// New returns an InstanceWalker for root, with format checking
// disabled.
func New(root *schema.Schema) *InstanceWalker {
	return &InstanceWalker{root: root}
}

// NewWithOptions returns an InstanceWalker for root configured by opts.
func NewWithOptions(root *schema.Schema, opts Options) *InstanceWalker {
	return &InstanceWalker{root: root, checkFormat: opts.CheckFormat}
}

// Validate parses instanceText and checks it against the walker's
// schema, returning diagnostics in emission order. A nil slice means
// the instance is valid. The returned error is non-nil only when the
// instance text is malformed JSON or the schema itself cannot be
// walked (an unresolvable "$ref"); it is never returned merely because
// the instance failed validation.
func (v *InstanceWalker) Validate(instanceText []byte) ([]string, error) {
	inst, err := instance.Decode(instanceText)
	if err != nil {
		return nil, &diag.StructuralError{Kind: diag.MalformedJson, Args: []any{err.Error()}}
	}

	root, err := v.resolve(v.root)
	if err != nil {
		return nil, err
	}

	v.messages = nil
	if err := v.validateToken(inst, root, "#"); err != nil {
		return nil, err
	}

	if len(v.messages) == 0 {
		return nil, nil
	}
	out := make([]string, len(v.messages))
	for i, m := range v.messages {
		out[i] = m.String()
	}
	return out, nil
}

// resolve replaces a "$ref" schema with its target. A non-reference
// schema is returned unchanged.
func (v *InstanceWalker) resolve(s *schema.Schema) (*schema.Schema, error) {
	if s.Reference == nil {
		return s, nil
	}
	if !s.Reference.IsFragment() {
		return nil, &diag.StructuralError{Kind: diag.UnsupportedReferenceForm, Args: []any{s.Reference.String()}}
	}
	name, err := s.Reference.DefinitionName()
	if err != nil {
		return nil, err
	}
	def, ok := v.root.Definitions.Get(name)
	if !ok {
		return nil, &diag.StructuralError{Kind: diag.DefinitionNotFound, Args: []any{name}}
	}
	return def, nil
}

// validateToken is the state machine: TypeCheck -> SpecializedCheck ->
// KeywordChecks -> Done. It never returns an error for an
// instance/schema mismatch; it only returns one when the schema itself
// can't be walked further (an unresolvable reference).
func (v *InstanceWalker) validateToken(tok *instance.Value, s *schema.Schema, path string) error {
	if len(s.Type) > 0 && !typeCompatible(tok.Kind, s.Type) {
		v.emit(path, diag.WrongType, tok.Kind.String(), expectedTypeNames(s.Type))
		return nil
	}

	if err := v.specializedChecks(tok, s, path); err != nil {
		return err
	}
	return v.keywordChecks(tok, s, path)
}

func (v *InstanceWalker) specializedChecks(tok *instance.Value, s *schema.Schema, path string) error {
	switch tok.Kind {
	case instance.String:
		v.checkString(tok, s, path)
	case instance.Integer, instance.Number:
		v.checkNumber(tok, s, path)
	case instance.Object:
		return v.checkObject(tok, s, path)
	case instance.Array:
		return v.checkArray(tok, s, path)
	}
	return nil
}

func (v *InstanceWalker) checkString(tok *instance.Value, s *schema.Schema, path string) {
	n := int64(utf8.RuneCountInString(tok.Str))
	if s.MaxLength != nil && n > *s.MaxLength {
		v.emit(path, diag.StringTooLong, n, *s.MaxLength)
	}
	if s.MinLength != nil && n < *s.MinLength {
		v.emit(path, diag.StringTooShort, n, *s.MinLength)
	}
	if s.Pattern != nil {
		if re, err := v.compilePattern(*s.Pattern); err == nil && !re.MatchString(tok.Str) {
			v.emit(path, diag.StringDoesNotMatchPattern, tok.Str, *s.Pattern)
		}
	}
	if v.checkFormat && s.Format != nil {
		if check, ok := format.Lookup(*s.Format); ok && !check(tok.Str) {
			v.emit(path, diag.InvalidFormat, tok.Str, *s.Format)
		}
	}
}

func (v *InstanceWalker) checkNumber(tok *instance.Value, s *schema.Schema, path string) {
	val, _ := tok.NumberValue()

	if s.Maximum != nil {
		exclusive := s.ExclusiveMaximum != nil && *s.ExclusiveMaximum
		if exclusive {
			if val >= *s.Maximum {
				v.emit(path, diag.ValueTooLargeExclusive, val, *s.Maximum)
			}
		} else if val > *s.Maximum {
			v.emit(path, diag.ValueTooLarge, val, *s.Maximum)
		}
	}
	if s.Minimum != nil {
		exclusive := s.ExclusiveMinimum != nil && *s.ExclusiveMinimum
		if exclusive {
			if val <= *s.Minimum {
				v.emit(path, diag.ValueTooSmallExclusive, val, *s.Minimum)
			}
		} else if val < *s.Minimum {
			v.emit(path, diag.ValueTooSmall, val, *s.Minimum)
		}
	}
	if s.MultipleOf != nil && !isMultipleOf(val, *s.MultipleOf) {
		v.emit(path, diag.NotAMultiple, val, *s.MultipleOf)
	}
}

// isMultipleOf reports whether val is (within floating point tolerance)
// an integer multiple of of.
func isMultipleOf(val, of float64) bool {
	if of == 0 {
		return false
	}
	q := val / of
	return math.Abs(q-math.Round(q)) < 1e-9
}

func (v *InstanceWalker) checkObject(tok *instance.Value, s *schema.Schema, path string) error {
	n := int64(tok.Obj.Len())
	if s.MaxProperties != nil && n > *s.MaxProperties {
		v.emit(path, diag.TooManyProperties, n, *s.MaxProperties)
	}
	if s.MinProperties != nil && n < *s.MinProperties {
		v.emit(path, diag.TooFewProperties, n, *s.MinProperties)
	}
	for _, name := range s.Required {
		if _, ok := tok.Obj.Get(name); !ok {
			v.emit(path, diag.RequiredPropertyMissing, name)
		}
	}

	additional := make(map[string]bool, tok.Obj.Len())
	for _, name := range tok.Obj.Names {
		if s.Properties == nil {
			additional[name] = true
			continue
		}
		if _, ok := s.Properties.Get(name); !ok {
			additional[name] = true
		}
	}

	for _, name := range tok.Obj.Names {
		propSchema, ok := s.Properties.Get(name)
		if !ok {
			continue
		}
		resolved, err := v.resolve(propSchema)
		if err != nil {
			return err
		}
		child, _ := tok.Obj.Get(name)
		if err := v.validateToken(child, resolved, path+"/"+escapePointer(name)); err != nil {
			return err
		}
	}

	if s.PatternProps != nil {
		for _, pat := range s.PatternProps.Names {
			re, err := v.compilePattern(pat)
			if err != nil {
				continue
			}
			patSchema, _ := s.PatternProps.Get(pat)
			resolved, err := v.resolve(patSchema)
			if err != nil {
				return err
			}
			for _, name := range tok.Obj.Names {
				if !additional[name] || !re.MatchString(name) {
					continue
				}
				child, _ := tok.Obj.Get(name)
				if err := v.validateToken(child, resolved, path+"/"+escapePointer(name)); err != nil {
					return err
				}
				delete(additional, name)
			}
		}
	}

	if s.AdditionalProperties != nil {
		ap := s.AdditionalProperties
		for _, name := range tok.Obj.Names {
			if !additional[name] {
				continue
			}
			if ap.Bool != nil {
				if !*ap.Bool {
					v.emit(path, diag.AdditionalPropertiesProhibited, name)
				}
				continue
			}
			resolved, err := v.resolve(ap.Schema)
			if err != nil {
				return err
			}
			child, _ := tok.Obj.Get(name)
			if err := v.validateToken(child, resolved, path+"/"+escapePointer(name)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *InstanceWalker) checkArray(tok *instance.Value, s *schema.Schema, path string) error {
	n := int64(len(tok.Arr))
	if s.MinItems != nil && n < *s.MinItems {
		v.emit(path, diag.TooFewArrayItems, n, *s.MinItems)
	}
	if s.MaxItems != nil && n > *s.MaxItems {
		v.emit(path, diag.TooManyArrayItems, n, *s.MaxItems)
	}

	if s.Items != nil {
		switch {
		case s.Items.Single != nil:
			resolved, err := v.resolve(s.Items.Single)
			if err != nil {
				return err
			}
			for i, elem := range tok.Arr {
				if err := v.validateToken(elem, resolved, fmt.Sprintf("%s/%d", path, i)); err != nil {
					return err
				}
			}
		case len(s.Items.Seq) >= len(tok.Arr):
			for i, elem := range tok.Arr {
				resolved, err := v.resolve(s.Items.Seq[i])
				if err != nil {
					return err
				}
				if err := v.validateToken(elem, resolved, fmt.Sprintf("%s/%d", path, i)); err != nil {
					return err
				}
			}
		default:
			v.emit(path, diag.TooFewItemSchemas, n, int64(len(s.Items.Seq)))
		}
	}

	if s.UniqueItems != nil && *s.UniqueItems && !allDistinct(tok.Arr) {
		v.emit(path, diag.NotUnique)
	}
	return nil
}

func allDistinct(arr []*instance.Value) bool {
	for i := range arr {
		for j := 0; j < i; j++ {
			if instance.DeepEqual(arr[i], arr[j]) {
				return false
			}
		}
	}
	return true
}

// keywordChecks implements the always-run keyword-orthogonal checks:
// enum, and the combinators. These run whenever step 1 did not already
// stop the walk with a WrongType diagnostic, regardless of whether
// "type" was present.
func (v *InstanceWalker) keywordChecks(tok *instance.Value, s *schema.Schema, path string) error {
	if s.Enum != nil {
		match := false
		for _, e := range s.Enum {
			if instance.DeepEqual(e, tok) {
				match = true
				break
			}
		}
		if !match {
			v.emit(path, diag.InvalidEnumValue, rawJSON(tok.CompactJSON()))
		}
	}

	if len(s.AllOf) > 0 {
		failed := false
		for _, sub := range s.AllOf {
			resolved, err := v.resolve(sub)
			if err != nil {
				return err
			}
			sv := v.subWalker()
			if err := sv.validateToken(tok, resolved, "#"); err != nil {
				return err
			}
			if len(sv.messages) > 0 {
				failed = true
			}
		}
		if failed {
			v.emit(path, diag.NotAllOf, int64(len(s.AllOf)))
		}
	}

	if len(s.AnyOf) > 0 {
		matched := false
		for _, sub := range s.AnyOf {
			resolved, err := v.resolve(sub)
			if err != nil {
				return err
			}
			sv := v.subWalker()
			if err := sv.validateToken(tok, resolved, "#"); err != nil {
				return err
			}
			if len(sv.messages) == 0 {
				matched = true
				break
			}
		}
		if !matched {
			v.emit(path, diag.NotAnyOf, int64(len(s.AnyOf)))
		}
	}

	if len(s.OneOf) > 0 {
		count := 0
		for _, sub := range s.OneOf {
			resolved, err := v.resolve(sub)
			if err != nil {
				return err
			}
			sv := v.subWalker()
			if err := sv.validateToken(tok, resolved, "#"); err != nil {
				return err
			}
			if len(sv.messages) == 0 {
				count++
			}
		}
		if count != 1 {
			v.emit(path, diag.NotOneOf, int64(count), int64(len(s.OneOf)))
		}
	}

	if s.Not != nil {
		resolved, err := v.resolve(s.Not)
		if err != nil {
			return err
		}
		sv := v.subWalker()
		if err := sv.validateToken(tok, resolved, "#"); err != nil {
			return err
		}
		if len(sv.messages) == 0 {
			v.emit(path, diag.ValidatesAgainstNotSchema)
		}
	}
	return nil
}

// subWalker returns a fresh InstanceWalker scoped to the same root and
// options, for a combinator member. Its message list starts empty and
// is inspected, then discarded by the caller — only a summary
// diagnostic on the outer walker survives.
func (v *InstanceWalker) subWalker() *InstanceWalker {
	return &InstanceWalker{root: v.root, checkFormat: v.checkFormat, patternCache: v.patternCache}
}

// rawJSON is a diagnostic argument that is already JSON text; it is
// printed as is rather than quoted like a plain string.
type rawJSON string

func (v *InstanceWalker) emit(path string, kind diag.Kind, args ...any) {
	v.messages = append(v.messages, &diag.Diagnostic{Kind: kind, Location: path, Args: args})
}

func (v *InstanceWalker) compilePattern(pat string) (*regexp.Regexp, error) {
	if re, ok := v.patternCache[pat]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, err
	}
	if v.patternCache == nil {
		v.patternCache = make(map[string]*regexp.Regexp)
	}
	v.patternCache[pat] = re
	return re, nil
}

// escapePointer escapes a JSON Pointer reference token per RFC 6901.
func escapePointer(tok string) string {
	if !strings.ContainsAny(tok, "~/") {
		return tok
	}
	tok = strings.ReplaceAll(tok, "~", "~0")
	return strings.ReplaceAll(tok, "/", "~1")
}

// typeCompatible implements the type gate: exact membership, plus
// Integer as a subset of Number and Date as a subset of String.
func typeCompatible(k instance.Kind, types []schema.Type) bool {
	for _, t := range types {
		switch t {
		case schema.TypeNull:
			if k == instance.Null {
				return true
			}
		case schema.TypeBoolean:
			if k == instance.Boolean {
				return true
			}
		case schema.TypeInteger:
			if k == instance.Integer {
				return true
			}
		case schema.TypeNumber:
			if k == instance.Integer || k == instance.Number {
				return true
			}
		case schema.TypeString:
			if k == instance.String || k == instance.Date {
				return true
			}
		case schema.TypeArray:
			if k == instance.Array {
				return true
			}
		case schema.TypeObject:
			if k == instance.Object {
				return true
			}
		}
	}
	return false
}

var typeDiagNames = map[schema.Type]string{
	schema.TypeNull:    "Null",
	schema.TypeBoolean: "Boolean",
	schema.TypeInteger: "Integer",
	schema.TypeNumber:  "Number",
	schema.TypeString:  "String",
	schema.TypeArray:   "Array",
	schema.TypeObject:  "Object",
}

func expectedTypeNames(types []schema.Type) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = typeDiagNames[t]
	}
	return names
}
