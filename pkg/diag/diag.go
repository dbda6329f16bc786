// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag defines the two disjoint error channels used across the
// schema and validator packages: structural errors, which terminate an
// operation, and validation diagnostics, which accumulate in an ordered
// list. It also implements the argument formatting rules shared by
// both: quoted strings, lowercased booleans, compacted array text, and
// the literal "null".
package diag

import (
	"fmt"
	"strconv"
	"strings"
)

// StructuralKind is the closed set of reasons a reader or collapse
// operation can fail outright.
type StructuralKind int

const (
	MalformedJson StructuralKind = iota + 1
	TypeMismatch
	InvalidReferenceForm
	UnsupportedReferenceForm
	DefinitionNotFound
)

var structuralNames = map[StructuralKind]string{
	MalformedJson:            "MalformedJson",
	TypeMismatch:             "TypeMismatch",
	InvalidReferenceForm:     "InvalidReferenceForm",
	UnsupportedReferenceForm: "UnsupportedReferenceForm",
	DefinitionNotFound:       "DefinitionNotFound",
}

func (k StructuralKind) String() string {
	if n, ok := structuralNames[k]; ok {
		return n
	}
	return fmt.Sprintf("StructuralKind(%d)", int(k))
}

// StructuralError is the single failure value returned by the reader
// and by collapse. It terminates the operation that produced it; it is
// never accumulated alongside other errors the way a [Diagnostic] is.
type StructuralError struct {
	Kind StructuralKind
	Args []any
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, formatArgs(e.Args))
}

// Kind is the closed set of validation diagnostic kinds a [Diagnostic]
// can carry. This is exactly the set named in the specification; it is
// not meant to be extended by callers, with the sole exception of
// [InvalidFormat], which backs the opt-in format extension registry
// (see package format) and is never emitted unless a caller asks for
// format checking.
type Kind int

const (
	WrongType Kind = iota + 1
	StringTooLong
	StringTooShort
	StringDoesNotMatchPattern
	ValueTooLarge
	ValueTooLargeExclusive
	ValueTooSmall
	ValueTooSmallExclusive
	NotAMultiple
	TooFewArrayItems
	TooManyArrayItems
	TooFewItemSchemas
	NotUnique
	TooManyProperties
	TooFewProperties
	RequiredPropertyMissing
	AdditionalPropertiesProhibited
	InvalidEnumValue
	NotAllOf
	NotAnyOf
	NotOneOf
	ValidatesAgainstNotSchema
	InvalidFormat
)

var kindNames = map[Kind]string{
	WrongType:                       "WrongType",
	StringTooLong:                   "StringTooLong",
	StringTooShort:                  "StringTooShort",
	StringDoesNotMatchPattern:       "StringDoesNotMatchPattern",
	ValueTooLarge:                   "ValueTooLarge",
	ValueTooLargeExclusive:          "ValueTooLargeExclusive",
	ValueTooSmall:                   "ValueTooSmall",
	ValueTooSmallExclusive:          "ValueTooSmallExclusive",
	NotAMultiple:                    "NotAMultiple",
	TooFewArrayItems:                "TooFewArrayItems",
	TooManyArrayItems:               "TooManyArrayItems",
	TooFewItemSchemas:               "TooFewItemSchemas",
	NotUnique:                       "NotUnique",
	TooManyProperties:               "TooManyProperties",
	TooFewProperties:                "TooFewProperties",
	RequiredPropertyMissing:         "RequiredPropertyMissing",
	AdditionalPropertiesProhibited:  "AdditionalPropertiesProhibited",
	InvalidEnumValue:                "InvalidEnumValue",
	NotAllOf:                        "NotAllOf",
	NotAnyOf:                        "NotAnyOf",
	NotOneOf:                        "NotOneOf",
	ValidatesAgainstNotSchema:       "ValidatesAgainstNotSchema",
	InvalidFormat:                   "InvalidFormat",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// messageTemplates gives the human-readable rendering for each Kind.
// %s placeholders are filled with formatted Args in order, using the
// same argument formatting rules as [StructuralError].
var messageTemplates = map[Kind]string{
	WrongType:                      "value has type %s, want one of %s",
	StringTooLong:                  "string length %s exceeds maxLength %s",
	StringTooShort:                 "string length %s is below minLength %s",
	StringDoesNotMatchPattern:      "value %s does not match pattern %s",
	ValueTooLarge:                  "value %s exceeds maximum %s",
	ValueTooLargeExclusive:         "value %s is not strictly less than exclusive maximum %s",
	ValueTooSmall:                  "value %s is below minimum %s",
	ValueTooSmallExclusive:         "value %s is not strictly greater than exclusive minimum %s",
	NotAMultiple:                   "value %s is not a multiple of %s",
	TooFewArrayItems:               "array has %s items, fewer than minItems %s",
	TooManyArrayItems:              "array has %s items, more than maxItems %s",
	TooFewItemSchemas:              "array has %s items but items schema only lists %s",
	NotUnique:                      "array items are not unique",
	TooManyProperties:              "object has %s properties, more than maxProperties %s",
	TooFewProperties:               "object has %s properties, fewer than minProperties %s",
	RequiredPropertyMissing:        "required property %s is missing",
	AdditionalPropertiesProhibited: "additional property %s is not permitted",
	InvalidEnumValue:               "value %s does not match any enum value",
	NotAllOf:                       "value does not satisfy all %s allOf schemas",
	NotAnyOf:                       "value does not satisfy any of %s anyOf schemas",
	NotOneOf:                       "value satisfies %s of %s oneOf schemas, want exactly one",
	ValidatesAgainstNotSchema:      "value validates against the not schema",
	InvalidFormat:                  "value %s does not satisfy format %s",
}

// Diagnostic is one validation message. It carries the JSON Pointer
// path to the instance token that triggered it, so the location prefix
// required by the specification is always available from String.
type Diagnostic struct {
	Kind     Kind
	Location string // JSON Pointer to the instance token, e.g. "#/tags/1"
	Args     []any
}

// Message renders the diagnostic text without its location prefix.
func (d *Diagnostic) Message() string {
	tmpl, ok := messageTemplates[d.Kind]
	if !ok {
		return d.Kind.String()
	}
	n := strings.Count(tmpl, "%s")
	args := make([]any, n)
	for i := range args {
		if i < len(d.Args) {
			args[i] = formatArg(d.Args[i])
		} else {
			args[i] = ""
		}
	}
	return fmt.Sprintf(tmpl, args...)
}

// String renders the diagnostic with its location prefix, in the form
// used in the validator's ordered message list.
func (d *Diagnostic) String() string {
	loc := d.Location
	if loc == "" {
		loc = "#"
	}
	return loc + ": " + d.Message()
}

// formatArgs renders a slice of arguments space-joined, using the same
// per-argument rules as formatArg. This is used for structural error
// text, which has no fixed template.
func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = formatArg(a)
	}
	return strings.Join(parts, " ")
}

// formatArg renders one argument per the specification's formatting
// rules: strings in double quotes, booleans lowercased, arrays with
// compacted whitespace ("[a, b, c]"), and nil as the literal "null".
func formatArg(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case bool:
		if x {
			return "true"
		}
		return "false"
	case []string:
		items := make([]string, len(x))
		copy(items, x)
		return "[" + strings.Join(items, ", ") + "]"
	case []any:
		items := make([]string, len(x))
		for i, e := range x {
			items[i] = formatArg(e)
		}
		return "[" + strings.Join(items, ", ") + "]"
	default:
		return fmt.Sprint(x)
	}
}
