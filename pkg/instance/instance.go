// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package instance implements the typed JSON value tree used by the
// validator: a tagged union that keeps Integer distinct from Number,
// and preserves object key order so diagnostics are emitted in a
// deterministic sequence.
package instance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind is the JSON type tag of a [Value].
type Kind int

const (
	Null Kind = iota
	Boolean
	Integer
	Number
	String
	Array
	Object
	// Date is a source-only tag: no JSON literal decodes to it, but a
	// [Value] with this Kind may be constructed programmatically by a
	// caller whose instance data pipeline tags certain strings as
	// dates before they reach the validator. See the discussion of the
	// Date-subset-of-String rule in the validator package.
	Date
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "Null"
	case Boolean:
		return "Boolean"
	case Integer:
		return "Integer"
	case Number:
		return "Number"
	case String:
		return "String"
	case Array:
		return "Array"
	case Object:
		return "Object"
	case Date:
		return "Date"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ObjectValue is an ordered mapping from property name to value, as found
// in a JSON object instance. Names preserves the order properties
// appeared in the source text.
type ObjectValue struct {
	Names  []string
	byName map[string]*Value
}

// NewObject returns an empty, ready-to-use ObjectValue.
func NewObject() *ObjectValue {
	return &ObjectValue{byName: make(map[string]*Value)}
}

// Set appends name to the object, or replaces the value of an existing
// name in place without disturbing its position.
func (o *ObjectValue) Set(name string, v *Value) {
	if o.byName == nil {
		o.byName = make(map[string]*Value)
	}
	if _, ok := o.byName[name]; !ok {
		o.Names = append(o.Names, name)
	}
	o.byName[name] = v
}

// Get returns the value for name, and whether it is present.
func (o *ObjectValue) Get(name string) (*Value, bool) {
	v, ok := o.byName[name]
	return v, ok
}

// Len returns the number of properties.
func (o *ObjectValue) Len() int {
	return len(o.Names)
}

// Value is a JSON instance value.
type Value struct {
	Kind Kind
	Bool bool
	Int  int64
	Flt  float64
	Str  string
	Arr  []*Value
	Obj  *ObjectValue
}

// NumberValue returns the numeric value of an Integer or Number, and
// reports whether Kind was one of those two.
func (v *Value) NumberValue() (float64, bool) {
	switch v.Kind {
	case Integer:
		return float64(v.Int), true
	case Number:
		return v.Flt, true
	default:
		return 0, false
	}
}

// Decode parses JSON text into a [Value] tree, preserving Integer vs.
// Number and object key order. It reports a decode error using the
// standard library's own message; callers that need a
// [github.com/go-schemakit/draft4/pkg/diag.StructuralError] should wrap
// it with [diag.MalformedJson] themselves (as the validator package does).
func Decode(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return &Value{Kind: Null}, nil
	case bool:
		return &Value{Kind: Boolean, Bool: t}, nil
	case string:
		return &Value{Kind: String, Str: t}, nil
	case json.Number:
		return numberValue(t)
	case json.Delim:
		switch t {
		case '[':
			var arr []*Value
			for dec.More() {
				elem, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, elem)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return &Value{Kind: Array, Arr: arr}, nil
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string")
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return &Value{Kind: Object, Obj: obj}, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	default:
		return nil, fmt.Errorf("unexpected JSON token %v (%T)", tok, tok)
	}
}

// numberValue classifies a JSON number literal as Integer or Number.
// A literal with a fraction or exponent is a Number even if its value
// happens to be integral, matching the distinction JSON Schema Draft 4
// implementations make between "1" and "1.0".
func numberValue(n json.Number) (*Value, error) {
	s := string(n)
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return &Value{Kind: Integer, Int: i}, nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, err
	}
	return &Value{Kind: Number, Flt: f}, nil
}

// DeepEqual reports whether a and b are structurally identical: JSON
// numbers compared by value regardless of Integer/Number tag, strings
// by code point, arrays element-wise, and objects as unordered
// key/value sets.
func DeepEqual(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}

	an, aIsNum := a.NumberValue()
	bn, bIsNum := b.NumberValue()
	if aIsNum && bIsNum {
		return an == bn
	}
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case Null:
		return true
	case Boolean:
		return a.Bool == b.Bool
	case String, Date:
		return a.Str == b.Str
	case Array:
		if len(a.Arr) != len(b.Arr) {
			return false
		}
		for i := range a.Arr {
			if !DeepEqual(a.Arr[i], b.Arr[i]) {
				return false
			}
		}
		return true
	case Object:
		if a.Obj.Len() != b.Obj.Len() {
			return false
		}
		for _, name := range a.Obj.Names {
			av, _ := a.Obj.Get(name)
			bv, ok := b.Obj.Get(name)
			if !ok || !DeepEqual(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// CompactJSON renders v as compact JSON text, for use in diagnostic
// messages that quote the offending instance value.
func (v *Value) CompactJSON() string {
	var sb strings.Builder
	v.writeJSON(&sb)
	return sb.String()
}

func (v *Value) writeJSON(sb *strings.Builder) {
	switch v.Kind {
	case Null:
		sb.WriteString("null")
	case Boolean:
		if v.Bool {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case Integer:
		fmt.Fprintf(sb, "%d", v.Int)
	case Number:
		fmt.Fprintf(sb, "%g", v.Flt)
	case String, Date:
		data, _ := json.Marshal(v.Str)
		sb.Write(data)
	case Array:
		sb.WriteByte('[')
		for i, e := range v.Arr {
			if i > 0 {
				sb.WriteByte(',')
			}
			e.writeJSON(sb)
		}
		sb.WriteByte(']')
	case Object:
		sb.WriteByte('{')
		for i, name := range v.Obj.Names {
			if i > 0 {
				sb.WriteByte(',')
			}
			data, _ := json.Marshal(name)
			sb.Write(data)
			sb.WriteByte(':')
			val, _ := v.Obj.Get(name)
			val.writeJSON(sb)
		}
		sb.WriteByte('}')
	}
}
