// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package equalkind classifies a resolved schema node into the
// ComparisonKind/HashKind pair a code generator needs to emit
// equality and hash code for the class it generates from that node. It
// does not itself generate code; it only computes the published
// classification the generator queries.
package equalkind

import "github.com/go-schemakit/draft4/pkg/schema"

// ComparisonKind names the equality strategy a generated property
// getter should use.
type ComparisonKind int

const (
	OperatorEquals ComparisonKind = iota + 1
	ObjectEquals
	EqualityComparerEquals
	CollectionEquals
	DictionaryEquals
)

func (c ComparisonKind) String() string {
	switch c {
	case OperatorEquals:
		return "OperatorEquals"
	case ObjectEquals:
		return "ObjectEquals"
	case EqualityComparerEquals:
		return "EqualityComparerEquals"
	case CollectionEquals:
		return "Collection"
	case DictionaryEquals:
		return "Dictionary"
	default:
		return "ComparisonKind(unknown)"
	}
}

// HashKind names the hashing strategy paired with a ComparisonKind.
type HashKind int

const (
	ScalarValueType HashKind = iota + 1
	ScalarReferenceType
	CollectionHash
	DictionaryHash
)

func (h HashKind) String() string {
	switch h {
	case ScalarValueType:
		return "ScalarValueType"
	case ScalarReferenceType:
		return "ScalarReferenceType"
	case CollectionHash:
		return "Collection"
	case DictionaryHash:
		return "Dictionary"
	default:
		return "HashKind(unknown)"
	}
}

// Classify computes the (ComparisonKind, HashKind) pair for a resolved
// schema node. s must already have had its "$ref" inlined by
// [schema.Collapse]; wasReference reports whether s carried a "$ref"
// before that collapse, distinguishing a node that names a reusable
// definition (worth a dedicated generated class) from one that was
// always inline.
func Classify(s *schema.Schema, wasReference bool) (ComparisonKind, HashKind) {
	types := s.Type
	noType := len(types) == 0
	soleObject := isSoleType(types, schema.TypeObject)

	hasFixedProperties := s.Properties.Len() > 0
	hasDictionaryShape := s.PatternProps.Len() > 0 ||
		(s.AdditionalProperties != nil && s.AdditionalProperties.Schema != nil)

	if (noType || soleObject) && (hasFixedProperties || hasDictionaryShape) {
		switch {
		case hasDictionaryShape && !hasFixedProperties:
			return DictionaryEquals, DictionaryHash
		case wasReference:
			return ObjectEquals, ScalarReferenceType
		default:
			return EqualityComparerEquals, ScalarReferenceType
		}
	}

	if isSoleType(types, schema.TypeArray) {
		return CollectionEquals, CollectionHash
	}

	if len(types) == 1 {
		switch types[0] {
		case schema.TypeBoolean, schema.TypeInteger, schema.TypeNumber:
			return OperatorEquals, ScalarValueType
		case schema.TypeString:
			return OperatorEquals, ScalarReferenceType
		}
	}

	return ObjectEquals, ScalarReferenceType
}

func isSoleType(types []schema.Type, want schema.Type) bool {
	return len(types) == 1 && types[0] == want
}
