// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uriref holds a Draft-4 reference value: an absolute URI, a
// relative URI, or a bare fragment of the form "#/definitions/<name>".
package uriref

import (
	"strings"

	"github.com/go-schemakit/draft4/pkg/diag"
)

const definitionPrefix = "#/definitions/"

// UriOrFragment is a reference value, as found in "id" or "$ref".
// The zero value is not meaningful; construct with [Parse].
type UriOrFragment struct {
	raw        string
	isFragment bool
}

// Parse builds a UriOrFragment from its wire string.
// A leading '#' marks a fragment-only reference.
func Parse(s string) UriOrFragment {
	return UriOrFragment{raw: s, isFragment: strings.HasPrefix(s, "#")}
}

// String returns the wire representation.
func (u UriOrFragment) String() string {
	return u.raw
}

// IsFragment reports whether u is a bare fragment reference.
func (u UriOrFragment) IsFragment() bool {
	return u.isFragment
}

// Equal reports whether two references are identical.
// Equality is string-exact; a fragment and an absolute URI with the
// same trailing text are not equal.
func (u UriOrFragment) Equal(v UriOrFragment) bool {
	return u.raw == v.raw && u.isFragment == v.isFragment
}

// DefinitionName returns the name following "#/definitions/" in a
// fragment reference. It fails with [diag.InvalidReferenceForm] if u
// is not a fragment, or does not begin with that prefix.
func (u UriOrFragment) DefinitionName() (string, error) {
	if !u.isFragment || !strings.HasPrefix(u.raw, definitionPrefix) {
		return "", &diag.StructuralError{
			Kind: diag.InvalidReferenceForm,
			Args: []any{u.raw},
		}
	}
	return u.raw[len(definitionPrefix):], nil
}
