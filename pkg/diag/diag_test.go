// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import "testing"

func TestDiagnosticString(t *testing.T) {
	d := &Diagnostic{
		Kind:     RequiredPropertyMissing,
		Location: "#/properties/order",
		Args:     []any{"customerId"},
	}
	got := d.String()
	want := `#/properties/order: required property "customerId" is missing`
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDiagnosticStringDefaultsLocation(t *testing.T) {
	d := &Diagnostic{Kind: NotUnique}
	got := d.String()
	want := "#: array items are not unique"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFormatArgString(t *testing.T) {
	d := &Diagnostic{Kind: WrongType, Args: []any{"Boolean", []string{"String"}}}
	got := d.Message()
	want := `value has type "Boolean", want one of [String]`
	if got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestFormatArgArray(t *testing.T) {
	d := &Diagnostic{Kind: WrongType, Args: []any{"Boolean", []string{"Integer", "Number"}}}
	got := d.Message()
	want := `value has type "Boolean", want one of [Integer, Number]`
	if got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestStructuralErrorMessage(t *testing.T) {
	err := &StructuralError{Kind: DefinitionNotFound, Args: []any{"address"}}
	got := err.Error()
	want := `DefinitionNotFound: "address"`
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
