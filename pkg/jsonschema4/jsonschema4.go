// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonschema4 is a thin convenience façade over the core
// packages: parse a schema, collapse its "$ref"s, and validate
// instances against it, without importing pkg/schema and
// internal/validator separately for the common path.
package jsonschema4

import (
	"fmt"

	motmedelErrors "github.com/Motmedel/utils_go/pkg/errors"

	"github.com/go-schemakit/draft4/internal/validator"
	"github.com/go-schemakit/draft4/pkg/schema"
)

// Schema is the parsed schema document.
type Schema = schema.Schema

// Validator checks JSON instances against a schema.
type Validator = validator.InstanceWalker

// ValidatorOptions configures a Validator.
type ValidatorOptions = validator.Options

// New parses data as a Draft-4 schema document.
func New(data []byte) (*Schema, error) {
	s, err := schema.FromJSON(data)
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("schema from json: %w", err))
	}
	return s, nil
}

// Collapse returns a deep clone of s with its "$ref" nodes inlined, as
// described on [schema.Collapse].
func Collapse(s *Schema) (*Schema, error) {
	out, err := schema.Collapse(s)
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("collapse schema: %w", err))
	}
	return out, nil
}

// NewValidator returns a Validator for root, with format checking
// disabled.
func NewValidator(root *Schema) *Validator {
	return validator.New(root)
}

// NewValidatorWithOptions returns a Validator for root configured by
// opts.
func NewValidatorWithOptions(root *Schema, opts ValidatorOptions) *Validator {
	return validator.NewWithOptions(root, opts)
}

// Validate parses schemaData, collapses its references, and checks
// instanceText against it in one call. It is a convenience for callers
// that don't need to reuse the parsed schema across multiple
// instances.
func Validate(schemaData, instanceText []byte) ([]string, error) {
	s, err := New(schemaData)
	if err != nil {
		return nil, err
	}
	collapsed, err := Collapse(s)
	if err != nil {
		return nil, err
	}
	msgs, err := NewValidator(collapsed).Validate(instanceText)
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("validate instance: %w", err))
	}
	return msgs, nil
}
