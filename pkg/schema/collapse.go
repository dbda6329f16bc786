// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"github.com/go-schemakit/draft4/pkg/diag"
	"github.com/go-schemakit/draft4/pkg/instance"
)

// Collapse returns a deep clone of root with every "$ref" node inlined:
// a fixed set of its referenced definition's fields ("type", "enum",
// "items", "pattern", "maxLength", "minLength", "multipleOf",
// "maximum", "exclusiveMaximum", "minItems", "maxItems",
// "uniqueItems", "format") is copied into the referring node, and the
// "$ref" itself is cleared. Every other field of the definition,
// including "minimum" and "exclusiveMinimum", is not copied. Only bare
// fragment references of the form "#/definitions/<name>" are
// supported; anything else fails with
// [diag.UnsupportedReferenceForm]. A fragment naming a definition that
// does not exist fails with [diag.DefinitionNotFound].
//
// Per the algorithm this implements, collapse only descends into
// "items", each "properties" value, each "definitions" value, and a
// schema-valued "additionalProperties" — a "$ref" nested under
// "patternProperties", "allOf", "anyOf", "oneOf", or "not" is left
// untouched. This mirrors the reference implementation this module is
// modeled on; see DESIGN.md for the reasoning.
func Collapse(root *Schema) (*Schema, error) {
	clone := root.Clone()
	if err := collapseNode(clone, clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// collapseNode collapses node in place. root is the schema whose
// "definitions" map every "$ref" in the tree resolves against,
// regardless of how deep node is nested.
func collapseNode(node, root *Schema) error {
	if node.Reference != nil {
		if err := inlineReference(node, root); err != nil {
			return err
		}
	}

	if node.Items != nil {
		if node.Items.Single != nil {
			if err := collapseNode(node.Items.Single, root); err != nil {
				return err
			}
		}
		for _, sub := range node.Items.Seq {
			if err := collapseNode(sub, root); err != nil {
				return err
			}
		}
	}
	if node.Properties != nil {
		for _, name := range node.Properties.Names {
			sub, _ := node.Properties.Get(name)
			if err := collapseNode(sub, root); err != nil {
				return err
			}
		}
	}
	if node.Definitions != nil {
		for _, name := range node.Definitions.Names {
			sub, _ := node.Definitions.Get(name)
			if err := collapseNode(sub, root); err != nil {
				return err
			}
		}
	}
	if node.AdditionalProperties != nil && node.AdditionalProperties.Schema != nil {
		if err := collapseNode(node.AdditionalProperties.Schema, root); err != nil {
			return err
		}
	}
	return nil
}

// inlineReference resolves node's "$ref" against root's "definitions"
// and copies the target's fields listed on [Collapse] into node, clearing
// the reference so the merged node no longer carries one.
func inlineReference(node, root *Schema) error {
	ref := node.Reference
	if !ref.IsFragment() {
		return &diag.StructuralError{Kind: diag.UnsupportedReferenceForm, Args: []any{ref.String()}}
	}
	name, err := ref.DefinitionName()
	if err != nil {
		return err
	}
	def, ok := root.Definitions.Get(name)
	if !ok {
		return &diag.StructuralError{Kind: diag.DefinitionNotFound, Args: []any{name}}
	}

	node.Type = append([]Type(nil), def.Type...)
	node.Enum = append([]*instance.Value(nil), def.Enum...)
	if def.Items != nil {
		items := def.Items.Clone()
		if items.Single != nil {
			if err := collapseNode(items.Single, root); err != nil {
				return err
			}
		}
		for _, sub := range items.Seq {
			if err := collapseNode(sub, root); err != nil {
				return err
			}
		}
		node.Items = items
	}
	node.Pattern = clonePtr(def.Pattern)
	node.MaxLength = cloneInt(def.MaxLength)
	node.MinLength = cloneInt(def.MinLength)
	node.MultipleOf = cloneFloat(def.MultipleOf)
	node.Maximum = cloneFloat(def.Maximum)
	node.ExclusiveMaximum = cloneBool(def.ExclusiveMaximum)
	node.MinItems = cloneInt(def.MinItems)
	node.MaxItems = cloneInt(def.MaxItems)
	node.UniqueItems = cloneBool(def.UniqueItems)
	node.Format = clonePtr(def.Format)

	node.Reference = nil
	return nil
}
