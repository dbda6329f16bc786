// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package format implements the opt-in format extension registry: a
// name-to-checker table a [github.com/go-schemakit/draft4/internal/validator.InstanceWalker]
// consults only when constructed with format checking enabled. A
// schema's "format" keyword is otherwise inert, matching the base
// specification.
package format

import "sync"

// Checker reports whether s satisfies a named format. A Checker is
// only ever consulted for string instances.
type Checker func(s string) bool

var (
	mu       sync.RWMutex
	checkers = map[string]Checker{
		"date-time":     isValidDateTime,
		"email":         isValidEmail,
		"hostname":      isValidHostname,
		"ipv4":          isValidIPv4,
		"ipv6":          isValidIPv6,
		"uri":           isValidURI,
		"uri-reference": isValidURIReference,
		"uuid":          isValidUUID,
		"json-pointer":  isValidJSONPointer,
		"regex":         isValidRegex,
	}
)

// Register adds or replaces the checker for name. It is safe to call
// from an init function.
func Register(name string, check Checker) {
	mu.Lock()
	defer mu.Unlock()
	checkers[name] = check
}

// Lookup returns the checker registered for name, and whether one
// exists. An unregistered format name is never itself a validation
// failure; the caller decides what to do with a missing checker.
func Lookup(name string) (Checker, bool) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := checkers[name]
	return c, ok
}
