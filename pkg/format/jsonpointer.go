// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import "strings"

// isValidJSONPointer reports whether s is a valid JSON Pointer.
func isValidJSONPointer(s string) bool {
	if len(s) == 0 {
		return true
	}
	if !strings.HasPrefix(s, "/") {
		return false
	}
	return checkJSONPointerEscapes(s)
}

// checkJSONPointerEscapes reports whether s escapes "~" only as "~0"
// or "~1".
func checkJSONPointerEscapes(s string) bool {
	for {
		_, after, ok := strings.Cut(s, "~")
		if !ok {
			break
		}
		if len(after) == 0 || (after[0] != '0' && after[0] != '1') {
			return false
		}
		s = after
	}
	return true
}
