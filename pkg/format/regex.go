// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import "regexp/syntax"

// isValidRegex reports whether s parses as a Go-syntax regular
// expression, which is the dialect the validator's own "pattern" and
// "patternProperties" checks use.
func isValidRegex(s string) bool {
	_, err := syntax.Parse(s, syntax.Perl)
	return err == nil
}
