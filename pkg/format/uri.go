// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"net/netip"
	"net/url"
	"strings"
)

// isValidURI reports whether s is a valid absolute URI.
func isValidURI(s string) bool {
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return false
	}
	return checkURI(u)
}

// isValidURIReference reports whether s is a valid URI, absolute or
// relative.
func isValidURIReference(s string) bool {
	if strings.HasPrefix(s, `\\`) {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return checkURI(u)
}

// checkURI applies the additional restrictions a bare url.Parse
// success does not catch.
func checkURI(u *url.URL) bool {
	if addr, err := netip.ParseAddr(u.Host); err == nil && addr.Is6() {
		// An IPv6 host must be bracketed; u.Host keeps the brackets
		// of a bracketed literal, so seeing a bare IPv6 literal here
		// means the original text omitted them.
		return false
	}
	if strings.Contains(u.Fragment, `\`) {
		return false
	}

	for i := range u.RawPath {
		c := u.RawPath[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			continue
		}
		switch c {
		case '-', '_', '.', '~', '@', '&', '=', '+', '$', '/', ';', ',', '(', ')', '#':
			continue
		default:
			return false
		}
	}
	return true
}
