// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"net/mail"
	"strings"
)

// isValidEmail reports whether s is a valid RFC5321 email address.
func isValidEmail(s string) bool {
	// This is the syntax we are supposed to parse. But in fact we
	// don't bother, and just defer to the net/mail package. That is
	// more likely to implement what the user expects anyhow.
	//
	// Mailbox          = Local-part "@" ( Domain / address-literal )
	// Local-part       = Dot-string / Quoted-string
	// Dot-string       = Atom *("."  Atom)
	// Atom             = 1*atext
	// Domain           = sub-domain *("." sub-domain)

	// RFC5321 permits IPv6 literals as "IPv6:literal" but net/mail
	// doesn't parse that.
	s = strings.Replace(s, "[IPv6:", "[", 1)

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" {
		return false
	}

	idx := strings.LastIndex(addr.Address, "@")
	if idx < 0 {
		return false
	}
	domain := addr.Address[idx+1:]
	if len(domain) > 0 && domain[0] != '[' && !isNonIDNDomain(domain) {
		return false
	}

	return true
}

// isNonIDNDomain reports whether s might be a non-internationalized
// domain name.
func isNonIDNDomain(s string) bool {
	for i := range len(s) {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '.':
		case c == '-':
		default:
			return false
		}
	}
	return true
}
