// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"net/netip"
	"strings"
	"sync"

	"golang.org/x/net/idna"
)

// hostnameProfile returns the IDNA profile used to validate hostnames.
var hostnameProfile = sync.OnceValue(func() *idna.Profile {
	return idna.New(idna.ValidateForRegistration())
})

// isValidHostname reports whether s is a valid hostname.
func isValidHostname(s string) bool {
	if _, err := netip.ParseAddr(s); err == nil {
		return true
	}

	// Underscores are permitted by idna but not by common hostname
	// usage.
	if strings.Contains(s, "_") {
		return false
	}
	for i := range len(s) {
		if s[i]&0x80 != 0 {
			return false
		}
	}

	_, err := hostnameProfile().ToASCII(s)
	return err == nil
}
