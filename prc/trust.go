// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prc

import "crypto/ed25519"

// TrustRegistry holds the known public keys used to validate a page's
// trailing signature block.
type TrustRegistry struct {
	keys []ed25519.PublicKey
}

// Trust is the process-wide registry of known public keys.
var Trust = &TrustRegistry{}

// AddKey registers a public key as trusted.
func (t *TrustRegistry) AddKey(pub ed25519.PublicKey) {
	t.keys = append(t.keys, pub)
}

// Verify returns the number of registered keys whose signature over
// message matches sig — the page's trust level.
func (t *TrustRegistry) Verify(message, sig []byte) int {
	if len(sig) == 0 {
		return 0
	}
	n := 0
	for _, k := range t.keys {
		if ed25519.Verify(k, message, sig) {
			n++
		}
	}
	return n
}
