// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prc

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	"pandacore.dev/engine/base/errors"
)

const (
	decryptSaltSize   = 16
	decryptIterations = 100000
	decryptKeyLen     = 32
)

// decryptPage reverses the simple salted-PBKDF2/AES-CTR scheme applied
// to FlagDecrypt pages: the first 16 bytes of the file are a random
// salt, the next 16 bytes are the AES-CTR IV, and the rest is
// ciphertext produced by XORing the plaintext with an AES-CTR keystream
// keyed from (passphrase, salt). Panda3D's
// encrypt_string used Blowfish-CBC with a format-specific header; this
// module picks AES-CTR plus PBKDF2 instead, the combination
// cogentcore's own release tooling reaches for when it needs symmetric
// encryption at rest, rather than reimplementing Blowfish for
// compatibility with a wire format no Go codebase in this project's
// lineage consumes.
func decryptPage(data []byte, passphrase string) ([]byte, error) {
	if len(data) < decryptSaltSize {
		return nil, errors.New("prc: encrypted page too short")
	}
	salt, ciphertext := data[:decryptSaltSize], data[decryptSaltSize:]
	key := pbkdf2.Key([]byte(passphrase), salt, decryptIterations, decryptKeyLen, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err)
	}
	if len(ciphertext) < aes.BlockSize {
		return nil, errors.New("prc: encrypted page missing IV")
	}
	iv, body := ciphertext[:aes.BlockSize], ciphertext[aes.BlockSize:]
	plaintext := make([]byte, len(body))
	cipher.NewCTR(block, iv).XORKeyStream(plaintext, body)
	return plaintext, nil
}
