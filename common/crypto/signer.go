/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

// DigestSigner signs a precomputed digest with a key pair.
type DigestSigner interface {
	Sign(digest []byte, kp *KeyPair) ([]byte, error)
}

// RSASigner binds a key pair to the provider that signs with it.
type RSASigner struct {
	Provider DigestSigner
	KeyPair  *KeyPair
}

func (s *RSASigner) Sign(digest []byte) ([]byte, error) {
	if s == nil || s.Provider == nil {
		return nil, ErrKeyNotInitialized
	}
	return s.Provider.Sign(digest, s.KeyPair)
}
