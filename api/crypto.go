/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package api

import "github.com/zhigui-projects/go-docsign/common/crypto"

type Verifier interface {
	Verify(signature, digest []byte) (bool, error)
}

type Signer interface {
	Sign(digest []byte) ([]byte, error)
}

var (
	_ Signer   = (*crypto.RSASigner)(nil)
	_ Verifier = (*crypto.PublicKeyHandle)(nil)
)

// CryptoProvider is the set of primitives both parties of an exchange rely on.
// Verify reports semantic rejection through its boolean result only.
type CryptoProvider interface {
	GenerateKeyPair() (*crypto.KeyPair, error)
	ExportPublicKey(kp *crypto.KeyPair) ([]byte, error)
	ImportPublicKey(blob []byte) (*crypto.PublicKeyHandle, error)
	Digest(data []byte) []byte
	Sign(digest []byte, kp *crypto.KeyPair) ([]byte, error)
	Verify(digest, signature []byte, key *crypto.PublicKeyHandle) bool
}
