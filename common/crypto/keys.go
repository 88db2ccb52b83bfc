/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import (
	"bytes"
	"crypto"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/pkg/errors"
)

const publicKeyPEMType = "PUBLIC KEY"

var pemHeader = []byte("-----BEGIN ")

// KeyPair owns an RSA private key. The private component has no accessor and
// is never serialized.
type KeyPair struct {
	priv *rsa.PrivateKey
}

func (kp *KeyPair) Public() *rsa.PublicKey {
	return &kp.priv.PublicKey
}

func (kp *KeyPair) Bits() int {
	return kp.priv.N.BitLen()
}

// String keeps key material out of formatted log output.
func (kp *KeyPair) String() string {
	return fmt.Sprintf("rsa-%d key pair", kp.Bits())
}

func (kp *KeyPair) GoString() string {
	return kp.String()
}

// PublicKeyHandle is the receiver side view of an imported public key. It can
// only verify.
type PublicKeyHandle struct {
	pub  *rsa.PublicKey
	hash crypto.Hash
}

func (h *PublicKeyHandle) Bits() int {
	return h.pub.N.BitLen()
}

// Verify checks a PSS signature over digest with the hash the key was imported
// under. The error result is reserved for misuse; rejection is reported as false.
func (h *PublicKeyHandle) Verify(signature, digest []byte) (bool, error) {
	if h == nil || h.pub == nil {
		return false, ErrKeyNotInitialized
	}
	return verifyPSS(h.pub, h.hash, digest, signature), nil
}

func marshalPublicKey(pub *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, errors.Wrap(err, "failed marshalling public key")
	}
	return pem.EncodeToMemory(&pem.Block{Type: publicKeyPEMType, Bytes: der}), nil
}

func parsePublicKey(blob []byte) (*rsa.PublicKey, error) {
	if len(blob) == 0 {
		return nil, errors.Wrap(ErrInvalidKeyFormat, "empty key blob")
	}
	// pem.Decode skips anything before the first header
	if !bytes.HasPrefix(blob, pemHeader) {
		return nil, errors.Wrap(ErrInvalidKeyFormat, "blob does not start with a PEM header")
	}
	block, rest := pem.Decode(blob)
	if block == nil {
		return nil, errors.Wrap(ErrInvalidKeyFormat, "no PEM block found")
	}
	if block.Type != publicKeyPEMType {
		return nil, errors.Wrapf(ErrInvalidKeyFormat, "unexpected PEM block type [%s]", block.Type)
	}
	if len(rest) != 0 {
		return nil, errors.Wrapf(ErrInvalidKeyFormat, "%d trailing bytes after PEM block", len(rest))
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidKeyFormat, "failed parsing PKIX public key [%v]", err)
	}
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidKeyFormat, "expected rsa public key, got %T", key)
	}
	if pub.N.BitLen() < MinKeyBits {
		return nil, errors.Wrapf(ErrInvalidKeyFormat, "rsa modulus of %d bits is too weak", pub.N.BitLen())
	}
	return pub, nil
}
