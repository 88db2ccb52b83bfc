/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha512"
	"io"
	"strings"

	"github.com/pkg/errors"
	_ "golang.org/x/crypto/sha3"
)

const (
	DefaultKeyBits = 2048
	MinKeyBits     = 2048
)

// Provider implements digest, key generation, signing and verification with
// RSASSA-PSS. The salt length always equals the digest length.
// A Provider holds no mutable state and is safe for concurrent use.
type Provider struct {
	hash    crypto.Hash
	keyBits int
	rand    io.Reader
}

type Option func(p *Provider)

func WithHash(h crypto.Hash) Option {
	return func(p *Provider) {
		p.hash = h
	}
}

func WithKeyBits(bits int) Option {
	return func(p *Provider) {
		p.keyBits = bits
	}
}

// WithRand replaces the entropy source used for key generation and PSS salts.
func WithRand(r io.Reader) Option {
	return func(p *Provider) {
		p.rand = r
	}
}

func NewProvider(opts ...Option) (*Provider, error) {
	p := &Provider{
		hash:    crypto.SHA384,
		keyBits: DefaultKeyBits,
		rand:    rand.Reader,
	}
	for _, opt := range opts {
		opt(p)
	}
	if !p.hash.Available() {
		return nil, errors.Wrapf(ErrUnsupportedHash, "hash %d is not linked into the binary", p.hash)
	}
	if p.hash.Size() != sha512.Size384 {
		return nil, errors.Wrapf(ErrUnsupportedHash, "%s is not a 384 bit hash", p.hash)
	}
	return p, nil
}

// HashByName maps a command line name to one of the 384 bit hash functions.
func HashByName(name string) (crypto.Hash, error) {
	switch strings.ToLower(name) {
	case "sha384", "sha-384":
		return crypto.SHA384, nil
	case "sha3-384", "sha3_384":
		return crypto.SHA3_384, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedHash, "unknown hash [%s]", name)
}

func (p *Provider) Hash() crypto.Hash {
	return p.hash
}

func (p *Provider) GenerateKeyPair() (*KeyPair, error) {
	if p.keyBits < MinKeyBits {
		return nil, errors.Wrapf(ErrKeyGeneration, "modulus of %d bits is below the %d bit minimum", p.keyBits, MinKeyBits)
	}
	priv, err := rsa.GenerateKey(p.rand, p.keyBits)
	if err != nil {
		return nil, errors.Wrapf(ErrKeyGeneration, "generating %d bit rsa key: %v", p.keyBits, err)
	}
	return &KeyPair{priv: priv}, nil
}

// Digest hashes exactly the given bytes.
func (p *Provider) Digest(data []byte) []byte {
	h := p.hash.New()
	h.Write(data)
	return h.Sum(nil)
}

// Sign signs digest, which must already be the output of Digest.
func (p *Provider) Sign(digest []byte, kp *KeyPair) ([]byte, error) {
	if kp == nil || kp.priv == nil {
		return nil, ErrKeyNotInitialized
	}
	if len(digest) != p.hash.Size() {
		return nil, errors.Errorf("digest length %d does not match %s size %d", len(digest), p.hash, p.hash.Size())
	}
	sig, err := rsa.SignPSS(p.rand, kp.priv, p.hash, digest, p.pssOptions())
	if err != nil {
		return nil, errors.Wrap(err, "failed signing digest")
	}
	return sig, nil
}

// Verify returns true iff signature was produced over digest by the private
// counterpart of key. It never panics on malformed input.
func (p *Provider) Verify(digest, signature []byte, key *PublicKeyHandle) bool {
	if key == nil {
		return false
	}
	return verifyPSS(key.pub, p.hash, digest, signature)
}

func (p *Provider) ExportPublicKey(kp *KeyPair) ([]byte, error) {
	if kp == nil || kp.priv == nil {
		return nil, ErrKeyNotInitialized
	}
	return marshalPublicKey(&kp.priv.PublicKey)
}

func (p *Provider) ImportPublicKey(blob []byte) (*PublicKeyHandle, error) {
	pub, err := parsePublicKey(blob)
	if err != nil {
		return nil, err
	}
	return &PublicKeyHandle{pub: pub, hash: p.hash}, nil
}

func (p *Provider) pssOptions() *rsa.PSSOptions {
	return &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: p.hash}
}

func verifyPSS(pub *rsa.PublicKey, h crypto.Hash, digest, signature []byte) bool {
	if pub == nil || pub.N == nil || len(digest) != h.Size() || len(signature) == 0 {
		return false
	}
	opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: h}
	return rsa.VerifyPSS(pub, h, digest, signature, opts) == nil
}
