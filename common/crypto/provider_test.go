/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keysOnce sync.Once
	aliceKey *KeyPair
	eveKey   *KeyPair
)

// testKeys generates two key pairs once per test binary; rsa key generation
// dominates the runtime otherwise.
func testKeys(t *testing.T) (*KeyPair, *KeyPair) {
	keysOnce.Do(func() {
		p := newTestProvider(t)
		var err error
		aliceKey, err = p.GenerateKeyPair()
		require.NoError(t, err)
		eveKey, err = p.GenerateKeyPair()
		require.NoError(t, err)
	})
	require.NotNil(t, aliceKey)
	require.NotNil(t, eveKey)
	return aliceKey, eveKey
}

func newTestProvider(t *testing.T, opts ...Option) *Provider {
	p, err := NewProvider(opts...)
	require.NoError(t, err)
	return p
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy source unavailable")
}

func TestDigestDeterministic(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t)
	for _, data := range [][]byte{nil, {}, []byte("Bob, this is Alice."), bytes.Repeat([]byte{0xff}, 4096)} {
		d1 := p.Digest(data)
		d2 := p.Digest(data)
		assert.Len(t, d1, 48)
		assert.Equal(t, d1, d2)
	}
	assert.Equal(t, p.Digest(nil), p.Digest([]byte{}))
}

func TestDigestSensitivity(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t)
	doc := []byte("Bob, this is Alice. DC Morrison sends his best wishes to you.")
	orig := p.Digest(doc)

	seen := map[string]struct{}{string(orig): {}}
	for i := range doc {
		for _, mask := range []byte{0x01, 0x80} {
			mutated := append([]byte(nil), doc...)
			mutated[i] ^= mask
			d := p.Digest(mutated)
			_, dup := seen[string(d)]
			assert.False(t, dup, "digest collision at byte %d mask %#x", i, mask)
			seen[string(d)] = struct{}{}
		}
	}
}

func TestSignVerify(t *testing.T) {
	p := newTestProvider(t)
	alice, _ := testKeys(t)

	blob, err := p.ExportPublicKey(alice)
	require.NoError(t, err)
	pub, err := p.ImportPublicKey(blob)
	require.NoError(t, err)

	digest := p.Digest([]byte("hello world"))
	sig1, err := p.Sign(digest, alice)
	require.NoError(t, err)
	sig2, err := p.Sign(digest, alice)
	require.NoError(t, err)

	// salts are random, both signatures must verify
	assert.True(t, p.Verify(digest, sig1, pub))
	assert.True(t, p.Verify(digest, sig2, pub))

	ok, err := pub.Verify(sig1, digest)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyRejects(t *testing.T) {
	p := newTestProvider(t)
	alice, eve := testKeys(t)

	alicePub := importKey(t, p, alice)
	evePub := importKey(t, p, eve)

	digest := p.Digest([]byte("hello world"))
	sig, err := p.Sign(digest, alice)
	require.NoError(t, err)

	assert.False(t, p.Verify(digest, sig, evePub), "cross key")
	assert.False(t, p.Verify(p.Digest([]byte("hello world!")), sig, alicePub), "other digest")
	assert.False(t, p.Verify(digest[:47], sig, alicePub), "short digest")
	assert.False(t, p.Verify(digest, nil, alicePub), "nil signature")
	assert.False(t, p.Verify(digest, sig[:len(sig)-1], alicePub), "truncated signature")
	assert.False(t, p.Verify(digest, append(sig, 0), alicePub), "long signature")
	assert.False(t, p.Verify(digest, sig, nil), "nil key")

	flipped := append([]byte(nil), sig...)
	flipped[10] ^= 0x01
	assert.False(t, p.Verify(digest, flipped, alicePub), "flipped bit")

	ok, err := (*PublicKeyHandle)(nil).Verify(sig, digest)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrKeyNotInitialized))
}

func TestSignErrors(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t)
	_, err := p.Sign(make([]byte, 48), nil)
	assert.True(t, errors.Is(err, ErrKeyNotInitialized))

	alice, _ := testKeys(t)
	_, err = p.Sign([]byte("not a digest"), alice)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "digest length 12 does not match")
}

func TestGenerateKeyPairErrors(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, WithRand(failingReader{}))
	_, err := p.GenerateKeyPair()
	assert.True(t, errors.Is(err, ErrKeyGeneration))

	weak := newTestProvider(t, WithKeyBits(1024))
	_, err = weak.GenerateKeyPair()
	assert.True(t, errors.Is(err, ErrKeyGeneration))
	assert.Contains(t, err.Error(), "below the 2048 bit minimum")
}

func TestExportDoesNotLeakPrivateKey(t *testing.T) {
	p := newTestProvider(t)
	alice, _ := testKeys(t)

	blob, err := p.ExportPublicKey(alice)
	require.NoError(t, err)
	assert.NotContains(t, string(blob), "PRIVATE")

	block, rest := pem.Decode(blob)
	require.NotNil(t, block)
	assert.Empty(t, rest)
	assert.Equal(t, "PUBLIC KEY", block.Type)

	privDER := x509.MarshalPKCS1PrivateKey(alice.priv)
	assert.False(t, bytes.Contains(blob, privDER))
	assert.NotContains(t, alice.String(), alice.priv.D.String())

	_, err = p.ExportPublicKey(nil)
	assert.True(t, errors.Is(err, ErrKeyNotInitialized))
}

func TestImportPublicKeyMalformed(t *testing.T) {
	p := newTestProvider(t)
	alice, _ := testKeys(t)
	blob, err := p.ExportPublicKey(alice)
	require.NoError(t, err)

	random := make([]byte, 300)
	_, err = rand.Read(random)
	require.NoError(t, err)

	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	ecDER, err := x509.MarshalPKIXPublicKey(&ecKey.PublicKey)
	require.NoError(t, err)

	weakKey, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	weakDER, err := x509.MarshalPKIXPublicKey(&weakKey.PublicKey)
	require.NoError(t, err)

	block, _ := pem.Decode(blob)
	corrupted := append([]byte(nil), block.Bytes...)
	corrupted = corrupted[:len(corrupted)/2]

	cases := map[string][]byte{
		"nil":           nil,
		"random":        random,
		"truncated":     blob[:len(blob)/2],
		"trailing":      append(append([]byte(nil), blob...), blob...),
		"leading junk":  append([]byte("junk\n"), blob...),
		"leading space": append([]byte(" "), blob...),
		"private type":  pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: block.Bytes}),
		"truncated der": pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: corrupted}),
		"ecdsa key":     pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: ecDER}),
		"weak rsa key":  pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: weakDER}),
	}
	for name, in := range cases {
		assert.NotPanics(t, func() {
			h, err := p.ImportPublicKey(in)
			assert.Nil(t, h, name)
			assert.True(t, errors.Is(err, ErrInvalidKeyFormat), "%s: %v", name, err)
		}, name)
	}
}

func TestSHA3Provider(t *testing.T) {
	p := newTestProvider(t, WithHash(crypto.SHA3_384))
	alice, _ := testKeys(t)

	digest := p.Digest([]byte("Bob, this is Alice."))
	assert.Len(t, digest, 48)
	assert.NotEqual(t, newTestProvider(t).Digest([]byte("Bob, this is Alice.")), digest)

	sig, err := p.Sign(digest, alice)
	require.NoError(t, err)
	assert.True(t, p.Verify(digest, sig, importKey(t, p, alice)))

	// a SHA-384 verifier must not accept a SHA3-384 signature
	sha2 := newTestProvider(t)
	assert.False(t, sha2.Verify(digest, sig, importKey(t, sha2, alice)))
}

func TestNewProviderRejectsWeakHash(t *testing.T) {
	t.Parallel()

	_, err := NewProvider(WithHash(crypto.SHA256))
	assert.True(t, errors.Is(err, ErrUnsupportedHash))

	// every accepted hash yields a 48 byte digest
	_, err = NewProvider(WithHash(crypto.SHA512))
	assert.True(t, errors.Is(err, ErrUnsupportedHash))
	assert.Contains(t, err.Error(), "is not a 384 bit hash")

	_, err = NewProvider(WithHash(crypto.Hash(999)))
	assert.True(t, errors.Is(err, ErrUnsupportedHash))
}

func TestHashByName(t *testing.T) {
	t.Parallel()

	h, err := HashByName("SHA384")
	assert.NoError(t, err)
	assert.Equal(t, crypto.SHA384, h)

	h, err = HashByName("sha3-384")
	assert.NoError(t, err)
	assert.Equal(t, crypto.SHA3_384, h)

	for _, name := range []string{"md5", "sha512", "sha-512"} {
		_, err = HashByName(name)
		assert.True(t, errors.Is(err, ErrUnsupportedHash), name)
	}
}

func importKey(t *testing.T, p *Provider, kp *KeyPair) *PublicKeyHandle {
	blob, err := p.ExportPublicKey(kp)
	require.NoError(t, err)
	h, err := p.ImportPublicKey(blob)
	require.NoError(t, err)
	return h
}
