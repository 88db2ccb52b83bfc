/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package protocol

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/zhigui-projects/go-docsign/api"
	"github.com/zhigui-projects/go-docsign/common/crypto"
)

type SenderState int

const (
	Uninitialized SenderState = iota
	KeyReady
)

func (s SenderState) String() string {
	if s == KeyReady {
		return "KeyReady"
	}
	return "Uninitialized"
}

// Sender owns a key pair and produces signed envelopes. The private key never
// leaves the Sender; only the exported public key is attached to envelopes.
type Sender struct {
	provider api.CryptoProvider
	opts     options

	mut       sync.Mutex
	signer    api.Signer
	publicKey []byte
}

func NewSender(provider api.CryptoProvider, opts ...Option) *Sender {
	return &Sender{
		provider: provider,
		opts:     buildOptions(opts),
	}
}

// Init generates the key pair. It is safe to call more than once and from
// several goroutines; only the first successful call generates a key.
func (s *Sender) Init() error {
	s.mut.Lock()
	defer s.mut.Unlock()
	if s.signer != nil {
		return nil
	}

	kp, err := s.provider.GenerateKeyPair()
	if err != nil {
		return err
	}
	pub, err := s.provider.ExportPublicKey(kp)
	if err != nil {
		return errors.Wrap(err, "failed exporting sender public key")
	}
	s.signer = &crypto.RSASigner{Provider: s.provider, KeyPair: kp}
	s.publicKey = pub

	s.opts.notify(&KeyReadyEvent{Bits: kp.Bits()})
	return nil
}

func (s *Sender) State() SenderState {
	s.mut.Lock()
	defer s.mut.Unlock()
	if s.signer == nil {
		return Uninitialized
	}
	return KeyReady
}

func (s *Sender) PublicKey() ([]byte, error) {
	signer, pub := s.loadSigner()
	if signer == nil {
		return nil, errors.Wrap(crypto.ErrKeyNotInitialized, "sender has no public key")
	}
	return append([]byte(nil), pub...), nil
}

// PrepareMessage encodes plaintext as UTF-8, hashes it and signs the digest.
func (s *Sender) PrepareMessage(plaintext string) (*Envelope, error) {
	signer, pub := s.loadSigner()
	if signer == nil {
		return nil, errors.Wrap(crypto.ErrKeyNotInitialized, "prepare message")
	}

	document := []byte(plaintext)
	digest := s.provider.Digest(document)
	signature, err := signer.Sign(digest)
	if err != nil {
		return nil, errors.Wrap(err, "prepare message")
	}

	s.opts.notify(&MessagePreparedEvent{
		DocumentSize:  len(document),
		Digest:        digest,
		SignatureSize: len(signature),
	})
	return &Envelope{
		Document:  document,
		Digest:    digest,
		Signature: signature,
		PublicKey: append([]byte(nil), pub...),
	}, nil
}

func (s *Sender) loadSigner() (api.Signer, []byte) {
	s.mut.Lock()
	defer s.mut.Unlock()
	return s.signer, s.publicKey
}
