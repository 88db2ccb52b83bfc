/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package protocol

import (
	"crypto/subtle"

	"github.com/pkg/errors"
	"github.com/zhigui-projects/go-docsign/api"
)

// Receiver validates envelopes against the sender's exported public key. It
// keeps no state between calls.
type Receiver struct {
	provider api.CryptoProvider
	opts     options
}

func NewReceiver(provider api.CryptoProvider, opts ...Option) *Receiver {
	return &Receiver{
		provider: provider,
		opts:     buildOptions(opts),
	}
}

// Validate checks the signature over digest before looking at document, then
// recomputes the digest of document instead of trusting the transmitted one.
// The only error is crypto.ErrInvalidKeyFormat; a bad signature or a modified
// document is reported through the result.
func (r *Receiver) Validate(document, digest, signature, exportedPublicKey []byte) (ValidationResult, error) {
	key, err := r.provider.ImportPublicKey(exportedPublicKey)
	if err != nil {
		return ValidationResult{}, errors.Wrap(err, "failed importing sender public key")
	}

	ok := r.provider.Verify(digest, signature, key)
	r.opts.notify(&SignatureCheckedEvent{Valid: ok})
	if !ok {
		return r.done(SignatureInvalid()), nil
	}

	unchanged := subtle.ConstantTimeCompare(r.provider.Digest(document), digest) == 1
	r.opts.notify(&DigestCheckedEvent{Unchanged: unchanged})
	if !unchanged {
		return r.done(DocumentTampered()), nil
	}
	return r.done(Valid(document)), nil
}

func (r *Receiver) ValidateEnvelope(env *Envelope) (ValidationResult, error) {
	if env == nil {
		env = &Envelope{}
	}
	return r.Validate(env.Document, env.Digest, env.Signature, env.PublicKey)
}

func (r *Receiver) done(res ValidationResult) ValidationResult {
	r.opts.notify(&ValidatedEvent{Outcome: res.Outcome})
	return res
}
