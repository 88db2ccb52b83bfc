/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package protocol

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Envelope field numbers on the wire.
const (
	fieldDocument  protowire.Number = 1
	fieldDigest    protowire.Number = 2
	fieldSignature protowire.Number = 3
	fieldPublicKey protowire.Number = 4
)

// Envelope is everything the receiver gets from the sender.
type Envelope struct {
	Document  []byte
	Digest    []byte
	Signature []byte
	// PublicKey is the sender's exported public key blob.
	PublicKey []byte
}

// Marshal encodes the envelope in protobuf wire format.
func (e *Envelope) Marshal() ([]byte, error) {
	var b []byte
	for _, f := range []struct {
		num protowire.Number
		val []byte
	}{
		{fieldDocument, e.Document},
		{fieldDigest, e.Digest},
		{fieldSignature, e.Signature},
		{fieldPublicKey, e.PublicKey},
	} {
		if len(f.val) == 0 {
			continue
		}
		b = protowire.AppendTag(b, f.num, protowire.BytesType)
		b = protowire.AppendBytes(b, f.val)
	}
	return b, nil
}

// Unmarshal decodes data into the envelope. Unknown fields are skipped.
func (e *Envelope) Unmarshal(data []byte) error {
	*e = Envelope{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return errors.Wrap(protowire.ParseError(n), "failed decoding envelope tag")
		}
		data = data[n:]

		if typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return errors.Wrapf(protowire.ParseError(n), "failed skipping envelope field %d", num)
			}
			data = data[n:]
			continue
		}

		val, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return errors.Wrapf(protowire.ParseError(n), "failed decoding envelope field %d", num)
		}
		data = data[n:]

		val = append([]byte{}, val...)
		switch num {
		case fieldDocument:
			e.Document = val
		case fieldDigest:
			e.Digest = val
		case fieldSignature:
			e.Signature = val
		case fieldPublicKey:
			e.PublicKey = val
		}
	}
	return nil
}
