/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package transport

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/zhigui-projects/go-docsign/api"
	"github.com/zhigui-projects/go-docsign/common/log"
	"github.com/zhigui-projects/go-docsign/protocol"
)

var (
	ErrEnvelopeNotFound  = errors.New("envelope not found")
	ErrMalformedEnvelope = errors.New("malformed envelope")
)

var envelopePrefix = []byte("envelope/")

// Courier hands envelopes from a sender to a receiver through a Database.
// Delivery is assumed reliable: there are no retries and no encryption.
type Courier struct {
	db     api.Database
	seq    uint64
	logger log.Logger
}

func NewCourier(db api.Database) *Courier {
	return &Courier{
		db:     db,
		logger: log.GetLogger("module", "transport"),
	}
}

// Send stores env and returns the id the receiver collects it with.
func (c *Courier) Send(env *protocol.Envelope) (uint64, error) {
	if env == nil {
		return 0, errors.New("nil envelope")
	}
	data, err := env.Marshal()
	if err != nil {
		return 0, errors.Wrap(err, "failed marshalling envelope")
	}
	id := atomic.AddUint64(&c.seq, 1)
	if err := c.db.Put(envelopeKey(id), data); err != nil {
		return 0, errors.Wrapf(err, "failed storing envelope %d", id)
	}
	c.logger.Debug("envelope sent", "id", id, "size", len(data))
	return id, nil
}

// Receive removes and returns the envelope stored under id.
func (c *Courier) Receive(id uint64) (*protocol.Envelope, error) {
	key := envelopeKey(id)
	ok, err := c.db.Has(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(ErrEnvelopeNotFound, "id %d", id)
	}
	data, err := c.db.Get(key)
	if err != nil {
		return nil, err
	}
	if err := c.db.Delete(key); err != nil {
		return nil, err
	}

	env := &protocol.Envelope{}
	if err := env.Unmarshal(data); err != nil {
		return nil, errors.Wrapf(ErrMalformedEnvelope, "id %d: %v", id, err)
	}
	c.logger.Debug("envelope received", "id", id, "size", len(data))
	return env, nil
}

func envelopeKey(id uint64) []byte {
	key := make([]byte, len(envelopePrefix)+8)
	copy(key, envelopePrefix)
	binary.BigEndian.PutUint64(key[len(envelopePrefix):], id)
	return key
}
