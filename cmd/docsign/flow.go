/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/pkg/errors"
	"github.com/zhigui-projects/go-docsign/api"
	"github.com/zhigui-projects/go-docsign/common/crypto"
	"github.com/zhigui-projects/go-docsign/common/db/memorydb"
	"github.com/zhigui-projects/go-docsign/common/log"
	"github.com/zhigui-projects/go-docsign/protocol"
	"github.com/zhigui-projects/go-docsign/transport"
)

const (
	tamperNone      = "none"
	tamperDocument  = "document"
	tamperSignature = "signature"
)

// narrator logs each workflow step with the time elapsed since the run began.
type narrator struct {
	logger log.Logger
	clock  clock.Clock
	start  time.Time
}

func newNarrator(logger log.Logger, clk clock.Clock) *narrator {
	return &narrator{logger: logger, clock: clk, start: clk.Now()}
}

func (n *narrator) OnEvent(ev api.Event) {
	elapsed := n.clock.Since(n.start)
	switch e := ev.(type) {
	case *protocol.KeyReadyEvent:
		n.logger.Info("alice created a key pair", "bits", e.Bits, "elapsed", elapsed)
	case *protocol.MessagePreparedEvent:
		n.logger.Info("alice hashed and signed the document", "documentSize", e.DocumentSize,
			"digest", hex.EncodeToString(e.Digest), "signatureSize", e.SignatureSize, "elapsed", elapsed)
	case *protocol.SignatureCheckedEvent:
		n.logger.Info("bob checked the signature", "valid", e.Valid, "elapsed", elapsed)
	case *protocol.DigestCheckedEvent:
		n.logger.Info("bob recomputed the digest", "unchanged", e.Unchanged, "elapsed", elapsed)
	case *protocol.ValidatedEvent:
		if e.Outcome == protocol.OutcomeValid {
			n.logger.Info("bob accepted the document", "elapsed", elapsed)
		} else {
			n.logger.Warning("bob rejected the document", "outcome", e.Outcome.String(), "elapsed", elapsed)
		}
	default:
		n.logger.Debug("unhandled event", "event", ev.EventName())
	}
}

func run(cfg *config, out io.Writer, logger log.Logger, clk clock.Clock) error {
	if err := checkTamper(cfg.tamper); err != nil {
		return err
	}
	hash, err := crypto.HashByName(cfg.hash)
	if err != nil {
		return err
	}
	provider, err := crypto.NewProvider(crypto.WithHash(hash), crypto.WithKeyBits(cfg.bits))
	if err != nil {
		return err
	}
	obs := protocol.WithObserver(newNarrator(logger, clk))

	// alice
	sender := protocol.NewSender(provider, obs)
	if err := sender.Init(); err != nil {
		logger.Fatal("cannot create alice's keys", "error", err)
		return err
	}
	env, err := sender.PrepareMessage(cfg.message)
	if err != nil {
		logger.Fatal("cannot prepare message", "error", err)
		return err
	}

	db, err := memorydb.New()
	if err != nil {
		return err
	}
	defer db.Close()
	courier := transport.NewCourier(db)
	id, err := courier.Send(env)
	if err != nil {
		return err
	}

	// bob
	received, err := courier.Receive(id)
	if err != nil {
		return err
	}
	tamper(received, cfg.tamper)

	res, err := protocol.NewReceiver(provider, obs).ValidateEnvelope(received)
	if err != nil {
		logger.Error("bob rejected alice's public key", "error", err)
		return err
	}

	fmt.Fprintln(out, res.Outcome)
	if text, ok := res.Plaintext(); ok {
		fmt.Fprintf(out, "document from Alice: %s\n", text)
	}
	return nil
}

func checkTamper(mode string) error {
	switch mode {
	case tamperNone, tamperDocument, tamperSignature:
		return nil
	}
	return errors.Errorf("unknown tamper mode [%s]", mode)
}

func tamper(env *protocol.Envelope, mode string) {
	switch mode {
	case tamperDocument:
		env.Document = append(env.Document, '!')
	case tamperSignature:
		if len(env.Signature) > 0 {
			env.Signature[len(env.Signature)/2] ^= 0x01
		}
	}
}
