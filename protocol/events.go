package protocol

import "github.com/zhigui-projects/go-docsign/api"

type KeyReadyEvent struct {
	Bits int
}

type MessagePreparedEvent struct {
	DocumentSize  int
	Digest        []byte
	SignatureSize int
}

type SignatureCheckedEvent struct {
	Valid bool
}

type DigestCheckedEvent struct {
	Unchanged bool
}

type ValidatedEvent struct {
	Outcome Outcome
}

func (*KeyReadyEvent) EventName() string         { return "key-ready" }
func (*MessagePreparedEvent) EventName() string  { return "message-prepared" }
func (*SignatureCheckedEvent) EventName() string { return "signature-checked" }
func (*DigestCheckedEvent) EventName() string    { return "digest-checked" }
func (*ValidatedEvent) EventName() string        { return "validated" }

type Option func(o *options)

type options struct {
	observer api.Observer
}

// WithObserver reports workflow steps to obs.
func WithObserver(obs api.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) notify(ev api.Event) {
	if o.observer != nil {
		o.observer.OnEvent(ev)
	}
}
