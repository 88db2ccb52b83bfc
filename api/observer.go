/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package api

// Event is a step reported by the sender or receiver workflow.
type Event interface {
	EventName() string
}

// Observer receives workflow events. Implementations must not block.
type Observer interface {
	OnEvent(event Event)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(event Event)

func (f ObserverFunc) OnEvent(event Event) {
	f(event)
}
