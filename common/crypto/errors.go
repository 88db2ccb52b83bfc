/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import "github.com/pkg/errors"

var (
	// ErrKeyGeneration is fatal and only happens during setup.
	ErrKeyGeneration = errors.New("key generation failed")
	// ErrInvalidKeyFormat rejects public key bytes that cannot be imported.
	ErrInvalidKeyFormat = errors.New("invalid public key format")
	// ErrKeyNotInitialized means a private key was used before it was generated.
	ErrKeyNotInitialized = errors.New("key not initialized")
	ErrUnsupportedHash   = errors.New("unsupported digest algorithm")
)
