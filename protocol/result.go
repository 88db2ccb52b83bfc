/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package protocol

type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeValid
	OutcomeSignatureInvalid
	OutcomeDocumentTampered
)

func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "signature valid, document unchanged"
	case OutcomeSignatureInvalid:
		return "signature not valid"
	case OutcomeDocumentTampered:
		return "document was changed"
	}
	return "unknown"
}

// ValidationResult is the terminal outcome of a validation. Document is only
// set for OutcomeValid.
type ValidationResult struct {
	Outcome  Outcome
	Document []byte
}

func Valid(document []byte) ValidationResult {
	return ValidationResult{Outcome: OutcomeValid, Document: document}
}

func SignatureInvalid() ValidationResult {
	return ValidationResult{Outcome: OutcomeSignatureInvalid}
}

func DocumentTampered() ValidationResult {
	return ValidationResult{Outcome: OutcomeDocumentTampered}
}

func (r ValidationResult) IsValid() bool {
	return r.Outcome == OutcomeValid
}

// Plaintext decodes the authenticated document as UTF-8 text.
func (r ValidationResult) Plaintext() (string, bool) {
	if !r.IsValid() {
		return "", false
	}
	return string(r.Document), true
}
