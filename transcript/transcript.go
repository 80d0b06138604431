// Package transcript records completed identification sessions and turns
// them into signed attestations. A verifier operator can hand the
// attestation to a third party, who verifies the ECDSA signature and reads
// back which public key was checked, the session's wire values and the
// outcome.
package transcript

import (
	"crypto/ecdsa"

	"github.com/go-errors/errors"

	"github.com/privacybydesign/schnorrid/group"
	"github.com/privacybydesign/schnorrid/signed"
)

// Record is the public transcript of one identification session. Every
// field is a value that crossed the wire or public key material; the
// prover's secret and nonce are by construction absent.
type Record struct {
	Public     []byte // canonical encoding of X
	Commitment []byte // R
	Challenge  []byte // c
	Response   []byte // s
	Verified   bool
	Time       int64 // unix seconds
}

// Sign marshals r to deterministic CBOR and signs it with the verifier's
// attestation key.
func (r *Record) Sign(sk *ecdsa.PrivateKey) (signed.Message, error) {
	return signed.MarshalSign(sk, r)
}

// Verify checks an attestation against the attestation public key and
// returns the embedded record.
func Verify(pk *ecdsa.PublicKey, msg signed.Message) (*Record, error) {
	var r Record
	if err := signed.UnmarshalVerify(pk, msg, &r); err != nil {
		return nil, err
	}
	for _, field := range [][]byte{r.Public, r.Commitment, r.Challenge, r.Response} {
		if len(field) != group.Size {
			return nil, errors.New("attested record has malformed session values")
		}
	}
	return &r, nil
}
