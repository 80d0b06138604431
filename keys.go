package schnorrid

import (
	"fmt"

	"github.com/gtank/ristretto255"
	"github.com/multiformats/go-multihash"

	"github.com/privacybydesign/schnorrid/group"
)

// KeyPair holds a party's discrete-log secret x and its public element
// X = x*G. The secret never leaves the KeyPair: it is not serialized and no
// protocol message contains it, only X and values derived from ephemeral
// session scalars cross the wire.
type KeyPair struct {
	secret *ristretto255.Scalar
	Public *ristretto255.Element
}

// NewKeyPairFromSeed derives a keypair deterministically from a seed by
// hashing it to a scalar. This is the demo key path: both parties of the
// demo derive from the same seed string. Real deployments must load secrets
// from secure key storage instead of hashing a literal.
func NewKeyPairFromSeed(seed []byte) *KeyPair {
	x := group.HashToScalar(seed)
	return &KeyPair{secret: x, Public: group.ScalarBaseMult(x)}
}

// GenerateKeyPair samples a fresh keypair from the CSPRNG.
func GenerateKeyPair() *KeyPair {
	x := group.RandomScalar()
	return &KeyPair{secret: x, Public: group.ScalarBaseMult(x)}
}

// Fingerprint returns a short identifier for a public key: the base58
// multihash (SHA2-256) of its canonical encoding. It is what the logs print
// instead of raw key material.
func Fingerprint(X *ristretto255.Element) string {
	b := group.PointToBytes(X)
	mh, err := multihash.Sum(b[:], multihash.SHA2_256, -1)
	if err != nil {
		// Sum over a supported hash code does not fail
		panic(fmt.Sprintf("fingerprint hashing failed: %v", err))
	}
	return mh.B58String()
}
