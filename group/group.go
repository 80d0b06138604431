// Package group provides the scalar and group-element arithmetic for the
// identification protocol: canonical fixed-size encodings, mod-order
// reduction, hash-to-scalar derivation and uniform scalar sampling over the
// prime-order ristretto255 group.
package group

import (
	"crypto/sha512"

	"github.com/go-errors/errors"
	"github.com/gtank/ristretto255"

	"github.com/privacybydesign/schnorrid/internal/common"
)

// Size is the length in bytes of the canonical encoding of both scalars and
// group elements.
const Size = 32

// ErrInvalidPoint is returned when a byte string does not decompress to a
// valid group element.
var ErrInvalidPoint = errors.New("invalid group element encoding")

// ScalarFromBytes interprets b as a little-endian integer and reduces it
// modulo the group order. It is total: every 32-byte string maps to a scalar.
func ScalarFromBytes(b [Size]byte) *ristretto255.Scalar {
	var wide [2 * Size]byte
	copy(wide[:Size], b[:])
	return ristretto255.NewScalar().FromUniformBytes(wide[:])
}

// ScalarToBytes returns the canonical little-endian encoding of s.
// It round-trips with ScalarFromBytes up to modular equivalence.
func ScalarToBytes(s *ristretto255.Scalar) [Size]byte {
	var out [Size]byte
	s.Encode(out[:0])
	return out
}

// PointFromBytes decompresses a canonical group element encoding. Byte
// strings that do not correspond to a valid element are rejected with
// ErrInvalidPoint.
func PointFromBytes(b [Size]byte) (*ristretto255.Element, error) {
	p := ristretto255.NewElement()
	if err := p.Decode(b[:]); err != nil {
		return nil, ErrInvalidPoint
	}
	return p, nil
}

// PointToBytes returns the canonical compressed encoding of p.
func PointToBytes(p *ristretto255.Element) [Size]byte {
	var out [Size]byte
	p.Encode(out[:0])
	return out
}

// HashToScalar derives a scalar from seed by reducing a 512-bit hash of it
// modulo the group order. It is used to derive the demo secret from a seed
// string; real deployments must source secrets from secure key storage
// instead.
func HashToScalar(seed []byte) *ristretto255.Scalar {
	h := sha512.Sum512(seed)
	return ristretto255.NewScalar().FromUniformBytes(h[:])
}

// RandomScalar samples a scalar uniformly from a cryptographically secure
// random source. Both the prover's nonce and the verifier's challenge are
// drawn with it, freshly per session.
func RandomScalar() *ristretto255.Scalar {
	var wide [2 * Size]byte
	common.RandomBytes(wide[:])
	return ristretto255.NewScalar().FromUniformBytes(wide[:])
}

// ScalarBaseMult returns s*G for the group's fixed generator G.
func ScalarBaseMult(s *ristretto255.Scalar) *ristretto255.Element {
	return ristretto255.NewElement().ScalarBaseMult(s)
}
