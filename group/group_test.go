package group

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Little-endian canonical encoding of the ristretto255 group order
// 2^252 + 27742317777372353535851937790883648493.
var orderBytes = [Size]byte{
	0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
}

func TestScalarRoundTrip(t *testing.T) {
	for i := 0; i < 16; i++ {
		s := RandomScalar()
		s2 := ScalarFromBytes(ScalarToBytes(s))
		assert.Equal(t, 1, s.Equal(s2), "scalar changed in encode/decode round trip")
	}
}

func TestScalarFromBytesReduces(t *testing.T) {
	// order itself reduces to zero, order+1 to one
	zero := ScalarFromBytes(orderBytes)
	assert.Equal(t, [Size]byte{}, ScalarToBytes(zero))

	plusOne := orderBytes
	plusOne[0]++
	one := ScalarFromBytes(plusOne)
	var expected [Size]byte
	expected[0] = 1
	assert.Equal(t, expected, ScalarToBytes(one))
}

func TestPointRoundTrip(t *testing.T) {
	for i := 0; i < 16; i++ {
		p := ScalarBaseMult(RandomScalar())
		p2, err := PointFromBytes(PointToBytes(p))
		require.NoError(t, err)
		assert.Equal(t, 1, p.Equal(p2), "point changed in encode/decode round trip")
	}
}

func TestPointFromBytesRejectsInvalid(t *testing.T) {
	// non-canonical field element (larger than the field prime)
	var bad [Size]byte
	for i := range bad {
		bad[i] = 0xff
	}
	_, err := PointFromBytes(bad)
	require.ErrorIs(t, err, ErrInvalidPoint)
}

func TestHashToScalarDeterministic(t *testing.T) {
	a := HashToScalar([]byte("demo-prover-secret"))
	b := HashToScalar([]byte("demo-prover-secret"))
	c := HashToScalar([]byte("another seed"))
	assert.Equal(t, 1, a.Equal(b))
	assert.Equal(t, 0, a.Equal(c))
}

func TestRandomScalarFresh(t *testing.T) {
	a := RandomScalar()
	b := RandomScalar()
	assert.Equal(t, 0, a.Equal(b), "two scalar samples were identical")
}
