package wire

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privacybydesign/schnorrid/group"
)

func TestCommitRoundTrip(t *testing.T) {
	R := group.ScalarBaseMult(group.RandomScalar())
	m, err := Decode(Encode(NewCommit(R)))
	require.NoError(t, err)
	assert.Equal(t, KindCommit, m.Kind)

	R2, err := m.Point()
	require.NoError(t, err)
	assert.Equal(t, 1, R.Equal(R2))
}

func TestScalarRoundTrip(t *testing.T) {
	c := group.RandomScalar()
	for _, m := range []*Message{NewChallenge(c), NewResponse(c)} {
		decoded, err := Decode(Encode(m))
		require.NoError(t, err)
		assert.Equal(t, m.Kind, decoded.Kind)

		c2, err := decoded.Scalar()
		require.NoError(t, err)
		assert.Equal(t, 1, c.Equal(c2))
	}
}

func TestEncodeDeterministic(t *testing.T) {
	c := group.RandomScalar()
	m := NewChallenge(c)
	b := group.ScalarToBytes(c)
	expected := fmt.Sprintf(`{"kind":"challenge","payload":"%x"}`, b[:])
	assert.Equal(t, expected, Encode(m))
	assert.Equal(t, Encode(m), Encode(m))
}

func TestDecodeMalformedRecord(t *testing.T) {
	for _, line := range []string{
		"",
		"not json at all",
		`{"kind": 7, "payload": "00"}`,
		`{"kind":"handshake","payload":"00"}`, // unknown discriminator
	} {
		_, err := Decode(line)
		assert.ErrorIs(t, err, ErrMalformedRecord, "line %q", line)
	}
}

func TestDecodeInvalidHexLength(t *testing.T) {
	// short, long, odd-length, non-hex and trailing-garbage payloads
	for _, payload := range []string{
		"",
		"abcd",
		strings.Repeat("ab", 33),
		strings.Repeat("ab", 31) + "a",
		strings.Repeat("zz", group.Size),
		strings.Repeat("ab", group.Size) + "g",
	} {
		line := fmt.Sprintf(`{"kind":"challenge","payload":"%s"}`, payload)
		_, err := Decode(line)
		assert.ErrorIs(t, err, ErrInvalidHexLength, "payload %q", payload)
	}
}

func TestDecodeInvalidPoint(t *testing.T) {
	line := fmt.Sprintf(`{"kind":"commit","payload":"%s"}`, strings.Repeat("ff", group.Size))
	_, err := Decode(line)
	assert.ErrorIs(t, err, group.ErrInvalidPoint)

	// the same payload is acceptable as a scalar record: scalars are
	// reduced modulo the order, never rejected
	line = fmt.Sprintf(`{"kind":"response","payload":"%s"}`, strings.Repeat("ff", group.Size))
	m, err := Decode(line)
	require.NoError(t, err)
	_, err = m.Scalar()
	require.NoError(t, err)
}
