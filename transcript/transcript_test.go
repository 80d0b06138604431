package transcript

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privacybydesign/schnorrid/group"
	"github.com/privacybydesign/schnorrid/signed"
)

func testRecord() *Record {
	X := group.PointToBytes(group.ScalarBaseMult(group.RandomScalar()))
	R := group.PointToBytes(group.ScalarBaseMult(group.RandomScalar()))
	c := group.ScalarToBytes(group.RandomScalar())
	s := group.ScalarToBytes(group.RandomScalar())
	return &Record{
		Public:     X[:],
		Commitment: R[:],
		Challenge:  c[:],
		Response:   s[:],
		Verified:   true,
		Time:       time.Now().Unix(),
	}
}

func TestAttestationRoundTrip(t *testing.T) {
	sk, err := signed.GenerateKey()
	require.NoError(t, err)

	record := testRecord()
	msg, err := record.Sign(sk)
	require.NoError(t, err)

	recovered, err := Verify(&sk.PublicKey, msg)
	require.NoError(t, err)
	assert.Equal(t, record, recovered)
}

func TestAttestationTamperDetected(t *testing.T) {
	sk, err := signed.GenerateKey()
	require.NoError(t, err)

	msg, err := testRecord().Sign(sk)
	require.NoError(t, err)

	tampered := make(signed.Message, len(msg))
	copy(tampered, msg)
	tampered[len(tampered)/2] ^= 0x01

	_, err = Verify(&sk.PublicKey, tampered)
	require.Error(t, err)
}

func TestAttestationWrongKey(t *testing.T) {
	sk, err := signed.GenerateKey()
	require.NoError(t, err)
	other, err := signed.GenerateKey()
	require.NoError(t, err)

	msg, err := testRecord().Sign(sk)
	require.NoError(t, err)

	_, err = Verify(&other.PublicKey, msg)
	require.Error(t, err)
}

func TestVerifyRejectsShortValues(t *testing.T) {
	sk, err := signed.GenerateKey()
	require.NoError(t, err)

	record := testRecord()
	record.Challenge = record.Challenge[:16]
	msg, err := record.Sign(sk)
	require.NoError(t, err)

	_, err = Verify(&sk.PublicKey, msg)
	require.Error(t, err)
}
