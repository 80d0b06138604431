package schnorrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/privacybydesign/schnorrid/transcript"
	"github.com/privacybydesign/schnorrid/transport"
)

func TestServeHandlesConcurrentSessions(t *testing.T) {
	const sessions = 8

	keys := NewKeyPairFromSeed([]byte("demo-prover-secret"))
	l, err := transport.Listen("127.0.0.1:0", nil)
	require.NoError(t, err)

	results := make(chan Result, sessions)
	go func() {
		// returns when the listener is closed below
		_ = Serve(l, keys.Public, func(_ *transcript.Record, r Result) {
			results <- r
		})
	}()

	var g errgroup.Group
	for i := 0; i < sessions; i++ {
		g.Go(func() error {
			stream, err := transport.Dial(l.Addr().String(), nil)
			if err != nil {
				return err
			}
			defer stream.Close()
			return NewProver(keys).Run(stream)
		})
	}
	require.NoError(t, g.Wait())

	for i := 0; i < sessions; i++ {
		select {
		case r := <-results:
			assert.Equal(t, Verified, r)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for session results")
		}
	}
	require.NoError(t, l.Close())
}

func TestServeSurvivesBadClient(t *testing.T) {
	keys := NewKeyPairFromSeed([]byte("demo-prover-secret"))
	l, err := transport.Listen("127.0.0.1:0", nil)
	require.NoError(t, err)
	defer l.Close()

	results := make(chan Result, 1)
	go func() {
		_ = Serve(l, keys.Public, func(_ *transcript.Record, r Result) {
			results <- r
		})
	}()

	// a client that sends garbage and disconnects must not take the
	// server down
	bad, err := transport.Dial(l.Addr().String(), nil)
	require.NoError(t, err)
	require.NoError(t, bad.WriteLine("definitely not a protocol record"))
	require.NoError(t, bad.Close())

	// an honest prover afterwards still verifies
	stream, err := transport.Dial(l.Addr().String(), nil)
	require.NoError(t, err)
	defer stream.Close()
	require.NoError(t, NewProver(keys).Run(stream))

	select {
	case r := <-results:
		assert.Equal(t, Verified, r)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for session result")
	}
}
