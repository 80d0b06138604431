package schnorrid

import (
	"net"
	"time"

	"github.com/go-errors/errors"
	"github.com/gtank/ristretto255"
	"github.com/sirupsen/logrus"

	"github.com/privacybydesign/schnorrid/group"
	"github.com/privacybydesign/schnorrid/internal/common"
	"github.com/privacybydesign/schnorrid/transcript"
	"github.com/privacybydesign/schnorrid/transport"
	"github.com/privacybydesign/schnorrid/wire"
)

// VerifierState tracks the verifier's progress through the exchange.
type VerifierState int

const (
	VerifierAwaitingCommit VerifierState = iota
	VerifierChallengeSent
	VerifierAwaitingResponse
	VerifierDone
	VerifierAborted
)

// Result is the terminal outcome of a completed verification session. A
// Rejected proof is a defined protocol result, not an error: the exchange
// ran to completion and the verification equation did not hold.
type Result int

const (
	Rejected Result = iota
	Verified
)

func (r Result) String() string {
	if r == Verified {
		return "verified"
	}
	return "rejected"
}

// Verifier runs the verifying side of one identification session against a
// known public key X. It holds only ephemeral session state besides X; like
// the Prover it is single-shot.
type Verifier struct {
	public     *ristretto255.Element
	state      VerifierState
	commitment *ristretto255.Element
	challenge  *ristretto255.Scalar
	record     *transcript.Record
}

func NewVerifier(public *ristretto255.Element) *Verifier {
	return &Verifier{public: public}
}

func (v *Verifier) State() VerifierState { return v.state }

// ReceiveCommit accepts the prover's commitment R.
func (v *Verifier) ReceiveCommit(R *ristretto255.Element) error {
	if v.state != VerifierAwaitingCommit {
		return errors.New("verifier has already received a commitment")
	}
	v.commitment = R
	v.state = VerifierChallengeSent
	return nil
}

// Challenge samples the session challenge c.
func (v *Verifier) Challenge() (*ristretto255.Scalar, error) {
	return v.challengeWith(group.RandomScalar())
}

func (v *Verifier) challengeWith(c *ristretto255.Scalar) (*ristretto255.Scalar, error) {
	if v.state != VerifierChallengeSent {
		return nil, errors.New("verifier cannot issue a challenge in this state")
	}
	v.challenge = c
	v.state = VerifierAwaitingResponse
	return c, nil
}

// Verify checks the prover's response against the verification equation
// s*G == R + c*X. Equality is exact comparison of group elements; both
// outcomes are terminal. The ephemeral session values are released.
func (v *Verifier) Verify(s *ristretto255.Scalar) (Result, error) {
	if v.state != VerifierAwaitingResponse {
		return Rejected, errors.New("verifier has no outstanding challenge")
	}
	left := group.ScalarBaseMult(s)
	right := ristretto255.NewElement().ScalarMult(v.challenge, v.public)
	right.Add(v.commitment, right)
	v.commitment, v.challenge = nil, nil
	v.state = VerifierDone
	if left.Equal(right) == 1 {
		return Verified, nil
	}
	return Rejected, nil
}

// Transcript returns the record of a completed Run: the public session
// values and the outcome. It is nil until the session reached a terminal
// result and never contains secret material.
func (v *Verifier) Transcript() *transcript.Record { return v.record }

// Run drives the full exchange over stream: await the commitment, issue a
// challenge, await the response and verify it.
func (v *Verifier) Run(stream Stream) (Result, error) {
	line, err := stream.ReadLine()
	if err != nil {
		v.state = VerifierAborted
		return Rejected, &TransportError{Op: "await commit", Err: err}
	}
	msg, err := wire.Decode(line)
	if err != nil {
		v.state = VerifierAborted
		return Rejected, err
	}
	if msg.Kind != wire.KindCommit {
		v.state = VerifierAborted
		return Rejected, &ProtocolError{Expected: wire.KindCommit, Got: msg.Kind}
	}
	R, err := msg.Point()
	if err != nil {
		v.state = VerifierAborted
		return Rejected, err
	}
	if err := v.ReceiveCommit(R); err != nil {
		return Rejected, err
	}
	Logger.WithField("R", msg.Payload).Debug("verifier: received commitment")

	c, err := v.Challenge()
	if err != nil {
		return Rejected, err
	}
	challenge := wire.NewChallenge(c)
	if err := stream.WriteLine(wire.Encode(challenge)); err != nil {
		v.state = VerifierAborted
		return Rejected, &TransportError{Op: "send challenge", Err: err}
	}
	Logger.WithField("c", challenge.Payload).Debug("verifier: sent challenge")

	line, err = stream.ReadLine()
	if err != nil {
		v.state = VerifierAborted
		return Rejected, &TransportError{Op: "await response", Err: err}
	}
	msg, err = wire.Decode(line)
	if err != nil {
		v.state = VerifierAborted
		return Rejected, err
	}
	if msg.Kind != wire.KindResponse {
		v.state = VerifierAborted
		return Rejected, &ProtocolError{Expected: wire.KindResponse, Got: msg.Kind}
	}
	s, err := msg.Scalar()
	if err != nil {
		v.state = VerifierAborted
		return Rejected, err
	}
	Logger.WithField("s", msg.Payload).Debug("verifier: received response")

	Rb := group.PointToBytes(R)
	cb := group.ScalarToBytes(c)
	sb := group.ScalarToBytes(s)
	Xb := group.PointToBytes(v.public)

	result, err := v.Verify(s)
	if err != nil {
		return Rejected, err
	}
	v.record = &transcript.Record{
		Public:     Xb[:],
		Commitment: Rb[:],
		Challenge:  cb[:],
		Response:   sb[:],
		Verified:   result == Verified,
		Time:       time.Now().Unix(),
	}
	return result, nil
}

// A SessionHandler receives the transcript and result of every session a
// server completes. Failed sessions (protocol, decode or transport errors)
// do not reach the handler.
type SessionHandler func(*transcript.Record, Result)

// Serve accepts connections from l and runs one verification session per
// connection, each in its own goroutine with its own ephemeral state. A
// failed session is logged and does not affect other sessions or the accept
// loop; Serve returns only when the listener fails or is closed. handler
// may be nil.
func Serve(l net.Listener, public *ristretto255.Element, handler SessionHandler) error {
	Logger.WithFields(logrus.Fields{
		"addr": l.Addr().String(),
		"key":  Fingerprint(public),
	}).Info("verifier: accepting provers")

	for {
		conn, err := l.Accept()
		if err != nil {
			return errors.WrapPrefix(err, "accept failed", 0)
		}
		go func(conn net.Conn) {
			defer common.Close(conn)
			remote := conn.RemoteAddr().String()
			v := NewVerifier(public)
			result, err := v.Run(transport.NewStream(conn))
			if err != nil {
				Logger.WithField("remote", remote).WithError(err).Warn("verifier: session aborted")
				return
			}
			Logger.WithFields(logrus.Fields{
				"remote": remote,
				"result": result.String(),
			}).Info("verifier: session complete")
			if handler != nil {
				handler(v.Transcript(), result)
			}
		}(conn)
	}
}
