package schnorrid

import (
	"github.com/go-errors/errors"
	"github.com/gtank/ristretto255"

	"github.com/privacybydesign/schnorrid/group"
	"github.com/privacybydesign/schnorrid/wire"
)

// ProverState tracks the prover's progress through the exchange.
type ProverState int

const (
	ProverInit ProverState = iota
	ProverCommitSent
	ProverDone
	ProverAborted
)

// Prover runs the proving side of one identification session: it commits to
// a fresh nonce, receives the verifier's challenge and answers it using the
// keypair's secret. A Prover is single-shot; create a new one per session.
type Prover struct {
	keys  *KeyPair
	state ProverState
	nonce *ristretto255.Scalar
}

func NewProver(keys *KeyPair) *Prover {
	return &Prover{keys: keys}
}

func (p *Prover) State() ProverState { return p.state }

// Commit samples the session nonce k and returns the commitment R = k*G.
func (p *Prover) Commit() (*ristretto255.Element, error) {
	return p.commit(group.RandomScalar())
}

func (p *Prover) commit(k *ristretto255.Scalar) (*ristretto255.Element, error) {
	if p.state != ProverInit {
		return nil, errors.New("prover has already committed")
	}
	p.nonce = k
	p.state = ProverCommitSent
	return group.ScalarBaseMult(k), nil
}

// Respond answers the verifier's challenge with s = k + c*x mod order and
// releases the nonce. Neither k nor x appears in the result in the clear.
func (p *Prover) Respond(c *ristretto255.Scalar) (*ristretto255.Scalar, error) {
	if p.state != ProverCommitSent {
		return nil, errors.New("prover has no outstanding commitment")
	}
	s := ristretto255.NewScalar().Multiply(c, p.keys.secret)
	s.Add(s, p.nonce)
	p.nonce = nil
	p.state = ProverDone
	return s, nil
}

// Run drives the full exchange over stream: send the commitment, await the
// challenge, send the response. Any transport failure, malformed record or
// out-of-sequence message aborts the session.
func (p *Prover) Run(stream Stream) error {
	R, err := p.Commit()
	if err != nil {
		return err
	}
	commit := wire.NewCommit(R)
	if err := stream.WriteLine(wire.Encode(commit)); err != nil {
		p.state = ProverAborted
		return &TransportError{Op: "send commit", Err: err}
	}
	Logger.WithField("R", commit.Payload).Debug("prover: sent commitment")

	line, err := stream.ReadLine()
	if err != nil {
		p.state = ProverAborted
		return &TransportError{Op: "await challenge", Err: err}
	}
	msg, err := wire.Decode(line)
	if err != nil {
		p.state = ProverAborted
		return err
	}
	if msg.Kind != wire.KindChallenge {
		p.state = ProverAborted
		return &ProtocolError{Expected: wire.KindChallenge, Got: msg.Kind}
	}
	c, err := msg.Scalar()
	if err != nil {
		p.state = ProverAborted
		return err
	}
	Logger.WithField("c", msg.Payload).Debug("prover: received challenge")

	s, err := p.Respond(c)
	if err != nil {
		return err
	}
	response := wire.NewResponse(s)
	if err := stream.WriteLine(wire.Encode(response)); err != nil {
		p.state = ProverAborted
		return &TransportError{Op: "send response", Err: err}
	}
	Logger.WithField("s", response.Payload).Debug("prover: sent response")
	return nil
}
