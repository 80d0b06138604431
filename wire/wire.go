// Package wire defines the protocol messages of the identification protocol
// and their line-oriented text encoding: one JSON record per line with a kind
// discriminator and a single hex payload holding the fixed 32-byte encoding
// of a scalar or group element.
package wire

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/go-errors/errors"
	"github.com/gtank/ristretto255"

	"github.com/privacybydesign/schnorrid/group"
)

// Message kinds, in protocol order.
const (
	KindCommit    = "commit"
	KindChallenge = "challenge"
	KindResponse  = "response"
)

var (
	// ErrMalformedRecord is returned when a line is not a well-formed
	// protocol record.
	ErrMalformedRecord = errors.New("malformed protocol record")

	// ErrInvalidHexLength is returned when a payload does not decode to
	// exactly 32 bytes.
	ErrInvalidHexLength = errors.New("payload does not decode to 32 bytes")
)

// Message is a single protocol record. The payload is the lowercase hex of
// the canonical 32-byte encoding of a group element (commit) or scalar
// (challenge, response).
type Message struct {
	Kind    string `json:"kind"`
	Payload string `json:"payload"`
}

func NewCommit(R *ristretto255.Element) *Message {
	b := group.PointToBytes(R)
	return &Message{Kind: KindCommit, Payload: hex.EncodeToString(b[:])}
}

func NewChallenge(c *ristretto255.Scalar) *Message {
	b := group.ScalarToBytes(c)
	return &Message{Kind: KindChallenge, Payload: hex.EncodeToString(b[:])}
}

func NewResponse(s *ristretto255.Scalar) *Message {
	b := group.ScalarToBytes(s)
	return &Message{Kind: KindResponse, Payload: hex.EncodeToString(b[:])}
}

// Encode renders m as a single-line record. The encoding is deterministic:
// fixed field order, lowercase hex, no padding.
func Encode(m *Message) string {
	bts, err := json.Marshal(m)
	if err != nil {
		// a struct of two strings always marshals
		panic(fmt.Sprintf("wire: marshaling record failed: %v", err))
	}
	return string(bts)
}

// Decode parses one line into a Message. It rejects lines that are not
// well-formed records, payloads that are not 32-byte hex strings, and commit
// payloads that do not decompress to a group element. Checking that the kind
// matches what the protocol expects next is left to the engines.
func Decode(line string) (*Message, error) {
	var m Message
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		return nil, ErrMalformedRecord
	}
	switch m.Kind {
	case KindCommit, KindChallenge, KindResponse:
	default:
		return nil, ErrMalformedRecord
	}
	b, err := m.payloadBytes()
	if err != nil {
		return nil, err
	}
	if m.Kind == KindCommit {
		if _, err := group.PointFromBytes(b); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

// Point returns the payload as a group element.
func (m *Message) Point() (*ristretto255.Element, error) {
	b, err := m.payloadBytes()
	if err != nil {
		return nil, err
	}
	return group.PointFromBytes(b)
}

// Scalar returns the payload as a scalar, reduced modulo the group order.
func (m *Message) Scalar() (*ristretto255.Scalar, error) {
	b, err := m.payloadBytes()
	if err != nil {
		return nil, err
	}
	return group.ScalarFromBytes(b), nil
}

func (m *Message) payloadBytes() ([group.Size]byte, error) {
	var out [group.Size]byte
	b, err := hex.DecodeString(m.Payload)
	if err != nil || len(b) != group.Size {
		return out, ErrInvalidHexLength
	}
	copy(out[:], b)
	return out, nil
}
