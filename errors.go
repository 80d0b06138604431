package schnorrid

import "fmt"

type (
	// ProtocolError aborts a session when a message arrives out of the
	// expected sequence or with the wrong kind discriminator.
	ProtocolError struct {
		Expected string
		Got      string
	}

	// TransportError aborts a session when the underlying stream fails or
	// closes before the exchange completes.
	TransportError struct {
		Op  string
		Err error
	}
)

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: expected %s, got %s", e.Expected, e.Got)
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
