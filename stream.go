package schnorrid

// Stream is the channel the engines exchange protocol records over: an
// ordered, reliable, bidirectional byte stream framing one record per line.
// Whether it is a plain or TLS-wrapped socket is invisible to the engines;
// transport.Stream implements it and tests substitute in-memory pipes.
type Stream interface {
	ReadLine() (string, error)
	WriteLine(line string) error
}
