// Package transport supplies the byte channel the protocol engines run
// over: a line-framed view of a TCP connection, optionally wrapped in TLS.
// The engines see only ordered, reliable line reads and writes; everything
// about sockets and certificates stays in this package.
package transport

import (
	"bufio"
	"crypto/tls"
	"net"
	"strings"

	"github.com/go-errors/errors"
)

// Stream frames one protocol record per newline-terminated line over a
// connection. Writes are flushed immediately; a read returns a line without
// its terminator, or the underlying error (io.EOF on a clean close).
type Stream struct {
	conn net.Conn
	r    *bufio.Reader
	w    *bufio.Writer
}

func NewStream(conn net.Conn) *Stream {
	return &Stream{
		conn: conn,
		r:    bufio.NewReader(conn),
		w:    bufio.NewWriter(conn),
	}
}

func (s *Stream) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Stream) WriteLine(line string) error {
	if _, err := s.w.WriteString(line); err != nil {
		return err
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return err
	}
	return s.w.Flush()
}

func (s *Stream) Close() error {
	return s.conn.Close()
}

// Dial connects to a verifier at addr. With a nil tlsConf the connection is
// plain TCP; otherwise it is TLS-wrapped, which the protocol core never
// notices.
func Dial(addr string, tlsConf *tls.Config) (*Stream, error) {
	var (
		conn net.Conn
		err  error
	)
	if tlsConf != nil {
		conn, err = tls.Dial("tcp", addr, tlsConf)
	} else {
		conn, err = net.Dial("tcp", addr)
	}
	if err != nil {
		return nil, errors.WrapPrefix(err, "dial "+addr, 0)
	}
	return NewStream(conn), nil
}

// Listen announces on addr, with TLS when tlsConf is non-nil.
func Listen(addr string, tlsConf *tls.Config) (net.Listener, error) {
	var (
		l   net.Listener
		err error
	)
	if tlsConf != nil {
		l, err = tls.Listen("tcp", addr, tlsConf)
	} else {
		l, err = net.Listen("tcp", addr)
	}
	if err != nil {
		return nil, errors.WrapPrefix(err, "listen "+addr, 0)
	}
	return l, nil
}
