package base

import (
	"bufio"
	"fmt"
)

// expectByte consumes one byte from rb and fails if it isn't cmp. It backs
// the CRLF checks the session controller relies on when reading a status
// line or a header line off the RTSP socket.
func expectByte(rb *bufio.Reader, cmp byte) error {
	byt, err := rb.ReadByte()
	if err != nil {
		return err
	}

	if byt != cmp {
		return fmt.Errorf("expected '%c', got '%c'", cmp, byt)
	}

	return nil
}

// readUntilDelim reads up to n bytes from rb looking for delim, returning
// everything read including the delimiter. It caps how far a malformed or
// hostile status line / header token can push the read before giving up,
// so a misbehaving server can't force an unbounded buffer grow.
func readUntilDelim(rb *bufio.Reader, delim byte, n int) ([]byte, error) {
	for i := 1; i <= n; i++ {
		byts, err := rb.Peek(i)
		if err != nil {
			return nil, err
		}

		if byts[len(byts)-1] == delim {
			rb.Discard(len(byts)) //nolint:errcheck
			return byts, nil
		}
	}
	return nil, fmt.Errorf("buffer length exceeds %d", n)
}
