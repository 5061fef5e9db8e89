// Package wire implements the referee's length-prefixed JSON framing:
// each message is a decimal ASCII byte count, a colon, then that many
// bytes of JSON, sent back-to-back with no other delimiter
// ("<n>:<json-bytes>"). The shape mirrors a classic length-prefixed
// wire message, but the length prefix is decimal ASCII rather than a
// fixed-width binary integer, and the payload is a JSON document
// rather than a typed binary message, per the referee's actual wire
// format.
package wire

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
)

// maxLengthDigits bounds the decimal length prefix so a corrupt or
// hostile peer can't make us buffer an unbounded read waiting for a
// colon that never arrives.
const maxLengthDigits = 10

var (
	// ErrBadLengthPrefix is returned when the bytes before the colon
	// are not a valid decimal length.
	ErrBadLengthPrefix = errors.New("wire: invalid length prefix")
	// ErrShortFrame is returned when fewer than the announced number
	// of payload bytes are available.
	ErrShortFrame = errors.New("wire: short frame")
)

// ReadFrame reads one length-prefixed frame from r and returns its raw
// payload bytes.
func ReadFrame(r io.Reader) ([]byte, error) {
	n, err := readLengthPrefix(r)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrShortFrame
		}
		return nil, err
	}

	return payload, nil
}

// readLengthPrefix reads decimal digits up to and including the
// terminating colon, and returns the parsed length.
func readLengthPrefix(r io.Reader) (int, error) {
	var digits [maxLengthDigits]byte
	count := 0
	var b [1]byte

	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		if b[0] == ':' {
			break
		}
		if b[0] < '0' || b[0] > '9' || count >= maxLengthDigits {
			return 0, ErrBadLengthPrefix
		}
		digits[count] = b[0]
		count++
	}

	if count == 0 {
		return 0, ErrBadLengthPrefix
	}

	n, err := strconv.Atoi(string(digits[:count]))
	if err != nil {
		return 0, ErrBadLengthPrefix
	}
	return n, nil
}

// WriteFrame writes payload to w as one length-prefixed frame.
func WriteFrame(w io.Writer, payload []byte) error {
	prefix := strconv.Itoa(len(payload)) + ":"
	if _, err := io.WriteString(w, prefix); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// ReadJSON reads one frame from r and unmarshals it into v.
func ReadJSON(r io.Reader, v any) error {
	payload, err := ReadFrame(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, v)
}

// WriteJSON marshals v and writes it to w as one frame.
func WriteJSON(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return WriteFrame(w, payload)
}
