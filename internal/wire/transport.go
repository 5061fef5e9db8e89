package wire

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrTimeout is returned by Transport.Exchange when the deadline passes
// before a reply frame arrives.
var ErrTimeout = errors.New("wire: timed out waiting for reply")

// Transport carries framed JSON messages to and from the referee, over
// either a dialed TCP connection or a pair of stdio pipes. Plain pipes
// (os.Stdin/os.Stdout) don't support SetReadDeadline the way net.Conn
// does, so deadlines are enforced with a watchdog goroutine instead of
// relying on the underlying conn, matching how this codebase already
// supervises concurrent goroutines with an errgroup rather than ad-hoc
// channels.
type Transport struct {
	r io.Reader
	w io.Writer
	// deadliner is non-nil when the underlying reader also supports
	// net.Conn-style deadlines (the TCP case); Exchange prefers it
	// over the watchdog goroutine when available.
	deadliner interface {
		SetDeadline(time.Time) error
	}
}

// Dial opens a TCP connection to addr for use as a Transport.
func Dial(ctx context.Context, addr string) (*Transport, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Transport{r: conn, w: conn, deadliner: conn}, nil
}

// NewStdio builds a Transport over an already-open pair of pipes, for
// the referee's piped-subprocess mode.
func NewStdio(r io.Reader, w io.Writer) *Transport {
	return &Transport{r: r, w: w}
}

// Send writes v as one framed JSON message.
func (t *Transport) Send(v any) error {
	return WriteJSON(t.w, v)
}

// Recv blocks until one framed JSON message arrives and unmarshals it
// into v.
func (t *Transport) Recv(v any) error {
	return ReadJSON(t.r, v)
}

// RecvDeadline is Recv bounded by timeout (0 meaning no bound). On a
// TCP transport the deadline is pushed onto the underlying conn; on
// stdio, where SetDeadline isn't available, the blocking read races a
// timer in an errgroup. As with Exchange, a stdio timeout leaves a
// goroutine blocked on the read behind it if the referee's frame
// never arrives — acceptable here since a timed-out transport is
// abandoned by the caller anyway.
func (t *Transport) RecvDeadline(timeout time.Duration, v any) error {
	if timeout <= 0 {
		return t.Recv(v)
	}

	if t.deadliner != nil {
		if err := t.deadliner.SetDeadline(time.Now().Add(timeout)); err != nil {
			return err
		}
		defer t.deadliner.SetDeadline(time.Time{})
		return t.Recv(v)
	}

	g, gctx := errgroup.WithContext(context.Background())
	ctx, cancel := context.WithTimeout(gctx, timeout)
	defer cancel()

	recvErr := make(chan error, 1)
	go func() {
		recvErr <- t.Recv(v)
	}()
	g.Go(func() error {
		select {
		case err := <-recvErr:
			return err
		case <-ctx.Done():
			return ErrTimeout
		}
	})

	return g.Wait()
}

// Exchange sends v, then waits for a reply into reply, giving up at
// deadline. On a TCP transport the deadline is pushed onto the
// underlying conn directly; on stdio it is enforced by racing the
// blocking read against a timer in an errgroup, since the pipe itself
// cannot be told to time out. Either way, a timeout leaves the
// Transport unusable: the referee-issued frame, if it later arrives,
// would desynchronize the next read.
func (t *Transport) Exchange(ctx context.Context, v, reply any) error {
	if err := t.Send(v); err != nil {
		return err
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		return t.Recv(reply)
	}

	if t.deadliner != nil {
		if err := t.deadliner.SetDeadline(deadline); err != nil {
			return err
		}
		defer t.deadliner.SetDeadline(time.Time{})
		return t.Recv(reply)
	}

	g, gctx := errgroup.WithContext(ctx)
	recvErr := make(chan error, 1)

	go func() {
		recvErr <- t.Recv(reply)
	}()
	g.Go(func() error {
		select {
		case err := <-recvErr:
			return err
		case <-gctx.Done():
			return ErrTimeout
		}
	})

	return g.Wait()
}

// Close closes the underlying reader if it implements io.Closer: the
// conn for a TCP transport, and for a stdio transport whatever reader it
// was built over (os.Stdin is closed when passed in). Readers that are
// not closers are left alone and Close returns nil.
func (t *Transport) Close() error {
	if c, ok := t.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
