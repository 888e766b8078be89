// Package wstunnel adapts a WebSocket connection to the net.Conn shape the
// session controller dials, for deployments that proxy an RTSP/TCP stream
// through a browser-reachable ws://  or wss:// endpoint instead of a raw
// TCP port.
package wstunnel

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Subprotocol is advertised on the WebSocket handshake so RTSP-aware
// proxies can distinguish this tunnel from other WS traffic on the same
// endpoint.
const Subprotocol = "rtsp.onvif.org"

// Conn wraps a *websocket.Conn as a net.Conn carrying binary RTSP/RTP
// frames. Deadlines only affect reads: gorilla/websocket has no notion of
// a write deadline independent of the underlying TCP socket, so
// SetWriteDeadline and SetDeadline are no-ops on the write side.
type Conn struct {
	wc *websocket.Conn
	r  *reader
	w  *writer
}

// Dial opens a WebSocket tunnel to addr ("host:port") and returns it
// wrapped as a net.Conn. tlsConfig nil selects ws://, non-nil selects
// wss://.
func Dial(ctx context.Context, dialContext func(ctx context.Context, network, address string) (net.Conn, error), addr string, tlsConfig *tls.Config) (*Conn, error) {
	scheme := "ws"
	if tlsConfig != nil {
		scheme = "wss"
	}

	u := scheme + "://" + addr + "/"

	wc, _, err := (&websocket.Dialer{
		NetDialContext:  dialContext,
		TLSClientConfig: tlsConfig,
		Subprotocols:    []string{Subprotocol},
	}).DialContext(ctx, u, nil) //nolint:bodyclose
	if err != nil {
		return nil, err
	}

	return &Conn{
		wc: wc,
		r:  &reader{wc: wc},
		w:  &writer{wc: wc},
	}, nil
}

func (c *Conn) Read(p []byte) (int, error)  { return c.r.Read(p) }
func (c *Conn) Write(p []byte) (int, error) { return c.w.Write(p) }
func (c *Conn) Close() error                { return c.wc.Close() }
func (c *Conn) LocalAddr() net.Addr         { return c.wc.LocalAddr() }
func (c *Conn) RemoteAddr() net.Addr        { return c.wc.RemoteAddr() }

// SetDeadline forwards to SetReadDeadline; see the Conn doc comment.
func (c *Conn) SetDeadline(t time.Time) error {
	return c.SetReadDeadline(t)
}

func (c *Conn) SetReadDeadline(t time.Time) error {
	return c.wc.SetReadDeadline(t)
}

func (c *Conn) SetWriteDeadline(_ time.Time) error {
	return nil
}

// reader buffers the remainder of a WebSocket binary message between Read
// calls, since a message frame boundary has no relation to the RTSP
// protocol's own framing.
type reader struct {
	wc  *websocket.Conn
	buf []byte
}

func (r *reader) Read(p []byte) (int, error) {
	if len(r.buf) == 0 {
		msgType, buf, err := r.wc.ReadMessage()
		if err != nil {
			return 0, err
		}
		if msgType != websocket.BinaryMessage {
			return 0, fmt.Errorf("unexpected websocket message type %v", msgType)
		}
		r.buf = buf
	}

	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

type writer struct {
	wc *websocket.Conn

	mu sync.Mutex
}

func (w *writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.wc.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}
