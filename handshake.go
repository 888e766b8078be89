package rtspingest

import (
	"bufio"
	"fmt"
	"net"
	"time"

	"github.com/clearskyvideo/rtspingest/pkg/headers"
	"github.com/clearskyvideo/rtspingest/pkg/liberrors"
	"github.com/clearskyvideo/rtspingest/pkg/wstunnel"

	"github.com/clearskyvideo/rtspingest/pkg/base"
	"github.com/clearskyvideo/rtspingest/pkg/sdp"
)

func deadlineFromNow(d time.Duration) time.Time {
	return time.Now().Add(d)
}

func (s *Session) dial() error {
	host := s.rtspURL.Host
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, "554")
	}

	var conn net.Conn

	switch s.rtspURL.Scheme {
	case "ws", "wss":
		d := net.Dialer{Timeout: s.cfg.Timeouts.Connect}
		wconn, err := wstunnel.Dial(s.ctx, d.DialContext, host, nil)
		if err != nil {
			return liberrors.ErrSessionConnectFailed{Err: err}
		}
		conn = wconn

	default:
		d := net.Dialer{Timeout: s.cfg.Timeouts.Connect}
		tconn, err := d.DialContext(s.ctx, "tcp", host)
		if err != nil {
			return liberrors.ErrSessionConnectFailed{Err: err}
		}
		if tc, ok := tconn.(*net.TCPConn); ok {
			_ = tc.SetNoDelay(true)
			_ = tc.SetKeepAlive(true)
		}
		conn = tconn
	}

	s.conn = conn
	s.reader = bufio.NewReader(conn)
	s.writer = bufio.NewWriter(conn)

	return nil
}

// do sends req and reads a response, applying the session read timeout.
func (s *Session) do(req *base.Request) (*base.Response, error) {
	if req.Header == nil {
		req.Header = base.Header{}
	}
	req.Header["CSeq"] = base.HeaderValue{fmt.Sprint(s.nextCSeq())}
	req.Header["User-Agent"] = base.HeaderValue{userAgent}
	if s.sessionID != "" {
		req.Header["Session"] = base.HeaderValue{s.sessionID}
	}

	if err := s.conn.SetDeadline(deadlineFromNow(s.cfg.Timeouts.SessionRead)); err != nil {
		return nil, err
	}

	if err := req.Write(s.writer); err != nil {
		return nil, err
	}

	var resp base.Response
	if err := resp.Read(s.reader); err != nil {
		return nil, err
	}

	if sess, ok := resp.Header["Session"]; ok {
		var sh headers.Session
		if err := sh.Unmarshal(sess); err == nil {
			s.sessionID = sh.Session
			s.sessionTimeout = sh.Timeout
		}
	}

	return &resp, nil
}

func (s *Session) doOptions() error {
	req := &base.Request{Method: base.Options, URL: s.rtspURL}
	resp, err := s.do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode != base.StatusOK {
		return liberrors.ErrSessionWrongStatusCode{
			Method: base.Options, Code: resp.StatusCode, Message: resp.StatusMessage,
		}
	}
	return nil
}

func (s *Session) doDescribe() ([]byte, error) {
	req := &base.Request{
		Method: base.Describe,
		URL:    s.rtspURL,
		Header: base.Header{"Accept": base.HeaderValue{"application/sdp"}},
	}
	resp, err := s.do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != base.StatusOK {
		return nil, liberrors.ErrSessionWrongStatusCode{
			Method: base.Describe, Code: resp.StatusCode, Message: resp.StatusMessage,
		}
	}
	if len(resp.Body) == 0 {
		return nil, liberrors.ErrSessionEmptySDP{Err: fmt.Errorf("empty body")}
	}

	if cb, ok := resp.Header["Content-Base"]; ok && len(cb) == 1 {
		s.contentBase = cb[0]
	}

	return resp.Body, nil
}

func (s *Session) parseVideoMedia(sdpBody []byte) (videoMedia, error) {
	var desc sdp.SessionDescription
	if err := desc.Unmarshal(sdpBody); err != nil {
		return videoMedia{}, liberrors.ErrSessionEmptySDP{Err: err}
	}

	return findVideoMedia(&desc, s.cfg.PayloadType)
}
