package rtspingest

import (
	"errors"
	"net"
	"time"

	"github.com/clearskyvideo/rtspingest/pkg/base"
	"github.com/clearskyvideo/rtspingest/pkg/liberrors"
)

// doPlay sends PLAY and treats a 200 OK, an empty response body, or a read
// timeout as success: many RTSP servers begin streaming immediately and
// either omit the response body or are slow enough to answer that treating
// a timeout as failure would abort otherwise-healthy sessions.
func (s *Session) doPlay() error {
	req := &base.Request{Method: base.Play, URL: s.rtspURL}

	resp, err := s.do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil
		}
		return err
	}

	if resp.StatusCode == base.StatusOK {
		return nil
	}
	if len(resp.Body) == 0 {
		return nil
	}

	return liberrors.ErrSessionWrongStatusCode{
		Method: base.Play, Code: resp.StatusCode, Message: resp.StatusMessage,
	}
}

// interleavedLoop demultiplexes RTP/RTCP frames from the RTSP TCP
// connection per base spec §4.1.3: channel 0 carries RTP and is forwarded
// to the Depacketizer, channel 1 carries RTCP and is passed through
// unprocessed via the Observer.
func (s *Session) interleavedLoop() {
	consecutiveErrors := 0

	for s.running.Load() {
		_ = s.conn.SetReadDeadline(deadlineFromNow(s.cfg.Timeouts.SessionRead))

		var frame base.InterleavedFrame
		err := frame.Unmarshal(s.reader)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if !s.running.Load() {
				return
			}

			consecutiveErrors++
			if consecutiveErrors > 5 {
				s.fail(err)
				return
			}
			time.Sleep(100 * time.Millisecond)
			continue
		}
		consecutiveErrors = 0

		streamType := base.StreamTypeRTCP
		if frame.Channel == s.interleavedIDs[0] {
			streamType = base.StreamTypeRTP
		}

		if streamType == base.StreamTypeRTP && s.Depacketizer != nil {
			s.Depacketizer.Push(frame.Payload)
		}

		s.emit(func() {
			if s.observer.OnRTPData != nil {
				s.observer.OnRTPData(RTPDataEvent{Data: frame.Payload, Type: streamType})
			}
		})
	}
}
