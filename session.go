package rtspingest

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/clearskyvideo/rtspingest/internal/asyncprocessor"
	"github.com/clearskyvideo/rtspingest/pkg/assembler"
	"github.com/clearskyvideo/rtspingest/pkg/base"
	rtpdepkt "github.com/clearskyvideo/rtspingest/pkg/rtp"
)

const userAgent = "Universal-RTSP-Client/1.0"

// Session is the RTSP session controller: it drives the handshake state
// machine, negotiates transport, and forwards RTP bytes to a Depacketizer
// and the resulting NAL units to an Assembler. One Session serves one
// connect() lifecycle.
type Session struct {
	cfg      Config
	observer Observer
	logger   *slog.Logger
	id       string

	mu    sync.Mutex
	state State

	rtspURL        *base.URL
	cseq           uint64
	sessionID      string
	sessionTimeout *uint
	contentBase    string

	transportMode  TransportMode
	interleavedIDs [2]int
	clientPorts    [2]int
	serverPorts    [2]int

	video videoMedia

	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer

	Depacketizer *rtpdepkt.Depacketizer
	Assembler    *assembler.Assembler
	udpConn      *net.UDPConn

	dispatch *asyncprocessor.Processor

	ctx       context.Context
	ctxCancel func()

	teardownOnce sync.Once
	running      atomic.Bool
}

// NewSession constructs a Session from a Config. It does not connect; call
// Connect, which returns immediately, to begin the handshake.
func NewSession(cfg Config, observer Observer) (*Session, error) {
	cfg = cfg.withDefaults()

	u, err := base.ParseURL(cfg.RTSPURL)
	if err != nil {
		return nil, fmt.Errorf("invalid RTSP URL: %w", err)
	}

	s := &Session{
		cfg:      cfg,
		observer: observer,
		logger:   cfg.Logger,
		id:       uuid.NewString(),
		state:    StateIdle,
		rtspURL:  u,
	}

	s.dispatch = &asyncprocessor.Processor{
		BufferSize: 256,
		OnError: func(_ context.Context, err error) {
			s.logger.Error("observer dispatch error", "session", s.id, "error", err)
		},
	}
	s.dispatch.Initialize()
	s.dispatch.Start()

	return s, nil
}

// State returns the current state of the handshake state machine.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// nextCSeq atomically increments the process-global-to-the-session CSeq
// counter, per base spec §4.1.1.
func (s *Session) nextCSeq() uint64 {
	return atomic.AddUint64(&s.cseq, 1)
}

func (s *Session) emit(fn func()) {
	if fn == nil {
		return
	}
	s.dispatch.Push(func() error {
		fn()
		return nil
	})
}

// Connect begins the OPTIONS → DESCRIBE → SETUP → PLAY handshake
// asynchronously, returning immediately. Progress and failures are
// reported through the Observer.
func (s *Session) Connect() {
	s.ctx, s.ctxCancel = context.WithCancel(context.Background())
	s.running.Store(true)

	go s.runHandshake()
}

func (s *Session) fail(err error) {
	s.logger.Error("session failed", "session", s.id, "state", s.state.String(), "error", err)
	s.setState(StateClosed)
	s.running.Store(false)
	s.emit(func() {
		if s.observer.OnError != nil {
			s.observer.OnError(err)
		}
	})
}

func (s *Session) runHandshake() {
	s.setState(StateConnecting)

	if err := s.dial(); err != nil {
		s.fail(err)
		return
	}

	s.emit(func() {
		if s.observer.OnConnected != nil {
			s.observer.OnConnected()
		}
	})

	s.setState(StateOptionsSent)
	if err := s.doOptions(); err != nil {
		s.fail(err)
		return
	}

	s.setState(StateDescribeSent)
	sdpBody, err := s.doDescribe()
	if err != nil {
		s.fail(err)
		return
	}

	s.emit(func() {
		if s.observer.OnSDPReceived != nil {
			s.observer.OnSDPReceived(sdpBody)
		}
	})

	video, err := s.parseVideoMedia(sdpBody)
	if err != nil {
		s.fail(err)
		return
	}
	s.video = video

	s.setState(StateSetupNegotiating)
	if err := s.negotiateTransport(); err != nil {
		s.fail(err)
		return
	}

	s.Assembler = assembler.New(assembler.Observer{
		OnFrame: func(au assembler.AccessUnit) {
			s.emit(func() {
				if s.observer.OnAccessUnit != nil {
					s.observer.OnAccessUnit(au)
				}
			})
		},
		OnError: func(err error) {
			s.logger.Warn("assembler error", "session", s.id, "error", err)
		},
	}, s.logger)

	s.Depacketizer = rtpdepkt.New(s.video.payloadType, rtpdepkt.Observer{
		OnNALU: func(ev rtpdepkt.NALUEvent) {
			s.Assembler.PushNALU(ev.AnnexB, ev.Timestamp, 4)
		},
		OnError: func(err error, fatal bool) {
			s.logger.Warn("depacketizer error", "session", s.id, "error", err, "fatal", fatal)
		},
	}, s.logger)

	s.emit(func() {
		if s.observer.OnSetupComplete != nil {
			s.observer.OnSetupComplete(SetupCompleteEvent{
				ClientRTPPort:  s.clientPorts[0],
				ClientRTCPPort: s.clientPorts[1],
				IsTCP:          s.transportMode == TransportModeTCPInterleaved,
			})
		}
	})

	if err := s.doPlay(); err != nil {
		s.fail(err)
		return
	}

	s.setState(StatePlaying)
	s.emit(func() {
		if s.observer.OnPlayStarted != nil {
			s.observer.OnPlayStarted()
		}
	})

	switch s.transportMode {
	case TransportModeTCPInterleaved:
		go s.interleavedLoop()

	case TransportModeUDP:
		go s.Depacketizer.ReceiveLoop(s.ctx, s.udpConn)
		go s.Depacketizer.HousekeepingLoop(s.ctx)
	}

	go s.Assembler.HousekeepingLoop(s.ctx)
}

// Disconnect sends TEARDOWN best-effort and releases sockets. It is
// idempotent: repeated calls produce exactly one TEARDOWN attempt.
func (s *Session) Disconnect() {
	s.teardownOnce.Do(func() {
		s.running.Store(false)
		s.setState(StateTeardown)

		if s.conn != nil {
			s.sendTeardownBestEffort()
		}

		if s.ctxCancel != nil {
			s.ctxCancel()
		}
		if s.conn != nil {
			s.conn.Close()
		}
		if s.udpConn != nil {
			s.udpConn.Close()
		}

		s.setState(StateClosed)
		s.dispatch.Close()
	})
}

// Reconnect tears down the current connection (best-effort) and starts a
// fresh handshake from scratch. It is safe to call from any state; a
// Session that never connected simply skips the teardown step.
func (s *Session) Reconnect() {
	s.teardownOnce.Do(func() {
		s.running.Store(false)
		if s.conn != nil {
			s.sendTeardownBestEffort()
			s.conn.Close()
		}
		if s.udpConn != nil {
			s.udpConn.Close()
			s.udpConn = nil
		}
		if s.ctxCancel != nil {
			s.ctxCancel()
		}
	})

	s.teardownOnce = sync.Once{}
	s.sessionID = ""
	s.sessionTimeout = nil
	s.Connect()
}

// RTPStats returns the depacketizer's current counters. It returns the
// zero value if Connect has not yet reached SETUP.
func (s *Session) RTPStats() rtpdepkt.Stats {
	if s.Depacketizer == nil {
		return rtpdepkt.Stats{}
	}
	return s.Depacketizer.StatsSnapshot()
}

// FrameStats returns the assembler's current counters. It returns the zero
// value if Connect has not yet reached SETUP.
func (s *Session) FrameStats() assembler.Stats {
	if s.Assembler == nil {
		return assembler.Stats{}
	}
	return s.Assembler.StatsSnapshot()
}

func (s *Session) sendTeardownBestEffort() {
	req := &base.Request{
		Method: base.Teardown,
		URL:    s.rtspURL,
		Header: base.Header{
			"CSeq": base.HeaderValue{fmt.Sprint(s.nextCSeq())},
		},
	}
	if s.sessionID != "" {
		req.Header["Session"] = base.HeaderValue{s.sessionID}
	}

	_ = s.conn.SetDeadline(deadlineFromNow(s.cfg.Timeouts.SessionRead))
	if err := req.Write(s.writer); err != nil {
		return
	}

	var resp base.Response
	_ = resp.Read(s.reader) //nolint:errcheck
}
