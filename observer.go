package rtspingest

import (
	"github.com/clearskyvideo/rtspingest/pkg/assembler"
	"github.com/clearskyvideo/rtspingest/pkg/base"
)

// SetupCompleteEvent carries the negotiated transport once SETUP succeeds.
type SetupCompleteEvent struct {
	ClientRTPPort  int
	ClientRTCPPort int
	IsTCP          bool
}

// RTPDataEvent carries one interleaved payload read off the RTSP TCP
// socket, delivered only in TCP-interleaved mode. Type tells the caller
// which of the two negotiated interleaved channels the payload arrived on.
type RTPDataEvent struct {
	Data []byte
	Type base.StreamType
}

// IsRTP reports whether the event carries an RTP payload rather than RTCP.
func (e RTPDataEvent) IsRTP() bool {
	return e.Type == base.StreamTypeRTP
}

// Observer is the session controller's narrow callback surface, per base
// spec §4.1 and §4.4. Fields left nil are treated as no-ops. Calls are
// serialized: see internal/asyncprocessor for the single-logical-context
// dispatch a Session drives its observer through.
type Observer struct {
	OnConnected     func()
	OnSDPReceived   func(body []byte)
	OnSetupComplete func(SetupCompleteEvent)
	OnPlayStarted   func()
	OnError         func(err error)
	OnRTPData       func(RTPDataEvent)
	OnAccessUnit    func(assembler.AccessUnit)
}
