// Package rtspingest is a client-side live video ingestion pipeline: it
// drives an RTSP/1.0 session against a server, negotiates the media
// transport, and hands H.264 Annex-B access units to an observer as they
// are assembled.
package rtspingest

import (
	"log/slog"
	"os"
	"time"
)

// TransportPreference selects how the session controller approaches the
// transport negotiation ladder.
type TransportPreference int

// Transport preferences.
const (
	// TransportAuto runs the full ladder: TCP interleaved, then UDP
	// candidate ports, then UDP auto-assign.
	TransportAuto TransportPreference = iota

	// TransportForceTCP only attempts TCP interleaved.
	TransportForceTCP

	// TransportForceUDP skips straight to the UDP portion of the ladder.
	TransportForceUDP
)

// Timeouts carries every duration named in the base design's concurrency
// model (§5). Only Connect and SessionRead take effect: the session
// controller uses SessionRead for every response wait, PLAY included, and
// the RTP depacketizer and the assembler use built-in durations of their
// own, so UDPReceiveIdle, PlayResponse, FragmentReassembly,
// FrameReassembly and Housekeeping are not read. A Config whose Timeouts is
// the zero value gets DefaultTimeouts; zero fields of a partly set Timeouts
// are not filled in.
type Timeouts struct {
	Connect            time.Duration
	SessionRead        time.Duration
	UDPReceiveIdle     time.Duration
	PlayResponse       time.Duration
	FragmentReassembly time.Duration
	FrameReassembly    time.Duration
	Housekeeping       time.Duration
}

// DefaultTimeouts returns the defaults named in the base design.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Connect:            15 * time.Second,
		SessionRead:        10 * time.Second,
		UDPReceiveIdle:     5 * time.Second,
		PlayResponse:       10 * time.Second,
		FragmentReassembly: 5 * time.Second,
		FrameReassembly:    5 * time.Second,
		Housekeeping:       time.Second,
	}
}

// Config is the sole construction input for a Session. There is no CLI,
// no environment variable, and no persisted state: everything the core
// needs is passed here.
type Config struct {
	RTSPURL            string
	PayloadType        uint8
	PreferredTransport TransportPreference
	UDPPortCandidates  [][2]int
	Timeouts           Timeouts
	Logger             *slog.Logger
}

// DefaultUDPPortCandidates is the deterministic fallback ladder of §4.1
// UDP candidate port pairs.
func DefaultUDPPortCandidates() [][2]int {
	return [][2]int{
		{6000, 6001},
		{7000, 7001},
		{8000, 8001},
		{5004, 5005},
	}
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.UDPPortCandidates == nil {
		out.UDPPortCandidates = DefaultUDPPortCandidates()
	}
	if out.Timeouts == (Timeouts{}) {
		out.Timeouts = DefaultTimeouts()
	}
	if out.Logger == nil {
		out.Logger = NewLogger(os.Stderr, slog.LevelInfo)
	}
	return out
}
