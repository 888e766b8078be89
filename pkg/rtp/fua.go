package rtp

import (
	"time"

	"github.com/clearskyvideo/rtspingest/pkg/h264"
)

const (
	fuFragmentSizeLimit = 1 * 1024 * 1024
	fuFragmentMaxAge    = 5 * time.Second
)

// fuAssembler reassembles RFC 6184 §5.8 FU-A fragments into whole NAL
// units. One instance is owned by a single RTP stream; it is not
// goroutine-safe, matching the spec's single-writer reassembly buffer.
type fuAssembler struct {
	started   bool
	buf       []byte
	timestamp uint32
	startedAt time.Time
}

// fuResult is returned when a fragment run completes.
type fuResult struct {
	nalu []byte
	typ  h264.NALUType
}

func (a *fuAssembler) reset() {
	a.started = false
	a.buf = nil
}

// Push feeds one FU-A RTP payload (including the FU indicator and FU
// header bytes) into the reassembler. ok is true only when the fragment
// run completed (E bit set) and produced a NAL unit.
func (a *fuAssembler) Push(payload []byte, timestamp uint32, now time.Time) (fuResult, bool) {
	if len(payload) < 2 {
		a.reset()
		return fuResult{}, false
	}

	if a.started && timestamp != a.timestamp {
		// timestamp change mid-reassembly invalidates the buffer
		a.reset()
	}

	fuIndicator := payload[0]
	fuHeader := payload[1]
	start := fuHeader&0x80 != 0
	end := fuHeader&0x40 != 0
	nalType := fuHeader & 0x1f

	if start {
		a.reset()
		a.started = true
		a.timestamp = timestamp
		a.startedAt = now

		naluHeader := (fuIndicator & 0xe0) | nalType
		a.buf = make([]byte, 0, len(payload)-2+1)
		a.buf = append(a.buf, naluHeader)
		a.buf = append(a.buf, payload[2:]...)
		return fuResult{}, false
	}

	if !a.started {
		// middle or end fragment without a preceding start: drop silently
		return fuResult{}, false
	}

	if now.Sub(a.startedAt) > fuFragmentMaxAge {
		a.reset()
		return fuResult{}, false
	}

	a.buf = append(a.buf, payload[2:]...)

	if len(a.buf) > fuFragmentSizeLimit {
		a.reset()
		return fuResult{}, false
	}

	if !end {
		return fuResult{}, false
	}

	nalu := a.buf
	typ := h264.NALUType(nalu[0] & 0x1f)
	a.reset()

	return fuResult{nalu: nalu, typ: typ}, true
}

// Sweep discards a fragment run that has been in progress for longer than
// maxAge, as invoked through Depacketizer.Sweep by the 1 s housekeeping tick.
func (a *fuAssembler) Sweep(now time.Time, maxAge time.Duration) {
	if a.started && now.Sub(a.startedAt) > maxAge {
		a.reset()
	}
}
