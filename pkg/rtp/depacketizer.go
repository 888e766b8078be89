package rtp

import (
	"log/slog"
	"os"
	"time"

	"github.com/clearskyvideo/rtspingest/internal/logging"
	"github.com/clearskyvideo/rtspingest/pkg/h264"
)

// NALUEvent carries one NAL unit emitted by the depacketizer, Annex-B
// framed, together with the RTP timestamp it was reassembled under.
type NALUEvent struct {
	AnnexB    []byte
	Timestamp uint32
	Type      h264.NALUType
}

// Observer is the depacketizer's narrow callback surface. Fields left nil
// are treated as no-ops. Callbacks are invoked serially on whichever
// logical context the owning Depacketizer is driven from (see
// internal/asyncprocessor for the dispatch this package expects its
// caller to provide).
type Observer struct {
	OnNALU  func(NALUEvent)
	OnSPS   func(raw []byte)
	OnPPS   func(raw []byte)
	OnError func(err error, fatal bool)
	OnStats func(Stats)
}

// Depacketizer turns a stream of RTP packets carrying a single negotiated
// H.264 payload type into Annex-B NAL units. It is not goroutine-safe: the
// caller (UDP receive loop or interleaved demultiplexer) must serialize
// calls to Push.
type Depacketizer struct {
	payloadType uint8
	observer    Observer
	logger      *slog.Logger

	seq   SequenceState
	fu    fuAssembler
	stats *statsAccumulator

	netLost int64 // running lost count net of recoveries; may be reported as 0-floor
}

// New creates a Depacketizer bound to the given negotiated payload type.
func New(payloadType uint8, observer Observer, logger *slog.Logger) *Depacketizer {
	if logger == nil {
		logger = logging.New(os.Stderr, slog.LevelInfo)
	}
	return &Depacketizer{
		payloadType: payloadType,
		observer:    observer,
		logger:      logger,
		stats:       newStatsAccumulator(time.Now()),
	}
}

// Push feeds one raw RTP packet (as received from a UDP socket or demuxed
// from an interleaved TCP frame) into the depacketizer.
func (d *Depacketizer) Push(raw []byte) {
	d.pushAt(raw, time.Now())
}

func (d *Depacketizer) pushAt(raw []byte, now time.Time) {
	hdr, payload, err := ParseHeader(raw)
	if err != nil {
		d.logger.Debug("dropping malformed RTP packet", "error", err)
		return
	}

	if hdr.PayloadType != d.payloadType {
		return
	}

	result := d.seq.Classify(hdr.Sequence)

	switch result.Outcome {
	case OutcomeDuplicate:
		d.stats.PacketsDuplicate++
		return

	case OutcomeLost:
		d.netLost += int64(result.Lost)

	case OutcomeOutOfOrder:
		d.stats.PacketsReordered++
		d.netLost -= int64(result.Recovered)
		if d.netLost < 0 {
			d.netLost = 0
		}

	case OutcomeResync:
		d.logger.Warn("RTP sequence resynchronized", "seq", hdr.Sequence)
	}

	d.stats.onPacket(now, len(raw))
	d.stats.jitter.Sample(now, hdr.Timestamp)

	d.handlePayload(payload, hdr.Timestamp, now)

	if d.stats.shouldReport(now) {
		d.report(now)
	}
}

func (d *Depacketizer) handlePayload(payload []byte, timestamp uint32, now time.Time) {
	if len(payload) == 0 {
		return
	}

	naluType := h264.NALUType(payload[0] & 0x1f)

	if naluType == h264.NALUTypeFUA {
		res, ok := d.fu.Push(payload, timestamp, now)
		if !ok {
			return
		}
		d.emit(res.nalu, timestamp, res.typ)
		return
	}

	// single NAL (includes STAP-A, which per the open questions is not
	// disaggregated and falls through here unmodified).
	d.emit(payload, timestamp, naluType)
}

func (d *Depacketizer) emit(nalu []byte, timestamp uint32, typ h264.NALUType) {
	annexB, err := h264.AnnexBMarshal([][]byte{nalu})
	if err != nil {
		d.logger.Debug("failed to Annex-B frame NALU", "error", err)
		return
	}

	if d.observer.OnNALU != nil {
		d.observer.OnNALU(NALUEvent{AnnexB: annexB, Timestamp: timestamp, Type: typ})
	}

	switch typ {
	case h264.NALUTypeSPS:
		if d.observer.OnSPS != nil {
			d.observer.OnSPS(nalu)
		}
	case h264.NALUTypePPS:
		if d.observer.OnPPS != nil {
			d.observer.OnPPS(nalu)
		}
	}
}

func (d *Depacketizer) report(now time.Time) {
	snap := d.stats.snapshot(now)
	if d.netLost >= 0 {
		snap.PacketsLost = uint64(d.netLost)
	}
	if d.observer.OnStats != nil {
		d.observer.OnStats(snap)
	}
}

// Sweep discards in-progress FU-A reassembly older than 10 s, as run by
// HousekeepingLoop every second.
func (d *Depacketizer) Sweep(now time.Time) {
	d.fu.Sweep(now, 10*time.Second)
}

// StatsSnapshot returns the current counters without waiting for the next
// periodic report, for callers that poll rather than subscribe.
func (d *Depacketizer) StatsSnapshot() Stats {
	now := time.Now()
	snap := d.stats.Stats
	snap.JitterMs = d.stats.jitter.Mean()
	snap.UpdatedAt = now
	if d.netLost >= 0 {
		snap.PacketsLost = uint64(d.netLost)
	}
	return snap
}
