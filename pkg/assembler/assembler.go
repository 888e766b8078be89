// Package assembler groups H.264 NAL units emitted by the RTP depacketizer
// into complete access units (frames), caching SPS/PPS for prepending to
// key frames and emitting Annex-B byte-stream output.
package assembler

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/clearskyvideo/rtspingest/internal/logging"
	"github.com/clearskyvideo/rtspingest/pkg/h264"
)

const (
	// MaxFrameSize bounds a single in-progress access unit; exceeding it
	// immediately finalizes whatever is held.
	MaxFrameSize = 2 * 1024 * 1024

	frameStaleAge  = 5 * time.Second
	outputQueueCap = 20
)

// FrameType classifies an access unit.
type FrameType int

// Frame classifications.
const (
	FrameTypeUnknown FrameType = iota
	FrameTypeI
	FrameTypeP
)

// String implements fmt.Stringer.
func (f FrameType) String() string {
	switch f {
	case FrameTypeI:
		return "I"
	case FrameTypeP:
		return "P"
	default:
		return "UNKNOWN"
	}
}

// AccessUnit is one assembled, Annex-B framed coded picture.
type AccessUnit struct {
	AnnexB    []byte
	Timestamp uint32
	KeyFrame  bool
	Type      FrameType
	NALUs     [][]byte
	HasSPSPPS bool
}

// SPSInfo is the decoded (or, per the open question, stubbed) dimensions
// and frame rate carried by a parsed SPS.
type SPSInfo struct {
	Width     int
	Height    int
	FrameRate float64
}

// Observer is the assembler's narrow callback surface.
type Observer struct {
	OnSPSParsed func(SPSInfo)
	OnPPS       func(raw []byte)
	OnFrame     func(AccessUnit)
	OnError     func(err error)
	OnStats     func(Stats)
}

// Stats is a snapshot of assembler counters.
type Stats struct {
	FramesEmitted  uint64
	FramesDropped  uint64
	QueueLen       int
	QueueCapacity  int
	LastFrameBytes int
	UpdatedAt      time.Time
}

type naluEntry struct {
	typ          h264.NALUType
	payload      []byte
	startCodeLen int
}

// Assembler owns the cached SPS/PPS, the in-progress frame, and the bounded
// output queue. It is not goroutine-safe: callers drive it from a single
// logical context (see internal/asyncprocessor), matching the depacketizer
// that feeds it.
type Assembler struct {
	observer Observer
	logger   *slog.Logger

	cachedSPS []byte
	cachedPPS []byte

	building     bool
	current      []naluEntry
	currentTS    uint32
	buildStarted time.Time
	currentSize  int

	queue []AccessUnit

	stats Stats
}

// New creates an Assembler.
func New(observer Observer, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = logging.New(os.Stderr, slog.LevelInfo)
	}
	return &Assembler{
		observer: observer,
		logger:   logger,
		queue:    make([]AccessUnit, 0, outputQueueCap),
	}
}

// PushNALU feeds one Annex-B-framed NAL unit, with its recorded start-code
// length, into the assembler. startCodeLen is 3 or 4; callers that don't
// track it may pass 4.
func (a *Assembler) PushNALU(annexB []byte, timestamp uint32, startCodeLen int) {
	a.pushAt(annexB, timestamp, startCodeLen, time.Now())
}

func (a *Assembler) pushAt(annexB []byte, timestamp uint32, startCodeLen int, now time.Time) {
	nalus, err := h264.AnnexBUnmarshal(annexB)
	if err != nil || len(nalus) == 0 {
		return
	}

	for _, nalu := range nalus {
		if len(nalu) == 0 {
			continue
		}
		a.pushNALU(nalu, timestamp, startCodeLen, now)
	}
}

func (a *Assembler) pushNALU(nalu []byte, timestamp uint32, startCodeLen int, now time.Time) {
	typ := h264.NALUType(nalu[0] & 0x1f)

	switch typ {
	case h264.NALUTypeSPS:
		a.cachedSPS = append([]byte(nil), nalu...)
		if a.observer.OnSPSParsed != nil {
			a.observer.OnSPSParsed(parseSPSStub())
		}
		return

	case h264.NALUTypePPS:
		a.cachedPPS = append([]byte(nil), nalu...)
		if a.observer.OnPPS != nil {
			a.observer.OnPPS(nalu)
		}
		return

	case h264.NALUTypeAccessUnitDelimiter:
		a.finalize(now)
		return
	}

	isSlice := typ == h264.NALUTypeIDR || typ == h264.NALUTypeNonIDR

	if a.building && timestamp != a.currentTS {
		a.finalize(now)
	}

	if isSlice && !a.building {
		a.building = true
		a.currentTS = timestamp
		a.buildStarted = now
		a.current = nil
		a.currentSize = 0
	}

	if !a.building {
		// non-slice NAL with nothing in progress: nothing to attach to.
		return
	}

	a.current = append(a.current, naluEntry{typ: typ, payload: nalu, startCodeLen: startCodeLen})
	a.currentSize += len(nalu)

	if a.currentSize > MaxFrameSize {
		a.finalize(now)
	}
}

func (a *Assembler) finalize(now time.Time) {
	if !a.building || len(a.current) == 0 {
		a.building = false
		a.current = nil
		return
	}

	rawNALUs := make([][]byte, len(a.current))
	for i, e := range a.current {
		rawNALUs[i] = e.payload
	}
	keyFrame := h264.IDRPresent(rawNALUs)

	frameType := FrameTypeUnknown
	switch {
	case keyFrame:
		frameType = FrameTypeI
	default:
		for _, e := range a.current {
			if e.typ == h264.NALUTypeNonIDR {
				frameType = FrameTypeP
				break
			}
		}
	}

	entries := a.current
	hasSPSPPS := false
	if keyFrame && a.cachedSPS != nil && a.cachedPPS != nil {
		prefixed := make([]naluEntry, 0, len(entries)+2)
		prefixed = append(prefixed, naluEntry{typ: h264.NALUTypeSPS, payload: a.cachedSPS, startCodeLen: 4})
		prefixed = append(prefixed, naluEntry{typ: h264.NALUTypePPS, payload: a.cachedPPS, startCodeLen: 4})
		prefixed = append(prefixed, entries...)
		entries = prefixed
		hasSPSPPS = true
	}

	annexB, nalus := serializeAnnexB(entries)

	au := AccessUnit{
		AnnexB:    annexB,
		Timestamp: a.currentTS,
		KeyFrame:  keyFrame,
		Type:      frameType,
		NALUs:     nalus,
		HasSPSPPS: hasSPSPPS,
	}

	a.enqueue(au)

	a.building = false
	a.current = nil
	a.currentSize = 0

	a.stats.FramesEmitted++
	a.stats.LastFrameBytes = len(annexB)
	a.stats.UpdatedAt = now

	if a.observer.OnFrame != nil {
		a.observer.OnFrame(au)
	}
	if a.observer.OnStats != nil {
		a.stats.QueueLen = len(a.queue)
		a.stats.QueueCapacity = outputQueueCap
		a.observer.OnStats(a.stats)
	}
}

func serializeAnnexB(entries []naluEntry) ([]byte, [][]byte) {
	size := 0
	for _, e := range entries {
		sc := e.startCodeLen
		if sc != 3 {
			sc = 4
		}
		size += sc + len(e.payload)
	}

	buf := make([]byte, 0, size)
	nalus := make([][]byte, 0, len(entries))

	for _, e := range entries {
		sc := e.startCodeLen
		if sc != 3 {
			sc = 4
		}
		if sc == 3 {
			buf = append(buf, 0x00, 0x00, 0x01)
		} else {
			buf = append(buf, 0x00, 0x00, 0x00, 0x01)
		}
		buf = append(buf, e.payload...)
		nalus = append(nalus, e.payload)
	}

	return buf, nalus
}

// enqueue pushes into the bounded output queue, dropping the oldest entry
// on overflow, per base spec §4.3.
func (a *Assembler) enqueue(au AccessUnit) {
	if len(a.queue) >= outputQueueCap {
		a.queue = a.queue[1:]
		a.stats.FramesDropped++
	}
	a.queue = append(a.queue, au)
}

// PopQueued drains one queued access unit, oldest first, for callers that
// poll the bounded queue instead of relying solely on OnFrame.
func (a *Assembler) PopQueued() (AccessUnit, bool) {
	if len(a.queue) == 0 {
		return AccessUnit{}, false
	}
	au := a.queue[0]
	a.queue = a.queue[1:]
	return au, true
}

// StatsSnapshot returns the current counters.
func (a *Assembler) StatsSnapshot() Stats {
	s := a.stats
	s.QueueLen = len(a.queue)
	s.QueueCapacity = outputQueueCap
	return s
}

// Sweep discards an in-progress frame older than frameStaleAge, as run by
// HousekeepingLoop every second.
func (a *Assembler) Sweep(now time.Time) {
	if a.building && now.Sub(a.buildStarted) > frameStaleAge {
		a.logger.Debug("discarding stale in-progress frame", "age", now.Sub(a.buildStarted))
		a.building = false
		a.current = nil
		a.currentSize = 0
	}
}

// HousekeepingLoop runs the 1 s-tick sweep that discards a stale
// in-progress frame, until ctx is canceled.
func (a *Assembler) HousekeepingLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			a.Sweep(now)
		}
	}
}

// parseSPSStub returns the fixed placeholder dimensions documented as an
// open question: true Exponential-Golomb SPS decoding is not implemented.
func parseSPSStub() SPSInfo {
	return SPSInfo{Width: 1920, Height: 1080, FrameRate: 30}
}
