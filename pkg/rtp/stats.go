package rtp

import "time"

// Stats is a snapshot of depacketizer counters, reported every 10 received
// packets or 5 s, whichever comes first.
type Stats struct {
	PacketsReceived  uint64
	PacketsLost      uint64
	PacketsReordered uint64
	PacketsDuplicate uint64
	BytesReceived    uint64
	BitrateBps       float64
	JitterMs         float64
	UpdatedAt        time.Time
}

type statsAccumulator struct {
	Stats

	lastReportAt  time.Time
	lastReportN   uint64
	bytesSinceRpt uint64
	jitter        JitterEstimator
}

func newStatsAccumulator(now time.Time) *statsAccumulator {
	return &statsAccumulator{lastReportAt: now}
}

func (s *statsAccumulator) onPacket(now time.Time, n int) {
	s.PacketsReceived++
	s.BytesReceived += uint64(n)
	s.bytesSinceRpt += uint64(n)
}

// shouldReport reports every 10 packets or every 5 s, per base spec §4.2.
func (s *statsAccumulator) shouldReport(now time.Time) bool {
	if s.PacketsReceived-s.lastReportN >= 10 {
		return true
	}
	return now.Sub(s.lastReportAt) >= 5*time.Second
}

func (s *statsAccumulator) snapshot(now time.Time) Stats {
	elapsed := now.Sub(s.lastReportAt).Seconds()
	if elapsed > 0 {
		s.BitrateBps = float64(s.bytesSinceRpt*8) / elapsed
	}
	s.JitterMs = s.jitter.Mean()
	s.UpdatedAt = now

	s.lastReportAt = now
	s.lastReportN = s.PacketsReceived
	s.bytesSinceRpt = 0

	return s.Stats
}
