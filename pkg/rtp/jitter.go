package rtp

import "time"

// clockRateHz is the RTP clock rate assumed for H.264 (90 kHz), used to
// convert RTP timestamp deltas into milliseconds for jitter estimation.
const clockRateHz = 90000

// JitterEstimator accumulates a running mean of the RFC 3550 §6.4.1
// interarrival jitter sample, in milliseconds.
type JitterEstimator struct {
	have     bool
	lastTime time.Time
	lastRTP  uint32
	mean     float64
	count    uint64
}

// Sample records one delivered packet's arrival time and RTP timestamp and
// returns the running mean jitter in milliseconds.
func (j *JitterEstimator) Sample(arrival time.Time, rtpTimestamp uint32) float64 {
	if !j.have {
		j.have = true
		j.lastTime = arrival
		j.lastRTP = rtpTimestamp
		return j.mean
	}

	arrivalDeltaMs := float64(arrival.Sub(j.lastTime)) / float64(time.Millisecond)
	rtpDeltaMs := float64(int64(rtpTimestamp)-int64(j.lastRTP)) / (clockRateHz / 1000.0)

	d := arrivalDeltaMs - rtpDeltaMs
	if d < 0 {
		d = -d
	}

	j.count++
	j.mean += (d - j.mean) / float64(j.count)

	j.lastTime = arrival
	j.lastRTP = rtpTimestamp

	return j.mean
}

// Mean returns the current running mean jitter, in milliseconds.
func (j *JitterEstimator) Mean() float64 {
	return j.mean
}
