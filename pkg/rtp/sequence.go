package rtp

// Outcome classifies an incoming sequence number against the receiver's
// current expectation.
type Outcome int

// Outcomes of the sequence discipline check.
const (
	OutcomeValid Outcome = iota
	OutcomeLost
	OutcomeOutOfOrder
	OutcomeDuplicate
	OutcomeResync
)

// Bounds on how aggressively gaps are distinguished from resynchronizations.
const (
	maxDropout  = 3000
	maxMisorder = 100
)

// SequenceState tracks the expected next sequence number for a single RTP
// stream, per the gap/reorder/duplicate/resync rules of the base spec.
//
// A sequence number provisionally counted as lost when a forward gap opens
// is tracked in pendingLost; if it later arrives out of order within the
// MAX_MISORDER window, the loss is retracted (Result.Recovered) instead of
// double-counting a packet that was merely reordered, never dropped.
type SequenceState struct {
	started     bool // false until the first packet sets expected
	expected    int32
	pendingLost map[uint16]struct{}
}

// Result is the outcome of classifying one incoming sequence number.
type Result struct {
	Outcome   Outcome
	Lost      int // packets newly presumed lost (OutcomeLost only)
	Recovered int // previously presumed-lost packets that just arrived (OutcomeOutOfOrder only)
}

// Reset clears the expectation, as if no packet had ever been observed.
func (s *SequenceState) Reset() {
	s.started = false
	s.pendingLost = nil
}

// Classify advances the sequence state for an incoming sequence number and
// reports what should happen to it.
func (s *SequenceState) Classify(seq uint16) Result {
	if !s.started {
		s.started = true
		s.expected = int32(seq+1) & 0xffff
		return Result{Outcome: OutcomeValid}
	}

	delta := int32(seq) - s.expected
	// normalize into (-32768, 32768]
	if delta > 32768 {
		delta -= 65536
	} else if delta < -32768 {
		delta += 65536
	}

	switch {
	case delta == 0:
		s.expected = (s.expected + 1) & 0xffff
		return Result{Outcome: OutcomeValid}

	case delta > 0 && delta < maxDropout:
		old := s.expected
		for i := int32(0); i < delta; i++ {
			s.markPending(uint16((old + i) & 0xffff))
		}
		s.expected = (int32(seq) + 1) & 0xffff
		return Result{Outcome: OutcomeLost, Lost: int(delta)}

	case delta == -1:
		s.clearPending(seq)
		return Result{Outcome: OutcomeDuplicate}

	case delta < 0 && delta > -maxMisorder:
		recovered := 0
		if s.clearPending(seq) {
			recovered = 1
		}
		return Result{Outcome: OutcomeOutOfOrder, Recovered: recovered}

	default:
		s.expected = (int32(seq) + 1) & 0xffff
		s.pendingLost = nil
		return Result{Outcome: OutcomeResync}
	}
}

func (s *SequenceState) markPending(seq uint16) {
	if s.pendingLost == nil {
		s.pendingLost = make(map[uint16]struct{})
	}
	s.pendingLost[seq] = struct{}{}
}

func (s *SequenceState) clearPending(seq uint16) bool {
	if s.pendingLost == nil {
		return false
	}
	if _, ok := s.pendingLost[seq]; ok {
		delete(s.pendingLost, seq)
		return true
	}
	return false
}
