package rtp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSequenceStateFirstPacketIsValid(t *testing.T) {
	var s SequenceState
	r := s.Classify(1000)
	require.Equal(t, OutcomeValid, r.Outcome)
}

func TestSequenceStateGapIsLost(t *testing.T) {
	var s SequenceState
	s.Classify(1000)
	r := s.Classify(1005)
	require.Equal(t, OutcomeLost, r.Outcome)
	require.Equal(t, 4, r.Lost)
}

func TestSequenceStateLargeJumpResyncs(t *testing.T) {
	var s SequenceState
	s.Classify(1000)
	r := s.Classify(10000)
	require.Equal(t, OutcomeResync, r.Outcome)
}

func TestSequenceStateWrapAround(t *testing.T) {
	var s SequenceState
	s.Classify(65535)
	r := s.Classify(0)
	require.Equal(t, OutcomeValid, r.Outcome)
}

func TestSequenceStateOutOfOrderRecoversPendingLoss(t *testing.T) {
	var s SequenceState
	s.Classify(1000)
	r := s.Classify(1002)
	require.Equal(t, OutcomeLost, r.Outcome)
	require.Equal(t, 1, r.Lost)

	r = s.Classify(1001)
	require.Equal(t, OutcomeOutOfOrder, r.Outcome)
	require.Equal(t, 1, r.Recovered)
}
