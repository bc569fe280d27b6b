package segment

import (
	"testing"

	"somnoseg/domain/sleep"
)

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

func TestDetectPackets_ThresholdBoundary(t *testing.T) {
	// A run of exactly minPacketLen-1 is never a packet; exactly
	// minPacketLen is flagged fully, start to end.
	short := block(block(seq(1), sleep.NREM, DefaultMinPacketLen-1), sleep.Wake, 1)
	flags, err := DetectPackets(short, DefaultMinPacketLen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if countTrue(flags) != 0 {
		t.Errorf("sub-threshold run flagged as packet: %v", flags)
	}

	exact := block(block(seq(1), sleep.NREM, DefaultMinPacketLen), sleep.Wake, 1)
	flags, err = DetectPackets(exact, DefaultMinPacketLen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if countTrue(flags) != DefaultMinPacketLen {
		t.Errorf("expected %d packet samples, got %d", DefaultMinPacketLen, countTrue(flags))
	}
	for i := 1; i <= DefaultMinPacketLen; i++ {
		if !flags[i] {
			t.Errorf("sample %d inside packet run not flagged", i)
		}
	}
}

func TestDetectPackets_RunTouchingFinalSample(t *testing.T) {
	stages := block(seq(1, 1), sleep.NREM, 25)
	flags, err := DetectPackets(stages, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if countTrue(flags) != 25 {
		t.Errorf("trailing run should be evaluated like a mid-sequence run, got %d flagged", countTrue(flags))
	}
}

func TestDetectPackets_NoNREM(t *testing.T) {
	flags, err := DetectPackets(seq(1, 3, 1, 3), 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if countTrue(flags) != 0 {
		t.Errorf("expected all-false flags, got %v", flags)
	}
}

func TestDetectPackets_EmptyInput(t *testing.T) {
	if _, err := DetectPackets(nil, 20); err == nil {
		t.Fatal("expected error for empty sequence")
	}
}

func TestDetectPackets_InvalidThreshold(t *testing.T) {
	if _, err := DetectPackets(seq(2, 2), 0); err == nil {
		t.Fatal("expected error for non-positive threshold")
	}
}
