package segment

import (
	"testing"

	"somnoseg/domain/sleep"
)

func TestMergeREMEpisodes_GapBoundary(t *testing.T) {
	// Two REM runs separated by exactly mergeGap samples must NOT merge
	// (strict < semantics); one sample fewer and they must merge.
	atLimit := block(block(block(seq(), sleep.REM, 5), sleep.Wake, DefaultMergeGapREM), sleep.REM, 5)
	remFlags, _ := MergeREMEpisodes(atLimit, DefaultMergeGapREM)
	if countTrue(remFlags) != 10 {
		t.Errorf("gap of exactly %d merged; want only the two runs flagged, got %d samples",
			DefaultMergeGapREM, countTrue(remFlags))
	}

	underLimit := block(block(block(seq(), sleep.REM, 5), sleep.Wake, DefaultMergeGapREM-1), sleep.REM, 5)
	remFlags, _ = MergeREMEpisodes(underLimit, DefaultMergeGapREM)
	if countTrue(remFlags) != len(underLimit) {
		t.Errorf("gap of %d with no NREM should merge into one episode spanning %d samples, got %d",
			DefaultMergeGapREM-1, len(underLimit), countTrue(remFlags))
	}
}

func TestMergeREMEpisodes_NREMBlocksMerge(t *testing.T) {
	// Short gap, but one raw NREM sample inside: no merge.
	stages := block(seq(), sleep.REM, 5)
	stages = block(stages, sleep.Wake, 3)
	stages = block(stages, sleep.NREM, 1)
	stages = block(stages, sleep.Wake, 6)
	stages = block(stages, sleep.REM, 5)

	remFlags, interrupting := MergeREMEpisodes(stages, DefaultMergeGapREM)
	if countTrue(remFlags) != 10 {
		t.Errorf("NREM in gap must block the merge; got %d REM samples, want 10", countTrue(remFlags))
	}
	if !interrupting[8] {
		t.Error("NREM sample inside the blocked gap should carry the interrupting-NREM flag")
	}
	if countTrue(interrupting) != 1 {
		t.Errorf("only the NREM gap sample should be flagged, got %d", countTrue(interrupting))
	}
}

func TestMergeREMEpisodes_WakeGapAlwaysMergeEligible(t *testing.T) {
	// The gap check inspects only for NREM; Wake gaps merge freely.
	stages := block(block(block(seq(), sleep.REM, 2), sleep.Wake, 10), sleep.REM, 2)
	remFlags, _ := MergeREMEpisodes(stages, DefaultMergeGapREM)
	if countTrue(remFlags) != 14 {
		t.Errorf("wake-only gap should merge, got %d REM samples, want 14", countTrue(remFlags))
	}
}

func TestMergeREMEpisodes_SingleIsolatedRun(t *testing.T) {
	stages := block(block(block(seq(), sleep.Wake, 3), sleep.REM, 4), sleep.Wake, 3)
	remFlags, _ := MergeREMEpisodes(stages, DefaultMergeGapREM)
	if countTrue(remFlags) != 4 {
		t.Errorf("isolated run is trivially its own episode, got %d flagged", countTrue(remFlags))
	}
}

func TestMergeREMEpisodes_NoRuns(t *testing.T) {
	remFlags, interrupting := MergeREMEpisodes(seq(1, 2, 1, 2), DefaultMergeGapREM)
	if countTrue(remFlags) != 0 || countTrue(interrupting) != 0 {
		t.Error("sequence without REM must produce all-false flags")
	}
}

func TestMergeNREMEpisodes_REMEpisodeBlocksMerge(t *testing.T) {
	n := 50
	packets := make([]bool, n)
	remFlags := make([]bool, n)
	// Two packet runs [0,20) and [30,50) with a REM-episode sample at 25.
	for i := 0; i < 20; i++ {
		packets[i] = true
	}
	for i := 30; i < 50; i++ {
		packets[i] = true
	}
	remFlags[25] = true

	nremFlags := MergeNREMEpisodes(packets, remFlags, DefaultMergeGapNREM)
	if countTrue(nremFlags) != 40 {
		t.Errorf("REM episode inside gap must block merge, got %d flagged, want 40", countTrue(nremFlags))
	}
	if nremFlags[25] {
		t.Error("gap sample must not be claimed when the merge is blocked")
	}
}

func TestMergeNREMEpisodes_MergesAcrossCleanGap(t *testing.T) {
	n := 50
	packets := make([]bool, n)
	remFlags := make([]bool, n)
	for i := 0; i < 20; i++ {
		packets[i] = true
	}
	for i := 30; i < 50; i++ {
		packets[i] = true
	}

	nremFlags := MergeNREMEpisodes(packets, remFlags, DefaultMergeGapNREM)
	if countTrue(nremFlags) != 50 {
		t.Errorf("clean short gap should merge into one episode, got %d flagged", countTrue(nremFlags))
	}
}

func TestMergeNREMEpisodes_REMClaimedSamplesIneligible(t *testing.T) {
	n := 30
	packets := make([]bool, n)
	remFlags := make([]bool, n)
	for i := 0; i < n; i++ {
		packets[i] = true
	}
	// REM claims the first 10 samples; only the remainder may form episodes.
	for i := 0; i < 10; i++ {
		remFlags[i] = true
	}

	nremFlags := MergeNREMEpisodes(packets, remFlags, DefaultMergeGapNREM)
	for i := 0; i < 10; i++ {
		if nremFlags[i] {
			t.Fatalf("sample %d claimed by REM must not join an NREM episode", i)
		}
	}
	if countTrue(nremFlags) != 20 {
		t.Errorf("expected 20 NREM-episode samples, got %d", countTrue(nremFlags))
	}
}

func TestMergeNREMEpisodes_NoEligiblePackets(t *testing.T) {
	nremFlags := MergeNREMEpisodes(make([]bool, 10), make([]bool, 10), DefaultMergeGapNREM)
	if countTrue(nremFlags) != 0 {
		t.Error("no eligible packets must yield all-false without error")
	}
}

func TestDeriveWake_Complement(t *testing.T) {
	remFlags := []bool{true, false, false, true, false}
	nremFlags := []bool{false, true, false, false, false}

	wake := DeriveWake(remFlags, nremFlags)
	for i := range wake {
		want := !remFlags[i] && !nremFlags[i]
		if wake[i] != want {
			t.Errorf("sample %d: wake = %v, want %v", i, wake[i], want)
		}
	}
}
