package segment

import "somnoseg/domain/sleep"

// mergeRuns walks the ordered run list pairwise and merges consecutive runs
// whose separating gap is strictly shorter than gapLimit and contains no
// blocked sample. onBlockedGap, if non-nil, is invoked with the gap interval
// whenever a short gap fails the blocking check.
func mergeRuns(runs []sleep.Interval, gapLimit int, blocked []bool, onBlockedGap func(gap sleep.Interval)) []sleep.Interval {
	if len(runs) == 0 {
		return nil
	}

	merged := make([]sleep.Interval, 0, len(runs))
	prev := runs[0]
	for _, curr := range runs[1:] {
		gap := sleep.Interval{Start: prev.End, End: curr.Start}
		if gap.Len() < gapLimit {
			if !anyFlagged(blocked, gap) {
				prev.End = curr.End
				continue
			}
			if onBlockedGap != nil {
				onBlockedGap(gap)
			}
		}
		merged = append(merged, prev)
		prev = curr
	}
	return append(merged, prev)
}

func anyFlagged(flags []bool, iv sleep.Interval) bool {
	for i := iv.Start; i < iv.End; i++ {
		if flags[i] {
			return true
		}
	}
	return false
}

// MergeREMEpisodes merges nearby REM runs into episodes. A gap shorter than
// mergeGap is bridged unless it contains a raw NREM sample; the gap may
// contain Wake freely. The second return value flags raw NREM samples found
// inside unmerged short gaps (interrupting NREM). That annotation is kept
// for accounting only and takes no part in consolidation: an isolated
// sub-threshold NREM run between two REM runs still falls to Wake.
func MergeREMEpisodes(stages []sleep.Stage, mergeGap int) (remFlags, interruptingNREM []bool) {
	remFlags = make([]bool, len(stages))
	interruptingNREM = make([]bool, len(stages))

	runs := ScanRuns(stages, sleep.REM)
	if len(runs) == 0 {
		return remFlags, interruptingNREM
	}

	nremRaw := make([]bool, len(stages))
	for i, s := range stages {
		nremRaw[i] = s == sleep.NREM
	}

	episodes := mergeRuns(runs, mergeGap, nremRaw, func(gap sleep.Interval) {
		for i := gap.Start; i < gap.End; i++ {
			if stages[i] == sleep.NREM {
				interruptingNREM[i] = true
			}
		}
	})
	markIntervals(remFlags, episodes)
	return remFlags, interruptingNREM
}

// MergeNREMEpisodes merges packet runs into NREM episodes. Only packet
// samples not already claimed by a REM episode are eligible; a short gap is
// bridged unless a REM-episode sample sits inside it. With no eligible
// packets the result is all-false.
func MergeNREMEpisodes(packets, remFlags []bool, mergeGap int) []bool {
	nremFlags := make([]bool, len(packets))

	eligible := make([]bool, len(packets))
	for i := range packets {
		eligible[i] = packets[i] && !remFlags[i]
	}
	runs := scanFlagRuns(eligible)
	if len(runs) == 0 {
		return nremFlags
	}

	episodes := mergeRuns(runs, mergeGap, remFlags, nil)
	markIntervals(nremFlags, episodes)
	return nremFlags
}

// DeriveWake computes the Wake-episode flags as the complement of the REM and
// NREM episode flags. Wake is never scanned, always derived.
func DeriveWake(remFlags, nremFlags []bool) []bool {
	wake := make([]bool, len(remFlags))
	for i := range wake {
		wake[i] = !remFlags[i] && !nremFlags[i]
	}
	return wake
}
