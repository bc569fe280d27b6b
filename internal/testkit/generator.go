// Package testkit generates deterministic synthetic hypnograms for tests and
// local experimentation.
package testkit

import (
	"math/rand"
	"time"

	"somnoseg/domain/sleep"
)

// GeneratorConfig configures the synthetic hypnogram generator
type GeneratorConfig struct {
	Samples      int       `json:"samples"`
	StartTime    time.Time `json:"start_time"`
	SampleRateHz int       `json:"sample_rate_hz"`
	Seed         int64     `json:"seed"`

	// Mean bout lengths in samples, drawn geometric-ish around these.
	MeanWakeBout int `json:"mean_wake_bout"`
	MeanNREMBout int `json:"mean_nrem_bout"`
	MeanREMBout  int `json:"mean_rem_bout"`
}

// DefaultGeneratorConfig returns sensible defaults for a 1 Hz overnight
// recording fragment.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Samples:      3600,
		StartTime:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		SampleRateHz: 1,
		Seed:         42,
		MeanWakeBout: 120,
		MeanNREMBout: 180,
		MeanREMBout:  60,
	}
}

// HypnogramGenerator produces synthetic stage sequences
type HypnogramGenerator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewHypnogramGenerator creates a generator with the given config
func NewHypnogramGenerator(config GeneratorConfig) *HypnogramGenerator {
	return &HypnogramGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate builds a timestamped recording of alternating stage bouts.
// Stages cycle Wake -> NREM -> (sometimes REM) -> Wake, with bout lengths
// jittered around the configured means.
func (g *HypnogramGenerator) Generate() *sleep.Recording {
	rec := &sleep.Recording{Source: "synthetic"}
	step := time.Second / time.Duration(g.config.SampleRateHz)

	stage := sleep.Wake
	for len(rec.Stages) < g.config.Samples {
		boutLen := g.boutLength(stage)
		for i := 0; i < boutLen && len(rec.Stages) < g.config.Samples; i++ {
			rec.Timestamps = append(rec.Timestamps,
				g.config.StartTime.Add(time.Duration(len(rec.Stages))*step))
			rec.Stages = append(rec.Stages, stage)
		}
		stage = g.nextStage(stage)
	}
	return rec
}

func (g *HypnogramGenerator) boutLength(stage sleep.Stage) int {
	mean := g.config.MeanWakeBout
	switch stage {
	case sleep.NREM:
		mean = g.config.MeanNREMBout
	case sleep.REM:
		mean = g.config.MeanREMBout
	}
	// Jitter in [mean/2, 3*mean/2), minimum one sample.
	n := mean/2 + g.rng.Intn(mean)
	if n < 1 {
		n = 1
	}
	return n
}

func (g *HypnogramGenerator) nextStage(current sleep.Stage) sleep.Stage {
	switch current {
	case sleep.Wake:
		return sleep.NREM
	case sleep.NREM:
		// REM follows NREM about a third of the time, otherwise wake.
		if g.rng.Float64() < 0.35 {
			return sleep.REM
		}
		return sleep.Wake
	default:
		return sleep.Wake
	}
}
