package run

import (
	"somnoseg/domain/core"
)

// Manifest records the full parameterization of one pipeline run over one
// input file. It is written next to the output so a run can be reproduced
// from the manifest alone.
type Manifest struct {
	RunID        core.RunID     `json:"run_id"`
	InputPath    string         `json:"input_path"`
	OutputPath   string         `json:"output_path"`
	MinPacketLen int            `json:"min_packet_len"`
	MergeGapREM  int            `json:"merge_gap_rem"`
	MergeGapNREM int            `json:"merge_gap_nrem"`
	SampleCount  int            `json:"sample_count"`
	CodeVersion  string         `json:"code_version"`
	CreatedAt    core.Timestamp `json:"created_at"`
}

// NewManifest creates a manifest for a pipeline run
func NewManifest(input, output string, minPacketLen, mergeGapREM, mergeGapNREM, samples int, codeVersion string) *Manifest {
	return &Manifest{
		RunID:        core.NewRunID(),
		InputPath:    input,
		OutputPath:   output,
		MinPacketLen: minPacketLen,
		MergeGapREM:  mergeGapREM,
		MergeGapNREM: mergeGapNREM,
		SampleCount:  samples,
		CodeVersion:  codeVersion,
		CreatedAt:    core.Now(),
	}
}

// Validate checks if the manifest is complete
func (m *Manifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return core.NewValidationError("run_manifest", "run_id cannot be empty")
	}
	if m.InputPath == "" {
		return core.NewValidationError("run_manifest", "input_path cannot be empty")
	}
	if m.MinPacketLen <= 0 {
		return core.NewValidationError("run_manifest", "min_packet_len must be positive")
	}
	if m.MergeGapREM <= 0 || m.MergeGapNREM <= 0 {
		return core.NewValidationError("run_manifest", "merge gaps must be positive")
	}
	return nil
}
