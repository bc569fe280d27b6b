// Package app wires adapters and algorithms into the batch services behind
// the CLI: consolidation of raw recordings and summary analysis of
// consolidated ones.
package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"somnoseg/domain/run"
	"somnoseg/internal"
	"somnoseg/internal/errors"
	"somnoseg/internal/segment"
	"somnoseg/ports"
)

// CodeVersion is stamped into run manifests.
const CodeVersion = "1.2.0"

// FileResult reports the outcome of one file's pipeline run. Err is nil on
// success; a failed file writes no output.
type FileResult struct {
	Input    string
	Output   string
	Manifest *run.Manifest
	Err      error
}

// ConsolidateService runs the segmentation pipeline over batches of files.
// Files are independent, so they fan out across workers; each file's
// pipeline stays sequential.
type ConsolidateService struct {
	reader  ports.RecordingReader
	writer  ports.RecordingWriter
	opts    segment.Options
	outDir  string
	suffix  string
	workers int
	logger  *internal.Logger
}

// NewConsolidateService assembles the batch consolidation service
func NewConsolidateService(reader ports.RecordingReader, writer ports.RecordingWriter, opts segment.Options, outDir, suffix string, workers int, logger *internal.Logger) *ConsolidateService {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ConsolidateService{
		reader:  reader,
		writer:  writer,
		opts:    opts,
		outDir:  outDir,
		suffix:  suffix,
		workers: workers,
		logger:  logger,
	}
}

// Run processes every input file and returns one result per file, in input
// order. A failing file does not stop the others; the error on each result
// carries the file identity and failing stage.
func (s *ConsolidateService) Run(ctx context.Context, inputs []string) ([]FileResult, error) {
	if len(inputs) == 0 {
		return nil, errors.InvalidInput("no input files")
	}
	if err := s.opts.Validate(); err != nil {
		return nil, err
	}

	results := make([]FileResult, len(inputs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			res := s.processFile(ctx, input)
			mu.Lock()
			results[i] = res
			mu.Unlock()
			// Per-file failures are reported in the result, not used to
			// cancel sibling files.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (s *ConsolidateService) processFile(ctx context.Context, input string) FileResult {
	res := FileResult{Input: input}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	rec, err := s.reader.Read(input)
	if err != nil {
		res.Err = errors.Wrapf(err, "load %s", input)
		return res
	}

	s.logger.Info("consolidating %s (%d samples)", input, rec.Len())
	segResult, err := segment.Consolidate(rec.Stages, s.opts)
	if err != nil {
		res.Err = errors.Wrapf(err, "segment %s", input)
		return res
	}
	rec.Consolidated = segResult.Consolidated

	res.Output = s.outputPath(input)
	if err := s.writer.Write(res.Output, rec); err != nil {
		res.Err = errors.Wrapf(err, "write %s", res.Output)
		return res
	}

	manifest := run.NewManifest(input, res.Output,
		s.opts.MinPacketLen, s.opts.MergeGapREM, s.opts.MergeGapNREM,
		rec.Len(), CodeVersion)
	if err := s.writeManifest(manifest); err != nil {
		res.Err = err
		return res
	}
	res.Manifest = manifest

	s.logger.Info("wrote %s (run %s)", res.Output, manifest.RunID)
	return res
}

// outputPath derives the consolidated file name from the input name.
func (s *ConsolidateService) outputPath(input string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext) + s.suffix + ext
	return filepath.Join(s.outDir, name)
}

// writeManifest stores the run manifest next to the output file.
func (s *ConsolidateService) writeManifest(m *run.Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode run manifest")
	}
	path := m.OutputPath + ".run.json"
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.IOError(path, err)
	}
	return nil
}

// FailedCount returns how many results carry an error
func FailedCount(results []FileResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
