package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"salespipe/internal/store"
)

// Sink loads a serialized cleaned dataset into external persistence.
// The batch is transactional: either every row is inserted or none are.
type Sink interface {
	Ingest(ctx context.Context, r io.Reader) (int, error)
}

// Options configures the service.
type Options struct {
	// MaxConcurrentRuns bounds parallel cleaning runs.
	MaxConcurrentRuns int
	// MaxWaitTime is how long an upload waits for a run slot.
	MaxWaitTime time.Duration
}

// Service owns the pipeline: it runs cleaning, derives summaries,
// publishes artifacts through the store, and hands serialized datasets
// to the sink. Each run works under its own process identifier, so
// concurrent uploads share no mutable state beyond the run history.
type Service struct {
	store   store.Store
	sink    Sink
	limiter *RunLimiter
	history *History
}

// NewService creates a Service. sink may be nil when no database is
// configured; ingestion then fails with ErrNoSink.
func NewService(st store.Store, sink Sink, opts Options) *Service {
	return &Service{
		store:   st,
		sink:    sink,
		limiter: NewRunLimiter(opts.MaxConcurrentRuns, opts.MaxWaitTime),
		history: NewHistory(),
	}
}

// ProcessCSV runs the full pipeline on one upload: parse, clean,
// persist the cleaned dataset under a fresh process identifier, and
// derive the summary report. Returns ErrTooManyRuns when the
// concurrency limit is reached.
//
// Re-running on identical input yields identical row content under a
// distinct process identifier; there is no in-place update path.
func (s *Service) ProcessCSV(ctx context.Context, fileName string, r io.Reader) (*ProcessResult, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	start := time.Now()

	raw, _, err := ReadRaw(r)
	if err != nil {
		return nil, err
	}

	cleaned, dropped := Clean(raw)
	processID := uuid.New().String()

	var buf bytes.Buffer
	if err := WriteCleanedCSV(&buf, cleaned); err != nil {
		return nil, fmt.Errorf("serialize cleaned dataset: %w", err)
	}
	if err := s.store.Save(ctx, processID, store.KindCleaned, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("persist cleaned dataset: %w", err)
	}

	summary := Summarize(cleaned)
	buf.Reset()
	if err := WriteSummaryCSV(&buf, summary); err != nil {
		return nil, fmt.Errorf("serialize summary report: %w", err)
	}
	if err := s.store.Save(ctx, processID, store.KindSummary, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("persist summary report: %w", err)
	}

	info := RunInfo{
		ProcessID:   processID,
		FileName:    fileName,
		ProcessedAt: time.Now().UTC(),
		RowsIn:      len(raw),
		RowsKept:    len(cleaned),
		RowsDropped: dropped,
		Categories:  len(summary),
	}
	s.history.Add(info)

	slog.Info("csv processed",
		"process_id", processID,
		"file", fileName,
		"rows_in", len(raw),
		"rows_kept", len(cleaned),
		"rows_dropped", dropped,
		"categories", len(summary),
		"duration", time.Since(start),
	)

	return &ProcessResult{
		ProcessID:   processID,
		FileName:    fileName,
		RowsIn:      len(raw),
		RowsKept:    len(cleaned),
		RowsDropped: dropped,
		Categories:  len(summary),
		CleanedFile: store.KindCleaned.FileName(processID),
		SummaryFile: store.KindSummary.FileName(processID),
	}, nil
}

// Cleaned loads the cleaned dataset for a process identifier.
func (s *Service) Cleaned(ctx context.Context, processID string) (*CleanedDataset, error) {
	rc, err := s.store.Open(ctx, processID, store.KindCleaned)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	records, err := ReadCleanedCSV(rc)
	if err != nil {
		return nil, err
	}
	return &CleanedDataset{ProcessID: processID, Records: records}, nil
}

// OpenCleaned returns the serialized cleaned dataset for download.
func (s *Service) OpenCleaned(ctx context.Context, processID string) (io.ReadCloser, error) {
	return s.store.Open(ctx, processID, store.KindCleaned)
}

// OpenSummary returns the serialized summary report for download,
// regenerating it from the cleaned dataset if it is missing. Summaries
// are derived data, so regeneration is always safe.
func (s *Service) OpenSummary(ctx context.Context, processID string) (io.ReadCloser, error) {
	if !s.store.Exists(ctx, processID, store.KindSummary) {
		if _, err := s.GenerateSummary(ctx, processID); err != nil {
			return nil, err
		}
	}
	return s.store.Open(ctx, processID, store.KindSummary)
}

// GenerateSummary recomputes and republishes the summary report from
// the persisted cleaned dataset.
func (s *Service) GenerateSummary(ctx context.Context, processID string) (*SummaryReport, error) {
	ds, err := s.Cleaned(ctx, processID)
	if err != nil {
		return nil, err
	}

	rows := Summarize(ds.Records)

	var buf bytes.Buffer
	if err := WriteSummaryCSV(&buf, rows); err != nil {
		return nil, fmt.Errorf("serialize summary report: %w", err)
	}
	if err := s.store.Save(ctx, processID, store.KindSummary, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("persist summary report: %w", err)
	}

	return &SummaryReport{ProcessID: processID, Rows: rows}, nil
}

// PushToDatabase hands the serialized cleaned dataset to the sink.
// Returns the number of rows inserted.
func (s *Service) PushToDatabase(ctx context.Context, processID string) (int, error) {
	if s.sink == nil {
		return 0, ErrNoSink
	}

	rc, err := s.store.Open(ctx, processID, store.KindCleaned)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	inserted, err := s.sink.Ingest(ctx, rc)
	if err != nil {
		return 0, err
	}

	slog.Info("cleaned dataset ingested", "process_id", processID, "rows", inserted)
	return inserted, nil
}

// Runs returns the run history, newest first.
func (s *Service) Runs() []RunInfo {
	return s.history.List()
}

// LimiterStatus reports the run limiter state for monitoring.
func (s *Service) LimiterStatus() RunLimiterStatus {
	return s.limiter.Status()
}

// WaitForRuns blocks until all active runs complete or ctx is done.
// Used during graceful shutdown.
func (s *Service) WaitForRuns(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
