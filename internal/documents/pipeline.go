package documents

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"docquery-backend/internal/extract"
	"docquery-backend/internal/shared/metrics"
	"docquery-backend/internal/shared/storage/object"
	"docquery-backend/internal/shared/storage/search"
	"docquery-backend/internal/shared/telemetry"
	"docquery-backend/internal/shared/util"
)

// Stage names one step of the ingestion pipeline. Stages run strictly in
// order: upload, extract, persist, index.
type Stage string

const (
	StageUpload  Stage = "upload"
	StageExtract Stage = "extract"
	StagePersist Stage = "persist"
	StageIndex   Stage = "index"
)

// StageError ties an ingestion failure to the stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("ingest %s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// IngestResult is the outcome of a successful ingestion. Indexed is false
// when the final stage failed; the document is durably created either way.
type IngestResult struct {
	Document Document
	Locator  string
	Indexed  bool
	IndexErr *StageError
}

// Pipeline coordinates the four external systems involved in ingesting one
// document. No transaction spans them: failures before the persist stage
// leave at most an orphaned object in the store, and a failure at the index
// stage leaves a created document that is not yet searchable.
type Pipeline struct {
	Store     object.Store
	Extractor extract.Extractor
	Repo      Repo
	Index     search.Index
}

// Ingest uploads the binary, extracts its text, persists the document row
// and indexes it for search, in that order. The payload is read through two
// independent views because both the object store and the extractor must
// consume it in full.
//
// Failures in the upload, extract and persist stages are fatal and return a
// *StageError. A failure in the index stage is not: the created document is
// returned with Indexed set to false and no rollback is attempted, trading
// search consistency for upload availability.
func (p *Pipeline) Ingest(ctx context.Context, data []byte, filename, contentType, userID string) (IngestResult, error) {
	if filename == "" || userID == "" {
		return IngestResult{}, fmt.Errorf("%w: filename and owner are required", ErrInvalidInput)
	}

	metrics.IncIngestStarted()
	start := time.Now()

	// The storage key is the filename itself, so uploads sharing a name
	// overwrite each other's binary.
	key, err := util.SanitizeFileName(filename)
	if err != nil {
		return IngestResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	locator, err := p.Store.Put(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		return p.fail(&StageError{Stage: StageUpload, Err: err}, userID, filename)
	}

	content, err := p.Extractor.Extract(data, contentType)
	if err != nil {
		// The binary is already durably stored; it stays behind as an
		// orphaned object.
		return p.fail(&StageError{Stage: StageExtract, Err: err}, userID, filename)
	}

	doc := Document{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   filename,
		Content: content,
		Metadata: map[string]string{
			MetadataKeyFileURL: locator,
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := p.Repo.Create(ctx, doc); err != nil {
		return p.fail(&StageError{Stage: StagePersist, Err: err}, userID, filename)
	}

	result := IngestResult{Document: doc, Locator: locator, Indexed: true}

	entry := search.Entry{ID: doc.ID, Title: doc.Title, Content: doc.Content, UserID: doc.UserID}
	if err := p.Index.Upsert(ctx, entry); err != nil {
		result.Indexed = false
		result.IndexErr = &StageError{Stage: StageIndex, Err: err}
		metrics.IncIngestIndexSkipped()
		telemetry.Error("ingest.index_failed", map[string]any{
			"document_id": doc.ID,
			"user_id":     userID,
			"error":       err.Error(),
		})
	}

	metrics.IncIngestCompleted()
	metrics.ObserveIngestDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	telemetry.Info("ingest.complete", map[string]any{
		"document_id": doc.ID,
		"user_id":     userID,
		"title":       filename,
		"indexed":     result.Indexed,
	})
	return result, nil
}

func (p *Pipeline) fail(stageErr *StageError, userID, filename string) (IngestResult, error) {
	metrics.IncIngestFailed()
	telemetry.Error("ingest.failed", map[string]any{
		"stage":   string(stageErr.Stage),
		"user_id": userID,
		"title":   filename,
		"error":   stageErr.Err.Error(),
	})
	return IngestResult{}, stageErr
}
