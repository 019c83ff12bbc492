package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_image_generator.go -package=mocks promptstudio/internal/service ImageGenerator
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_session_service.go -package=mocks -mock_names=SessionService=MockSessionService promptstudio/internal/service SessionService

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"

	"promptstudio/internal/artifact"
	"promptstudio/internal/contextutil"
	"promptstudio/internal/report"
	"promptstudio/internal/storage"
)

// styles is the closed set of style tags a request may carry.
var styles = []string{"realistic", "cyberpunk", "cartoon"}

// Styles returns the accepted style tags, for the front-end to render.
func Styles() []string {
	return append([]string(nil), styles...)
}

// ImageGenerator is an interface for the image generation backend.
// This interface is defined from the service layer's perspective
// (consumer-first).
type ImageGenerator interface {
	// GenerateImage produces raw image bytes for a prompt, or fails.
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// GenerateRequest represents a generation request in the domain layer.
type GenerateRequest struct {
	Prompt string
	Style  string
}

// PurgeResult summarizes a full-history purge. Row deletion has already
// committed by the time it is returned; artifact cleanup is best-effort
// and its failures are reported here instead of failing the purge.
type PurgeResult struct {
	ArtifactsRemoved int
	ArtifactsMissing int
	Failures         []string
}

// SessionService orchestrates a generation session: prompt in, image on
// disk, record in the store, report out.
type SessionService interface {
	// Generate produces an image for the prompt, persists the artifact
	// and the record, and returns the stored record.
	Generate(ctx context.Context, req GenerateRequest) (storage.PromptRecord, error)
	// History returns every stored record in insertion order.
	History(ctx context.Context) ([]storage.PromptRecord, error)
	// Report renders the plain-text evaluation report over the current
	// history snapshot.
	Report(ctx context.Context) (string, error)
	// ReportMarkdown renders the evaluation report as markdown.
	ReportMarkdown(ctx context.Context) (string, error)
	// ClearHistory purges all records and reclaims their artifacts.
	ClearHistory(ctx context.Context) (PurgeResult, error)
}

// sessionService implements SessionService.
type sessionService struct {
	generator ImageGenerator
	artifacts artifact.Store
	records   storage.PromptStore
	reports   *report.Generator
}

// NewSessionService creates a new SessionService.
func NewSessionService(generator ImageGenerator, artifacts artifact.Store, records storage.PromptStore, reports *report.Generator) SessionService {
	return &sessionService{
		generator: generator,
		artifacts: artifacts,
		records:   records,
		reports:   reports,
	}
}

// Generate runs one generation request end to end. A backend or storage
// failure surfaces to the caller and leaves no record behind; only a
// fully persisted artifact gets a row.
func (s *sessionService) Generate(ctx context.Context, req GenerateRequest) (storage.PromptRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.Prompt == "" {
		logger.WarnContext(ctx, "empty prompt in generate request")
		return storage.PromptRecord{}, &ValidationError{Field: "prompt", Message: "cannot be empty"}
	}
	if !lo.Contains(styles, req.Style) {
		logger.WarnContext(ctx, "unknown style in generate request", "style", req.Style)
		return storage.PromptRecord{}, &ValidationError{
			Field:   "style",
			Message: fmt.Sprintf("must be one of %v", styles),
		}
	}

	// The style tag steers the backend but the stored prompt stays as
	// the user typed it.
	fullPrompt := fmt.Sprintf("%s, %s style", req.Prompt, req.Style)

	data, err := s.generator.GenerateImage(ctx, fullPrompt)
	if err != nil {
		logger.ErrorContext(ctx, "image generation failed", "error", err)
		return storage.PromptRecord{}, WrapError(ErrGeneration, err)
	}

	path, err := s.artifacts.Save(data)
	if err != nil {
		logger.ErrorContext(ctx, "failed to save artifact", "error", err)
		return storage.PromptRecord{}, WrapError(ErrStorage, err)
	}

	id, err := s.records.Insert(ctx, req.Prompt, req.Style, path)
	if err != nil {
		logger.ErrorContext(ctx, "failed to insert record", "error", err)
		return storage.PromptRecord{}, WrapError(ErrPersistence, err)
	}

	logger.InfoContext(ctx, "generation recorded", "id", id, "style", req.Style, "image_bytes", len(data))

	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return storage.PromptRecord{}, WrapError(ErrPersistence, err)
	}
	return *rec, nil
}

// History returns the current record snapshot.
func (s *sessionService) History(ctx context.Context) ([]storage.PromptRecord, error) {
	records, err := s.records.ListAll(ctx)
	if err != nil {
		return nil, WrapError(ErrPersistence, err)
	}
	return records, nil
}

// Report renders the plain-text alignment report.
func (s *sessionService) Report(ctx context.Context) (string, error) {
	records, err := s.records.ListAll(ctx)
	if err != nil {
		return "", WrapError(ErrPersistence, err)
	}
	return s.reports.Text(records), nil
}

// ReportMarkdown renders the markdown alignment report.
func (s *sessionService) ReportMarkdown(ctx context.Context) (string, error) {
	records, err := s.records.ListAll(ctx)
	if err != nil {
		return "", WrapError(ErrPersistence, err)
	}
	return s.reports.Markdown(records), nil
}

// ClearHistory purges every record, then removes the referenced
// artifacts. Individual removal failures do not abort the cleanup or
// fail the call: rows are already gone, so they are logged and reported
// in the result.
func (s *sessionService) ClearHistory(ctx context.Context) (PurgeResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	paths, err := s.records.PurgeAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to purge records", "error", err)
		return PurgeResult{}, WrapError(ErrPersistence, err)
	}

	var result PurgeResult
	var cleanupErr *multierror.Error
	for _, path := range paths {
		removed, err := s.artifacts.Remove(path)
		if err != nil {
			cleanupErr = multierror.Append(cleanupErr, err)
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		if removed {
			result.ArtifactsRemoved++
		} else {
			result.ArtifactsMissing++
		}
	}

	if cleanupErr.ErrorOrNil() != nil {
		logger.WarnContext(ctx, "history purged with artifact cleanup failures",
			"removed", result.ArtifactsRemoved,
			"missing", result.ArtifactsMissing,
			"failures", len(result.Failures),
			"error", cleanupErr)
	} else {
		logger.InfoContext(ctx, "history purged",
			"removed", result.ArtifactsRemoved,
			"missing", result.ArtifactsMissing)
	}

	return result, nil
}

var _ SessionService = (*sessionService)(nil)
