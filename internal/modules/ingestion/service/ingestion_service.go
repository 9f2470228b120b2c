package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"neuradocs/internal/modules/ingestion/domain"
	ingestionout "neuradocs/internal/modules/ingestion/port/out"
	sessiondomain "neuradocs/internal/modules/session/domain"
	"neuradocs/internal/platform/clock"
	apperrors "neuradocs/internal/platform/errors"
	"neuradocs/internal/platform/id"
)

type Outcome struct {
	RequestID string
	File      sessiondomain.SelectedFile
	Chunks    []string
	Degraded  bool
	Elapsed   time.Duration
}

type IngestionService struct {
	state     ingestionout.DocumentState
	loader    ingestionout.FileLoader
	extractor ingestionout.Extractor
	clock     clock.Clock
	idGen     id.Generator
	log       zerolog.Logger
}

func NewIngestionService(
	state ingestionout.DocumentState,
	loader ingestionout.FileLoader,
	extractor ingestionout.Extractor,
	clock clock.Clock,
	idGen id.Generator,
	log zerolog.Logger,
) *IngestionService {
	return &IngestionService{
		state:     state,
		loader:    loader,
		extractor: extractor,
		clock:     clock,
		idGen:     idGen,
		log:       log.With().Str("flow", string(sessiondomain.FlowIngestion)).Logger(),
	}
}

// SelectFile replaces the current selection. It never issues a request.
func (s *IngestionService) SelectFile(ctx context.Context, path string) (sessiondomain.SelectedFile, error) {
	if strings.TrimSpace(path) == "" {
		return sessiondomain.SelectedFile{}, fmt.Errorf("%w: file path is required", apperrors.ErrInvalidInput)
	}
	file, err := s.loader.Load(ctx, path)
	if err != nil {
		return sessiondomain.SelectedFile{}, err
	}
	if !strings.EqualFold(filepath.Ext(file.Name), ".pdf") {
		s.log.Warn().Str("file", file.Name).Msg("selected file does not look like a pdf")
	}
	s.state.SelectFile(file)
	s.log.Debug().Str("file", file.Name).Int64("size", file.Size).Int("pages", file.Pages).Msg("file selected")
	return file, nil
}

func (s *IngestionService) ClearFile(_ context.Context) {
	s.state.ClearFile()
	s.log.Debug().Msg("selection cleared")
}

// Submit uploads the selected file and replaces the chunk collection with
// the result. A submit issued while another is in flight supersedes it: the
// older call returns ErrSuperseded and its result is never applied.
func (s *IngestionService) Submit(ctx context.Context) (Outcome, error) {
	requestID := s.idGen.New()
	ticket, attemptCtx, ok := s.state.Begin(ctx, requestID)
	if !ok {
		return Outcome{}, apperrors.ErrNoFileSelected
	}
	logger := s.log.With().Str("request_id", requestID).Str("file", ticket.File.Name).Logger()
	logger.Info().Msg("extraction started")

	started := s.clock.Now()
	result, err := s.extractor.Extract(id.WithRequestID(attemptCtx, requestID), ticket.File)
	elapsed := s.clock.Now().Sub(started)
	if err != nil {
		if !s.state.Fail(ticket, domain.FailureMessage, err.Error()) {
			logger.Debug().Err(err).Msg("superseded extraction settled, result discarded")
			return Outcome{}, apperrors.ErrSuperseded
		}
		logger.Error().Err(err).Dur("elapsed", elapsed).Msg("extraction failed")
		return Outcome{}, fmt.Errorf("%w: %w", apperrors.ErrExtractionFailed, err)
	}

	chunks := result.Chunks
	if chunks == nil {
		chunks = []string{}
	}
	if result.Degraded {
		logger.Warn().Msg("malformed extraction payload, using empty chunk collection")
	}
	if !s.state.Succeed(ticket, chunks, domain.SuccessMessage(len(chunks))) {
		logger.Debug().Int("chunks", len(chunks)).Msg("superseded extraction settled, result discarded")
		return Outcome{}, apperrors.ErrSuperseded
	}
	logger.Info().Int("chunks", len(chunks)).Dur("elapsed", elapsed).Msg("extraction succeeded")
	return Outcome{
		RequestID: requestID,
		File:      ticket.File,
		Chunks:    chunks,
		Degraded:  result.Degraded,
		Elapsed:   elapsed,
	}, nil
}
