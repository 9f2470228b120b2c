package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"neuradocs/internal/modules/query/domain"
	queryout "neuradocs/internal/modules/query/port/out"
	sessiondomain "neuradocs/internal/modules/session/domain"
	"neuradocs/internal/platform/clock"
	apperrors "neuradocs/internal/platform/errors"
	"neuradocs/internal/platform/id"
)

type Outcome struct {
	RequestID string
	Question  string
	Answer    string
	Found     bool
	Elapsed   time.Duration
}

type QueryService struct {
	state queryout.DocumentState
	asker queryout.Asker
	clock clock.Clock
	idGen id.Generator
	log   zerolog.Logger
}

func NewQueryService(state queryout.DocumentState, asker queryout.Asker, clock clock.Clock, idGen id.Generator, log zerolog.Logger) *QueryService {
	return &QueryService{
		state: state,
		asker: asker,
		clock: clock,
		idGen: idGen,
		log:   log.With().Str("flow", string(sessiondomain.FlowQuery)).Logger(),
	}
}

func (s *QueryService) SetQuestion(_ context.Context, text string) {
	s.state.SetQuestion(text)
}

// Ask sends the current question. The question is sent exactly as typed; only
// the blank check trims it. A blank question changes no state.
func (s *QueryService) Ask(ctx context.Context) (Outcome, error) {
	requestID := s.idGen.New()
	ticket, attemptCtx, ok := s.state.Begin(ctx, requestID)
	if !ok {
		return Outcome{}, apperrors.ErrEmptyQuestion
	}
	logger := s.log.With().Str("request_id", requestID).Int("question_len", len(ticket.Question)).Logger()
	logger.Info().Msg("ask started")

	started := s.clock.Now()
	reply, err := s.asker.Ask(id.WithRequestID(attemptCtx, requestID), ticket.Question)
	elapsed := s.clock.Now().Sub(started)
	if err != nil {
		if !s.state.Fail(ticket, domain.FailureSentinel, domain.FailureMessage, err.Error()) {
			logger.Debug().Err(err).Msg("superseded ask settled, result discarded")
			return Outcome{}, apperrors.ErrSuperseded
		}
		logger.Error().Err(err).Dur("elapsed", elapsed).Msg("ask failed")
		return Outcome{}, fmt.Errorf("%w: %w", apperrors.ErrAskFailed, err)
	}

	if reply.Notice != "" {
		logger.Warn().Str("backend_error", reply.Notice).Msg("reply carried an error field")
	}
	if !reply.Found {
		logger.Warn().Bool("malformed", reply.Degraded).Msg("reply carried no answer")
	}
	answer := reply.Text()
	if !s.state.Succeed(ticket, answer, domain.SuccessMessage) {
		logger.Debug().Msg("superseded ask settled, result discarded")
		return Outcome{}, apperrors.ErrSuperseded
	}
	logger.Info().Bool("found", reply.Found).Dur("elapsed", elapsed).Msg("ask succeeded")
	return Outcome{
		RequestID: requestID,
		Question:  ticket.Question,
		Answer:    answer,
		Found:     reply.Found,
		Elapsed:   elapsed,
	}, nil
}
