package usecase

import (
	"context"

	"neuradocs/internal/modules/query/dto"
	queryin "neuradocs/internal/modules/query/port/in"
	"neuradocs/internal/modules/query/service"
)

type Interactor struct {
	svc *service.QueryService
}

func NewInteractor(svc *service.QueryService) queryin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) SetQuestion(ctx context.Context, input dto.SetQuestionInput) error {
	i.svc.SetQuestion(ctx, input.Text)
	return nil
}

func (i *Interactor) Ask(ctx context.Context) (dto.AskOutput, error) {
	outcome, err := i.svc.Ask(ctx)
	if err != nil {
		return dto.AskOutput{}, err
	}
	return dto.AskOutput{
		RequestID: outcome.RequestID,
		Question:  outcome.Question,
		Answer:    outcome.Answer,
		Found:     outcome.Found,
		Elapsed:   outcome.Elapsed,
	}, nil
}
