package in

import (
	"context"

	"neuradocs/internal/modules/query/dto"
)

type Usecase interface {
	SetQuestion(ctx context.Context, input dto.SetQuestionInput) error
	Ask(ctx context.Context) (dto.AskOutput, error)
}
