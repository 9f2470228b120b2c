package in

import (
	"context"

	"neuradocs/internal/modules/query/dto"
	queryin "neuradocs/internal/modules/query/port/in"
)

type CLIHandler struct {
	usecase queryin.Usecase
}

func NewCLIHandler(usecase queryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SetQuestion(ctx context.Context, text string) error {
	return h.usecase.SetQuestion(ctx, dto.SetQuestionInput{Text: text})
}

func (h CLIHandler) Ask(ctx context.Context) (dto.AskOutput, error) {
	return h.usecase.Ask(ctx)
}

// AskQuestion sets the question and asks it in one step.
func (h CLIHandler) AskQuestion(ctx context.Context, text string) (dto.AskOutput, error) {
	if err := h.SetQuestion(ctx, text); err != nil {
		return dto.AskOutput{}, err
	}
	return h.Ask(ctx)
}
