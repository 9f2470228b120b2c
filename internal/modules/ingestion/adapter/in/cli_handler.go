package in

import (
	"context"

	"neuradocs/internal/modules/ingestion/dto"
	ingestionin "neuradocs/internal/modules/ingestion/port/in"
)

type CLIHandler struct {
	usecase ingestionin.Usecase
}

func NewCLIHandler(usecase ingestionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SelectFile(ctx context.Context, path string) (dto.FileOutput, error) {
	return h.usecase.SelectFile(ctx, dto.SelectFileInput{Path: path})
}

func (h CLIHandler) ClearFile(ctx context.Context) error {
	return h.usecase.ClearFile(ctx)
}

func (h CLIHandler) Submit(ctx context.Context) (dto.SubmitOutput, error) {
	return h.usecase.Submit(ctx)
}

// Extract selects path and submits it in one step.
func (h CLIHandler) Extract(ctx context.Context, path string) (dto.SubmitOutput, error) {
	if _, err := h.SelectFile(ctx, path); err != nil {
		return dto.SubmitOutput{}, err
	}
	return h.Submit(ctx)
}
