package usecase

import (
	"context"

	"neuradocs/internal/modules/ingestion/dto"
	ingestionin "neuradocs/internal/modules/ingestion/port/in"
	"neuradocs/internal/modules/ingestion/service"
)

type Interactor struct {
	svc *service.IngestionService
}

func NewInteractor(svc *service.IngestionService) ingestionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) SelectFile(ctx context.Context, input dto.SelectFileInput) (dto.FileOutput, error) {
	file, err := i.svc.SelectFile(ctx, input.Path)
	if err != nil {
		return dto.FileOutput{}, err
	}
	return dto.FileOutput{Name: file.Name, Path: file.Path, Size: file.Size, Pages: file.Pages}, nil
}

func (i *Interactor) ClearFile(ctx context.Context) error {
	i.svc.ClearFile(ctx)
	return nil
}

func (i *Interactor) Submit(ctx context.Context) (dto.SubmitOutput, error) {
	outcome, err := i.svc.Submit(ctx)
	if err != nil {
		return dto.SubmitOutput{}, err
	}
	return dto.SubmitOutput{
		RequestID: outcome.RequestID,
		FileName:  outcome.File.Name,
		Chunks:    outcome.Chunks,
		Degraded:  outcome.Degraded,
		Elapsed:   outcome.Elapsed,
	}, nil
}
