package in

import (
	"context"

	"neuradocs/internal/modules/ingestion/dto"
)

type Usecase interface {
	SelectFile(ctx context.Context, input dto.SelectFileInput) (dto.FileOutput, error)
	ClearFile(ctx context.Context) error
	Submit(ctx context.Context) (dto.SubmitOutput, error)
}
