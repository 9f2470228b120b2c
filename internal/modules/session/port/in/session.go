package in

import (
	"context"

	"neuradocs/internal/modules/session/dto"
)

// Usecase is the read side of the document context.
type Usecase interface {
	Snapshot(ctx context.Context) (dto.SnapshotOutput, error)
}
