package usecase

import (
	"context"

	"neuradocs/internal/modules/session/domain"
	sessiondto "neuradocs/internal/modules/session/dto"
	sessionin "neuradocs/internal/modules/session/port/in"
)

type Interactor struct {
	doc *domain.Context
}

func NewInteractor(doc *domain.Context) sessionin.Usecase {
	return &Interactor{doc: doc}
}

func (i *Interactor) Snapshot(_ context.Context) (sessiondto.SnapshotOutput, error) {
	snap := i.doc.Snapshot()
	out := sessiondto.SnapshotOutput{
		HasFile:   snap.HasFile,
		Chunks:    snap.Chunks,
		Question:  snap.Question,
		Answer:    snap.Answer,
		Ingestion: flowOutput(snap.Ingestion),
		Query:     flowOutput(snap.Query),
	}
	if snap.HasFile {
		out.File = sessiondto.FileOutput{Name: snap.File.Name, Path: snap.File.Path, Size: snap.File.Size, Pages: snap.File.Pages}
	}
	return out, nil
}

func flowOutput(r domain.FlowRecord) sessiondto.FlowOutput {
	return sessiondto.FlowOutput{
		Status:    r.Status.String(),
		Busy:      r.Status == domain.FlowInFlight,
		Message:   r.Message,
		Detail:    r.Detail,
		RequestID: r.RequestID,
		UpdatedAt: r.UpdatedAt,
	}
}
