package out

import (
	"context"

	"neuradocs/internal/modules/ingestion/domain"
	sessiondomain "neuradocs/internal/modules/session/domain"
)

type FileLoader interface {
	Load(ctx context.Context, path string) (sessiondomain.SelectedFile, error)
}

type Extractor interface {
	Extract(ctx context.Context, file sessiondomain.SelectedFile) (domain.Extraction, error)
}

// DocumentState is the part of the document context this flow owns.
type DocumentState interface {
	SelectFile(file sessiondomain.SelectedFile)
	ClearFile()
	Begin(ctx context.Context, requestID string) (sessiondomain.Ticket, context.Context, bool)
	Succeed(ticket sessiondomain.Ticket, chunks []string, message string) bool
	Fail(ticket sessiondomain.Ticket, message, detail string) bool
}
