package out

import (
	"context"

	"neuradocs/internal/modules/query/domain"
	sessiondomain "neuradocs/internal/modules/session/domain"
)

type Asker interface {
	Ask(ctx context.Context, question string) (domain.Reply, error)
}

// DocumentState is the part of the document context this flow owns.
type DocumentState interface {
	SetQuestion(text string)
	Question() string
	Begin(ctx context.Context, requestID string) (sessiondomain.Ticket, context.Context, bool)
	Succeed(ticket sessiondomain.Ticket, answer, message string) bool
	Fail(ticket sessiondomain.Ticket, sentinel, message, detail string) bool
}
