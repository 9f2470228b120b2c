package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	queryin "neuradocs/internal/modules/query/adapter/in"
	"neuradocs/internal/modules/query/domain"
	"neuradocs/internal/modules/query/dto"
	"neuradocs/internal/modules/query/service"
	"neuradocs/internal/modules/query/usecase"
	sessiondomain "neuradocs/internal/modules/session/domain"
	apperrors "neuradocs/internal/platform/errors"
)

type fakeClock struct{}

func (fakeClock) Now() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

type fixedID string

func (f fixedID) New() string { return string(f) }

type echoAsker struct{ calls int }

func (a *echoAsker) Ask(_ context.Context, question string) (domain.Reply, error) {
	a.calls++
	return domain.Reply{Answer: "re: " + question, Found: true}, nil
}

func TestAskQuestionSetsAndAsks(t *testing.T) {
	t.Parallel()
	doc := sessiondomain.NewContext(fakeClock{})
	asker := &echoAsker{}
	svc := service.NewQueryService(doc.Query(), asker, fakeClock{}, fixedID("ask-1"), zerolog.Nop())
	h := queryin.NewCLIHandler(usecase.NewInteractor(svc))

	out, err := h.AskQuestion(context.Background(), "what is it?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if out.RequestID != "ask-1" || out.Question != "what is it?" || out.Answer != "re: what is it?" || !out.Found {
		t.Fatalf("unexpected output: %+v", out)
	}
	snap := doc.Snapshot()
	if snap.Question != "what is it?" || snap.Answer != "re: what is it?" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestSetQuestionThenEmptyAsk(t *testing.T) {
	t.Parallel()
	doc := sessiondomain.NewContext(fakeClock{})
	asker := &echoAsker{}
	uc := usecase.NewInteractor(service.NewQueryService(doc.Query(), asker, fakeClock{}, fixedID("ask-1"), zerolog.Nop()))
	if err := uc.SetQuestion(context.Background(), dto.SetQuestionInput{Text: "  "}); err != nil {
		t.Fatalf("set question: %v", err)
	}
	if _, err := uc.Ask(context.Background()); !errors.Is(err, apperrors.ErrEmptyQuestion) {
		t.Fatalf("expected ErrEmptyQuestion, got %v", err)
	}
	if asker.calls != 0 {
		t.Fatalf("no request expected")
	}
}
