package usecase_test

import (
	"context"
	"testing"
	"time"

	"neuradocs/internal/modules/session/domain"
	"neuradocs/internal/modules/session/usecase"
)

type fakeClock struct{}

func (fakeClock) Now() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

func TestSnapshotMapsFileAndFlows(t *testing.T) {
	t.Parallel()
	doc := domain.NewContext(fakeClock{})
	doc.Ingestion().SelectFile(domain.SelectedFile{Name: "guide.pdf", Path: "/tmp/guide.pdf", Size: 2048, Pages: 3})
	ticket, _, _ := doc.Ingestion().Begin(context.Background(), "req-1")
	doc.Query().SetQuestion("what is it?")

	uc := usecase.NewInteractor(doc)
	out, err := uc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !out.HasFile || out.File.Name != "guide.pdf" || out.File.Pages != 3 || out.File.Size != 2048 {
		t.Fatalf("unexpected file output: %+v", out.File)
	}
	if !out.Ingestion.Busy || out.Ingestion.Status != "in_flight" || out.Ingestion.RequestID != "req-1" {
		t.Fatalf("unexpected ingestion output: %+v", out.Ingestion)
	}
	if out.Query.Busy || out.Query.Status != "idle" || out.Question != "what is it?" {
		t.Fatalf("unexpected query output: %+v", out)
	}

	doc.Ingestion().Succeed(ticket, []string{"c1"}, "PDF extracted (1 chunks)")
	out, _ = uc.Snapshot(context.Background())
	if out.Ingestion.Busy || len(out.Chunks) != 1 || out.Ingestion.Message != "PDF extracted (1 chunks)" {
		t.Fatalf("unexpected output after success: %+v", out)
	}
}
