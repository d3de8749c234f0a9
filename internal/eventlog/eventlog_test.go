package eventlog

import (
	"context"
	"testing"

	"github.com/mind-engage/mcq-reviewer/internal/db"
)

func TestAppendAndList(t *testing.T) {
	ctx := context.Background()
	d, err := db.Open(ctx, db.DriverSQLite, "file:eventlog_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	defer d.Close()

	repo := NewEventRepo(d, "")
	if err := repo.Emit(ctx, "s1", "QuizStarted", map[string]int{"total": 2}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := repo.Emit(ctx, "s2", "QuizStarted", nil); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := repo.Append(ctx, Event{Type: "AnswerSubmitted", SessionKey: "s1"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := repo.List(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Type != "QuizStarted" || got[0].DataJSON != `{"total":2}` || got[0].SiteID != "local" {
		t.Fatalf("first event = %+v", got[0])
	}
	if got[1].Type != "AnswerSubmitted" || got[1].DataJSON != "{}" {
		t.Fatalf("second event = %+v", got[1])
	}
	if got[0].Seq >= got[1].Seq {
		t.Fatalf("events out of order: %d, %d", got[0].Seq, got[1].Seq)
	}

	all, err := repo.List(ctx, "", 10)
	if err != nil || len(all) != 3 {
		t.Fatalf("list all = %d, %v", len(all), err)
	}
}
