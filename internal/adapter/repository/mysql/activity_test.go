package mysql

import (
	"context"
	"testing"
	"time"

	domain "pawnshop-backend/internal/domain/activity"
)

func TestActivity_AppendAndOrderedRead(t *testing.T) {
	db := openTestDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	for i, content := range []string{"created", "approved", "note from staff"} {
		e := &domain.Entry{
			LoanID:    5,
			Type:      domain.TypeSystem,
			Content:   content,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if e.ID == 0 {
			t.Fatal("Create did not assign id")
		}
	}

	got, err := repo.ListByLoanID(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("listed %d entries", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.Before(got[i-1].CreatedAt) {
			t.Fatal("entries out of creation-time order")
		}
	}
	if got[0].Content != "created" || got[2].Content != "note from staff" {
		t.Fatalf("order wrong: %+v", got)
	}

	other, err := repo.ListByLoanID(ctx, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Fatalf("loan 6 should have no entries, got %d", len(other))
	}
}
