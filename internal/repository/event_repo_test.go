package repository

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"recipe_service/internal/models"
)

var eventColumns = []string{"id", "occurred_at", "type", "recipe_id", "user_id", "message", "meta"}

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func newEventRepo(t *testing.T) (*EventSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("mock expectations: %v", err)
		}
		_ = db.Close()
	})
	return NewEventSQLite(db), mock
}

func TestAppend_Success_WithDefaults(t *testing.T) {
	t.Parallel()
	repo, mock := newEventRepo(t)

	// generated id and timestamp are unknown; type must be normalized
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recipe_events")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "CREATE", "r-1", 7, "recipe created", `{"name":"jollof rice"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(ctx(t), models.RecipeEvent{
		Type:        "  create ",
		RecipeID:    "r-1",
		UserID:      7,
		Description: "recipe created",
		Metadata:    map[string]any{"name": "jollof rice"},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestAppend_DBError(t *testing.T) {
	t.Parallel()
	repo, mock := newEventRepo(t)

	mock.ExpectExec("INSERT INTO recipe_events").
		WillReturnError(errors.New("down"))

	err := repo.Append(ctx(t), models.RecipeEvent{Type: models.EventDelete, RecipeID: "r-1", Description: "x"})
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected error, got %v", err)
	}
}

func TestAppend_UnmarshalableMetadata(t *testing.T) {
	t.Parallel()
	repo, _ := newEventRepo(t)

	err := repo.Append(ctx(t), models.RecipeEvent{Type: models.EventUpdate, Metadata: make(chan int)})
	if err == nil || !strings.Contains(err.Error(), "marshal event metadata") {
		t.Fatalf("expected marshal error, got %v", err)
	}
}

func TestList_NoFilters_And_MetadataParsing(t *testing.T) {
	t.Parallel()
	repo, mock := newEventRepo(t)

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	js, _ := json.Marshal(map[string]any{"a": "b"})

	rows := sqlmock.NewRows(eventColumns).
		AddRow("1", now, "CREATE", "r-1", 1, "m1", string(js)).
		AddRow("2", now.Add(time.Hour), "DELETE", "r-1", 1, "m2", nil).
		AddRow("3", now.Add(2*time.Hour), "UPDATE", "r-2", 2, "m3", "{not json")

	mock.ExpectQuery(regexp.QuoteMeta(selectEventsSQL + ` ORDER BY occurred_at ASC`)).
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3, got %d", len(got))
	}
	if got[0].EventID != "1" || got[0].RecipeID != "r-1" || got[2].UserID != 2 {
		t.Fatalf("unexpected rows: %+v", got)
	}
	b1, _ := json.Marshal(got[0].Metadata)
	if string(b1) != string(js) {
		t.Fatalf("metadata mismatch: %s vs %s", string(b1), string(js))
	}
	if got[1].Metadata != nil {
		t.Fatalf("expected nil meta, got %#v", got[1].Metadata)
	}
	if got[2].Metadata != "{not json" {
		t.Fatalf("expected raw meta kept, got %#v", got[2].Metadata)
	}
}

func TestList_WithFilters_OrderAndArgs(t *testing.T) {
	t.Parallel()
	repo, mock := newEventRepo(t)

	loc := time.FixedZone("UTC+3", 3*60*60)
	from := time.Date(2025, 1, 1, 14, 0, 0, 0, loc)
	to := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	query := selectEventsSQL + ` WHERE occurred_at >= ? AND occurred_at <= ? AND type = ? ORDER BY occurred_at ASC`

	rows := sqlmock.NewRows(eventColumns).
		AddRow("2", from.UTC(), "UPDATE", "r-1", 1, "b", nil)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(from.UTC(), to, "UPDATE").
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), from, to, " update ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].EventID != "2" {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestList_ScanError(t *testing.T) {
	t.Parallel()
	repo, mock := newEventRepo(t)

	rows := sqlmock.NewRows(eventColumns).
		// occurred_at wrong type to force scan error
		AddRow("x", 123, "CREATE", "r", 1, "msg", nil)

	mock.ExpectQuery(regexp.QuoteMeta(selectEventsSQL)).
		WillReturnRows(rows)

	if _, err := repo.List(ctx(t), time.Time{}, time.Time{}, ""); err == nil {
		t.Fatalf("expected scan error, got nil")
	}
}
