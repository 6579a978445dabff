package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/CTAG07/wordgen/pkg/markov"
	"github.com/google/go-cmp/cmp"
)

const testWordlist = "cat\t3\ncar\t2\ncart\ndog\n"

func TestSaveAndLoadModel(t *testing.T) {
	_, s := setupTestDB(t)
	ctx := context.Background()
	m := trainModel(t, 2, testWordlist)

	info, err := s.SaveModel(ctx, "animals", m)
	if err != nil {
		t.Fatalf("SaveModel() failed: %v", err)
	}
	if info.Name != "animals" || info.Depth != 2 || info.Id == 0 {
		t.Errorf("got unexpected model info: %+v", info)
	}

	loaded, err := s.LoadModel(ctx, "animals")
	if err != nil {
		t.Fatalf("LoadModel() failed: %v", err)
	}
	if diff := cmp.Diff(m.Transitions(), loaded.Transitions()); diff != "" {
		t.Errorf("loaded transitions mismatch (-want +got):\n%s", diff)
	}
	if loaded.Depth() != m.Depth() {
		t.Errorf("loaded depth = %d, want %d", loaded.Depth(), m.Depth())
	}
}

func TestSaveModelReplacesExisting(t *testing.T) {
	db, s := setupTestDB(t)
	ctx := context.Background()

	first, err := s.SaveModel(ctx, "words", trainModel(t, 2, testWordlist))
	if err != nil {
		t.Fatalf("first SaveModel() failed: %v", err)
	}
	replacement := trainModel(t, 3, "zebra\n")
	second, err := s.SaveModel(ctx, "words", replacement)
	if err != nil {
		t.Fatalf("second SaveModel() failed: %v", err)
	}
	if first.Id != second.Id {
		t.Errorf("expected model id to be kept, got %d then %d", first.Id, second.Id)
	}

	loaded, err := s.LoadModel(ctx, "words")
	if err != nil {
		t.Fatalf("LoadModel() failed: %v", err)
	}
	if !loaded.Equal(replacement) {
		t.Error("loaded model does not match the replacement")
	}

	var count int
	_ = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM wordgen_transitions WHERE model_id = ?", second.Id).Scan(&count)
	if want := replacement.Stats().Transitions; count != want {
		t.Errorf("expected %d stored transitions, found %d", want, count)
	}
}

func TestLoadModelErrors(t *testing.T) {
	db, s := setupTestDB(t)
	ctx := context.Background()

	if _, err := s.LoadModel(ctx, "nonexistent"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows for nonexistent model, got %v", err)
	}

	info, err := s.SaveModel(ctx, "broken", trainModel(t, 2, testWordlist))
	if err != nil {
		t.Fatalf("SaveModel() failed: %v", err)
	}
	// Break the strictly increasing cumulative counts of every context.
	if _, err = db.ExecContext(ctx, "UPDATE wordgen_transitions SET cumulative = 1 WHERE model_id = ?", info.Id); err != nil {
		t.Fatal(err)
	}
	if _, err = s.LoadModel(ctx, "broken"); !errors.Is(err, markov.ErrCorruptModel) {
		t.Errorf("expected ErrCorruptModel for damaged rows, got %v", err)
	}
}

func TestGetModelInfos(t *testing.T) {
	_, s := setupTestDB(t)
	ctx := context.Background()

	_, _ = s.SaveModel(ctx, "two", trainModel(t, 2, testWordlist))
	_, _ = s.SaveModel(ctx, "one", trainModel(t, 1, testWordlist))

	models, err := s.GetModelInfos(ctx)
	if err != nil {
		t.Fatalf("GetModelInfos failed: %v", err)
	}
	if len(models) != 2 {
		t.Errorf("expected 2 models, got %d", len(models))
	}
	if models["one"].Depth != 1 || models["two"].Depth != 2 {
		t.Errorf("unexpected depths: %+v", models)
	}
}

func TestRemoveModel(t *testing.T) {
	db, s := setupTestDB(t)
	ctx := context.Background()

	m1, _ := s.SaveModel(ctx, "to_delete", trainModel(t, 1, "delete\n"))
	m2, _ := s.SaveModel(ctx, "to_keep", trainModel(t, 1, "keep\n"))

	if err := s.RemoveModel(ctx, m1); err != nil {
		t.Fatalf("RemoveModel failed: %v", err)
	}

	if _, err := s.GetModelInfo(ctx, m1.Name); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected ErrNoRows for deleted model, got %v", err)
	}

	var count int
	_ = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM wordgen_transitions WHERE model_id = ?", m1.Id).Scan(&count)
	if count != 0 {
		t.Errorf("expected 0 transitions for deleted model, found %d", count)
	}

	_ = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM wordgen_transitions WHERE model_id = ?", m2.Id).Scan(&count)
	if count == 0 {
		t.Error("expected transitions for kept model to exist, but found 0")
	}
}

func TestGetStats(t *testing.T) {
	_, s := setupTestDB(t)
	ctx := context.Background()

	m := trainModel(t, 2, testWordlist)
	info, err := s.SaveModel(ctx, "animals", m)
	if err != nil {
		t.Fatalf("SaveModel() failed: %v", err)
	}

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if len(stats.Models) != 1 || stats.Models[0].Name != "animals" {
		t.Fatalf("unexpected models: %+v", stats.Models)
	}
	want := ModelStats{Contexts: m.Stats().Contexts, Transitions: m.Stats().Transitions}
	if diff := cmp.Diff(want, stats.Stats[info.Id]); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}
