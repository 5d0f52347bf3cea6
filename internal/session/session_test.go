package session

import (
	"errors"
	"reflect"
	"testing"

	"github.com/transparenta/autoeval/internal/catalog"
	"github.com/transparenta/autoeval/internal/scoring"
)

func yes() *scoring.GeneralAnswer {
	a := scoring.AnswerYes
	return &a
}

func testItem() catalog.Item {
	return catalog.Item{
		ID: 1, Key: "budget", Category: "Finance",
		SpecificIndicators: []string{"Q1"},
	}
}

func completeRecord() scoring.AnswerRecord {
	return scoring.AnswerRecord{
		Scenario:     scoring.ScenarioPresent,
		Availability: yes(),
		Currency:     yes(),
		Completeness: yes(),
		Specific:     []scoring.SpecificAnswer{scoring.SpecificYes},
	}
}

func TestSaveAnswerRoundTrip(t *testing.T) {
	m := NewManager()
	s := m.Create("Demo Org", "Ana", 10)

	rec := completeRecord()
	if err := s.SaveAnswer(testItem(), rec); err != nil {
		t.Fatalf("SaveAnswer failed: %v", err)
	}

	got, ok := s.Answer("budget")
	if !ok {
		t.Fatal("expected stored answer")
	}
	if !reflect.DeepEqual(got, rec) {
		t.Errorf("round trip mismatch: saved %+v, got %+v", rec, got)
	}

	// The stored record must not alias caller memory.
	*rec.Completeness = scoring.AnswerNo
	again, _ := s.Answer("budget")
	if *again.Completeness != scoring.AnswerYes {
		t.Error("stored record aliases the caller's pointers")
	}
}

func TestSaveAnswerRejectedLeavesStoreUntouched(t *testing.T) {
	m := NewManager()
	s := m.Create("Demo Org", "Ana", 10)

	if err := s.SaveAnswer(testItem(), completeRecord()); err != nil {
		t.Fatalf("SaveAnswer failed: %v", err)
	}

	incomplete := scoring.AnswerRecord{Scenario: scoring.ScenarioPresent}
	err := s.SaveAnswer(testItem(), incomplete)
	if !errors.Is(err, scoring.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}

	got, ok := s.Answer("budget")
	if !ok {
		t.Fatal("previous answer lost after rejected save")
	}
	if got.Availability == nil || *got.Availability != scoring.AnswerYes {
		t.Error("previous answer mutated by rejected save")
	}
}

func TestSaveAnswerOverwrites(t *testing.T) {
	m := NewManager()
	s := m.Create("Demo Org", "Ana", 10)

	if err := s.SaveAnswer(testItem(), completeRecord()); err != nil {
		t.Fatal(err)
	}
	revisit := scoring.AnswerRecord{Scenario: scoring.ScenarioBroken}
	if err := s.SaveAnswer(testItem(), revisit); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Answer("budget")
	if got.Scenario != scoring.ScenarioBroken {
		t.Errorf("expected overwritten scenario 5, got %d", got.Scenario)
	}
	if answered, _ := s.Progress(); answered != 1 {
		t.Errorf("overwrite should not grow the store, answered=%d", answered)
	}
}

func TestProgress(t *testing.T) {
	m := NewManager()
	s := m.Create("Demo Org", "Ana", 3)

	answered, total := s.Progress()
	if answered != 0 || total != 3 {
		t.Errorf("expected 0/3, got %d/%d", answered, total)
	}

	if err := s.SaveAnswer(testItem(), completeRecord()); err != nil {
		t.Fatal(err)
	}
	answered, total = s.Progress()
	if answered != 1 || total != 3 {
		t.Errorf("expected 1/3, got %d/%d", answered, total)
	}
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()
	s := m.Create("Demo Org", "Ana", 5)

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Organization != "Demo Org" || got.Evaluator != "Ana" {
		t.Errorf("unexpected session fields: %+v", got)
	}
	if m.Count() != 1 {
		t.Errorf("expected 1 live session, got %d", m.Count())
	}

	if err := m.Delete(s.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := m.Get(s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := m.Delete(s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestAnswersSnapshotIsolated(t *testing.T) {
	m := NewManager()
	s := m.Create("Demo Org", "Ana", 5)
	if err := s.SaveAnswer(testItem(), completeRecord()); err != nil {
		t.Fatal(err)
	}

	snap := s.Answers()
	rec := snap["budget"]
	rec.Specific[0] = scoring.SpecificNo

	stored, _ := s.Answer("budget")
	if stored.Specific[0] != scoring.SpecificYes {
		t.Error("snapshot mutation leaked into the store")
	}
}
