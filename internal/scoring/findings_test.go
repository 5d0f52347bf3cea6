package scoring

import (
	"strings"
	"testing"

	"github.com/transparenta/autoeval/internal/catalog"
)

func findingsCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Item{
		{ID: 1, Key: "budget", Category: "Finance", SpecificIndicators: []string{"Published monthly?", "Machine readable?"}},
		{ID: 2, Key: "contracts", Category: "Finance"},
		{ID: 3, Key: "org-chart", Category: "Structure"},
	})
}

func TestFindingsScenarioLabels(t *testing.T) {
	cat := findingsCatalog()
	answers := map[string]AnswerRecord{
		"contracts": {Scenario: ScenarioAbsentMissingInfo},
		"org-chart": {Scenario: ScenarioBroken},
	}
	out := Findings(cat, answers)

	if len(out) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(out))
	}
	if out[0].Category != "Finance" || out[1].Category != "Structure" {
		t.Errorf("expected catalog category order, got %s then %s", out[0].Category, out[1].Category)
	}
	if got := out[0].Items[0].Notes[0]; got != ScenarioAbsentMissingInfo.Label() {
		t.Errorf("expected scenario 4 label, got %q", got)
	}
	if got := out[1].Items[0].Notes[0]; got != ScenarioBroken.Label() {
		t.Errorf("expected scenario 5 label, got %q", got)
	}
}

func TestFindingsGeneralNotes(t *testing.T) {
	cat := findingsCatalog()

	tests := []struct {
		name string
		rec  AnswerRecord
		want []string
	}{
		{"availability no", scenario1(generalPtr(AnswerNo), nil, nil), []string{NoteUnavailable}},
		{"currency no", scenario1(generalPtr(AnswerYes), generalPtr(AnswerNo), nil), []string{NoteOutdated}},
		{"completeness no", fullyAnswered(AnswerNo), []string{NoteIncomplete}},
		{"completeness indeterminate", fullyAnswered(AnswerIndeterminate), []string{NoteIncomplete}},
		{"all compliant", fullyAnswered(AnswerYes), nil},
		{"scenario 2 no notes", AnswerRecord{Scenario: ScenarioNotApplicable}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Findings(cat, map[string]AnswerRecord{"contracts": tt.rec})
			if tt.want == nil {
				if len(out) != 0 {
					t.Fatalf("expected no findings, got %+v", out)
				}
				return
			}
			if len(out) != 1 || len(out[0].Items) != 1 {
				t.Fatalf("expected one item with findings, got %+v", out)
			}
			notes := out[0].Items[0].Notes
			if len(notes) != len(tt.want) {
				t.Fatalf("expected %d notes, got %v", len(tt.want), notes)
			}
			for i := range tt.want {
				if notes[i] != tt.want[i] {
					t.Errorf("note %d: expected %q, got %q", i, tt.want[i], notes[i])
				}
			}
		})
	}
}

func TestFindingsSpecificIndicatorNotes(t *testing.T) {
	cat := findingsCatalog()
	answers := map[string]AnswerRecord{
		"budget": fullyAnswered(AnswerYes, SpecificNo, SpecificYes),
	}
	out := Findings(cat, answers)
	if len(out) != 1 || len(out[0].Items) != 1 {
		t.Fatalf("expected one finding, got %+v", out)
	}
	notes := out[0].Items[0].Notes
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %v", notes)
	}
	if !strings.Contains(notes[0], "Published monthly?") {
		t.Errorf("note should quote the indicator question, got %q", notes[0])
	}
}

func TestFindingsItemOrderFollowsCatalog(t *testing.T) {
	cat := findingsCatalog()
	answers := map[string]AnswerRecord{
		"contracts": {Scenario: ScenarioBroken},
		"budget":    fullyAnswered(AnswerNo),
	}
	out := Findings(cat, answers)
	if len(out) != 1 {
		t.Fatalf("expected 1 category, got %d", len(out))
	}
	if out[0].Items[0].Item != "budget" || out[0].Items[1].Item != "contracts" {
		t.Errorf("expected catalog item order, got %s then %s", out[0].Items[0].Item, out[0].Items[1].Item)
	}
}
