package scoring

import (
	"fmt"

	"github.com/transparenta/autoeval/internal/catalog"
)

// Fixed deficiency notes for the three general indicators. Emitted when the
// answer is "No" or "Cannot be determined".
const (
	NoteUnavailable = "Information not available"
	NoteOutdated    = "Information out of date"
	NoteIncomplete  = "Information incomplete"
)

// ItemFindings lists the deficiency notes detected for one item.
type ItemFindings struct {
	Item  string   `json:"item"`
	Notes []string `json:"notes"`
}

// CategoryFindings groups item findings under their category.
type CategoryFindings struct {
	Category string         `json:"category"`
	Items    []ItemFindings `json:"items"`
}

// Findings derives the non-conformity list for the report: per stored answer,
// the scenario label for scenarios 4 and 5, one fixed note per deficient
// general answer, and one note per specific indicator answered "No", quoting
// the indicator's question text. Output follows catalog order; items and
// categories without findings are omitted.
func Findings(cat *catalog.Catalog, answers map[string]AnswerRecord) []CategoryFindings {
	var out []CategoryFindings
	for _, category := range cat.CategoryOrder() {
		var items []ItemFindings
		for _, it := range cat.ItemsByCategory(category) {
			rec, ok := answers[it.Key]
			if !ok {
				continue
			}
			notes := itemNotes(it, rec)
			if len(notes) == 0 {
				continue
			}
			items = append(items, ItemFindings{Item: it.Key, Notes: notes})
		}
		if len(items) > 0 {
			out = append(out, CategoryFindings{Category: category, Items: items})
		}
	}
	return out
}

func itemNotes(item catalog.Item, rec AnswerRecord) []string {
	var notes []string
	if rec.Scenario == ScenarioAbsentMissingInfo || rec.Scenario == ScenarioBroken {
		notes = append(notes, rec.Scenario.Label())
	}

	general := []struct {
		answer *GeneralAnswer
		note   string
	}{
		{rec.Availability, NoteUnavailable},
		{rec.Currency, NoteOutdated},
		{rec.Completeness, NoteIncomplete},
	}
	for _, g := range general {
		if g.answer == nil {
			continue
		}
		if *g.answer == AnswerNo || *g.answer == AnswerIndeterminate {
			notes = append(notes, g.note)
		}
	}

	for i, a := range rec.Specific {
		if a != SpecificNo || i >= len(item.SpecificIndicators) {
			continue
		}
		notes = append(notes, fmt.Sprintf("Specific indicator not met: %s", item.SpecificIndicators[i]))
	}
	return notes
}
