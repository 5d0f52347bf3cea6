package scoring

import (
	"errors"
	"fmt"

	"github.com/transparenta/autoeval/internal/catalog"
)

// ErrIncomplete marks a save attempt that has not reached the end of the
// branching question tree. Recoverable: the caller warns and keeps state.
var ErrIncomplete = errors.New("answers incomplete")

// ErrInvalidAnswer marks an answer value outside its allowed set, or answers
// present in branches the decision tree never reached.
var ErrInvalidAnswer = errors.New("invalid answer")

// IsSavable reports whether a record has reached the end of its branch.
// Scenarios 2–5 need nothing beyond the scenario itself. Scenario 1 walks
// availability → currency → completeness, where a "No" at any step ends the
// branch early.
func IsSavable(rec AnswerRecord) bool {
	if rec.Scenario != ScenarioPresent {
		return true
	}
	if rec.Availability == nil {
		return false
	}
	if *rec.Availability == AnswerNo {
		return true
	}
	if rec.Currency == nil {
		return false
	}
	if *rec.Currency == AnswerNo {
		return true
	}
	return rec.Completeness != nil
}

// ValidateRecord is the full save gate for one item. Beyond IsSavable it
// rejects out-of-range scenarios, answers in unreached branches, invalid enum
// values, and specific-indicator lists that do not cover every indicator of
// the item once the deep branch is reached.
func ValidateRecord(rec AnswerRecord, item catalog.Item) error {
	if !rec.Scenario.Valid() {
		return fmt.Errorf("%w: scenario %d out of range", ErrInvalidAnswer, rec.Scenario)
	}

	if rec.Scenario != ScenarioPresent {
		if rec.Availability != nil || rec.Currency != nil || rec.Completeness != nil || len(rec.Specific) > 0 {
			return fmt.Errorf("%w: scenario %d takes no further answers", ErrInvalidAnswer, rec.Scenario)
		}
		return nil
	}

	if rec.Availability == nil {
		return fmt.Errorf("%w: availability not answered", ErrIncomplete)
	}
	if *rec.Availability != AnswerYes && *rec.Availability != AnswerNo {
		return fmt.Errorf("%w: availability %q", ErrInvalidAnswer, *rec.Availability)
	}
	if *rec.Availability == AnswerNo {
		return requireBranchEnd(rec, rec.Currency == nil && rec.Completeness == nil)
	}

	if rec.Currency == nil {
		return fmt.Errorf("%w: currency not answered", ErrIncomplete)
	}
	if *rec.Currency != AnswerYes && *rec.Currency != AnswerNo {
		return fmt.Errorf("%w: currency %q", ErrInvalidAnswer, *rec.Currency)
	}
	if *rec.Currency == AnswerNo {
		return requireBranchEnd(rec, rec.Completeness == nil)
	}

	if rec.Completeness == nil {
		return fmt.Errorf("%w: completeness not answered", ErrIncomplete)
	}
	switch *rec.Completeness {
	case AnswerYes, AnswerNo, AnswerIndeterminate:
	default:
		return fmt.Errorf("%w: completeness %q", ErrInvalidAnswer, *rec.Completeness)
	}

	// Deep branch reached: every specific indicator must be answered.
	if len(rec.Specific) != len(item.SpecificIndicators) {
		return fmt.Errorf("%w: %d of %d specific indicators answered",
			ErrIncomplete, len(rec.Specific), len(item.SpecificIndicators))
	}
	for i, a := range rec.Specific {
		switch a {
		case SpecificYes, SpecificNo, SpecificNotApplicable:
		default:
			return fmt.Errorf("%w: specific indicator %d: %q", ErrInvalidAnswer, i+1, a)
		}
	}
	return nil
}

func requireBranchEnd(rec AnswerRecord, laterNil bool) error {
	if !laterNil || len(rec.Specific) > 0 {
		return fmt.Errorf("%w: answers beyond the end of the branch", ErrInvalidAnswer)
	}
	return nil
}
