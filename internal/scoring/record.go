package scoring

// Scenario is the evaluator's situational observation for one item. It is the
// first answer captured and decides which follow-up questions apply.
type Scenario int

const (
	// ScenarioPresent: the organization publishes the section with records.
	// The only scenario with follow-up questions.
	ScenarioPresent Scenario = iota + 1
	// ScenarioNotApplicable: the organization states it has no records.
	ScenarioNotApplicable
	// ScenarioAbsentNoEvidence: section missing, no evidence of a violation.
	ScenarioAbsentNoEvidence
	// ScenarioAbsentMissingInfo: section missing with evidence of missing
	// information.
	ScenarioAbsentMissingInfo
	// ScenarioBroken: the section or link exists but does not work.
	ScenarioBroken
)

var scenarioLabels = map[Scenario]string{
	ScenarioPresent:           "Section present with supporting records",
	ScenarioNotApplicable:     "Organization states it has no records / not applicable",
	ScenarioAbsentNoEvidence:  "No section published but no evidence of a violation",
	ScenarioAbsentMissingInfo: "No section published and evidence of missing information",
	ScenarioBroken:            "Section or link exists but does not work or shows no data",
}

// Valid reports whether s is one of the five defined scenario codes.
func (s Scenario) Valid() bool {
	return s >= ScenarioPresent && s <= ScenarioBroken
}

// Label returns the fixed descriptive text for the scenario.
func (s Scenario) Label() string {
	return scenarioLabels[s]
}

// GeneralAnswer is the value of one of the three universal sub-questions
// (availability, currency, completeness).
type GeneralAnswer string

const (
	AnswerYes           GeneralAnswer = "Yes"
	AnswerNo            GeneralAnswer = "No"
	AnswerIndeterminate GeneralAnswer = "Cannot be determined"
)

// SpecificAnswer is the value of one category-specific sub-question.
type SpecificAnswer string

const (
	SpecificYes           SpecificAnswer = "Yes"
	SpecificNo            SpecificAnswer = "No"
	SpecificNotApplicable SpecificAnswer = "Not applicable"
)

// AnswerRecord holds one item's captured answers. General answers are
// populated only as deep as the branching reaches; unreached slots stay nil.
// Specific answers exist only when scenario 1 reaches the deep branch
// (available, current, completeness answered), one per specific indicator.
type AnswerRecord struct {
	Scenario     Scenario         `json:"scenario"`
	Availability *GeneralAnswer   `json:"availability,omitempty"`
	Currency     *GeneralAnswer   `json:"currency,omitempty"`
	Completeness *GeneralAnswer   `json:"completeness,omitempty"`
	Specific     []SpecificAnswer `json:"specific,omitempty"`
}

// Clone returns a deep copy so stored records never alias caller memory.
func (r AnswerRecord) Clone() AnswerRecord {
	out := AnswerRecord{Scenario: r.Scenario}
	if r.Availability != nil {
		v := *r.Availability
		out.Availability = &v
	}
	if r.Currency != nil {
		v := *r.Currency
		out.Currency = &v
	}
	if r.Completeness != nil {
		v := *r.Completeness
		out.Completeness = &v
	}
	if r.Specific != nil {
		out.Specific = make([]SpecificAnswer, len(r.Specific))
		copy(out.Specific, r.Specific)
	}
	return out
}

// generals returns the answered slots in fixed order.
func (r AnswerRecord) generals() []*GeneralAnswer {
	return []*GeneralAnswer{r.Availability, r.Currency, r.Completeness}
}
