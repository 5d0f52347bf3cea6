package scoring

import (
	"fmt"
	"math"

	"github.com/transparenta/autoeval/internal/catalog"
)

// Params defines the numeric model of the scorer: the value assigned to each
// general answer and the blend between the general and specific sub-scores.
type Params struct {
	GeneralWeight      float64
	SpecificWeight     float64
	YesValue           float64
	NoValue            float64
	IndeterminateValue float64
}

// DefaultParams returns the standard 75/25 blend with Yes=100, No=0,
// indeterminate=25.
func DefaultParams() Params {
	return Params{
		GeneralWeight:      0.75,
		SpecificWeight:     0.25,
		YesValue:           100,
		NoValue:            0,
		IndeterminateValue: 25,
	}
}

// Validate checks that the blend weights sum to 1.0 and none are negative.
func (p Params) Validate() error {
	sum := p.GeneralWeight + p.SpecificWeight
	if math.Abs(sum-1.0) > 0.001 {
		return fmt.Errorf("blend weights sum to %.4f, must sum to 1.0", sum)
	}
	if p.GeneralWeight < 0 || p.SpecificWeight < 0 {
		return fmt.Errorf("negative blend weight")
	}
	return nil
}

func (p Params) value(a GeneralAnswer) float64 {
	switch a {
	case AnswerYes:
		return p.YesValue
	case AnswerNo:
		return p.NoValue
	default:
		return p.IndeterminateValue
	}
}

// ScoreSet is the full recomputed scoring output: per-item and per-category
// percentages (nil = excluded / nothing scored) and the single global score.
type ScoreSet struct {
	Items      map[string]*float64 `json:"items"`
	Categories map[string]*float64 `json:"categories"`
	Global     float64             `json:"global"`
}

// Scorer computes item compliance percentages and rolls them up into
// category and global scores. All methods are pure.
type Scorer struct {
	params Params
}

// NewScorer creates a Scorer with the given parameters.
func NewScorer(params Params) *Scorer {
	return &Scorer{params: params}
}

// ScoreItem computes one item's compliance percentage. Scenarios 2 and 3 are
// excluded from aggregation (nil); 4 and 5 score a flat 0. Scenario 1 blends
// the weakest general answer with the mean of the applicable specific
// answers. An incomplete scenario-1 record scores nil rather than erroring;
// the save gate should have prevented it.
func (s *Scorer) ScoreItem(rec AnswerRecord) *float64 {
	switch rec.Scenario {
	case ScenarioNotApplicable, ScenarioAbsentNoEvidence:
		return nil
	case ScenarioAbsentMissingInfo, ScenarioBroken:
		zero := 0.0
		return &zero
	}

	general := math.MaxFloat64
	answered := 0
	for _, a := range rec.generals() {
		if a == nil {
			continue
		}
		answered++
		if v := s.params.value(*a); v < general {
			general = v
		}
	}
	if answered < 3 {
		return nil
	}

	// Specific sub-score over applicable answers only; no applicable
	// answers means the general score stands alone at full weight.
	applicable, yes := 0, 0
	for _, a := range rec.Specific {
		if a == SpecificNotApplicable {
			continue
		}
		applicable++
		if a == SpecificYes {
			yes++
		}
	}
	specific := 100.0
	if applicable > 0 {
		specific = math.Round(float64(yes) / float64(applicable) * 100)
	}

	score := round1(general*s.params.GeneralWeight + specific*s.params.SpecificWeight)
	return &score
}

// Compute recomputes the full ScoreSet from scratch: item scores for every
// stored answer, category means over non-nil item scores in catalog order,
// and the weighted global mean. Categories without a numeric weight or
// without any scored item are excluded from the weighted mean; if no weighted
// scored category exists the global falls back to the unweighted mean of
// scored categories, and to 0 when nothing scored at all.
func (s *Scorer) Compute(cat *catalog.Catalog, answers map[string]AnswerRecord) ScoreSet {
	set := ScoreSet{
		Items:      make(map[string]*float64, len(answers)),
		Categories: make(map[string]*float64),
	}
	for key, rec := range answers {
		set.Items[key] = s.ScoreItem(rec)
	}

	for _, category := range cat.CategoryOrder() {
		var sum float64
		var n int
		for _, it := range cat.ItemsByCategory(category) {
			if v, ok := set.Items[it.Key]; ok && v != nil {
				sum += *v
				n++
			}
		}
		if n == 0 {
			set.Categories[category] = nil
			continue
		}
		mean := round1(sum / float64(n))
		set.Categories[category] = &mean
	}

	var weightSum, weighted float64
	for _, category := range cat.CategoryOrder() {
		w := cat.CategoryWeight(category)
		cs := set.Categories[category]
		if w == nil || cs == nil {
			continue
		}
		weightSum += *w
		weighted += *cs * *w
	}
	switch {
	case weightSum > 0:
		set.Global = round1(weighted / weightSum)
	default:
		var sum float64
		var n int
		for _, cs := range set.Categories {
			if cs != nil {
				sum += *cs
				n++
			}
		}
		if n > 0 {
			set.Global = round1(sum / float64(n))
		}
	}
	return set
}

// round1 rounds half away from zero to one decimal.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
