package api

import (
	"net/http"

	"github.com/transparenta/autoeval/internal/catalog"
	"github.com/transparenta/autoeval/internal/scoring"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// Items returns every assessable item in catalog order. The UI walks this
// sequence one item at a time.
func (h *CatalogHandler) Items(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Items())
}

type categorySummary struct {
	Category string   `json:"category"`
	Weight   *float64 `json:"weight"`
	Items    int      `json:"items"`
}

// Categories returns the distinct categories in first-appearance order with
// their weights.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	var out []categorySummary
	for _, c := range h.catalog.CategoryOrder() {
		out = append(out, categorySummary{
			Category: c,
			Weight:   h.catalog.CategoryWeight(c),
			Items:    len(h.catalog.ItemsByCategory(c)),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type scenarioOption struct {
	Code  int    `json:"code"`
	Label string `json:"label"`
}

// Scenarios returns the five fixed scenario codes with their labels.
func (h *CatalogHandler) Scenarios(w http.ResponseWriter, r *http.Request) {
	out := make([]scenarioOption, 0, 5)
	for s := scoring.ScenarioPresent; s <= scoring.ScenarioBroken; s++ {
		out = append(out, scenarioOption{Code: int(s), Label: s.Label()})
	}
	writeJSON(w, http.StatusOK, out)
}
