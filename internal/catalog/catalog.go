package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Item is one assessable disclosure unit of the transparency catalog.
type Item struct {
	ID                 int      `json:"id"`
	Key                string   `json:"key"`
	Category           string   `json:"category"`
	CategoryWeight     *float64 `json:"category_weight,omitempty"`
	ItemWeight         *float64 `json:"item_weight,omitempty"`
	SpecificIndicators []string `json:"specific_indicators,omitempty"`
}

// Catalog is the immutable ordered list of assessable items, loaded once at
// startup. Category order follows first appearance, item order follows the
// numeric ID field of the source data.
type Catalog struct {
	items         []Item
	byKey         map[string]*Item
	byCategory    map[string][]Item
	categoryOrder []string
	weights       map[string]*float64
}

// The source data carries one misspelled category label in some records.
// It is replaced unconditionally at load time.
const (
	misspelledCategory = "Actos y resoluciones que tengas efectos sobre terceros"
	correctedCategory  = "Actos y resoluciones con efectos sobre terceros"
)

// itemRecord mirrors one record of the source items JSON.
type itemRecord struct {
	ID          int             `json:"ID"`
	Item        string          `json:"Ítem"`
	Materia     string          `json:"Materia"`
	PesoMateria json.RawMessage `json:"Peso Materia (%)"`
	PesoItem    json.RawMessage `json:"Peso Ítem (%)"`
}

// Load reads the items dataset and the specific-indicators dataset and builds
// the catalog. Both files are required; an item with no entry in the
// indicators dataset simply has zero specific indicators.
func Load(itemsPath, indicatorsPath string) (*Catalog, error) {
	data, err := os.ReadFile(itemsPath)
	if err != nil {
		return nil, fmt.Errorf("read catalog items: %w", err)
	}
	var records []itemRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse catalog items: %w", err)
	}

	data, err = os.ReadFile(indicatorsPath)
	if err != nil {
		return nil, fmt.Errorf("read specific indicators: %w", err)
	}
	var indicators map[string][]string
	if err := json.Unmarshal(data, &indicators); err != nil {
		return nil, fmt.Errorf("parse specific indicators: %w", err)
	}

	items := make([]Item, 0, len(records))
	for _, r := range records {
		cat := strings.TrimSpace(r.Materia)
		if cat == misspelledCategory {
			cat = correctedCategory
		}
		it := Item{
			ID:             r.ID,
			Key:            r.Item,
			Category:       cat,
			CategoryWeight: numericCell(r.PesoMateria),
			ItemWeight:     numericCell(r.PesoItem),
		}
		it.SpecificIndicators = indicators[cat+" || "+it.Key]
		items = append(items, it)
	}

	return New(items), nil
}

// New builds a catalog from already-parsed items. Items are re-sorted by
// ascending ID so callers need not pre-sort.
func New(items []Item) *Catalog {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	c := &Catalog{
		items:      sorted,
		byKey:      make(map[string]*Item, len(sorted)),
		byCategory: make(map[string][]Item),
		weights:    make(map[string]*float64),
	}
	for i := range c.items {
		it := &c.items[i]
		c.byKey[it.Key] = it
		if _, seen := c.byCategory[it.Category]; !seen {
			c.categoryOrder = append(c.categoryOrder, it.Category)
		}
		c.byCategory[it.Category] = append(c.byCategory[it.Category], *it)
		// First numeric weight seen for the category wins; blank or
		// textual cells are skipped, never treated as zero.
		if _, ok := c.weights[it.Category]; !ok && it.CategoryWeight != nil {
			c.weights[it.Category] = it.CategoryWeight
		}
	}
	return c
}

// Items returns all items in ascending source-ID order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Item looks up a single item by its stable key.
func (c *Catalog) Item(key string) (Item, bool) {
	it, ok := c.byKey[key]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// ItemsByCategory returns the items of one category in catalog order.
func (c *Catalog) ItemsByCategory(category string) []Item {
	src := c.byCategory[category]
	out := make([]Item, len(src))
	copy(out, src)
	return out
}

// CategoryOrder returns the distinct categories in first-appearance order.
func (c *Catalog) CategoryOrder() []string {
	out := make([]string, len(c.categoryOrder))
	copy(out, c.categoryOrder)
	return out
}

// CategoryWeight returns the category's numeric weight, or nil when the
// source data defines none.
func (c *Catalog) CategoryWeight(category string) *float64 {
	return c.weights[category]
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}

// numericCell extracts a number from a JSON cell that may be a number, a
// numeric string, or arbitrary text. Anything non-numeric yields nil.
func numericCell(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &n
}
