package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/transparenta/autoeval/internal/catalog"
	"github.com/transparenta/autoeval/internal/events"
	"github.com/transparenta/autoeval/internal/report"
	"github.com/transparenta/autoeval/internal/scoring"
	"github.com/transparenta/autoeval/internal/session"
)

type AssessmentHandler struct {
	sessions  *session.Manager
	catalog   *catalog.Catalog
	scorer    *scoring.Scorer
	reports   *report.Builder
	reportDir string
	events    events.Client
}

func NewAssessmentHandler(s *session.Manager, c *catalog.Catalog, sc *scoring.Scorer, rb *report.Builder, reportDir string, ev events.Client) *AssessmentHandler {
	return &AssessmentHandler{
		sessions:  s,
		catalog:   c,
		scorer:    sc,
		reports:   rb,
		reportDir: reportDir,
		events:    ev,
	}
}

// Save stores one item's answers after the validation gate. An incomplete or
// invalid answer set is rejected without touching the session state.
func (h *AssessmentHandler) Save(w http.ResponseWriter, r *http.Request) {
	s, ok := lookupSession(w, r, h.sessions)
	if !ok {
		return
	}
	item, ok := h.lookupItem(w, r)
	if !ok {
		return
	}

	var rec scoring.AnswerRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := s.SaveAnswer(item, rec); err != nil {
		switch {
		case errors.Is(err, scoring.ErrIncomplete):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error":   err.Error(),
				"warning": "complete the indicators before saving",
			})
		case errors.Is(err, scoring.ErrInvalidAnswer):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}

	answered, total := s.Progress()
	if h.events != nil {
		_ = h.events.Publish(events.SubjectItemSaved(s.ID.String()), events.ItemSavedEvent{
			SessionID: s.ID.String(),
			Item:      item.Key,
			Category:  item.Category,
			Scenario:  int(rec.Scenario),
			Answered:  answered,
			Total:     total,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "saved",
		"answered": answered,
		"total":    total,
	})
}

// Answer returns the stored record for one item so the UI can re-open it for
// editing with the previously saved values.
func (h *AssessmentHandler) Answer(w http.ResponseWriter, r *http.Request) {
	s, ok := lookupSession(w, r, h.sessions)
	if !ok {
		return
	}
	item, ok := h.lookupItem(w, r)
	if !ok {
		return
	}
	rec, found := s.Answer(item.Key)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not answered yet"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Results recomputes the full score set from the current answer store.
func (h *AssessmentHandler) Results(w http.ResponseWriter, r *http.Request) {
	s, ok := lookupSession(w, r, h.sessions)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.scorer.Compute(h.catalog, s.Answers()))
}

// Findings returns the non-conformity notes grouped by category and item.
func (h *AssessmentHandler) Findings(w http.ResponseWriter, r *http.Request) {
	s, ok := lookupSession(w, r, h.sessions)
	if !ok {
		return
	}
	findings := scoring.Findings(h.catalog, s.Answers())
	if findings == nil {
		findings = []scoring.CategoryFindings{}
	}
	writeJSON(w, http.StatusOK, findings)
}

// Export renders the report artifact and writes it to the configured
// directory. Exporting before any item was answered is rejected.
func (h *AssessmentHandler) Export(w http.ResponseWriter, r *http.Request) {
	s, ok := lookupSession(w, r, h.sessions)
	if !ok {
		return
	}

	answers := s.Answers()
	if len(answers) == 0 {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "no items answered yet"})
		return
	}

	data := report.Data{
		Organization: s.Organization,
		Evaluator:    s.Evaluator,
		Date:         time.Now(),
		Scores:       h.scorer.Compute(h.catalog, answers),
		Findings:     scoring.Findings(h.catalog, answers),
	}
	path, err := h.reports.Export(h.reportDir, data)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	filename := report.Filename(s.Organization, data.Date)
	if h.events != nil {
		_ = h.events.Publish(events.SubjectReportExported(s.ID.String()), events.ReportExportedEvent{
			SessionID:   s.ID.String(),
			Filename:    filename,
			GlobalScore: data.Scores.Global,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"filename":     filename,
		"path":         path,
		"global_score": data.Scores.Global,
	})
}

func (h *AssessmentHandler) lookupItem(w http.ResponseWriter, r *http.Request) (catalog.Item, bool) {
	item, ok := h.catalog.Item(chi.URLParam(r, "key"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown catalog item"})
		return catalog.Item{}, false
	}
	return item, true
}
