package events

import "time"

type SessionCreatedEvent struct {
	SessionID    string    `json:"session_id"`
	Organization string    `json:"organization"`
	Evaluator    string    `json:"evaluator"`
	TotalItems   int       `json:"total_items"`
	CreatedAt    time.Time `json:"created_at"`
}

type ItemSavedEvent struct {
	SessionID string `json:"session_id"`
	Item      string `json:"item"`
	Category  string `json:"category"`
	Scenario  int    `json:"scenario"`
	Answered  int    `json:"answered"`
	Total     int    `json:"total"`
}

type SessionEndedEvent struct {
	SessionID string `json:"session_id"`
	Answered  int    `json:"answered"`
}

type ReportExportedEvent struct {
	SessionID   string  `json:"session_id"`
	Filename    string  `json:"filename"`
	GlobalScore float64 `json:"global_score"`
}
