package models

import "time"

// Turn is one question/answer exchange recorded in an ActiveSession.
type Turn struct {
	Query     string    `json:"query"`
	CaseHint  string    `json:"case_hint,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ActiveSession binds a conversation to a case so follow-up questions that
// carry no fresh case hint stay scoped to it (spec §4.10 "active case lock").
type ActiveSession struct {
	SessionID   string  `json:"session_id" validate:"required"`
	BoundCaseID *string `json:"bound_case_id,omitempty"`
	History     []Turn  `json:"history,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}
