package dto

import (
	"time"

	"golang-trading-journal/internal/metrics"

	"github.com/google/uuid"
)

// JournalGoalDTO is one checklist item of a daily journal.
type JournalGoalDTO struct {
	Text string `json:"text" validate:"required,max=200"`
	Done bool   `json:"done"`
}

// JournalRequest is the DTO for writing the journal of one day.
type JournalRequest struct {
	PreMarketNotes   string           `json:"pre_market_notes"`
	PostMarketNotes  string           `json:"post_market_notes"`
	Lessons          string           `json:"lessons"`
	MoodRating       *int             `json:"mood_rating" validate:"omitempty,min=1,max=5"`
	FocusRating      *int             `json:"focus_rating" validate:"omitempty,min=1,max=5"`
	DisciplineRating *int             `json:"discipline_rating" validate:"omitempty,min=1,max=5"`
	Goals            []JournalGoalDTO `json:"goals" validate:"max=20,dive"`
}

// JournalResponse carries a journal entry with the day's trading result.
type JournalResponse struct {
	ID               *uuid.UUID        `json:"id" swaggertype:"string" format:"uuid"`
	Date             string            `json:"date"`
	PreMarketNotes   string            `json:"pre_market_notes"`
	PostMarketNotes  string            `json:"post_market_notes"`
	Lessons          string            `json:"lessons"`
	MoodRating       *int              `json:"mood_rating"`
	FocusRating      *int              `json:"focus_rating"`
	DisciplineRating *int              `json:"discipline_rating"`
	Goals            []JournalGoalDTO  `json:"goals"`
	Day              metrics.DayResult `json:"day"`
	UpdatedAt        *time.Time        `json:"updated_at"`
}

// RuleRequest is the DTO for creating or updating a trading rule.
type RuleRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// RuleResponse is the DTO for a trading rule.
type RuleResponse struct {
	ID          uuid.UUID `json:"id" swaggertype:"string" format:"uuid"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// RuleCheckRequest records whether a rule was followed on a date (YYYY-MM-DD, defaults to today).
type RuleCheckRequest struct {
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Followed bool   `json:"followed"`
}

// RuleAdherence is the adherence of one rule over a date range.
type RuleAdherence struct {
	RuleID   uuid.UUID `json:"rule_id" swaggertype:"string" format:"uuid"`
	Title    string    `json:"title"`
	Checks   int       `json:"checks"`
	Followed int       `json:"followed"`
	Percent  float64   `json:"percent"`
}

// AdherenceResponse is the rule adherence report.
type AdherenceResponse struct {
	From     string          `json:"from"`
	To       string          `json:"to"`
	Checks   int             `json:"checks"`
	Followed int             `json:"followed"`
	Percent  float64         `json:"percent"`
	Rules    []RuleAdherence `json:"rules"`
}
