// Package model defines the core domain models used throughout the application.
package model

import "time"

// EmailMessage is the raw content of one job-related email, as handed to the
// parser by the mail import path or manual entry.
type EmailMessage struct {
	Subject string `json:"subject"`
	Sender  string `json:"sender"`
	Body    string `json:"body"`
}

// Cooldown describes a reapplication waiting period mentioned in an email,
// e.g. "cooling-off period of 6 months".
type Cooldown struct {
	Unit     string `json:"unit"`
	Duration int    `json:"duration"`
}

// ParseResult is the structured output of classifying one email.
// RulesUsed records the identifier of every extraction rule that fired, in
// evaluation order; the feedback loop uses it to find which rules to adjust.
type ParseResult struct {
	Company    string    `json:"company,omitempty"`
	Role       string    `json:"role,omitempty"`
	Status     string    `json:"status"`
	JobID      string    `json:"jobId,omitempty"`
	Source     string    `json:"source"`
	Dates      []string  `json:"dates,omitempty"`
	Cooldown   *Cooldown `json:"cooldown,omitempty"`
	RulesUsed  []string  `json:"patternsUsed"`
	Confidence int       `json:"confidence"`
}

// Corrections holds user-supplied replacement values attached to a feedback
// verdict. Empty fields mean "no correction for this field".
type Corrections struct {
	Company string `json:"company,omitempty"`
	Role    string `json:"role,omitempty"`
	Status  string `json:"status,omitempty"`
}

// Correction is the reviewed verdict stored alongside a parsed email record.
type Correction struct {
	Company   string `json:"company,omitempty"`
	Role      string `json:"role,omitempty"`
	Status    string `json:"status,omitempty"`
	IsCorrect bool   `json:"isCorrect"`
}

// ParsedEmailRecord is the audit record persisted for every parse: the raw
// content snapshot, the result, and any later user correction.
type ParsedEmailRecord struct {
	CreatedAt   time.Time
	Correction  *Correction
	EmailID     string
	Subject     string
	Sender      string
	BodySnippet string
	Result      ParseResult
	ID          int64
}
