package model

import "time"

// Application statuses produced by the parser's status detector. These are
// also the category names expected in the pattern library's status section.
const (
	StatusApplied    = "Applied"
	StatusAssessment = "Assessment"
	StatusInterview  = "Interview"
	StatusOffer      = "Offer"
	StatusReject     = "Reject"
)

// Source channel constants. SourceDirect is the default when no channel
// keyword matches.
const (
	SourceLinkedIn = "linkedin"
	SourceIndeed   = "indeed"
	SourceNaukri   = "naukri"
	SourceReferral = "referral"
	SourceDirect   = "direct"
)

// Application is a tracked job application, derived from parsed emails.
// One application exists per company; subsequent emails from the same
// company move its status and refresh role/source details.
type Application struct {
	AppliedAt time.Time
	UpdatedAt time.Time
	Company   string
	Role      string
	Status    string
	JobID     string
	Source    string
	ID        int64
}
