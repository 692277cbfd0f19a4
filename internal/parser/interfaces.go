// Package parser implements the layered extraction pipeline that classifies
// raw job-related emails into structured application-tracking data.
package parser

// EntityRecognizer extracts organization-like named entities from free text.
// It backs the company extractor's last-resort strategy when neither the
// sender domain nor any stored regex rule yields a company name.
type EntityRecognizer interface {
	// Entities returns candidate entity names in the order they appear.
	Entities(text string) []string
}
