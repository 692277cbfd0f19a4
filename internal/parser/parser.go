package parser

import (
	"math"
	"strings"

	"github.com/jobtrail/jobtrail/internal/model"
	"github.com/jobtrail/jobtrail/internal/patternstore"
)

// Parser runs all field extractors over one email and aggregates their
// results into a ParseResult. It is read-only with respect to the pattern
// store: nothing a parse does changes rule state.
type Parser struct {
	store      *patternstore.Store
	recognizer EntityRecognizer
}

// New creates a parser over the given store. recognizer may be nil, which
// disables the company extractor's named-entity fallback.
func New(store *patternstore.Store, recognizer EntityRecognizer) *Parser {
	return &Parser{
		store:      store,
		recognizer: recognizer,
	}
}

// fieldResult is one extractor's answer for a single field.
type fieldResult struct {
	value      string
	confidence int
}

// ParseEmail classifies one email. The returned result is always usable:
// an email that matches nothing still gets the default status with zero
// confidence rather than an error. The only error condition is an
// unavailable pattern store.
func (p *Parser) ParseEmail(subject, sender, body string) (model.ParseResult, error) {
	library, err := p.store.Load()
	if err != nil {
		return model.ParseResult{}, err
	}

	used := make([]string, 0, 4)
	fullText := strings.ToLower(subject + " " + body)

	company := p.extractCompany(sender, body, library, &used)
	role := p.extractRole(subject, body, library, &used)
	status, statusConfidence := detectStatus(fullText, library, &used)

	jobID := extractJobID(subject, body, &used)
	dates := extractDates(body)
	cooldown := extractCooldown(body)
	source := detectSource(sender, body)

	return model.ParseResult{
		Company:    company.value,
		Role:       role.value,
		Status:     status,
		JobID:      jobID,
		Dates:      dates,
		Cooldown:   cooldown,
		Source:     source,
		Confidence: overallConfidence(company.confidence, role.confidence, statusConfidence),
		RulesUsed:  used,
	}, nil
}

// overallConfidence averages the field confidences that carry information.
// A field whose extractor did not fire contributes nothing to the mean: no
// match is "no information", not "negative information".
func overallConfidence(confidences ...int) int {
	sum, factors := 0, 0
	for _, c := range confidences {
		if c > 0 {
			sum += c
			factors++
		}
	}
	if factors == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(factors)))
}
