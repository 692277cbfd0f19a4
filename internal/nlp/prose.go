// Package nlp provides the prose-backed named-entity recognizer used by the
// company extractor's fallback strategy.
package nlp

import (
	"log/slog"

	"github.com/jdkato/prose/v2"
)

// ProseRecognizer extracts named entities with prose's statistical NER model.
type ProseRecognizer struct{}

// NewProseRecognizer creates a recognizer. The model is loaded lazily by
// prose on first use.
func NewProseRecognizer() *ProseRecognizer {
	return &ProseRecognizer{}
}

// Entities returns non-person named entities found in text, in document
// order. Person names are dropped: a recruiter's signature is never the
// company. A recognizer failure is not an extraction failure; it returns
// no candidates and the caller falls through to "no company found".
func (r *ProseRecognizer) Entities(text string) []string {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		slog.Warn("entity recognition failed", "error", err)
		return nil
	}

	var names []string
	for _, entity := range doc.Entities() {
		if entity.Label == "PERSON" {
			continue
		}
		names = append(names, entity.Text)
	}
	return names
}
