package parser

import (
	"strings"

	"github.com/jobtrail/jobtrail/internal/model"
)

// bodyMatchPenalty is subtracted from a rule's confidence when it matched the
// body rather than the subject. A role in the subject is almost certainly the
// applied-for role; a role in the body may just be one of several openings
// the sender happens to mention.
const bodyMatchPenalty = 10

// extractRole tries the stored role rules against the subject first, then
// against the body at reduced confidence.
func (p *Parser) extractRole(subject, body string, library *model.PatternLibrary, used *[]string) fieldResult {
	for _, rule := range library.Role.Patterns {
		re, ok := p.store.Pattern(rule.Regex)
		if !ok {
			continue
		}
		if m := re.FindStringSubmatch(subject); len(m) > 1 && m[1] != "" {
			*used = append(*used, "role_subject_"+rule.Regex)
			return fieldResult{value: strings.TrimSpace(m[1]), confidence: rule.Confidence}
		}
	}

	for _, rule := range library.Role.Patterns {
		re, ok := p.store.Pattern(rule.Regex)
		if !ok {
			continue
		}
		if m := re.FindStringSubmatch(body); len(m) > 1 && m[1] != "" {
			*used = append(*used, "role_body_"+rule.Regex)
			return fieldResult{value: strings.TrimSpace(m[1]), confidence: rule.Confidence - bodyMatchPenalty}
		}
	}

	return fieldResult{}
}
