package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jobtrail/jobtrail/internal/model"
)

// Fixed confidences for the non-learned company strategies. The domain table
// is curated by hand and near-certain; a non-generic sender domain is a
// strong hint; a named-entity guess is a last resort.
const (
	domainMatchConfidence   = 95
	genericDomainConfidence = 80
	nlpFallbackConfidence   = 60

	// Entity candidates at or below this length are too ambiguous to trust.
	minEntityLength = 3
)

// senderDomainPattern pulls the domain out of a From header, whether bare
// ("careers@google.com") or display-name form ("Google <careers@google.com>").
var senderDomainPattern = regexp.MustCompile(`@([a-zA-Z0-9\-]+\.[a-zA-Z]+)`)

// genericDomains are free mail providers that never identify an employer.
var genericDomains = map[string]bool{
	"gmail.com":   true,
	"yahoo.com":   true,
	"outlook.com": true,
	"hotmail.com": true,
}

// genericEntityTerms are entity candidates that name a function, not a company.
var genericEntityTerms = map[string]bool{
	"team":       true,
	"recruiting": true,
	"careers":    true,
	"talent":     true,
	"hiring":     true,
}

// extractCompany tries each company strategy in order until one yields a
// definite result: domain table, non-generic domain, stored body regexes,
// then named-entity fallback.
func (p *Parser) extractCompany(sender, body string, library *model.PatternLibrary, used *[]string) fieldResult {
	if m := senderDomainPattern.FindStringSubmatch(sender); m != nil {
		domain := strings.ToLower(m[1])

		if name, ok := library.Company.DomainToCompany[domain]; ok {
			*used = append(*used, "company_domain_"+domain)
			return fieldResult{value: name, confidence: domainMatchConfidence}
		}

		if !genericDomains[domain] {
			label, _, _ := strings.Cut(domain, ".")
			name := cases.Title(language.English).String(label)
			*used = append(*used, "company_domain_generic")
			return fieldResult{value: name, confidence: genericDomainConfidence}
		}
	}

	for _, rule := range library.Company.Patterns {
		re, ok := p.store.Pattern(rule.Regex)
		if !ok {
			// Rule failed to compile at load time; treated as a non-match.
			continue
		}
		if m := re.FindStringSubmatch(body); len(m) > 1 && m[1] != "" {
			*used = append(*used, "company_pattern_"+rule.Regex)
			return fieldResult{value: strings.TrimSpace(m[1]), confidence: rule.Confidence}
		}
	}

	if p.recognizer != nil {
		for _, entity := range p.recognizer.Entities(body) {
			name := strings.TrimSpace(entity)
			if len(name) <= minEntityLength || genericEntityTerms[strings.ToLower(name)] {
				continue
			}
			*used = append(*used, "company_nlp_fallback")
			return fieldResult{value: name, confidence: nlpFallbackConfidence}
		}
	}

	return fieldResult{}
}
