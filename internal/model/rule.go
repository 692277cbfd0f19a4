package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RuleKind identifies which rule list an extraction rule belongs to.
type RuleKind string

// Rule kind constants.
const (
	RuleKindCompany RuleKind = "company"
	RuleKindRole    RuleKind = "role"
)

// ExtractionRule is one regex rule for extracting a company or role value.
// The regex source text is the rule's identity: two rules with the same
// expression string are the same rule, and feedback addresses rules by it.
type ExtractionRule struct {
	Regex        string `json:"regex"`
	Confidence   int    `json:"confidence"`
	SuccessCount int    `json:"successCount"`
	FailCount    int    `json:"failCount"`
}

// StatusRule is a named application-status category with its trigger keywords
// and vote weight.
type StatusRule struct {
	Name     string   `json:"-"`
	Keywords []string `json:"keywords"`
	Weight   int      `json:"weight"`
}

// CompanyRules holds the ordered company extraction rules plus the
// sender-domain shortcut table.
type CompanyRules struct {
	DomainToCompany map[string]string `json:"domainToCompany"`
	Patterns        []ExtractionRule  `json:"patterns"`
}

// RoleRules holds the ordered role extraction rules.
type RoleRules struct {
	Patterns []ExtractionRule `json:"patterns"`
}

// PatternLibrary is the full rule set persisted as one JSON document with
// top-level keys "company", "role" and "status". Rule order within each
// pattern list is significant: rules are tried in sequence and the first
// match wins.
type PatternLibrary struct {
	Company CompanyRules `json:"company"`
	Role    RoleRules    `json:"role"`
	Status  StatusSet    `json:"status"`
}

// Rules returns the rule list for the given kind, or nil for an unknown kind.
func (l *PatternLibrary) Rules(kind RuleKind) []ExtractionRule {
	switch kind {
	case RuleKindCompany:
		return l.Company.Patterns
	case RuleKindRole:
		return l.Role.Patterns
	}
	return nil
}

// FindRule locates a rule by its regex text within the given kind's list.
func (l *PatternLibrary) FindRule(kind RuleKind, regex string) *ExtractionRule {
	var patterns []ExtractionRule
	switch kind {
	case RuleKindCompany:
		patterns = l.Company.Patterns
	case RuleKindRole:
		patterns = l.Role.Patterns
	default:
		return nil
	}
	for i := range patterns {
		if patterns[i].Regex == regex {
			return &patterns[i]
		}
	}
	return nil
}

// Validate checks the library for the structural problems a hand-edited
// pattern file can introduce. It does not compile regexes; invalid
// expressions are a recoverable per-rule condition handled at load time.
func (l *PatternLibrary) Validate() error {
	for i, p := range l.Company.Patterns {
		if p.Regex == "" {
			return fmt.Errorf("company pattern %d has an empty regex", i)
		}
	}
	for i, p := range l.Role.Patterns {
		if p.Regex == "" {
			return fmt.Errorf("role pattern %d has an empty regex", i)
		}
	}
	if l.Status.Len() == 0 {
		return fmt.Errorf("status section is empty")
	}
	for _, s := range l.Status.Rules() {
		if s.Weight <= 0 {
			return fmt.Errorf("status %q has non-positive weight %d", s.Name, s.Weight)
		}
		if len(s.Keywords) == 0 {
			return fmt.Errorf("status %q has no keywords", s.Name)
		}
	}
	return nil
}

// StatusSet is an ordered collection of status rules. The JSON document's key
// order is preserved across load/save because status detection breaks score
// ties by first-seen category.
type StatusSet struct {
	rules []StatusRule
}

// NewStatusSet builds a set from rules in the given order.
func NewStatusSet(rules ...StatusRule) StatusSet {
	return StatusSet{rules: rules}
}

// Rules returns the status rules in document order.
func (s *StatusSet) Rules() []StatusRule {
	return s.rules
}

// Get returns the rule for the named status.
func (s *StatusSet) Get(name string) (StatusRule, bool) {
	for _, r := range s.rules {
		if r.Name == name {
			return r, true
		}
	}
	return StatusRule{}, false
}

// Len returns the number of status categories.
func (s *StatusSet) Len() int {
	return len(s.rules)
}

// UnmarshalJSON decodes a JSON object into the set, keeping key order.
func (s *StatusSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read status section: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("status section must be a JSON object, got %v", tok)
	}

	s.rules = s.rules[:0]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read status name: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("status name must be a string, got %v", keyTok)
		}

		var rule StatusRule
		if err := dec.Decode(&rule); err != nil {
			return fmt.Errorf("failed to decode status %q: %w", name, err)
		}
		rule.Name = name
		s.rules = append(s.rules, rule)
	}

	// Consume the closing brace
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read end of status section: %w", err)
	}

	return nil
}

// MarshalJSON encodes the set as a JSON object in document order.
func (s StatusSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rule := range s.rules {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(rule.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal status name %q: %w", rule.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		body, err := json.Marshal(rule)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal status %q: %w", rule.Name, err)
		}
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
