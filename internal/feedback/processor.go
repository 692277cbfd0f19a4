// Package feedback applies user verdicts on parse results back onto the
// pattern store's rule statistics.
package feedback

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jobtrail/jobtrail/internal/model"
	"github.com/jobtrail/jobtrail/internal/patternstore"
)

// Trace prefixes that identify reinforceable regex rules. Every other trace
// kind (domain lookups, the generic-domain heuristic, status keywords, the
// NLP fallback, job-ID matches) carries a fixed confidence and is
// deliberately left out of the learning loop.
const (
	companyPatternPrefix = "company_pattern_"
	roleSubjectPrefix    = "role_subject_"
	roleBodyPrefix       = "role_body_"
)

// Processor routes feedback verdicts to the pattern store.
type Processor struct {
	store *patternstore.Store
}

// New creates a feedback processor over the given store.
func New(store *patternstore.Store) *Processor {
	return &Processor{store: store}
}

// Apply reinforces or penalizes every regex rule that contributed to the
// given result. Rule IDs that no longer resolve to a stored rule are
// silently skipped; a store that cannot be loaded at all fails loudly,
// because silently dropping a deliberate user correction is worse than an
// explicit error. Corrections ride along for audit only; they do not feed
// back into rule weights or generate new rules.
func (p *Processor) Apply(result model.ParseResult, isCorrect bool, corrections *model.Corrections) error {
	if _, err := p.store.Load(); err != nil {
		return fmt.Errorf("cannot apply feedback: %w", err)
	}

	for _, ruleID := range result.RulesUsed {
		var kind model.RuleKind
		var regex string

		switch {
		case strings.HasPrefix(ruleID, companyPatternPrefix):
			kind, regex = model.RuleKindCompany, strings.TrimPrefix(ruleID, companyPatternPrefix)
		case strings.HasPrefix(ruleID, roleSubjectPrefix):
			kind, regex = model.RuleKindRole, strings.TrimPrefix(ruleID, roleSubjectPrefix)
		case strings.HasPrefix(ruleID, roleBodyPrefix):
			kind, regex = model.RuleKindRole, strings.TrimPrefix(ruleID, roleBodyPrefix)
		default:
			continue
		}

		if err := p.store.RecordOutcome(kind, regex, isCorrect); err != nil {
			return fmt.Errorf("failed to record outcome for %q: %w", ruleID, err)
		}
	}

	if corrections != nil {
		slog.Debug("user corrections received",
			"company", corrections.Company,
			"role", corrections.Role,
			"status", corrections.Status)
	}

	return nil
}
