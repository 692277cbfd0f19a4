// Package patternstore owns the pattern library: the persisted extraction
// rules, their learned confidence, and the feedback-driven updates to them.
package patternstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/jobtrail/jobtrail/internal/common"
	"github.com/jobtrail/jobtrail/internal/model"
)

// Confidence adjustment constants. Failures move confidence down twice as
// readily as successes move it up: a single bad extraction misleads the user,
// a slow climb in trust does not.
const (
	successesPerReward = 10
	rewardStep         = 5
	failuresPerPenalty = 5
	penaltyStep        = 10

	// Confidence is clamped to [ConfidenceFloor, ConfidenceCeiling] at all times.
	ConfidenceFloor   = 10
	ConfidenceCeiling = 99
)

// Store owns the PatternLibrary: loaded once from its JSON document, cached
// in memory, and written back in full after every mutation. Mutation and
// save happen under a single writer lock so concurrent feedback cannot lose
// updates.
type Store struct {
	library  *model.PatternLibrary
	compiled map[string]*regexp.Regexp
	path     string
	mu       sync.RWMutex
}

// New creates a store backed by the JSON document at path. Nothing is read
// until Load.
func New(path string) *Store {
	return &Store{path: path}
}

// Load returns the cached library, reading and validating the pattern
// document on first call. A missing or malformed document is a fatal
// condition: the engine must not classify without a valid rule set.
func (s *Store) Load() (*model.PatternLibrary, error) {
	s.mu.RLock()
	if s.library != nil {
		lib := s.library
		s.mu.RUnlock()
		return lib, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// loadLocked reads the pattern document. MUST be called with s.mu held for
// writing.
func (s *Store) loadLocked() (*model.PatternLibrary, error) {
	if s.library != nil {
		return s.library, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", common.ErrStoreUnavailable, s.path, err)
	}

	var library model.PatternLibrary
	if err := json.Unmarshal(data, &library); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", common.ErrStoreUnavailable, s.path, err)
	}

	if err := library.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid pattern document %s: %v", common.ErrStoreUnavailable, s.path, err)
	}

	s.library = &library
	s.compileLocked()

	slog.Info("pattern library loaded",
		"path", s.path,
		"company_rules", len(library.Company.Patterns),
		"role_rules", len(library.Role.Patterns),
		"statuses", library.Status.Len())

	return s.library, nil
}

// compileLocked builds the compiled-regex cache. Rules whose expression does
// not compile are logged and left out; extractors treat them as non-matches.
func (s *Store) compileLocked() {
	s.compiled = make(map[string]*regexp.Regexp,
		len(s.library.Company.Patterns)+len(s.library.Role.Patterns))

	for _, kind := range []model.RuleKind{model.RuleKindCompany, model.RuleKindRole} {
		for _, rule := range s.library.Rules(kind) {
			if _, ok := s.compiled[rule.Regex]; ok {
				continue
			}
			re, err := regexp.Compile("(?i)" + rule.Regex)
			if err != nil {
				slog.Warn("invalid regex in pattern library, rule will never match",
					"kind", string(kind),
					"regex", rule.Regex,
					"error", err)
				continue
			}
			s.compiled[rule.Regex] = re
		}
	}
}

// Pattern returns the compiled, case-insensitive form of a stored rule
// expression. The second return is false when the expression failed to
// compile at load time.
func (s *Store) Pattern(regex string) (*regexp.Regexp, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	re, ok := s.compiled[regex]
	return re, ok
}

// Save persists the full in-memory library, overwriting the prior document.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

// saveLocked writes the library to disk. MUST be called with s.mu held.
func (s *Store) saveLocked() error {
	if s.library == nil {
		return nil
	}

	data, err := json.MarshalIndent(s.library, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pattern library: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}

	return nil
}

// RecordOutcome applies one feedback verdict to a single rule, located by its
// regex text. An unknown rule is a silent no-op: rule sets may change between
// a parse and the feedback on it. Every mutation is written through to disk;
// a failed write is logged and the in-memory update kept.
func (s *Store) RecordOutcome(kind model.RuleKind, regex string, succeeded bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.loadLocked(); err != nil {
		return err
	}

	rule := s.library.FindRule(kind, regex)
	if rule == nil {
		slog.Debug("feedback for unknown rule ignored", "kind", string(kind), "regex", regex)
		return nil
	}

	if succeeded {
		rule.SuccessCount++
		if rule.SuccessCount%successesPerReward == 0 {
			rule.Confidence = min(rule.Confidence+rewardStep, ConfidenceCeiling)
		}
	} else {
		rule.FailCount++
		if rule.FailCount%failuresPerPenalty == 0 {
			rule.Confidence = max(rule.Confidence-penaltyStep, ConfidenceFloor)
		}
	}

	if err := s.saveLocked(); err != nil {
		// The in-memory update stands; the next successful save catches up.
		slog.Error("failed to persist pattern library after feedback",
			"kind", string(kind),
			"regex", regex,
			"error", err)
	}

	return nil
}

// Initialize seeds the store with the given library and persists it.
// It refuses to overwrite an existing pattern document.
func (s *Store) Initialize(library *model.PatternLibrary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("pattern document already exists at %s", s.path)
	}

	if err := library.Validate(); err != nil {
		return fmt.Errorf("refusing to seed invalid library: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("failed to create pattern directory: %w", err)
	}

	s.library = library
	s.compileLocked()

	return s.saveLocked()
}
