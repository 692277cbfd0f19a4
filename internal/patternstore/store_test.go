package patternstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrail/jobtrail/internal/common"
	"github.com/jobtrail/jobtrail/internal/model"
)

// writeLibrary marshals a library to a temp pattern document and returns its path.
func writeLibrary(t *testing.T, library *model.PatternLibrary) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "patterns.json")
	data, err := json.MarshalIndent(library, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func testLibrary() *model.PatternLibrary {
	return &model.PatternLibrary{
		Company: model.CompanyRules{
			Patterns: []model.ExtractionRule{
				{Regex: `joining\s+([A-Z][a-z]+)`, Confidence: 75},
			},
			DomainToCompany: map[string]string{"google.com": "Google"},
		},
		Role: model.RoleRules{
			Patterns: []model.ExtractionRule{
				{Regex: `for the\s+(.+?)\s+position`, Confidence: 80},
			},
		},
		Status: model.NewStatusSet(
			model.StatusRule{Name: model.StatusApplied, Keywords: []string{"applying"}, Weight: 10},
		),
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing.json"))

	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrStoreUnavailable))
}

func TestStore_LoadMalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store := New(path)
	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrStoreUnavailable))
}

func TestStore_LoadRejectsInvalidShape(t *testing.T) {
	library := testLibrary()
	library.Status = model.NewStatusSet() // empty status section

	store := New(writeLibrary(t, library))
	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrStoreUnavailable))
}

func TestStore_LoadCachesOnce(t *testing.T) {
	path := writeLibrary(t, testLibrary())
	store := New(path)

	first, err := store.Load()
	require.NoError(t, err)

	// Deleting the backing file must not matter once cached.
	require.NoError(t, os.Remove(path))

	second, err := store.Load()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestStore_RecordOutcome_RewardEveryTenthSuccess(t *testing.T) {
	library := testLibrary()
	regex := library.Company.Patterns[0].Regex
	path := writeLibrary(t, library)
	store := New(path)

	for i := 0; i < 9; i++ {
		require.NoError(t, store.RecordOutcome(model.RuleKindCompany, regex, true))
	}

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 75, loaded.Company.Patterns[0].Confidence)
	assert.Equal(t, 9, loaded.Company.Patterns[0].SuccessCount)

	require.NoError(t, store.RecordOutcome(model.RuleKindCompany, regex, true))
	assert.Equal(t, 80, loaded.Company.Patterns[0].Confidence)
	assert.Equal(t, 10, loaded.Company.Patterns[0].SuccessCount)

	// The mutation is written through: a fresh store sees it.
	reloaded, err := New(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 80, reloaded.Company.Patterns[0].Confidence)
	assert.Equal(t, 10, reloaded.Company.Patterns[0].SuccessCount)
}

func TestStore_RecordOutcome_PenaltyEveryFifthFailure(t *testing.T) {
	library := testLibrary()
	regex := library.Role.Patterns[0].Regex
	store := New(writeLibrary(t, library))

	for i := 0; i < 4; i++ {
		require.NoError(t, store.RecordOutcome(model.RuleKindRole, regex, false))
	}

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 80, loaded.Role.Patterns[0].Confidence)

	require.NoError(t, store.RecordOutcome(model.RuleKindRole, regex, false))
	assert.Equal(t, 70, loaded.Role.Patterns[0].Confidence)
	assert.Equal(t, 5, loaded.Role.Patterns[0].FailCount)
}

func TestStore_RecordOutcome_ConfidenceStaysClamped(t *testing.T) {
	library := testLibrary()
	library.Company.Patterns[0].Confidence = 97
	regex := library.Company.Patterns[0].Regex
	store := New(writeLibrary(t, library))

	// 30 successes would push confidence past the ceiling unclamped.
	for i := 0; i < 30; i++ {
		require.NoError(t, store.RecordOutcome(model.RuleKindCompany, regex, true))
	}

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, ConfidenceCeiling, loaded.Company.Patterns[0].Confidence)

	// 50 failures would push it below the floor unclamped.
	for i := 0; i < 50; i++ {
		require.NoError(t, store.RecordOutcome(model.RuleKindCompany, regex, false))
	}
	assert.Equal(t, ConfidenceFloor, loaded.Company.Patterns[0].Confidence)

	// Counters only ever grow.
	assert.Equal(t, 30, loaded.Company.Patterns[0].SuccessCount)
	assert.Equal(t, 50, loaded.Company.Patterns[0].FailCount)
}

func TestStore_RecordOutcome_UnknownRuleIsNoOp(t *testing.T) {
	library := testLibrary()
	store := New(writeLibrary(t, library))

	require.NoError(t, store.RecordOutcome(model.RuleKindCompany, `never\s+stored`, true))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Company.Patterns[0].SuccessCount)
	assert.Equal(t, 0, loaded.Company.Patterns[0].FailCount)
}

func TestStore_InvalidRegexIsSkippedNotFatal(t *testing.T) {
	library := testLibrary()
	library.Company.Patterns = append([]model.ExtractionRule{
		{Regex: `([unclosed`, Confidence: 90},
	}, library.Company.Patterns...)

	store := New(writeLibrary(t, library))
	_, err := store.Load()
	require.NoError(t, err)

	_, ok := store.Pattern(`([unclosed`)
	assert.False(t, ok)

	re, ok := store.Pattern(`joining\s+([A-Z][a-z]+)`)
	require.True(t, ok)
	assert.True(t, re.MatchString("looking forward to you joining Initech"))
}

func TestStore_InitializeRefusesOverwrite(t *testing.T) {
	path := writeLibrary(t, testLibrary())
	store := New(path)

	err := store.Initialize(DefaultLibrary())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestStore_InitializeSeedsAndRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.json")
	store := New(path)

	require.NoError(t, store.Initialize(DefaultLibrary()))

	loaded, err := New(path).Load()
	require.NoError(t, err)
	assert.NotEmpty(t, loaded.Company.Patterns)
	assert.NotEmpty(t, loaded.Role.Patterns)

	// Status category order survives the disk round trip; detection relies
	// on it for tie-breaking.
	want := make([]string, 0, DefaultLibrary().Status.Len())
	for _, rule := range DefaultLibrary().Status.Rules() {
		want = append(want, rule.Name)
	}
	got := make([]string, 0, loaded.Status.Len())
	for _, rule := range loaded.Status.Rules() {
		got = append(got, rule.Name)
	}
	assert.Equal(t, want, got)
}
