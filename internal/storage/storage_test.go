package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrail/jobtrail/internal/common"
	"github.com/jobtrail/jobtrail/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	storage, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	require.NoError(t, storage.Migrate(context.Background()))
	return storage
}

func sampleRecord() *model.ParsedEmailRecord {
	return &model.ParsedEmailRecord{
		EmailID:     "msg-001",
		Subject:     "Offer Letter - Software Engineer",
		Sender:      "recruiting@amazon.com",
		BodySnippet: "Congratulations! We are pleased to offer you...",
		Result: model.ParseResult{
			Company:    "Amazon",
			Role:       "Software Engineer",
			Status:     model.StatusOffer,
			JobID:      "88421",
			Source:     model.SourceDirect,
			Dates:      []string{"2025-12-12"},
			Cooldown:   &model.Cooldown{Duration: 6, Unit: "months"},
			Confidence: 88,
			RulesUsed:  []string{"company_domain_amazon.com", "status_keywords_Offer"},
		},
	}
}

func TestMigrate_IsIdempotent(t *testing.T) {
	storage := newTestStorage(t)

	// A second run finds nothing pending.
	require.NoError(t, storage.Migrate(context.Background()))
}

func TestSaveAndGetParsedEmail(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	record := sampleRecord()
	require.NoError(t, storage.SaveParsedEmail(ctx, record))
	require.NotZero(t, record.ID)

	got, err := storage.GetParsedEmail(ctx, record.ID)
	require.NoError(t, err)

	assert.Equal(t, record.EmailID, got.EmailID)
	assert.Equal(t, record.Subject, got.Subject)
	assert.Equal(t, record.Sender, got.Sender)
	assert.Equal(t, record.Result.Company, got.Result.Company)
	assert.Equal(t, record.Result.Role, got.Result.Role)
	assert.Equal(t, record.Result.Status, got.Result.Status)
	assert.Equal(t, record.Result.JobID, got.Result.JobID)
	assert.Equal(t, record.Result.Confidence, got.Result.Confidence)
	assert.Equal(t, record.Result.RulesUsed, got.Result.RulesUsed)
	assert.Equal(t, record.Result.Dates, got.Result.Dates)
	require.NotNil(t, got.Result.Cooldown)
	assert.Equal(t, *record.Result.Cooldown, *got.Result.Cooldown)
	assert.Nil(t, got.Correction)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSaveParsedEmail_OptionalFieldsAbsent(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	record := &model.ParsedEmailRecord{
		Subject: "Hello",
		Sender:  "friend@gmail.com",
		Result: model.ParseResult{
			Status:    model.StatusApplied,
			Source:    model.SourceDirect,
			RulesUsed: []string{},
		},
	}
	require.NoError(t, storage.SaveParsedEmail(ctx, record))

	got, err := storage.GetParsedEmail(ctx, record.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Result.Company)
	assert.Empty(t, got.Result.JobID)
	assert.Nil(t, got.Result.Dates)
	assert.Nil(t, got.Result.Cooldown)
}

func TestSaveParsedEmail_RejectsInvalidRecords(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	require.Error(t, storage.SaveParsedEmail(ctx, nil))

	record := sampleRecord()
	record.Subject = "  "
	require.Error(t, storage.SaveParsedEmail(ctx, record))

	record = sampleRecord()
	record.Result.Status = ""
	require.Error(t, storage.SaveParsedEmail(ctx, record))
}

func TestGetParsedEmail_NotFound(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.GetParsedEmail(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestListParsedEmails_MostRecentFirst(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		record := sampleRecord()
		record.EmailID = ""
		require.NoError(t, storage.SaveParsedEmail(ctx, record))
		ids = append(ids, record.ID)
	}

	records, err := storage.ListParsedEmails(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, ids[2], records[0].ID)
	assert.Equal(t, ids[1], records[1].ID)
}

func TestSaveCorrection(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	record := sampleRecord()
	require.NoError(t, storage.SaveParsedEmail(ctx, record))

	correction := model.Correction{
		IsCorrect: false,
		Company:   "Amazon Web Services",
		Status:    model.StatusInterview,
	}
	require.NoError(t, storage.SaveCorrection(ctx, record.ID, correction))

	got, err := storage.GetParsedEmail(ctx, record.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Correction)
	assert.False(t, got.Correction.IsCorrect)
	assert.Equal(t, "Amazon Web Services", got.Correction.Company)
	assert.Empty(t, got.Correction.Role)
	assert.Equal(t, model.StatusInterview, got.Correction.Status)
}

func TestSaveCorrection_NotFound(t *testing.T) {
	storage := newTestStorage(t)

	err := storage.SaveCorrection(context.Background(), 9999, model.Correction{IsCorrect: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestUpsertApplication_CreateThenUpdate(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	created, err := storage.UpsertApplication(ctx, model.ParseResult{
		Company: "Initech",
		Status:  model.StatusApplied,
		Source:  model.SourceDirect,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusApplied, created.Status)
	assert.Empty(t, created.Role)

	// A later email from the same company, different case: same row, status
	// moves, missing role gets filled.
	updated, err := storage.UpsertApplication(ctx, model.ParseResult{
		Company: "INITECH",
		Role:    "Backend Developer",
		Status:  model.StatusInterview,
		Source:  model.SourceLinkedIn,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, model.StatusInterview, updated.Status)
	assert.Equal(t, "Backend Developer", updated.Role)
	assert.Equal(t, model.SourceLinkedIn, updated.Source)

	// An already-known role is not overwritten by a new parse.
	updated, err = storage.UpsertApplication(ctx, model.ParseResult{
		Company: "Initech",
		Role:    "Some Other Role",
		Status:  model.StatusOffer,
		Source:  model.SourceLinkedIn,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Backend Developer", updated.Role)
	assert.Equal(t, model.StatusOffer, updated.Status)

	apps, err := storage.ListApplications(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 1)
}

func TestUpsertApplication_RequiresCompany(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.UpsertApplication(context.Background(), model.ParseResult{
		Status: model.StatusApplied,
		Source: model.SourceDirect,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyString))
}

func TestGetApplicationByCompany_CaseInsensitive(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	_, err := storage.UpsertApplication(ctx, model.ParseResult{
		Company: "Initech",
		Status:  model.StatusApplied,
		Source:  model.SourceDirect,
	})
	require.NoError(t, err)

	app, err := storage.GetApplicationByCompany(ctx, "initech")
	require.NoError(t, err)
	assert.Equal(t, "Initech", app.Company)

	_, err = storage.GetApplicationByCompany(ctx, "Globex")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
