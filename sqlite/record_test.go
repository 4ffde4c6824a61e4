package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/sitescout/sitescout"
	"github.com/sitescout/sitescout/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordService_CreateRecord(t *testing.T) {
	t.Parallel()

	t.Run("creates record with generated ID and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)

		rec := &sitescout.BatchRecord{
			BatchID:    "batch-1",
			Domain:     "acme.com",
			Query:      "Is the company SOC 2 certified?",
			Format:     sitescout.FormatBoolean,
			Answer:     sitescout.AnswerYes,
			Confidence: "high",
			Evidence:   "SOC 2 Type II certified",
			Found:      true,
			Section:    sitescout.SectionSecurity,
			Elapsed:    1200 * time.Millisecond,
		}

		err := svc.CreateRecord(context.Background(), rec)
		require.NoError(t, err)

		assert.NotEmpty(t, rec.ID, "ID should be generated")
		assert.False(t, rec.CreatedAt.IsZero(), "CreatedAt should be set")
	})

	t.Run("returns error for invalid record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)

		rec := &sitescout.BatchRecord{} // missing required fields

		err := svc.CreateRecord(context.Background(), rec)
		require.Error(t, err)
		assert.Equal(t, sitescout.EINVALID, sitescout.ErrorCode(err))
	})

	t.Run("persists failed requests with their error", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		rec := sitescout.NewBatchRecord("batch-1", sitescout.ResultRecord{
			Request: sitescout.Request{Domain: "down.example", Query: "q"},
			Err:     sitescout.Errorf(sitescout.EFETCH, "connection refused"),
		})
		require.NoError(t, svc.CreateRecord(ctx, rec))

		found, err := svc.FindRecordsByBatch(ctx, "batch-1")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, sitescout.EFETCH, found[0].ErrCode)
		assert.Equal(t, "connection refused", found[0].ErrMessage)
		assert.Empty(t, found[0].Answer)
	})
}

func TestRecordService_FindRecordsByBatch(t *testing.T) {
	t.Parallel()

	t.Run("returns records in insertion order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		for _, domain := range []string{"a.com", "b.com", "c.com"} {
			rec := &sitescout.BatchRecord{
				BatchID: "batch-1",
				Domain:  domain,
				Query:   "q",
				Answer:  "ok",
			}
			require.NoError(t, svc.CreateRecord(ctx, rec))
		}

		found, err := svc.FindRecordsByBatch(ctx, "batch-1")
		require.NoError(t, err)
		require.Len(t, found, 3)
		assert.Equal(t, "a.com", found[0].Domain)
		assert.Equal(t, "b.com", found[1].Domain)
		assert.Equal(t, "c.com", found[2].Domain)
	})

	t.Run("ignores other batches", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateRecord(ctx, &sitescout.BatchRecord{
			BatchID: "batch-1", Domain: "a.com", Query: "q",
		}))
		require.NoError(t, svc.CreateRecord(ctx, &sitescout.BatchRecord{
			BatchID: "batch-2", Domain: "b.com", Query: "q",
		}))

		found, err := svc.FindRecordsByBatch(ctx, "batch-2")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "b.com", found[0].Domain)
	})

	t.Run("unknown batch yields no records", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)

		found, err := svc.FindRecordsByBatch(context.Background(), "missing")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestRecordService_FindRecordsByRequest(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewRecordService(db)
	ctx := context.Background()

	req := sitescout.Request{Domain: "acme.com", Query: "Where is the HQ?", Format: sitescout.FormatText}
	require.NoError(t, svc.CreateRecord(ctx, &sitescout.BatchRecord{
		BatchID: "batch-1", Domain: req.Domain, Query: req.Query, Format: req.Format, Answer: "Berlin",
	}))
	require.NoError(t, svc.CreateRecord(ctx, &sitescout.BatchRecord{
		BatchID: "batch-1", Domain: req.Domain, Query: "Different question", Format: req.Format,
	}))

	found, err := svc.FindRecordsByRequest(ctx, req)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Berlin", found[0].Answer)
}

func TestRequestHash(t *testing.T) {
	t.Parallel()

	h1 := sqlite.RequestHash("acme.com", "q", sitescout.FormatText)
	h2 := sqlite.RequestHash("acme.com", "q", sitescout.FormatText)
	assert.Equal(t, h1, h2, "hash must be stable")

	assert.NotEqual(t, h1, sqlite.RequestHash("other.com", "q", sitescout.FormatText))
	assert.NotEqual(t, h1, sqlite.RequestHash("acme.com", "q2", sitescout.FormatText))
	assert.NotEqual(t, h1, sqlite.RequestHash("acme.com", "q", sitescout.FormatBoolean))
}
