package sitescout

import (
	"context"
	"time"
)

// BatchRecord is a persisted ResultRecord together with its batch identity.
// Persistence is optional; the pipeline functions without a store.
type BatchRecord struct {
	ID         string        `json:"id"`
	BatchID    string        `json:"batchId"`
	Domain     string        `json:"domain"`
	Query      string        `json:"query"`
	Format     OutputFormat  `json:"format"`
	Answer     string        `json:"answer"`
	Confidence string        `json:"confidence"`
	Evidence   string        `json:"evidence"`
	Found      bool          `json:"found"`
	Section    string        `json:"section"`
	ErrCode    string        `json:"errCode"`
	ErrMessage string        `json:"errMessage"`
	Elapsed    time.Duration `json:"elapsed"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *BatchRecord) Validate() error {
	if r.BatchID == "" {
		return Errorf(EINVALID, "record batch ID required")
	}
	if r.Domain == "" {
		return Errorf(EINVALID, "record domain required")
	}
	if r.Query == "" {
		return Errorf(EINVALID, "record query required")
	}
	return nil
}

// NewBatchRecord flattens a ResultRecord for persistence.
func NewBatchRecord(batchID string, rec ResultRecord) *BatchRecord {
	br := &BatchRecord{
		BatchID: batchID,
		Domain:  rec.Request.Domain,
		Query:   rec.Request.Query,
		Format:  rec.Request.Format,
		Section: rec.Section,
		Elapsed: rec.Elapsed,
	}
	if rec.Err != nil {
		br.ErrCode = ErrorCode(rec.Err)
		br.ErrMessage = ErrorMessage(rec.Err)
		return br
	}
	if rec.Result != nil {
		br.Answer = rec.Result.Answer
		br.Confidence = string(rec.Result.Confidence)
		br.Evidence = rec.Result.Evidence
		br.Found = rec.Result.Found
	}
	return br
}

// RecordStore persists batch result records.
type RecordStore interface {
	// CreateRecord persists a record, assigning its ID and timestamp.
	CreateRecord(ctx context.Context, rec *BatchRecord) error

	// FindRecordsByBatch retrieves all records for a batch in insertion
	// order.
	FindRecordsByBatch(ctx context.Context, batchID string) ([]*BatchRecord, error)
}
