package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/sitescout/sitescout"
)

// Compile-time interface verification.
var _ sitescout.RecordStore = (*RecordService)(nil)

// RecordService implements sitescout.RecordStore using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// RequestHash returns a stable hash of a (domain, query, format) triple.
// It lets repeated questions be found without comparing full query text.
func RequestHash(domain, query string, format sitescout.OutputFormat) string {
	h := xxhash.Sum64String(domain + "\x00" + query + "\x00" + string(format))
	return fmt.Sprintf("%x", h)
}

// CreateRecord persists a record, assigning its ID and timestamp.
func (s *RecordService) CreateRecord(ctx context.Context, rec *sitescout.BatchRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (id, batch_id, domain, query, format, answer, confidence,
			evidence, found, section, err_code, err_message, elapsed_ms, request_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.BatchID, rec.Domain, rec.Query, string(rec.Format), rec.Answer, rec.Confidence,
		rec.Evidence, rec.Found, rec.Section, rec.ErrCode, rec.ErrMessage,
		rec.Elapsed.Milliseconds(), RequestHash(rec.Domain, rec.Query, rec.Format),
		rec.CreatedAt.Format(time.RFC3339))

	return err
}

// FindRecordsByBatch retrieves all records for a batch in insertion order.
func (s *RecordService) FindRecordsByBatch(ctx context.Context, batchID string) ([]*sitescout.BatchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, batch_id, domain, query, format, answer, confidence,
			evidence, found, section, err_code, err_message, elapsed_ms, created_at
		FROM records
		WHERE batch_id = ?
		ORDER BY rowid
	`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*sitescout.BatchRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// FindRecordsByRequest retrieves prior answers to the exact same question,
// most recent first.
func (s *RecordService) FindRecordsByRequest(ctx context.Context, req sitescout.Request) ([]*sitescout.BatchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, batch_id, domain, query, format, answer, confidence,
			evidence, found, section, err_code, err_message, elapsed_ms, created_at
		FROM records
		WHERE request_hash = ?
		ORDER BY rowid DESC
	`, RequestHash(req.Domain, req.Query, req.Format))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*sitescout.BatchRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// scanRecord scans one row into a BatchRecord.
func scanRecord(scan func(dest ...any) error) (*sitescout.BatchRecord, error) {
	var rec sitescout.BatchRecord
	var format string
	var elapsedMS int64
	var createdAt string

	if err := scan(&rec.ID, &rec.BatchID, &rec.Domain, &rec.Query, &format, &rec.Answer,
		&rec.Confidence, &rec.Evidence, &rec.Found, &rec.Section, &rec.ErrCode,
		&rec.ErrMessage, &elapsedMS, &createdAt); err != nil {
		return nil, err
	}

	rec.Format = sitescout.OutputFormat(format)
	rec.Elapsed = time.Duration(elapsedMS) * time.Millisecond

	var err error
	rec.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
