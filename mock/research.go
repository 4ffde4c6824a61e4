package mock

import (
	"context"

	"github.com/sitescout/sitescout"
)

var _ sitescout.Researcher = (*Researcher)(nil)

// Researcher is a mock implementation of sitescout.Researcher.
type Researcher struct {
	ResearchFn func(ctx context.Context, req sitescout.Request) sitescout.ResultRecord
}

func (r *Researcher) Research(ctx context.Context, req sitescout.Request) sitescout.ResultRecord {
	return r.ResearchFn(ctx, req)
}

var _ sitescout.BatchRunner = (*BatchRunner)(nil)

// BatchRunner is a mock implementation of sitescout.BatchRunner.
type BatchRunner struct {
	RunFn func(ctx context.Context, reqs []sitescout.Request, emit func(sitescout.ResultRecord)) error
}

func (b *BatchRunner) Run(ctx context.Context, reqs []sitescout.Request, emit func(sitescout.ResultRecord)) error {
	return b.RunFn(ctx, reqs, emit)
}

var _ sitescout.CallLimiter = (*CallLimiter)(nil)

// CallLimiter is a mock implementation of sitescout.CallLimiter.
type CallLimiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *CallLimiter) Wait(ctx context.Context) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx)
}

var _ sitescout.RecordStore = (*RecordStore)(nil)

// RecordStore is a mock implementation of sitescout.RecordStore.
type RecordStore struct {
	CreateRecordFn       func(ctx context.Context, rec *sitescout.BatchRecord) error
	FindRecordsByBatchFn func(ctx context.Context, batchID string) ([]*sitescout.BatchRecord, error)
}

func (s *RecordStore) CreateRecord(ctx context.Context, rec *sitescout.BatchRecord) error {
	return s.CreateRecordFn(ctx, rec)
}

func (s *RecordStore) FindRecordsByBatch(ctx context.Context, batchID string) ([]*sitescout.BatchRecord, error) {
	return s.FindRecordsByBatchFn(ctx, batchID)
}
