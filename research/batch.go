package research

import (
	"context"
	"sync"

	"github.com/sitescout/sitescout"
	"golang.org/x/sync/errgroup"
)

var _ sitescout.BatchRunner = (*Batch)(nil)

// DefaultConcurrency is the worker pool size when none is configured.
const DefaultConcurrency = 4

// Batch drives the pipeline over many requests with a bounded worker
// pool. Requests are grouped by domain and each domain's requests run
// sequentially in input order, so records for one domain are emitted in
// the order they were asked. Different domains proceed concurrently.
type Batch struct {
	Researcher  sitescout.Researcher
	Concurrency int
}

// Run processes requests and emits one record per request. A failed
// request never stops the batch; its failure travels inside its record.
// When the context ends mid-batch, unstarted requests are emitted as
// ECANCELED records so the caller still receives len(reqs) records.
func (b *Batch) Run(ctx context.Context, reqs []sitescout.Request, emit func(sitescout.ResultRecord)) error {
	if emit == nil {
		return sitescout.Errorf(sitescout.EINVALID, "emit callback required")
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	// Group by domain, preserving first-seen domain order and input order
	// within each domain.
	var domains []string
	byDomain := make(map[string][]sitescout.Request)
	for _, req := range reqs {
		if _, ok := byDomain[req.Domain]; !ok {
			domains = append(domains, req.Domain)
		}
		byDomain[req.Domain] = append(byDomain[req.Domain], req)
	}

	var mu sync.Mutex
	record := func(rec sitescout.ResultRecord) {
		mu.Lock()
		defer mu.Unlock()
		emit(rec)
	}

	g := &errgroup.Group{}
	g.SetLimit(concurrency)

	for _, domain := range domains {
		domainReqs := byDomain[domain]
		g.Go(func() error {
			for i, req := range domainReqs {
				if ctx.Err() != nil {
					cancelRemaining(domainReqs[i:], ctx.Err(), record)
					return nil
				}
				record(b.Researcher.Research(ctx, req))
			}
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return sitescout.Errorf(sitescout.ECANCELED, "batch interrupted: %v", err)
	}
	return nil
}

// cancelRemaining emits an ECANCELED record for each unstarted request.
func cancelRemaining(reqs []sitescout.Request, cause error, record func(sitescout.ResultRecord)) {
	for _, req := range reqs {
		record(sitescout.ResultRecord{
			Request: req,
			Err:     sitescout.Errorf(sitescout.ECANCELED, "batch interrupted: %v", cause),
		})
	}
}
