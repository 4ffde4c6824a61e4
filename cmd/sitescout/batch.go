package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/sitescout/sitescout"
	"github.com/sitescout/sitescout/csv"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	format, err := sitescout.ParseFormat(c.Format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitescout.ErrorMessage(err))
		return err
	}

	in, err := os.Open(c.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	companies, err := csv.ReadCompanies(in)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitescout.ErrorMessage(err))
		return err
	}

	reqs := csv.BuildRequests(companies, c.Query, format)
	fmt.Fprintf(deps.Stderr, "Researching %d companies, %d queries each (%d requests)\n",
		len(companies), len(c.Query), len(reqs))

	var mu sync.Mutex
	byDomain := make(map[string][]sitescout.ResultRecord)
	err = deps.Batch.Run(deps.Ctx, reqs, func(rec sitescout.ResultRecord) {
		mu.Lock()
		defer mu.Unlock()
		byDomain[rec.Request.Domain] = append(byDomain[rec.Request.Domain], rec)
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitescout.ErrorMessage(err))
		return err
	}

	out := io.Writer(deps.Stdout)
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	bw, err := csv.NewBatchWriter(out, c.Query)
	if err != nil {
		return err
	}
	for _, company := range companies {
		if err := bw.WriteCompany(company, byDomain[company.Domain]); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	stored, err := c.persist(deps, companies, byDomain)
	if err != nil {
		return err
	}

	if c.JSONOut != "" {
		f, err := os.Create(c.JSONOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := csv.ExportJSON(f, stored); err != nil {
			return err
		}
	}

	return nil
}

// persist flattens records for storage and, when a record store is
// configured, saves them under a fresh batch ID.
func (c *BatchCmd) persist(deps *Dependencies, companies []csv.Company, byDomain map[string][]sitescout.ResultRecord) ([]*sitescout.BatchRecord, error) {
	batchID := uuid.New().String()

	var flat []*sitescout.BatchRecord
	for _, company := range companies {
		for _, rec := range byDomain[company.Domain] {
			flat = append(flat, sitescout.NewBatchRecord(batchID, rec))
		}
	}

	if deps.Records == nil {
		return flat, nil
	}
	for _, rec := range flat {
		if err := deps.Records.CreateRecord(deps.Ctx, rec); err != nil {
			return nil, err
		}
	}
	fmt.Fprintf(deps.Stderr, "Saved %d records under batch %s\n", len(flat), batchID)
	return flat, nil
}
