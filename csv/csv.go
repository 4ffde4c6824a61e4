// Package csv provides batch input and output in CSV form.
// Input files list companies, one per row; output files carry one row per
// company with answer and confidence columns per query.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/sitescout/sitescout"
)

// Company is one input row: a display name and the domain to research.
type Company struct {
	Name   string
	Domain string
}

// ReadCompanies reads companies from an input CSV. The file must have a
// header row with a "domain" column; the name column may be "company_name"
// or "name" and defaults to the domain when absent.
func ReadCompanies(r io.Reader) ([]Company, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, sitescout.Errorf(sitescout.EINVALID, "empty input file")
	}
	if err != nil {
		return nil, sitescout.Errorf(sitescout.EINVALID, "invalid CSV: %v", err)
	}

	nameIdx, domainIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "company_name", "name":
			if nameIdx < 0 {
				nameIdx = i
			}
		case "domain":
			domainIdx = i
		}
	}
	if domainIdx < 0 {
		return nil, sitescout.Errorf(sitescout.EINVALID, "input CSV must have a domain column")
	}

	var companies []Company
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, sitescout.Errorf(sitescout.EINVALID, "invalid CSV row: %v", err)
		}

		domain := strings.TrimSpace(row[domainIdx])
		if domain == "" {
			continue
		}
		c := Company{Name: domain, Domain: domain}
		if nameIdx >= 0 && nameIdx < len(row) && strings.TrimSpace(row[nameIdx]) != "" {
			c.Name = strings.TrimSpace(row[nameIdx])
		}
		companies = append(companies, c)
	}

	if len(companies) == 0 {
		return nil, sitescout.Errorf(sitescout.EINVALID, "input CSV has no companies")
	}
	return companies, nil
}

// BuildRequests expands companies and queries into the full cross product,
// ordered company by company so that batch output groups cleanly.
func BuildRequests(companies []Company, queries []string, format sitescout.OutputFormat) []sitescout.Request {
	reqs := make([]sitescout.Request, 0, len(companies)*len(queries))
	for _, c := range companies {
		for _, q := range queries {
			reqs = append(reqs, sitescout.Request{
				Domain: c.Domain,
				Query:  q,
				Format: format,
			})
		}
	}
	return reqs
}

// maxQueryColumnLen bounds query text used as a column name.
const maxQueryColumnLen = 50

// queryColumn truncates a query for use as a CSV column name.
func queryColumn(query string) string {
	if len(query) <= maxQueryColumnLen {
		return query
	}
	return query[:maxQueryColumnLen]
}

// BatchWriter writes batch results as a CSV, one row per company. Each
// query contributes an answer column and a confidence column; failed
// requests appear as "ERROR: ..." cells so a partially failed batch still
// yields a complete table.
type BatchWriter struct {
	w       *csv.Writer
	queries []string
}

// NewBatchWriter creates a writer and emits the header row.
func NewBatchWriter(w io.Writer, queries []string) (*BatchWriter, error) {
	bw := &BatchWriter{
		w:       csv.NewWriter(w),
		queries: queries,
	}

	header := []string{"company_name", "domain"}
	for _, q := range queries {
		col := queryColumn(q)
		header = append(header, col, col+"_confidence")
	}
	if err := bw.w.Write(header); err != nil {
		return nil, err
	}
	bw.w.Flush()
	if err := bw.w.Error(); err != nil {
		return nil, err
	}
	return bw, nil
}

// WriteCompany writes one company row from its records. Records are
// matched to query columns by query text; a query with no record yields
// empty cells.
func (bw *BatchWriter) WriteCompany(c Company, records []sitescout.ResultRecord) error {
	byQuery := make(map[string]sitescout.ResultRecord, len(records))
	for _, rec := range records {
		byQuery[rec.Request.Query] = rec
	}

	row := []string{c.Name, c.Domain}
	for _, q := range bw.queries {
		rec, ok := byQuery[q]
		if !ok {
			row = append(row, "", "")
			continue
		}
		answer, confidence := cells(rec)
		row = append(row, answer, confidence)
	}
	return bw.w.Write(row)
}

// Flush writes buffered rows to the underlying writer.
func (bw *BatchWriter) Flush() error {
	bw.w.Flush()
	return bw.w.Error()
}

// cells renders one record as its answer and confidence cells.
func cells(rec sitescout.ResultRecord) (answer, confidence string) {
	if rec.Err != nil {
		return fmt.Sprintf("ERROR: %s", sitescout.ErrorMessage(rec.Err)), "N/A"
	}
	if rec.Result == nil {
		return "", ""
	}
	answer = rec.Result.Answer
	if len(rec.Result.Items) > 0 {
		answer = strings.Join(rec.Result.Items, "; ")
	}
	return answer, string(rec.Result.Confidence)
}
