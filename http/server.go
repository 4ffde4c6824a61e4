package http

import (
	"encoding/json"
	"net/http"

	"github.com/sitescout/sitescout"
)

// Server exposes the research pipeline over HTTP for integration with
// spreadsheet-style enrichment tools.
//
// Endpoints:
//
//	POST /research  one (domain, query) request
//	POST /batch     many queries against one domain, or explicit pairs
//	GET  /health    health check
type Server struct {
	Researcher sitescout.Researcher
	Batch      sitescout.BatchRunner
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /research", s.handleResearch)
	mux.HandleFunc("POST /batch", s.handleBatch)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// researchRequest is the wire shape of a single research call.
type researchRequest struct {
	Domain string `json:"domain"`
	Query  string `json:"query"`
	Format string `json:"output_format"`
}

// researchResponse is the wire shape of a single research result.
type researchResponse struct {
	Success    bool     `json:"success"`
	Answer     string   `json:"answer,omitempty"`
	Items      []string `json:"items,omitempty"`
	Confidence string   `json:"confidence,omitempty"`
	Evidence   string   `json:"evidence,omitempty"`
	Found      *bool    `json:"found,omitempty"`
	Section    string   `json:"section_searched,omitempty"`
	ErrorKind  string   `json:"error_kind,omitempty"`
	Error      string   `json:"error,omitempty"`
}

func recordResponse(rec sitescout.ResultRecord) researchResponse {
	if rec.Err != nil {
		return researchResponse{
			Success:   false,
			Section:   rec.Section,
			ErrorKind: sitescout.ErrorCode(rec.Err),
			Error:     sitescout.ErrorMessage(rec.Err),
		}
	}
	found := rec.Result.Found
	return researchResponse{
		Success:    true,
		Answer:     rec.Result.Answer,
		Items:      rec.Result.Items,
		Confidence: string(rec.Result.Confidence),
		Evidence:   rec.Result.Evidence,
		Found:      &found,
		Section:    rec.Section,
	}
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	var body researchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, sitescout.EINVALID, "invalid JSON body")
		return
	}

	format, err := sitescout.ParseFormat(body.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, sitescout.EINVALID, sitescout.ErrorMessage(err))
		return
	}

	req := sitescout.Request{Domain: body.Domain, Query: body.Query, Format: format}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, sitescout.EINVALID, sitescout.ErrorMessage(err))
		return
	}

	rec := s.Researcher.Research(r.Context(), req)
	status := http.StatusOK
	if rec.Err != nil {
		status = statusForCode(sitescout.ErrorCode(rec.Err))
	}
	writeJSON(w, status, recordResponse(rec))
}

// batchRequest accepts either one domain with many queries, or explicit
// (domain, query) pairs.
type batchRequest struct {
	Domain   string            `json:"domain,omitempty"`
	Queries  []string          `json:"queries,omitempty"`
	Requests []researchRequest `json:"requests,omitempty"`
	Format   string            `json:"output_format,omitempty"`
}

type batchResponse struct {
	Success bool               `json:"success"`
	Results []researchResponse `json:"results,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var body batchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, sitescout.EINVALID, "invalid JSON body")
		return
	}

	reqs, err := body.requests()
	if err != nil {
		writeError(w, http.StatusBadRequest, sitescout.EINVALID, sitescout.ErrorMessage(err))
		return
	}

	var records []sitescout.ResultRecord
	if err := s.Batch.Run(r.Context(), reqs, func(rec sitescout.ResultRecord) {
		records = append(records, rec)
	}); err != nil {
		writeError(w, http.StatusInternalServerError, sitescout.ErrorCode(err), sitescout.ErrorMessage(err))
		return
	}

	results := make([]researchResponse, 0, len(records))
	for _, rec := range orderByInput(reqs, records) {
		results = append(results, recordResponse(rec))
	}

	writeJSON(w, http.StatusOK, batchResponse{Success: true, Results: results})
}

// requests expands the batch body into validated pipeline requests.
func (b *batchRequest) requests() ([]sitescout.Request, error) {
	defaultFormat, err := sitescout.ParseFormat(b.Format)
	if err != nil {
		return nil, err
	}

	var reqs []sitescout.Request
	switch {
	case len(b.Requests) > 0:
		for _, r := range b.Requests {
			format := defaultFormat
			if r.Format != "" {
				if format, err = sitescout.ParseFormat(r.Format); err != nil {
					return nil, err
				}
			}
			reqs = append(reqs, sitescout.Request{Domain: r.Domain, Query: r.Query, Format: format})
		}
	case b.Domain != "" && len(b.Queries) > 0:
		for _, q := range b.Queries {
			reqs = append(reqs, sitescout.Request{Domain: b.Domain, Query: q, Format: defaultFormat})
		}
	default:
		return nil, sitescout.Errorf(sitescout.EINVALID, "missing required fields: domain and queries, or requests")
	}

	for _, req := range reqs {
		if err := req.Validate(); err != nil {
			return nil, err
		}
	}
	return reqs, nil
}

// orderByInput reorders emitted records to match input order. Records within
// a domain arrive in input order; cross-domain interleaving is unspecified.
func orderByInput(reqs []sitescout.Request, records []sitescout.ResultRecord) []sitescout.ResultRecord {
	byReq := make(map[sitescout.Request][]sitescout.ResultRecord, len(records))
	for _, rec := range records {
		byReq[rec.Request] = append(byReq[rec.Request], rec)
	}

	ordered := make([]sitescout.ResultRecord, 0, len(records))
	for _, req := range reqs {
		queue := byReq[req]
		if len(queue) == 0 {
			continue
		}
		ordered = append(ordered, queue[0])
		byReq[req] = queue[1:]
	}
	return ordered
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func statusForCode(code string) int {
	switch code {
	case sitescout.EINVALID:
		return http.StatusBadRequest
	case sitescout.ENOTFOUND:
		return http.StatusNotFound
	case sitescout.ERATELIMIT:
		return http.StatusTooManyRequests
	case sitescout.ECANCELED:
		return http.StatusRequestTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, researchResponse{Success: false, ErrorKind: kind, Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
