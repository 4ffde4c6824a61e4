package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sitescout/sitescout"
)

// Run executes the research command.
func (c *ResearchCmd) Run(deps *Dependencies) error {
	format, err := sitescout.ParseFormat(c.Format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitescout.ErrorMessage(err))
		return err
	}

	rec := deps.Researcher.Research(deps.Ctx, sitescout.Request{
		Domain: c.Domain,
		Query:  c.Query,
		Format: format,
	})
	if rec.Err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitescout.ErrorMessage(rec.Err))
		return rec.Err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	result := rec.Result
	answer := result.Answer
	if len(result.Items) > 0 {
		answer = strings.Join(result.Items, "; ")
	}
	fmt.Fprintf(deps.Stdout, "Answer:     %s\n", answer)
	fmt.Fprintf(deps.Stdout, "Confidence: %s\n", result.Confidence)
	if result.Evidence != "" {
		fmt.Fprintf(deps.Stdout, "Evidence:   %s\n", result.Evidence)
	}
	fmt.Fprintf(deps.Stdout, "Section:    %s\n", rec.Section)
	return nil
}
