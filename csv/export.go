package csv

import (
	"encoding/json"
	"io"

	"github.com/sitescout/sitescout"
)

// ExportJSON writes the full records as indented JSON. The JSON form keeps
// detail the CSV drops: evidence, searched section and timing.
func ExportJSON(w io.Writer, records []*sitescout.BatchRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
