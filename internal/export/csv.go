// Package export writes simulation time series to CSV, the sole artifact
// handed to the presentation layer. Output is deterministic: the same run
// renders byte-identical bytes.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"exergy/pkg/engine"
)

// Header is the fixed CSV column layout.
var Header = []string{"time_h", "step", "stage", "variable", "value", "unit", "source"}

// WriteCSV renders records in their given order. Values are written with
// strconv's shortest round-trip float format so re-parsing loses nothing.
func WriteCSV(w io.Writer, records []engine.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.FormatFloat(r.TimeHours, 'g', -1, 64),
			strconv.Itoa(r.Step),
			r.Stage,
			r.Variable,
			strconv.FormatFloat(r.Value, 'g', -1, 64),
			r.Unit,
			string(r.Source),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %d: %w", r.Step, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
