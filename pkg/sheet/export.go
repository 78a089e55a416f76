package sheet

import (
	"encoding/csv"
	"io"

	"github.com/gmpwatch/gmpwatch/pkg/listing"
)

// exportHeader is the canonical column order the scrape job writes. Parse
// accepts it back through the alias table, which keeps the two jobs' CSV
// contract in one package.
var exportHeader = []string{"IPO", "GMP", "Date", "Kostak", "SubjectToSauda", "Type", "Status"}

// WriteCSV writes records in the canonical export layout.
func WriteCSV(w io.Writer, recs []listing.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, rec := range recs {
		row := []string{rec.Name, rec.GMP, rec.Date, rec.Price, rec.Gain, rec.Type, rec.Status}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
