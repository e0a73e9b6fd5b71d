// Package clonegroups reads MiXCR clone.groups_TRAB.tsv exports and reduces
// each one to a single summary row describing the sample's dominant paired
// TRA/TRB clonotype.
package clonegroups

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	"gopkg.in/guregu/null.v3"
)

// Column names the pipeline depends on. A file lacking either chain's
// readCount column cannot yield a paired top clone; a file lacking
// groupReadCount just has no total.
const (
	ColTRAReadCount = "TRA.primary.readCount"
	ColTRBReadCount = "TRB.primary.readCount"
	ColGroupReads   = "groupReadCount"
)

// CloneGroup is one clonotype group row. Every field is nullable: MiXCR
// leaves cells empty when a chain was not called, and whole columns may be
// absent from older exports.
type CloneGroup struct {
	GroupReadCount null.Float  `csv:"groupReadCount"`
	TRAReadCount   null.Float  `csv:"TRA.primary.readCount"`
	TRANSeqCDR3    null.String `csv:"TRA.primary.nSeqCDR3"`
	TRAAASeqCDR3   null.String `csv:"TRA.primary.aaSeqCDR3"`
	TRABestVHit    null.String `csv:"TRA.primary.bestVHit"`
	TRABestDHit    null.String `csv:"TRA.primary.bestDHit"`
	TRABestJHit    null.String `csv:"TRA.primary.bestJHit"`
	TRBReadCount   null.Float  `csv:"TRB.primary.readCount"`
	TRBNSeqCDR3    null.String `csv:"TRB.primary.nSeqCDR3"`
	TRBAASeqCDR3   null.String `csv:"TRB.primary.aaSeqCDR3"`
	TRBBestVHit    null.String `csv:"TRB.primary.bestVHit"`
	TRBBestDHit    null.String `csv:"TRB.primary.bestDHit"`
	TRBBestJHit    null.String `csv:"TRB.primary.bestJHit"`
}

// Table is one parsed clone-group file. Columns preserves the header in file
// order so callers can report it and test for presence; Rows preserves the
// top-to-bottom order of the file, which breaks ranking ties.
type Table struct {
	Columns []string
	Rows    []*CloneGroup

	colSet map[string]struct{}
}

// ParseTable parses a tab-delimited clone-group export, header row included.
// Any malformed record, including a numeric column that fails to parse, is an
// error for the whole file.
func ParseTable(content []byte) (*Table, error) {
	header, err := tabReader(bytes.NewReader(content)).Read()
	if err != nil {
		return nil, pfx.Err(err)
	}

	t := &Table{
		Columns: header,
		colSet:  make(map[string]struct{}, len(header)),
	}
	for _, col := range header {
		t.colSet[col] = struct{}{}
	}

	// Tell gocsv to use tab as the delimiter
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return tabReader(in)
	})

	if err := gocsv.UnmarshalBytes(content, &t.Rows); err != nil {
		return nil, pfx.Err(err)
	}

	return t, nil
}

func tabReader(in io.Reader) *csv.Reader {
	r := csv.NewReader(in)
	r.Comma = '\t'
	r.LazyQuotes = true
	return r
}

// HasColumn reports whether the named column appeared in the file's header.
func (t *Table) HasColumn(name string) bool {
	_, exists := t.colSet[name]
	return exists
}

// TotalReads sums the groupReadCount column. Cells with no value are left out
// of the sum; a file without the column at all has no total.
func (t *Table) TotalReads() null.Float {
	if !t.HasColumn(ColGroupReads) {
		return null.Float{}
	}

	values := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if row.GroupReadCount.Valid {
			values = append(values, row.GroupReadCount.Float64)
		}
	}

	sum, err := stats.Sum(values)
	if err != nil {
		// Only the empty-input case; an all-empty column totals to zero.
		return null.FloatFrom(0)
	}

	return null.FloatFrom(sum)
}
