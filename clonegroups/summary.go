package clonegroups

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"

	"github.com/carbocation/pfx"
	"gopkg.in/guregu/null.v3"
)

// SummaryFileName is the name of the aggregate CSV written into the input
// directory.
const SummaryFileName = "mixcr_summary.csv"

// SummaryRow is one sample's line in the aggregate CSV: the well it came
// from, the total reads across all of its clone groups, and the top clone's
// TRA fields followed by its TRB fields.
type SummaryRow struct {
	Well          string
	NumTotalReads null.Float

	Abundance      null.Float
	CDR3NtSequence null.String
	CDR3AaSequence null.String
	VGene          null.String
	DGene          null.String
	JGene          null.String

	AbundanceB      null.Float
	CDR3NtSequenceB null.String
	CDR3AaSequenceB null.String
	VGeneB          null.String
	DGeneB          null.String
	JGeneB          null.String
}

// summaryHeader fixes the output column order. The TRB columns reuse the TRA
// names with a ".1" suffix, matching the layout downstream plate reports
// expect.
var summaryHeader = []string{
	"Well", "Num_Total_Reads",
	"Abundance", "CDR3_nt_sequence", "CDR3_aa_sequence", "V_Gene", "D_Gene", "J_Gene",
	"Abundance.1", "CDR3_nt_sequence.1", "CDR3_aa_sequence.1", "V_Gene.1", "D_Gene.1", "J_Gene.1",
}

// BuildSummaryRow maps the top clone's cells into the fixed output shape. A
// missing cell (or a column the file never had) stays missing in the output.
func BuildSummaryRow(well string, totalReads null.Float, top *CloneGroup) SummaryRow {
	return SummaryRow{
		Well:          well,
		NumTotalReads: totalReads,

		Abundance:      top.TRAReadCount,
		CDR3NtSequence: top.TRANSeqCDR3,
		CDR3AaSequence: top.TRAAASeqCDR3,
		VGene:          top.TRABestVHit,
		DGene:          top.TRABestDHit,
		JGene:          top.TRABestJHit,

		AbundanceB:      top.TRBReadCount,
		CDR3NtSequenceB: top.TRBNSeqCDR3,
		CDR3AaSequenceB: top.TRBAASeqCDR3,
		VGeneB:          top.TRBBestVHit,
		DGeneB:          top.TRBBestDHit,
		JGeneB:          top.TRBBestJHit,
	}
}

func (r SummaryRow) record() []string {
	return []string{
		r.Well,
		NullFloatFormatter(r.NumTotalReads),
		NullFloatFormatter(r.Abundance),
		NullStringFormatter(r.CDR3NtSequence),
		NullStringFormatter(r.CDR3AaSequence),
		NullStringFormatter(r.VGene),
		NullStringFormatter(r.DGene),
		NullStringFormatter(r.JGene),
		NullFloatFormatter(r.AbundanceB),
		NullStringFormatter(r.CDR3NtSequenceB),
		NullStringFormatter(r.CDR3AaSequenceB),
		NullStringFormatter(r.VGeneB),
		NullStringFormatter(r.DGeneB),
		NullStringFormatter(r.JGeneB),
	}
}

// NullFloatFormatter renders a nullable count for CSV output: empty when
// missing, no trailing zeros otherwise (integer counts stay integers).
func NullFloatFormatter(f null.Float) string {
	if !f.Valid {
		return ""
	}

	return strconv.FormatFloat(f.Float64, 'f', -1, 64)
}

func NullStringFormatter(s null.String) string {
	if !s.Valid {
		return ""
	}

	return s.String
}

// SortRows orders the summary ascending by well. The sort is stable so a
// repeated run over the same directory is byte-identical.
func SortRows(rows []SummaryRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Well < rows[j].Well
	})
}

// WriteSummary serializes the rows, header first, to path, replacing any
// existing file.
func WriteSummary(path string, rows []SummaryRow) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(summaryHeader); err != nil {
		return pfx.Err(err)
	}
	for _, row := range rows {
		if err := w.Write(row.record()); err != nil {
			return pfx.Err(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return pfx.Err(err)
	}

	return f.Close()
}
