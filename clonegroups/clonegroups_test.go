package clonegroups

import (
	"strings"
	"testing"
)

func tsv(lines ...string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}

func TestParseTable(t *testing.T) {
	content := tsv(
		"groupReadCount\tTRA.primary.readCount\tTRB.primary.readCount\tTRA.primary.aaSeqCDR3",
		"15\t10\t5\tCAVRDNYQLIW",
		"3\t\t2\tCAASETSGSRLTF",
	)

	table, err := ParseTable(content)
	if err != nil {
		t.Fatal(err)
	}

	if x := len(table.Rows); x != 2 {
		t.Fatalf("Expected 2 rows, got %d", x)
	}

	if x := len(table.Columns); x != 4 {
		t.Fatalf("Expected 4 columns, got %d (%+v)", x, table.Columns)
	}

	if !table.HasColumn("TRA.primary.readCount") {
		t.Error("Expected TRA.primary.readCount to be present")
	}
	if table.HasColumn("TRA.primary.bestVHit") {
		t.Error("Did not expect TRA.primary.bestVHit to be present")
	}

	first := table.Rows[0]
	if !first.TRAReadCount.Valid || first.TRAReadCount.Float64 != 10 {
		t.Errorf("Row 0 TRA read count: %+v", first.TRAReadCount)
	}
	if !first.TRAAASeqCDR3.Valid || first.TRAAASeqCDR3.String != "CAVRDNYQLIW" {
		t.Errorf("Row 0 TRA aaSeqCDR3: %+v", first.TRAAASeqCDR3)
	}

	// An empty cell stays missing, and a column absent from the file leaves
	// its field missing in every row.
	second := table.Rows[1]
	if second.TRAReadCount.Valid {
		t.Errorf("Row 1 TRA read count should be missing: %+v", second.TRAReadCount)
	}
	if first.TRBAASeqCDR3.Valid {
		t.Errorf("TRB aaSeqCDR3 should be missing when its column is absent: %+v", first.TRBAASeqCDR3)
	}
}

func TestParseTableHeaderOnly(t *testing.T) {
	table, err := ParseTable(tsv("groupReadCount\tTRA.primary.readCount\tTRB.primary.readCount"))
	if err != nil {
		t.Fatal(err)
	}

	if x := len(table.Rows); x != 0 {
		t.Fatalf("Expected 0 rows, got %d", x)
	}
}

func TestParseTableMalformed(t *testing.T) {
	for _, v := range []struct {
		name    string
		content []byte
	}{
		{"empty file", []byte{}},
		{"ragged row", tsv("groupReadCount\tTRA.primary.readCount\tTRB.primary.readCount", "15\t10")},
		{"non-numeric count", tsv("groupReadCount\tTRA.primary.readCount\tTRB.primary.readCount", "abc\t10\t5")},
	} {
		if _, err := ParseTable(v.content); err == nil {
			t.Errorf("%s: expected an error", v.name)
		}
	}
}

func TestTotalReads(t *testing.T) {
	withColumn, err := ParseTable(tsv(
		"groupReadCount\tTRA.primary.readCount\tTRB.primary.readCount",
		"10\t8\t2",
		"\t1\t1",
		"5\t3\t2",
	))
	if err != nil {
		t.Fatal(err)
	}

	// Missing cells are skipped, not zeroed.
	if total := withColumn.TotalReads(); !total.Valid || total.Float64 != 15 {
		t.Errorf("TotalReads: %+v", total)
	}

	withoutColumn, err := ParseTable(tsv(
		"TRA.primary.readCount\tTRB.primary.readCount",
		"8\t2",
	))
	if err != nil {
		t.Fatal(err)
	}

	if total := withoutColumn.TotalReads(); total.Valid {
		t.Errorf("TotalReads without a groupReadCount column should be missing: %+v", total)
	}

	allEmpty, err := ParseTable(tsv(
		"groupReadCount\tTRA.primary.readCount\tTRB.primary.readCount",
		"\t8\t2",
	))
	if err != nil {
		t.Fatal(err)
	}

	if total := allEmpty.TotalReads(); !total.Valid || total.Float64 != 0 {
		t.Errorf("TotalReads over an all-empty column should be 0: %+v", total)
	}
}
