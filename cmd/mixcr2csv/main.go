// mixcr2csv condenses a directory of MiXCR clone.groups_TRAB.tsv exports into
// one mixcr_summary.csv, one row per well, reporting each well's dominant
// paired TRA/TRB clonotype and its read counts.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
	log "github.com/sirupsen/logrus"

	"github.com/platetcr/mixcr2csv"
	"github.com/platetcr/mixcr2csv/buildinfo"
	"github.com/platetcr/mixcr2csv/clonegroups"
)

// LogFileName receives a copy of everything logged to stdout, appended across
// runs so reruns over the same directory keep their history.
const LogFileName = "convert_mixcr_to_csv.log"

func main() {
	var outputDir string

	flag.StringVar(&outputDir, "output-dir", "", "Path to the MiXCR output directory containing clone.groups_TRAB.tsv files")
	flag.Parse()

	if outputDir == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	logFile, err := os.OpenFile(LogFileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	defer logFile.Close()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(io.MultiWriter(os.Stdout, logFile))

	log.Infoln(buildinfo.Get())

	if err := run(outputDir); err != nil {
		log.Fatalln(err)
	}
}

func run(outputDir string) error {
	files, err := clonegroups.Discover(outputDir)
	if err != nil {
		return err
	}
	log.Infof("Found %d clone.groups_TRAB.tsv files", len(files))

	if len(files) == 0 {
		return fmt.Errorf("no clone.groups_TRAB.tsv files found in %s", outputDir)
	}

	rows := make([]clonegroups.SummaryRow, 0, len(files))
	for _, file := range files {
		row, ok := processFile(file)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return fmt.Errorf("no data processed; check if files are empty or lack required columns")
	}

	clonegroups.SortRows(rows)

	outputCSV := filepath.Join(outputDir, clonegroups.SummaryFileName)
	if err := clonegroups.WriteSummary(outputCSV, rows); err != nil {
		return err
	}
	log.Infof("Saved summary to %s", outputCSV)

	return nil
}

// processFile reduces one clone-group file to its summary row. Every failure
// here is recoverable: it is logged, the file is skipped, and the run goes on
// with the remaining files.
func processFile(path string) (clonegroups.SummaryRow, bool) {
	sampleID := clonegroups.SampleID(path)
	log.Infof("Processing %s (Sample ID: %s)", path, sampleID)

	content, err := readTable(path)
	if err != nil {
		log.Errorf("Failed to read %s: %v", path, err)
		return clonegroups.SummaryRow{}, false
	}

	table, err := clonegroups.ParseTable(content)
	if err != nil {
		log.Errorf("Failed to read %s: %v", path, err)
		return clonegroups.SummaryRow{}, false
	}
	log.Infof("  Rows: %d, Columns: %v", len(table.Rows), table.Columns)

	if len(table.Rows) == 0 {
		log.Warnf("No clonotypes found in %s", path)
		return clonegroups.SummaryRow{}, false
	}

	if !table.HasColumn(clonegroups.ColTRAReadCount) || !table.HasColumn(clonegroups.ColTRBReadCount) {
		log.Warnf("Missing required columns in %s: [%s %s]", path, clonegroups.ColTRAReadCount, clonegroups.ColTRBReadCount)
		if delim := mixcr2csv.LikelyDelimiter(content); delim != '\t' {
			log.Warnf("  %s appears to be %q-delimited, not tab-delimited", path, delim)
		}
		return clonegroups.SummaryRow{}, false
	}

	top := clonegroups.TopClone(table.Rows)
	row := clonegroups.BuildSummaryRow(sampleID, table.TotalReads(), top)
	log.Infof("Added data for %s", sampleID)

	return row, true
}

func readTable(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	r, err := mixcr2csv.OpenTable(f)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer r.Close()

	return io.ReadAll(r)
}
