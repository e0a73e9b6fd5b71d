// Package mixcr2csv holds file-level helpers shared by the mixcr2csv command:
// transparent decompression of tables that were compressed in place, and
// delimiter sniffing used to explain malformed inputs.
package mixcr2csv

import (
	"bytes"

	"github.com/csimplestring/go-csv/detector"
)

// LikelyDelimiter returns the single most likely rune delimiting the values
// in content, assuming a CSV-like file. Used for diagnostics only: when a
// table is missing its expected columns, the usual culprit is an export that
// was written comma-separated instead of tab-separated.
func LikelyDelimiter(content []byte) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(bytes.NewReader(content), '"')

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}
