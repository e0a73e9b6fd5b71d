package clonegroups

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
)

// Clone-group exports are named results.<sample>.clone.groups_TRAB.tsv; the
// piece in the middle is the well the sample was sequenced from.
const (
	filePrefix = "results."
	fileSuffix = ".clone.groups_TRAB.tsv"
)

// Discover lists the clone-group files directly inside dir. The returned
// paths are in lexical order (filepath.Glob sorts), though callers should not
// rely on that: the final summary is ordered by well, not by file. An absent
// or non-directory path is an error; an empty match set is not.
func Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("output directory does not exist: %s", dir))
	}
	if !info.IsDir() {
		return nil, pfx.Err(fmt.Errorf("not a directory: %s", dir))
	}

	files, err := filepath.Glob(filepath.Join(dir, filePrefix+"*"+fileSuffix))
	if err != nil {
		return nil, pfx.Err(err)
	}

	return files, nil
}

// SampleID derives the well identifier from a clone-group file path.
func SampleID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(strings.TrimPrefix(base, filePrefix), fileSuffix)
}
