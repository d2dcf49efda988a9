package splitter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PartFileName returns the output file name for the zero-based index.
// Indices are rendered 1-based and zero-padded to at least three digits;
// the width grows naturally past part999.
func PartFileName(stem string, index int) string {
	return fmt.Sprintf("%s_part%03d.sql", stem, index+1)
}

// writePartFile writes one batch of statements, joined by a blank line,
// to the part file for the given index. An existing file of the same name
// is overwritten.
func writePartFile(dir, stem string, index int, statements []string) error {
	path := filepath.Join(dir, PartFileName(stem, index))
	if err := os.WriteFile(path, []byte(strings.Join(statements, "\n\n")), 0644); err != nil {
		return fmt.Errorf("write part file %s: %w", path, err)
	}
	return nil
}
