package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Zuo-Peng/clocktsv/internal/parse"
)

// Header is the column order shared by every format.
var Header = []string{"Activity", "ActivityType", "Start", "End"}

// RowWriter receives converted rows in input order.
type RowWriter interface {
	Write(row parse.Row) error
	Close() error
}

const (
	FormatTSV    = "tsv"
	FormatSQLite = "sqlite"
)

// DetectFormat picks a format from the output file extension.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatTSV
	}
}

// Create opens path for writing in the given format, replacing any
// existing file. An empty format is detected from the extension.
func Create(path, format string) (RowWriter, error) {
	if format == "" {
		format = DetectFormat(path)
	}
	switch format {
	case FormatTSV:
		return CreateTSV(path)
	case FormatSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}
