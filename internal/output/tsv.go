package output

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/Zuo-Peng/clocktsv/internal/parse"
)

type TSVWriter struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewTSVWriter writes the header row immediately. Fields are written
// verbatim, without quoting. Close flushes but leaves w open.
func NewTSVWriter(w io.Writer) (*TSVWriter, error) {
	t := &TSVWriter{w: bufio.NewWriter(w)}
	if err := t.writeLine(Header); err != nil {
		return nil, err
	}
	return t, nil
}

func CreateTSV(path string) (*TSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	t, err := NewTSVWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	t.closer = f
	return t, nil
}

func (t *TSVWriter) Write(row parse.Row) error {
	return t.writeLine([]string{row.Activity, row.ActivityType, row.Start, row.End})
}

func (t *TSVWriter) writeLine(fields []string) error {
	if _, err := t.w.WriteString(strings.Join(fields, "\t")); err != nil {
		return err
	}
	return t.w.WriteByte('\n')
}

func (t *TSVWriter) Close() error {
	err := t.w.Flush()
	if t.closer != nil {
		if cerr := t.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
