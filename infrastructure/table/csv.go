package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/carlosrabelo/portlabel/domain/entities"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVTable is a delimited text change table held in memory until Save
type CSVTable struct {
	path     string
	encoding string
	comma    rune
	bom      bool
	crlf     bool
	records  [][]string
}

func openCSV(path, encoding string) (*CSVTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t := &CSVTable{path: path, encoding: encoding, crlf: bytes.Contains(data, []byte("\r\n"))}

	var r io.Reader = bytes.NewReader(data)
	if encoding != "" {
		r, err = charset.NewReaderLabel(encoding, r)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
		}
	} else if bytes.HasPrefix(data, utf8BOM) {
		t.bom = true
		r = bytes.NewReader(data[len(utf8BOM):])
	}

	br := bufio.NewReader(r)
	t.comma = sniffDelimiter(br)

	reader := csv.NewReader(br)
	reader.Comma = t.comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	t.records, err = reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return t, nil
}

// sniffDelimiter picks ';' when the first line uses it more than ',', which
// is what spreadsheet exports in comma-decimal locales produce.
func sniffDelimiter(br *bufio.Reader) rune {
	peek, _ := br.Peek(4096)
	first := string(peek)
	if idx := strings.IndexAny(first, "\r\n"); idx >= 0 {
		first = first[:idx]
	}
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}

func (t *CSVTable) Path() string {
	return t.path
}

func (t *CSVTable) Rows() ([]entities.TableRow, error) {
	rows := make([]entities.TableRow, 0, len(t.records))
	for i, record := range t.records {
		rows = append(rows, entities.TableRow{Index: i + 1, Cells: record})
	}
	return rows, nil
}

// SetCell stores value at a 1-based position, growing the table as needed.
func (t *CSVTable) SetCell(row, column int, value string) error {
	if row < 1 || column < 1 {
		return fmt.Errorf("cell (%d,%d) out of range", row, column)
	}
	for len(t.records) < row {
		t.records = append(t.records, nil)
	}
	record := t.records[row-1]
	for len(record) < column {
		record = append(record, "")
	}
	record[column-1] = value
	t.records[row-1] = record
	return nil
}

// Save rewrites the file in its original encoding and delimiter.
func (t *CSVTable) Save() error {
	var buf bytes.Buffer
	var w io.Writer = &buf
	if t.encoding != "" {
		enc, err := htmlindex.Get(t.encoding)
		if err != nil {
			return fmt.Errorf("unsupported encoding %q: %w", t.encoding, err)
		}
		w = transform.NewWriter(&buf, enc.NewEncoder())
	} else if t.bom {
		buf.Write(utf8BOM)
	}

	writer := csv.NewWriter(w)
	writer.Comma = t.comma
	writer.UseCRLF = t.crlf
	if err := writer.WriteAll(t.records); err != nil {
		return fmt.Errorf("failed to encode %s: %w", t.path, err)
	}
	if closer, ok := w.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to encode %s: %w", t.path, err)
		}
	}
	return writeFileAtomic(t.path, buf.Bytes())
}

func (t *CSVTable) Close() error {
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
