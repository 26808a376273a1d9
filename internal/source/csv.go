package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// readCSV parses delimited text whose header sits on the 0-indexed row
// headerRow; rows above it are metadata and are skipped.
func readCSV(data []byte, headerRow int) (header, [][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	for i := 0; i < headerRow; i++ {
		if _, err := r.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return header{}, nil, fmt.Errorf("header row %d not found: file has %d rows", headerRow, i)
			}
			return header{}, nil, fmt.Errorf("read row %d: %w", i, err)
		}
	}
	raw, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return header{}, nil, fmt.Errorf("header row %d not found: file has %d rows", headerRow, headerRow)
		}
		return header{}, nil, fmt.Errorf("read header: %w", err)
	}
	h := newHeader(raw)

	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return header{}, nil, fmt.Errorf("read row %d: %w", headerRow+len(rows)+1, err)
		}
		rows = append(rows, rec)
	}
	return h, rows, nil
}
