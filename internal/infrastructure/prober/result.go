package prober

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

const (
	colAddress    = 0
	colLatency    = 4
	colSpeed      = 5
	colDatacenter = 6
	completeCols  = 7
)

// ReadResult loads the rows of family from a prober result file, best first.
// A limit of 0 keeps every row. A missing file yields no rows and
// found=false.
func ReadResult(path string, family valueobject.Family, limit int) (rows []valueobject.ProbeRow, found bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("open result file %s: %w", path, err)
	}
	defer f.Close()

	rows, err = parseResult(f, family, limit)
	if err != nil {
		return nil, true, fmt.Errorf("parse result file %s: %w", path, err)
	}
	return rows, true, nil
}

func parseResult(r io.Reader, family valueobject.Family, limit int) ([]valueobject.ProbeRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows []valueobject.ProbeRow
	header := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if header {
			header = false
			continue
		}
		if len(record) == 0 {
			continue
		}
		addr := strings.TrimSpace(record[colAddress])
		if addr == "" || !family.Matches(addr) {
			continue
		}

		row := valueobject.ProbeRow{Address: addr, Complete: len(record) >= completeCols}
		if row.Complete {
			row.Latency = strings.TrimSpace(record[colLatency])
			row.Speed = strings.TrimSpace(record[colSpeed])
			row.Datacenter = strings.TrimSpace(record[colDatacenter])
		}
		rows = append(rows, row)
		if limit > 0 && len(rows) == limit {
			break
		}
	}
	return rows, nil
}
