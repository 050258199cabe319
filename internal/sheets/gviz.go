// Package sheets decodes the gviz table feeds the portal reads from. Each
// feed wraps a JSON table description in non-JSON framing; the decoder slices
// the payload out and flattens it into trimmed headers and string cells.
package sheets

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/surat-tugas/portal-api/internal/normalize"
)

// Table is a decoded feed: a trimmed header row plus a matrix of trimmed
// string cells. Rows always have one cell per header; absent cells are "".
type Table struct {
	Headers []string
	Rows    [][]string
}

type feedEnvelope struct {
	Table struct {
		Cols []struct {
			Label string `json:"label"`
		} `json:"cols"`
		Rows []struct {
			C []*feedCell `json:"c"`
		} `json:"rows"`
	} `json:"table"`
}

type feedCell struct {
	V interface{} `json:"v"`
	F *string     `json:"f"`
}

// ParseFeed extracts the JSON object between the first '{' and the last '}'
// of the raw response and decodes it into a Table. The formatted display
// string of a cell wins over its raw value when both are present.
func ParseFeed(raw string) (*Table, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("feed payload has no JSON object framing")
	}

	var envelope feedEnvelope
	if err := json.Unmarshal([]byte(raw[start:end+1]), &envelope); err != nil {
		return nil, fmt.Errorf("decode feed payload: %w", err)
	}

	headers := make([]string, len(envelope.Table.Cols))
	for i, col := range envelope.Table.Cols {
		headers[i] = strings.TrimSpace(col.Label)
	}

	rows := make([][]string, len(envelope.Table.Rows))
	for i, row := range envelope.Table.Rows {
		cells := make([]string, len(headers))
		for j := range cells {
			if j < len(row.C) {
				cells[j] = cellValue(row.C[j])
			}
		}
		rows[i] = cells
	}

	return &Table{Headers: headers, Rows: rows}, nil
}

func cellValue(cell *feedCell) string {
	if cell == nil {
		return ""
	}
	if cell.F != nil {
		return strings.TrimSpace(*cell.F)
	}
	switch v := cell.V.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// ColumnIndex resolves the physical index of the first label whose
// canonicalised form matches one of the requested spellings, tried in order.
// Returns -1 when none resolve; callers decide the fallback.
func (t *Table) ColumnIndex(labels ...string) int {
	for _, label := range labels {
		want := normalize.Header(label)
		for i, header := range t.Headers {
			if normalize.Header(header) == want {
				return i
			}
		}
	}
	return -1
}

// Cell returns the trimmed cell at the given row and resolved column index,
// or "" when the index is out of range or unresolved.
func (t *Table) Cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}
