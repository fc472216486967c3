// Package sheet loads the schedule workbook into raw model rows. It only
// maps cells to fields; all cleanup and derivation happens in
// internal/schedule.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ccdash/internal/model"
)

// ExpectedColumns is the header set the schedule sheet is supposed to
// carry. Missing columns are tolerated: the affected fields stay empty
// and the loader reports them in Table.MissingColumns.
var ExpectedColumns = []string{
	"Month #", "Month", "Week", "Date", "Day", "Time",
	"Location Focus", "Team Focus", "Participants (4)",
	"Manager", "Notes", "Mode of Connect",
}

// Table is the raw load result handed to the enrichment pipeline.
type Table struct {
	Rows []model.Row

	// MissingColumns lists expected headers absent from the sheet. This
	// is a warning condition, not an error.
	MissingColumns []string
}

// Load reads the workbook at path. A file that cannot be opened or read
// is fatal to the refresh; no partial table is produced.
func Load(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open schedule file: %w", err)
	}
	defer f.Close()
	return fromFile(f)
}

// Read loads a workbook from an in-memory stream, e.g. an upload.
func Read(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read schedule workbook: %w", err)
	}
	defer f.Close()
	return fromFile(f)
}

func fromFile(f *excelize.File) (*Table, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, col := range ExpectedColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}

	t := &Table{
		Rows:           make([]model.Row, 0, len(rows)-1),
		MissingColumns: missing,
	}

	for _, record := range rows[1:] {
		if blank(record) {
			continue
		}
		r := model.Row{
			MonthName:     cell(index, record, "Month"),
			WeekLabel:     cell(index, record, "Week"),
			DayName:       cell(index, record, "Day"),
			DateText:      dateCell(cell(index, record, "Date")),
			TimeRangeText: cell(index, record, "Time"),
			LocationFocus: cell(index, record, "Location Focus"),
			TeamFocus:     cell(index, record, "Team Focus"),
			Participants:  cell(index, record, "Participants (4)"),
			Manager:       cell(index, record, "Manager"),
			Notes:         cell(index, record, "Notes"),
			ModeOfConnect: cell(index, record, "Mode of Connect"),
		}
		if n, err := strconv.Atoi(strings.TrimSpace(cell(index, record, "Month #"))); err == nil {
			r.MonthNumber = &n
		}
		t.Rows = append(t.Rows, r)
	}

	return t, nil
}

func cell(index map[string]int, record []string, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// dateCell turns an Excel serial date into YYYY-MM-DD text. Date cells
// saved as real dates come through GetRows as serial numbers unless the
// cell carries a display format; text cells pass through untouched.
func dateCell(s string) string {
	s = strings.TrimSpace(s)
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02")
}

func blank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
