// Package rosterxlsx parses shift-roster spreadsheets into roster documents.
//
// The expected sheet shape is two header rows followed by data rows:
//
//	row 0: weekday labels over the day columns (Mon, Tue, ...)
//	row 1: column titles (Emp. ID, Agent Name, ..., then one column per date)
//	row 2+: one employee per row, day cells hold the planned status
//
// Identity columns are located by fuzzy header matching; everything after
// them is treated as a per-day status cell whose header encodes a date
// (Excel serial or a parsable date string). The adapter is best effort:
// rows without an employee id and day columns without a parsable date are
// skipped.
package rosterxlsx

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"Attendance-Roster-Backend/models"
)

var (
	empIDCandidates = []string{"Emp. ID", "EmpID", "Employee ID"}
	nameCandidates  = []string{"Agent Name", "Name"}
	crmCandidates   = []string{"CRM NAME", "CRM"}
	titleCandidates = []string{"Title", "Role"}
	shiftCandidates = []string{"Shift Time", "Shift"}
	tlCandidates    = []string{"Team Leader", "TL"}
)

var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"01/02/2006",
	"2006/01/02",
	"2-Jan-06",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// Parse reads the first sheet of an XLSX workbook and returns one roster
// entry per (employee row, day column) cell. An empty status cell defaults
// to "P".
func Parse(r io.Reader) ([]models.Roster, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("roster workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read roster sheet: %w", err)
	}
	if len(rows) < 3 {
		return nil, fmt.Errorf("invalid roster format: expected at least 3 rows, got %d", len(rows))
	}

	daysRow := rows[0]
	headerRow := rows[1]
	dataRows := rows[2:]

	idxEmpID := findIndexByCandidates(headerRow, empIDCandidates)
	idxName := findIndexByCandidates(headerRow, nameCandidates)
	idxCRM := findIndexByCandidates(headerRow, crmCandidates)
	idxTitle := findIndexByCandidates(headerRow, titleCandidates)
	idxShift := findIndexByCandidates(headerRow, shiftCandidates)
	idxTL := findIndexByCandidates(headerRow, tlCandidates)

	if idxEmpID == -1 {
		return nil, fmt.Errorf("invalid roster format: no employee id column found")
	}

	dayStart := dayStartIndex(daysRow, headerRow, idxTL)
	if dayStart == -1 {
		lastFixed := maxIndex(idxEmpID, idxName, idxCRM, idxTitle, idxShift, idxTL)
		dayStart = lastFixed + 1
	}

	now := time.Now()
	var entries []models.Roster

	for _, row := range dataRows {
		empID := cell(row, idxEmpID)
		if empID == "" {
			continue
		}

		for colIdx := dayStart; colIdx < len(headerRow); colIdx++ {
			date, ok := parseHeaderDate(cell(headerRow, colIdx))
			if !ok {
				continue
			}

			dayName := cell(daysRow, colIdx)
			if dayName == "" {
				dayName = date.Format("Mon")
			}

			status := cell(row, colIdx)
			if status == "" {
				status = models.StatusPresent
			}

			entries = append(entries, models.Roster{
				EmpID:      empID,
				Name:       cell(row, idxName),
				CRMName:    cell(row, idxCRM),
				Title:      cell(row, idxTitle),
				ShiftTime:  cell(row, idxShift),
				TeamLeader: cell(row, idxTL),
				Date:       date,
				Day:        dayName,
				Status:     status,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		}
	}

	return entries, nil
}

// cell reads a trimmed cell value, tolerating the short rows excelize
// returns when trailing cells are empty.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

var headerNormalizer = strings.NewReplacer(
	" ", "", "\t", "", ".", "", "-", "", "_", "", "/", "", "\\", "",
)

func normalize(v string) string {
	return headerNormalizer.Replace(strings.ToLower(v))
}

func findIndexByCandidates(headerRow []string, candidates []string) int {
	for _, c := range candidates {
		for i := range headerRow {
			if normalize(headerRow[i]) == normalize(c) {
				return i
			}
		}
	}
	return -1
}

// dayStartIndex locates the first per-day column: right after the team
// leader column when that was recognized, otherwise the first column whose
// header looks like a date or that carries a weekday label.
func dayStartIndex(daysRow, headerRow []string, idxTL int) int {
	if idxTL != -1 {
		return idxTL + 1
	}
	for i := range headerRow {
		h := cell(headerRow, i)
		if _, err := strconv.ParseFloat(h, 64); err == nil && h != "" {
			return i
		}
		if _, ok := parseDateString(h); ok {
			return i
		}
		if cell(daysRow, i) != "" {
			return i
		}
	}
	return -1
}

func maxIndex(indices ...int) int {
	max := -1
	for _, idx := range indices {
		if idx > max {
			max = idx
		}
	}
	return max
}

// parseHeaderDate turns a day-column header into a date. Numeric headers are
// Excel date serials, everything else goes through the known date layouts.
func parseHeaderDate(val string) (time.Time, bool) {
	if val == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(val, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	return parseDateString(val)
}

func parseDateString(val string) (time.Time, bool) {
	if val == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, val); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
