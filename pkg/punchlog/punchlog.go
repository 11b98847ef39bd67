// Package punchlog turns raw clock-punch text into attendance log documents.
//
// Input is whitespace-delimited lines of "empId date time". Punches are
// grouped per employee per day; the earliest punch becomes the in-time, the
// latest the out-time, and the day status is derived from the worked hours.
package punchlog

import (
	"math"
	"sort"
	"strings"
	"time"

	"Attendance-Roster-Backend/models"
)

// StatusPolicy holds the business thresholds (in hours) separating
// Present / Half-day / Absent. Kept as a value so tests and future config
// can override them.
type StatusPolicy struct {
	PresentMin float64
	HalfDayMin float64
}

var DefaultPolicy = StatusPolicy{PresentMin: 9, HalfDayMin: 4.5}

// Status maps worked hours to a status code under this policy.
func (p StatusPolicy) Status(workedHours float64) string {
	switch {
	case workedHours >= p.PresentMin:
		return models.StatusPresent
	case workedHours >= p.HalfDayMin:
		return models.StatusHalfDay
	default:
		return models.StatusAbsent
	}
}

var punchLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Parse builds one AttendanceLog per (employee, day) from raw punch-log text.
// Lines with fewer than three tokens or an unparsable date/time are skipped.
// A single punch yields inTime == outTime and zero worked hours.
func Parse(raw string, policy StatusPolicy) []models.AttendanceLog {
	grouped := make(map[string]map[string][]time.Time)

	for _, line := range strings.Split(raw, "\n") {
		parts := strings.Fields(line)
		if len(parts) < 3 {
			continue
		}

		empID := parts[0]
		punch, ok := parsePunch(parts[1] + " " + parts[2])
		if !ok {
			continue
		}
		date := punch.Format("2006-01-02")

		if grouped[empID] == nil {
			grouped[empID] = make(map[string][]time.Time)
		}
		grouped[empID][date] = append(grouped[empID][date], punch)
	}

	now := time.Now()
	var logs []models.AttendanceLog

	for empID, days := range grouped {
		for date, punches := range days {
			sort.Slice(punches, func(i, j int) bool { return punches[i].Before(punches[j]) })

			inTime := punches[0]
			outTime := punches[len(punches)-1]
			workedHours := outTime.Sub(inTime).Hours()

			logs = append(logs, models.AttendanceLog{
				EmpID:       empID,
				Date:        date,
				InTime:      &inTime,
				OutTime:     &outTime,
				WorkedHours: round2(workedHours),
				Status:      policy.Status(workedHours),
				RawPunches:  punches,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}
	}

	// map iteration order is random; keep the batch deterministic
	sort.Slice(logs, func(i, j int) bool {
		if logs[i].EmpID != logs[j].EmpID {
			return logs[i].EmpID < logs[j].EmpID
		}
		return logs[i].Date < logs[j].Date
	})

	return logs
}

func parsePunch(value string) (time.Time, bool) {
	for _, layout := range punchLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
