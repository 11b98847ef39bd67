package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attendance status codes. "P"/"H"/"A" are derived from punch data, "L" is set
// by the leave reconciliation, the rest arrive via roster import or manual edits.
const (
	StatusPresent     = "P"
	StatusAbsent      = "A"
	StatusHalfDay     = "H"
	StatusWeekOff     = "WO"
	StatusLeave       = "L"
	StatusWFH         = "WFH"
	StatusCasualLeave = "CL"
)

// AttendanceLog is one employee-day derived from raw clock punches.
// Date is the day key in YYYY-MM-DD form; InTime/OutTime are the first and
// last punch of that day and are absent when no punches were recorded.
type AttendanceLog struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmpID       string             `json:"emp_id" bson:"emp_id"`
	Date        string             `json:"date" bson:"date"`
	InTime      *time.Time         `json:"in_time,omitempty" bson:"in_time,omitempty"`
	OutTime     *time.Time         `json:"out_time,omitempty" bson:"out_time,omitempty"`
	WorkedHours float64            `json:"worked_hours" bson:"worked_hours"`
	Status      string             `json:"status" bson:"status"`
	RawPunches  []time.Time        `json:"raw_punches,omitempty" bson:"raw_punches,omitempty"`
	EditedBy    string             `json:"edited_by,omitempty" bson:"edited_by,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type BulkAttendancePayload struct {
	File string `json:"file" validate:"required"`
}

// AttendanceUpdatePayload carries a manual correction. Only the supplied
// fields are written; times use RFC 3339.
type AttendanceUpdatePayload struct {
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=P A H WO L WFH CL"`
	InTime   string `json:"in_time,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	OutTime  string `json:"out_time,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EditedBy string `json:"edited_by,omitempty"`
}

// MonthlySummaryDay is one reconciled day inside a monthly group.
// WorkingHours is a pointer because the pipeline yields null when either
// punch time is missing.
type MonthlySummaryDay struct {
	Date         string     `json:"date" bson:"date"`
	InTime       *time.Time `json:"in_time,omitempty" bson:"in_time,omitempty"`
	OutTime      *time.Time `json:"out_time,omitempty" bson:"out_time,omitempty"`
	Status       string     `json:"status" bson:"status"`
	WorkingHours *float64   `json:"working_hours,omitempty" bson:"working_hours,omitempty"`
	LeaveType    string     `json:"leave_type,omitempty" bson:"leave_type,omitempty"`
}

type MonthlyAttendanceSummary struct {
	EmpID        string              `json:"emp_id" bson:"emp_id"`
	Name         string              `json:"name,omitempty" bson:"name,omitempty"`
	Year         int                 `json:"year" bson:"year"`
	Month        int                 `json:"month" bson:"month"`
	Days         []MonthlySummaryDay `json:"days" bson:"days"`
	TotalPresent int                 `json:"total_present" bson:"total_present"`
	TotalLeave   int                 `json:"total_leave" bson:"total_leave"`
}

// MonthlySummaryResult is the discriminated result of the reconciliation
// pipeline: status is "success" or "error", never a raised error.
type MonthlySummaryResult struct {
	Status      string                     `json:"status"`
	Message     string                     `json:"message,omitempty"`
	TotalCount  int64                      `json:"total_count"`
	CurrentPage int64                      `json:"current_page"`
	TotalPages  int64                      `json:"total_pages"`
	Data        []MonthlyAttendanceSummary `json:"data"`
}

// MonthlyFilter holds the optional equality filters of the monthly summary.
// Zero values mean "match all".
type MonthlyFilter struct {
	EmpID string
	Month int
	Year  int
}

type BulkInsertFailure struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// BulkInsertReport is the per-record outcome of an unordered bulk insert.
// A failed record never aborts the batch; it lands in Failed instead.
type BulkInsertReport struct {
	InsertedCount int64               `json:"inserted_count"`
	Failed        []BulkInsertFailure `json:"failed,omitempty"`
}
