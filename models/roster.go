package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roster is one planned employee-day from the shift roster. ShiftTime is a
// free-text label (Morning / Evening / Night / WO / Leave). The write path
// merges on (emp_id, date), last write wins.
type Roster struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmpID      string             `json:"emp_id" bson:"emp_id"`
	Name       string             `json:"name,omitempty" bson:"name,omitempty"`
	CRMName    string             `json:"crm_name,omitempty" bson:"crm_name,omitempty"`
	Title      string             `json:"title,omitempty" bson:"title,omitempty"`
	Date       time.Time          `json:"date" bson:"date"`
	TeamLeader string             `json:"team_leader" bson:"team_leader"`
	ShiftTime  string             `json:"shift_time" bson:"shift_time"`
	Status     string             `json:"status" bson:"status"`
	Day        string             `json:"day,omitempty" bson:"day,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type RosterCreatePayload struct {
	EmpID      string `json:"emp_id" validate:"required"`
	Name       string `json:"name,omitempty"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	TeamLeader string `json:"team_leader" validate:"required"`
	ShiftTime  string `json:"shift_time" validate:"required"`
	Status     string `json:"status" validate:"required"`
	Day        string `json:"day,omitempty"`
}

type RosterDay struct {
	Date       time.Time `json:"date" bson:"date"`
	Status     string    `json:"status" bson:"status"`
	ShiftTime  string    `json:"shift_time" bson:"shift_time"`
	TeamLeader string    `json:"team_leader" bson:"team_leader"`
	Month      int       `json:"month" bson:"month"`
}

// RosterGroup is the per-employee aggregation row of the roster list.
type RosterGroup struct {
	EmpID      string      `json:"emp_id" bson:"emp_id"`
	Name       string      `json:"name,omitempty" bson:"name,omitempty"`
	TeamLeader string      `json:"team_leader" bson:"team_leader"`
	Year       int         `json:"year" bson:"year"`
	Days       []RosterDay `json:"days" bson:"days"`
}

type RosterListResult struct {
	Status       string        `json:"status"`
	Message      string        `json:"message,omitempty"`
	Data         []RosterGroup `json:"data"`
	TotalPages   int64         `json:"total_pages"`
	CurrentPage  int64         `json:"current_page"`
	TotalRecords int64         `json:"total_records"`
}
