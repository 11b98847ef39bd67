package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Leave is a leave request. Only documents with status "approved" take part
// in the monthly reconciliation; a day inside [FromDate, ToDate] (inclusive
// both ends) is overridden to status "L".
type Leave struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmpID     string             `json:"emp_id" bson:"emp_id"`
	FromDate  time.Time          `json:"from_date" bson:"from_date"`
	ToDate    time.Time          `json:"to_date" bson:"to_date"`
	LeaveType string             `json:"leave_type" bson:"leave_type"`
	Reason    string             `json:"reason,omitempty" bson:"reason,omitempty"`
	Status    string             `json:"status" bson:"status"`
	Note      string             `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type LeaveCreatePayload struct {
	EmpID     string `json:"emp_id" validate:"required"`
	FromDate  string `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate    string `json:"to_date" validate:"required,datetime=2006-01-02,gtefield=FromDate"`
	LeaveType string `json:"leave_type" validate:"required,oneof=CL SL PL WFH"`
	Reason    string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type LeaveStatusUpdatePayload struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
	Note   string `json:"note,omitempty"`
}

// LeaveWithUser is the admin list row: a leave joined with the requesting user.
type LeaveWithUser struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	EmpID     string             `json:"emp_id" bson:"emp_id"`
	FromDate  time.Time          `json:"from_date" bson:"from_date"`
	ToDate    time.Time          `json:"to_date" bson:"to_date"`
	LeaveType string             `json:"leave_type" bson:"leave_type"`
	Reason    string             `json:"reason,omitempty" bson:"reason,omitempty"`
	Status    string             `json:"status" bson:"status"`
	Note      string             `json:"note,omitempty" bson:"note,omitempty"`
	UserName  string             `json:"user_name,omitempty" bson:"user_name,omitempty"`
	UserEmail string             `json:"user_email,omitempty" bson:"user_email,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at,omitempty"`
}
