package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"Attendance-Roster-Backend/models"
	"Attendance-Roster-Backend/pkg/paseto"
	"Attendance-Roster-Backend/pkg/punchlog"
	util "Attendance-Roster-Backend/pkg/utils"
	"Attendance-Roster-Backend/repository"
)

type AttendanceHandler struct {
	repo   repository.AttendanceRepository
	policy punchlog.StatusPolicy
}

func NewAttendanceHandler(repo repository.AttendanceRepository) *AttendanceHandler {
	return &AttendanceHandler{
		repo:   repo,
		policy: punchlog.DefaultPolicy,
	}
}

// BulkUpload ingests a base64-encoded punch-log file, derives one attendance
// record per employee-day and bulk-inserts the batch. Individual insert
// failures are reported back, not fatal.
func (h *AttendanceHandler) BulkUpload(c *fiber.Ctx) error {
	var payload models.BulkAttendancePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Base64 file is missing", "errors": errs})
	}

	raw, err := base64.StdEncoding.DecodeString(payload.File)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is not valid base64", "details": err.Error()})
	}

	// Keep a copy of the uploaded log on disk for troubleshooting bad batches.
	tempFile := filepath.Join("uploads", fmt.Sprintf("attendance_%s.dat", uuid.New().String()))
	if err := os.WriteFile(tempFile, raw, 0o644); err == nil {
		defer os.Remove(tempFile)
	}

	logs := punchlog.Parse(string(raw), h.policy)
	if len(logs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no valid punch lines found in the uploaded file"})
	}

	report, err := h.repo.BulkInsert(c.Context(), logs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store attendance batch", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(models.BulkUploadSuccessResponse{
		Message:  "Attendance uploaded successfully",
		Total:    len(logs),
		Inserted: report.InsertedCount,
		Report:   *report,
	})
}

// GetMonthly serves the monthly reconciled summaries. empId, month and year
// are optional equality filters; page defaults to 1 and limit to 10.
func (h *AttendanceHandler) GetMonthly(c *fiber.Ctx) error {
	filter := models.MonthlyFilter{
		EmpID: c.Query("empId"),
		Month: c.QueryInt("month"),
		Year:  c.QueryInt("year"),
	}
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 10))

	result := h.repo.GetMonthlySummary(c.Context(), filter, page, limit)
	if result.Status != "success" {
		return c.Status(fiber.StatusInternalServerError).JSON(result)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// UpdateAttendance applies a manual correction to one (empId, date) record.
func (h *AttendanceHandler) UpdateAttendance(c *fiber.Ctx) error {
	empID := c.Params("empId")
	date := c.Params("date")

	var payload models.AttendanceUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	// Default the audit field to the authenticated editor.
	if payload.EditedBy == "" {
		if claims, ok := c.Locals("user").(*paseto.Claims); ok {
			payload.EditedBy = claims.EmpID
		}
	}

	updated, err := h.repo.UpdateAttendanceRecord(c.Context(), empID, date, &payload)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAttendanceNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Attendance record not found"})
		case errors.Is(err, repository.ErrInvalidDate):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date", "details": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update attendance record", "details": err.Error()})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Attendance record updated",
		"data":    updated,
	})
}
