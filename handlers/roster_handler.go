package handlers

import (
	"bytes"
	"encoding/base64"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"Attendance-Roster-Backend/models"
	"Attendance-Roster-Backend/pkg/rosterxlsx"
	util "Attendance-Roster-Backend/pkg/utils"
	"Attendance-Roster-Backend/repository"
)

type RosterHandler struct {
	repo repository.RosterRepository
}

func NewRosterHandler(repo repository.RosterRepository) *RosterHandler {
	return &RosterHandler{repo: repo}
}

// BulkUpload accepts a roster spreadsheet either as a multipart "file" field
// or as a base64 Excel payload in the JSON body, parses it and inserts the
// entries. Per-row insert failures are reported, not fatal.
func (h *RosterHandler) BulkUpload(c *fiber.Ctx) error {
	var entries []models.Roster

	if fileHeader, err := c.FormFile("file"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to open uploaded file", "details": err.Error()})
		}
		defer file.Close()

		entries, err = rosterxlsx.Parse(file)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to parse roster Excel", "details": err.Error()})
		}
	} else {
		var payload models.BulkAttendancePayload
		if err := c.BodyParser(&payload); err != nil || payload.File == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No Excel file provided (file or base64)"})
		}

		// Tolerate a data-URL prefix in the base64 payload.
		cleanBase64 := payload.File
		if idx := strings.Index(cleanBase64, ","); idx != -1 {
			cleanBase64 = cleanBase64[idx+1:]
		}

		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(cleanBase64))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is not valid base64", "details": err.Error()})
		}

		entries, err = rosterxlsx.Parse(bytes.NewReader(raw))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to parse roster Excel", "details": err.Error()})
		}
	}

	if len(entries) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no roster entries found in the uploaded sheet"})
	}

	report, err := h.repo.BulkUpload(c.Context(), entries)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store roster batch", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Bulk roster upload successful",
		"count":    len(entries),
		"inserted": report.InsertedCount,
		"report":   report,
	})
}

// Create upserts one roster entry on the (empId, date) key; an existing
// entry is overwritten, last write wins.
func (h *RosterHandler) Create(c *fiber.Ctx) error {
	var payload models.RosterCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date", "details": err.Error()})
	}

	day := payload.Day
	if day == "" {
		day = date.Format("Mon")
	}

	roster := &models.Roster{
		EmpID:      payload.EmpID,
		Name:       payload.Name,
		Date:       date,
		TeamLeader: payload.TeamLeader,
		ShiftTime:  payload.ShiftTime,
		Status:     payload.Status,
		Day:        day,
	}

	if err := h.repo.CreateOrMerge(c.Context(), roster); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create roster entry", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Roster created successfully",
		"data":    roster,
	})
}

// GetAll lists per-employee roster groups with pagination and an optional
// case-insensitive search over name/empId.
func (h *RosterHandler) GetAll(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 10))
	search := c.Query("search")

	result := h.repo.GetAllRosters(c.Context(), page, limit, search)
	if result.Status != "success" {
		return c.Status(fiber.StatusInternalServerError).JSON(result)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *RosterHandler) GetByEmployee(c *fiber.Ctx) error {
	empID := c.Params("empId")

	rosters, err := h.repo.FindByEmployee(c.Context(), empID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch roster", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Roster fetched successfully",
		"data":    rosters,
	})
}
