package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Attendance-Roster-Backend/models"
	"Attendance-Roster-Backend/pkg/paseto"
	util "Attendance-Roster-Backend/pkg/utils"
	"Attendance-Roster-Backend/repository"
)

type LeaveHandler struct {
	repo     repository.LeaveRepository
	userRepo repository.UserRepository
}

func NewLeaveHandler(repo repository.LeaveRepository, userRepo repository.UserRepository) *LeaveHandler {
	return &LeaveHandler{repo: repo, userRepo: userRepo}
}

// Create files a leave request. It starts out pending; only after an admin
// approves it does it affect the monthly reconciliation. The emp_id must
// belong to a registered employee, otherwise approved leaves would override
// attendance of ids that never joined anything.
func (h *LeaveHandler) Create(c *fiber.Ctx) error {
	var payload models.LeaveCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	user, err := h.userRepo.FindUserByEmpID(c.Context(), payload.EmpID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to look up employee", "details": err.Error()})
	}
	if user == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no employee registered with this emp_id"})
	}

	fromDate, err := time.Parse("2006-01-02", payload.FromDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid from_date", "details": err.Error()})
	}
	toDate, err := time.Parse("2006-01-02", payload.ToDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid to_date", "details": err.Error()})
	}

	now := time.Now()
	leave := &models.Leave{
		ID:        primitive.NewObjectID(),
		EmpID:     payload.EmpID,
		FromDate:  fromDate,
		ToDate:    toDate,
		LeaveType: payload.LeaveType,
		Reason:    payload.Reason,
		Status:    "pending",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := h.repo.Create(c.Context(), leave); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create leave request", "details": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Leave request created",
		"data":    leave,
	})
}

func (h *LeaveHandler) GetAll(c *fiber.Ctx) error {
	requests, err := h.repo.FindAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch leave requests", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(requests)
}

// GetMyLeaves lists the authenticated employee's own requests.
func (h *LeaveHandler) GetMyLeaves(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated or invalid token claims"})
	}

	requests, err := h.repo.FindByEmpID(c.Context(), claims.EmpID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch leave requests", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(requests)
}

func (h *LeaveHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid leave request id"})
	}

	var payload models.LeaveStatusUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	leave, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch leave request", "details": err.Error()})
	}
	if leave == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Leave request not found"})
	}

	if _, err := h.repo.UpdateStatus(c.Context(), id, payload.Status, payload.Note); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update leave request", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Leave request status updated"})
}
