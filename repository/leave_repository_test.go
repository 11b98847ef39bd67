package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Attendance-Roster-Backend/config"
	"Attendance-Roster-Backend/models"
)

func TestLeaveLifecycle(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewLeaveRepository()

	leave := &models.Leave{
		ID:        primitive.NewObjectID(),
		EmpID:     "E1",
		FromDate:  ts(2025, 1, 6, 0, 0),
		ToDate:    ts(2025, 1, 7, 0, 0),
		LeaveType: "CL",
		Reason:    "family function",
		Status:    "pending",
	}
	_, err := repo.Create(ctx, leave)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, leave.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "pending", found.Status)

	res, err := repo.UpdateStatus(ctx, leave.ID, "approved", "enjoy")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)

	found, err = repo.FindByID(ctx, leave.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", found.Status)
	assert.Equal(t, "enjoy", found.Note)
}

func TestLeaveFindByID_Missing(t *testing.T) {
	setupTestDB(t)
	repo := NewLeaveRepository()

	found, err := repo.FindByID(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestLeaveFindAll_JoinsRequestingUser(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewLeaveRepository()

	_, err := config.GetCollection(config.UserCollection).InsertOne(ctx, models.User{
		EmpID: "E1",
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  "employee",
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.Leave{
		EmpID:     "E1",
		FromDate:  ts(2025, 1, 6, 0, 0),
		ToDate:    ts(2025, 1, 6, 0, 0),
		LeaveType: "SL",
		Status:    "pending",
	})
	require.NoError(t, err)

	// no matching user: still listed, just without the joined fields
	_, err = repo.Create(ctx, &models.Leave{
		EmpID:     "E9",
		FromDate:  ts(2025, 1, 8, 0, 0),
		ToDate:    ts(2025, 1, 8, 0, 0),
		LeaveType: "CL",
		Status:    "pending",
	})
	require.NoError(t, err)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	byEmp := map[string]models.LeaveWithUser{}
	for _, l := range all {
		byEmp[l.EmpID] = l
	}
	assert.Equal(t, "Alice", byEmp["E1"].UserName)
	assert.Equal(t, "alice@example.com", byEmp["E1"].UserEmail)
	assert.Empty(t, byEmp["E9"].UserName)
}

func TestLeaveFindByEmpID(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewLeaveRepository()

	_, err := repo.Create(ctx, &models.Leave{
		EmpID: "E1", FromDate: ts(2025, 1, 6, 0, 0), ToDate: ts(2025, 1, 6, 0, 0),
		LeaveType: "CL", Status: "pending",
	})
	require.NoError(t, err)

	mine, err := repo.FindByEmpID(ctx, "E1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	other, err := repo.FindByEmpID(ctx, "E2")
	require.NoError(t, err)
	assert.Empty(t, other)
}
