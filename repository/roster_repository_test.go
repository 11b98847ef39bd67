package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"Attendance-Roster-Backend/config"
	"Attendance-Roster-Backend/models"
)

func rosterDay(empID, name string, date time.Time, status, shift, tl string) models.Roster {
	return models.Roster{
		EmpID:      empID,
		Name:       name,
		Date:       date,
		Status:     status,
		ShiftTime:  shift,
		TeamLeader: tl,
		Day:        date.Format("Mon"),
	}
}

func TestRosterCreateOrMerge_Upsert(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewRosterRepository()

	first := rosterDay("E1", "Alice", ts(2025, 1, 6, 0, 0), models.StatusPresent, "09:00-18:00", "TL1")
	require.NoError(t, repo.CreateOrMerge(ctx, &first))

	second := rosterDay("E1", "Alice", ts(2025, 1, 6, 0, 0), models.StatusWeekOff, "10:00-19:00", "TL2")
	require.NoError(t, repo.CreateOrMerge(ctx, &second))

	collection := config.GetCollection(config.RosterCollection)
	count, err := collection.CountDocuments(ctx, bson.M{"emp_id": "E1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var stored models.Roster
	require.NoError(t, collection.FindOne(ctx, bson.M{"emp_id": "E1"}).Decode(&stored))
	assert.Equal(t, models.StatusWeekOff, stored.Status)
	assert.Equal(t, "10:00-19:00", stored.ShiftTime)
	assert.Equal(t, "TL2", stored.TeamLeader)
	// the identity of the first write survives the merge
	assert.Equal(t, first.ID, stored.ID)
}

func TestRosterBulkUpload_ReportsDuplicateRows(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewRosterRepository()

	report, err := repo.BulkUpload(ctx, []models.Roster{
		rosterDay("E1", "Alice", ts(2025, 1, 6, 0, 0), models.StatusPresent, "09:00-18:00", "TL1"),
		rosterDay("E1", "Alice", ts(2025, 1, 6, 0, 0), models.StatusWeekOff, "09:00-18:00", "TL1"),
		rosterDay("E2", "Bob", ts(2025, 1, 6, 0, 0), models.StatusPresent, "10:00-19:00", "TL1"),
	})
	require.NoError(t, err)

	// the duplicate (emp_id, date) row fails alone, the rest land
	assert.Equal(t, int64(2), report.InsertedCount)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, 1, report.Failed[0].Index)
}

func TestGetAllRosters_GroupsPerEmployee(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewRosterRepository()

	_, err := repo.BulkUpload(ctx, []models.Roster{
		rosterDay("E1", "Alice", ts(2025, 1, 6, 0, 0), models.StatusPresent, "09:00-18:00", "TL1"),
		rosterDay("E1", "Alice", ts(2025, 1, 7, 0, 0), models.StatusWeekOff, "09:00-18:00", "TL1"),
		rosterDay("E2", "Bob", ts(2025, 1, 6, 0, 0), models.StatusPresent, "10:00-19:00", "TL1"),
	})
	require.NoError(t, err)

	result := repo.GetAllRosters(ctx, 1, 10, "")
	require.Equal(t, "success", result.Status, result.Message)
	require.Len(t, result.Data, 2)
	assert.Equal(t, int64(3), result.TotalRecords)

	alice := result.Data[0]
	assert.Equal(t, "E1", alice.EmpID)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, 2025, alice.Year)
	require.Len(t, alice.Days, 2)
	assert.Equal(t, 1, alice.Days[0].Month)

	assert.Equal(t, "E2", result.Data[1].EmpID)
	assert.Len(t, result.Data[1].Days, 1)
}

func TestGetAllRosters_SearchIsCaseInsensitive(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewRosterRepository()

	_, err := repo.BulkUpload(ctx, []models.Roster{
		rosterDay("E1", "Alice", ts(2025, 1, 6, 0, 0), models.StatusPresent, "09:00-18:00", "TL1"),
		rosterDay("E2", "Bob", ts(2025, 1, 6, 0, 0), models.StatusPresent, "10:00-19:00", "TL1"),
	})
	require.NoError(t, err)

	byName := repo.GetAllRosters(ctx, 1, 10, "ali")
	require.Equal(t, "success", byName.Status)
	require.Len(t, byName.Data, 1)
	assert.Equal(t, "Alice", byName.Data[0].Name)
	assert.Equal(t, int64(1), byName.TotalRecords)

	byEmpID := repo.GetAllRosters(ctx, 1, 10, "e2")
	require.Equal(t, "success", byEmpID.Status)
	require.Len(t, byEmpID.Data, 1)
	assert.Equal(t, "E2", byEmpID.Data[0].EmpID)
}

func TestFindByEmployee_SortedByDate(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewRosterRepository()

	_, err := repo.BulkUpload(ctx, []models.Roster{
		rosterDay("E1", "Alice", ts(2025, 1, 7, 0, 0), models.StatusWeekOff, "09:00-18:00", "TL1"),
		rosterDay("E1", "Alice", ts(2025, 1, 6, 0, 0), models.StatusPresent, "09:00-18:00", "TL1"),
	})
	require.NoError(t, err)

	rosters, err := repo.FindByEmployee(ctx, "E1")
	require.NoError(t, err)
	require.Len(t, rosters, 2)
	assert.True(t, rosters[0].Date.Before(rosters[1].Date))

	none, err := repo.FindByEmployee(ctx, "E9")
	require.NoError(t, err)
	assert.Empty(t, none)
}
