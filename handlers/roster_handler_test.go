package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"Attendance-Roster-Backend/models"
)

type stubRosterRepo struct {
	uploaded   []models.Roster
	uploadErr  error
	merged     []*models.Roster
	mergeErr   error
	listResult *models.RosterListResult
	gotPage    int64
	gotLimit   int64
	gotSearch  string
	byEmployee []models.Roster
	gotEmpID   string
}

func (s *stubRosterRepo) BulkUpload(ctx context.Context, rosters []models.Roster) (*models.BulkInsertReport, error) {
	s.uploaded = rosters
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	return &models.BulkInsertReport{InsertedCount: int64(len(rosters))}, nil
}

func (s *stubRosterRepo) CreateOrMerge(ctx context.Context, roster *models.Roster) error {
	s.merged = append(s.merged, roster)
	return s.mergeErr
}

func (s *stubRosterRepo) GetAllRosters(ctx context.Context, page, limit int64, search string) *models.RosterListResult {
	s.gotPage = page
	s.gotLimit = limit
	s.gotSearch = search
	if s.listResult != nil {
		return s.listResult
	}
	return &models.RosterListResult{Status: "success", CurrentPage: page}
}

func (s *stubRosterRepo) FindByEmployee(ctx context.Context, empID string) ([]models.Roster, error) {
	s.gotEmpID = empID
	return s.byEmployee, nil
}

func newRosterApp(repo *stubRosterRepo) *fiber.App {
	app := fiber.New()
	h := NewRosterHandler(repo)
	app.Post("/rosters/bulkUpload", h.BulkUpload)
	app.Post("/rosters/create", h.Create)
	app.Get("/rosters", h.GetAll)
	app.Get("/rosters/:empId", h.GetByEmployee)
	return app
}

// 45658 is the Excel date serial for 2025-01-01.
func rosterWorkbookBytes(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	rows := [][]interface{}{
		{"", "", "", "", "", "", "Wed"},
		{"Emp. ID", "Agent Name", "CRM NAME", "Title", "Shift Time", "Team Leader", 45658},
		{"E1", "Alice", "alice.crm", "Agent", "09:00-18:00", "TL1", "P"},
		{"E2", "Bob", "bob.crm", "Agent", "10:00-19:00", "TL1", "WO"},
	}
	for i := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &rows[i]))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestRosterBulkUpload_NoFile(t *testing.T) {
	app := newRosterApp(&stubRosterRepo{})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/rosters/bulkUpload", `{}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRosterBulkUpload_Base64(t *testing.T) {
	repo := &stubRosterRepo{}
	app := newRosterApp(repo)

	encoded := base64.StdEncoding.EncodeToString(rosterWorkbookBytes(t))
	body, _ := json.Marshal(fiber.Map{"file": encoded})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/rosters/bulkUpload", string(body)))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Len(t, repo.uploaded, 2)
	assert.Equal(t, "E1", repo.uploaded[0].EmpID)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), repo.uploaded[0].Date)
	assert.Equal(t, "WO", repo.uploaded[1].Status)
}

func TestRosterBulkUpload_DataURLPrefix(t *testing.T) {
	repo := &stubRosterRepo{}
	app := newRosterApp(repo)

	encoded := "data:application/vnd.openxmlformats-officedocument.spreadsheetml.sheet;base64," +
		base64.StdEncoding.EncodeToString(rosterWorkbookBytes(t))
	body, _ := json.Marshal(fiber.Map{"file": encoded})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/rosters/bulkUpload", string(body)))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, repo.uploaded, 2)
}

func TestRosterBulkUpload_Multipart(t *testing.T) {
	repo := &stubRosterRepo{}
	app := newRosterApp(repo)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "roster.xlsx")
	require.NoError(t, err)
	_, err = part.Write(rosterWorkbookBytes(t))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/rosters/bulkUpload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, repo.uploaded, 2)
}

func TestRosterBulkUpload_NotAWorkbook(t *testing.T) {
	app := newRosterApp(&stubRosterRepo{})

	encoded := base64.StdEncoding.EncodeToString([]byte("not an xlsx"))
	body, _ := json.Marshal(fiber.Map{"file": encoded})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/rosters/bulkUpload", string(body)))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRosterCreate_Validation(t *testing.T) {
	repo := &stubRosterRepo{}
	app := newRosterApp(repo)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/rosters/create", `{"emp_id":"E1"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, repo.merged)
}

func TestRosterCreate_OK(t *testing.T) {
	repo := &stubRosterRepo{}
	app := newRosterApp(repo)

	body := `{"emp_id":"E1","name":"Alice","date":"2025-01-06","shift_time":"09:00-18:00","status":"P","team_leader":"TL1"}`
	resp, err := app.Test(jsonRequest(http.MethodPost, "/rosters/create", body))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Len(t, repo.merged, 1)
	got := repo.merged[0]
	assert.Equal(t, "E1", got.EmpID)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), got.Date)
	// day name derives from the date when omitted
	assert.Equal(t, "Mon", got.Day)
}

func TestRosterGetAll_Passthrough(t *testing.T) {
	repo := &stubRosterRepo{}
	app := newRosterApp(repo)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/rosters?page=2&limit=5&search=ali", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, int64(2), repo.gotPage)
	assert.Equal(t, int64(5), repo.gotLimit)
	assert.Equal(t, "ali", repo.gotSearch)
}

func TestRosterGetAll_StoreFailure(t *testing.T) {
	repo := &stubRosterRepo{listResult: &models.RosterListResult{Status: "error", Message: "boom"}}
	app := newRosterApp(repo)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/rosters", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestRosterGetByEmployee(t *testing.T) {
	repo := &stubRosterRepo{byEmployee: []models.Roster{{EmpID: "E1"}}}
	app := newRosterApp(repo)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/rosters/E1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "E1", repo.gotEmpID)
}
