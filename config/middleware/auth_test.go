package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Attendance-Roster-Backend/models"
	"Attendance-Roster-Backend/pkg/paseto"
)

func newGuardedApp(t *testing.T) *fiber.App {
	t.Helper()

	key, err := paseto.GenerateKey()
	require.NoError(t, err)
	require.NoError(t, paseto.Init(key))

	app := fiber.New()
	app.Get("/me", AuthMiddleware(), func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*paseto.Claims)
		return c.JSON(fiber.Map{"emp_id": claims.EmpID})
	})
	app.Get("/admin", AuthMiddleware(), AdminMiddleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	token, err := paseto.GenerateToken(&models.User{
		ID:    primitive.NewObjectID(),
		EmpID: "E1",
		Email: "e1@example.com",
		Role:  role,
	})
	require.NoError(t, err)
	return token
}

func authedRequest(target, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app := newGuardedApp(t)

	resp, err := app.Test(authedRequest("/me", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	app := newGuardedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Token abc")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	app := newGuardedApp(t)

	resp, err := app.Test(authedRequest("/me", "v2.local.garbage"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ValidTokenPasses(t *testing.T) {
	app := newGuardedApp(t)

	resp, err := app.Test(authedRequest("/me", tokenFor(t, "employee")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminMiddleware_RejectsEmployee(t *testing.T) {
	app := newGuardedApp(t)

	resp, err := app.Test(authedRequest("/admin", tokenFor(t, "employee")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminMiddleware_AllowsAdmin(t *testing.T) {
	app := newGuardedApp(t)

	resp, err := app.Test(authedRequest("/admin", tokenFor(t, "admin")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
