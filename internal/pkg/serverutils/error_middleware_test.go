package serverutils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"conote-be/internal/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appWithError(err error) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return err
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestErrorMiddlewareStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unauthenticated", apperrors.Unauthenticated("invalid credentials"), fiber.StatusUnauthorized, "unauthenticated"},
		{"forbidden", apperrors.Forbidden("only the notebook owner may do this"), fiber.StatusForbidden, "forbidden"},
		{"not found", apperrors.NotFound("notebook not found"), fiber.StatusNotFound, "not_found"},
		{"validation", apperrors.Validation("notebook_required", "notebook is required"), fiber.StatusBadRequest, "notebook_required"},
		{"internal", apperrors.Internal("db down", nil), fiber.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doRequest(t, appWithError(tc.err))
			assert.Equal(t, tc.status, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestErrorMiddlewareHidesForeignErrors(t *testing.T) {
	status, body := doRequest(t, appWithError(io.ErrUnexpectedEOF))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body["message"])
}

func TestErrorMiddlewarePassesFiberErrors(t *testing.T) {
	status, body := doRequest(t, appWithError(fiber.ErrMethodNotAllowed))
	assert.Equal(t, fiber.StatusMethodNotAllowed, status)
	assert.Equal(t, false, body["success"])
}

func TestValidateRequestReportsFirstFailure(t *testing.T) {
	type payload struct {
		Title string `validate:"required,max=255"`
		User  string `validate:"required"`
	}

	err := ValidateRequest(&payload{User: "someone"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Contains(t, err.Error(), "Title")

	require.NoError(t, ValidateRequest(&payload{Title: "ok", User: "someone"}))
}
