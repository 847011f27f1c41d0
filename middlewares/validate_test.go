package middlewares

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestBindAndValidate(t *testing.T) {
	type dto struct {
		Name  string `json:"name" validate:"required,min=2"`
		Email string `json:"email" validate:"required,email"`
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/echo", func(c *fiber.Ctx) error {
		var in dto
		if err := BindAndValidate(c, &in); err != nil {
			return err
		}
		return c.JSON(in)
	})

	post := func(body string) int {
		req := httptest.NewRequest(fiber.MethodPost, "/echo", bytes.NewReader([]byte(body)))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	require.Equal(t, fiber.StatusOK, post(`{"name":"Jane","email":"jane@example.com"}`))
	require.Equal(t, fiber.StatusBadRequest, post(`{not json`))
	require.Equal(t, fiber.StatusUnprocessableEntity, post(`{"name":"J","email":"not-an-email"}`))
}
