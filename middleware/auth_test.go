package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/tusharsraj1907-hash/AIrena/middleware"
)

func testApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", middleware.AuthRequired(secret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": c.Locals("user_id")})
	})
	return app
}

func TestAuthRequired_MissingHeader(t *testing.T) {
	app := testApp("s3cret")
	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	app := testApp("s3cret")
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer notatoken")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestAuthRequired_WrongSecret(t *testing.T) {
	app := testApp("s3cret")

	claims := jwt.MapClaims{"sub": float64(7), "exp": time.Now().Add(time.Hour).Unix()}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestAuthRequired_ValidToken(t *testing.T) {
	app := testApp("s3cret")

	claims := jwt.MapClaims{
		"sub":   float64(7),
		"email": "asha@example.com",
		"role":  "user",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
}
