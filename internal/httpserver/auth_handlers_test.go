package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mserrat/tienda-api/internal/models"
	"github.com/mserrat/tienda-api/internal/service"
	"github.com/mserrat/tienda-api/internal/tokens"
	"github.com/mserrat/tienda-api/internal/transport"
)

var testSecret = []byte("test-secret")

func TestAuthHTTP_Register(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	h := &AuthHTTP{Svc: &service.AuthService{Repo: r, JWTSecret: testSecret}}
	e := echo.New()

	c, rec := jsonContext(t, e, http.MethodPost, "/registrar", map[string]any{
		"nombre":     "Marta",
		"email":      "marta@example.com",
		"contrasena": "secreta123",
	}, 0)

	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "Marta", user.Name)
	assert.Equal(t, "marta@example.com", user.Email)
	assert.NotContains(t, rec.Body.String(), "secreta123", "password must never appear in responses")
}

func TestAuthHTTP_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	h := &AuthHTTP{Svc: &service.AuthService{Repo: r, JWTSecret: testSecret}}
	e := echo.New()

	body := map[string]any{
		"nombre":     "Marta",
		"email":      "marta@example.com",
		"contrasena": "secreta123",
	}

	c, _ := jsonContext(t, e, http.MethodPost, "/registrar", body, 0)
	require.NoError(t, h.Register(c))

	c, _ = jsonContext(t, e, http.MethodPost, "/registrar", body, 0)
	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestAuthHTTP_Login(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	h := &AuthHTTP{Svc: &service.AuthService{Repo: r, JWTSecret: testSecret}}
	e := echo.New()

	c, _ := jsonContext(t, e, http.MethodPost, "/registrar", map[string]any{
		"nombre":     "Marta",
		"email":      "marta@example.com",
		"contrasena": "secreta123",
	}, 0)
	require.NoError(t, h.Register(c))

	c, rec := jsonContext(t, e, http.MethodPost, "/iniciar-sesion", map[string]any{
		"email":      "marta@example.com",
		"contrasena": "secreta123",
	}, 0)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)

	claims, err := tokens.AccessClaimsFromToken(resp.AccessToken, testSecret)
	require.NoError(t, err)
	uid, err := claims.UserID()
	require.NoError(t, err)
	assert.NotZero(t, uid)
}

func TestAuthHTTP_Login_BadCredentials(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	h := &AuthHTTP{Svc: &service.AuthService{Repo: r, JWTSecret: testSecret}}
	e := echo.New()

	c, _ := jsonContext(t, e, http.MethodPost, "/iniciar-sesion", map[string]any{
		"email":      "nadie@example.com",
		"contrasena": "loquesea",
	}, 0)

	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAuthHTTP_Logout(t *testing.T) {
	t.Parallel()

	h := &AuthHTTP{}
	e := echo.New()

	c, rec := jsonContext(t, e, http.MethodPost, "/cerrar-sesion", nil, 1)
	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
