package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mserrat/tienda-api/internal/events"
	"github.com/mserrat/tienda-api/internal/logging"
	"github.com/mserrat/tienda-api/internal/metrics"
	"github.com/mserrat/tienda-api/internal/service"
	"github.com/mserrat/tienda-api/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *events.Producer
	Metrics  *metrics.Metrics
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		he := httpError(err)
		l.Warn("register_error", "status", he.Code, "error", err)
		return he
	}

	h.publish(c, events.TopicUserEvents, map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})
	h.Metrics.RecordRegistration(ctx)

	l.Info("user registered", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, user, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		he := httpError(err)
		l.Warn("login_error", "status", he.Code, "error", err)
		return he
	}

	h.publish(c, events.TopicUserEvents, map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
	})

	l.Info("user logged in", "user_id", user.ID)
	return c.JSON(http.StatusOK, transport.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Logout is stateless: tokens expire on their own and the client discards
// its copy. The endpoint exists so the frontend has something to call.
func (h *AuthHTTP) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHTTP) publish(c echo.Context, topic string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.Publish(ctx, topic, eventKey(event), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}
