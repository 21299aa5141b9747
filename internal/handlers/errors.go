package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anonto42/simple-twitter/backend/internal/middleware"
	"github.com/anonto42/simple-twitter/backend/internal/services"
	"github.com/anonto42/simple-twitter/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// httpError maps a service error to the response status.
func httpError(err error) error {
	message := err.Error()
	var se *services.ServiceError
	if errors.As(err, &se) {
		message = se.Message
	}

	switch {
	case errors.Is(err, services.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, message)
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, message)
	case errors.Is(err, services.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, message)
	default:
		logger.L.Error("request failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}

func getUserIDFromContext(c echo.Context) uint {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		return 0
	}
	return claims.UserID
}

func parseIDParam(c echo.Context, name, what string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+what+" ID")
	}
	return uint(id), nil
}
