package handlers

import (
	"net/http"
	"strconv"

	"github.com/conecta-social/conecta-server/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// queryInt reads an integer query parameter
func queryInt(c echo.Context, name string) (int, error) {
	return strconv.Atoi(c.QueryParam(name))
}

// currentUser extracts the authenticated user's claims set by the JWT
// middleware.
func currentUser(c echo.Context) (*models.JwtCustomClaims, error) {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid user claims")
	}
	return claims, nil
}
