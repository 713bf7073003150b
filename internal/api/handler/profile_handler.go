package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/librisys/library-system/internal/core/ports"
)

// ProfileHandler exposes the caller's own profile record.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type updateProfileRequest struct {
	Bio string `json:"bio" validate:"max=500"`
}

// Get handles GET /v1/profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Update handles PUT /v1/profile.
func (h *ProfileHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	profile, err := h.service.UpdateProfile(c.Request().Context(), userID, req.Bio)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
