package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

// DashboardHandler serves the aggregated per-user view.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

type dashboardResponse struct {
	Profile            *domain.Profile       `json:"profile"`
	ActiveLoans        []loanResponse        `json:"active_loans"`
	ActiveReservations []reservationResponse `json:"active_reservations"`
	Reviews            []*domain.Review      `json:"reviews"`
}

// Get handles GET /v1/dashboard: four independent reads merged into one
// response, no cross-read consistency guarantee.
//
// @Summary      Aggregated user dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	dashboard, err := h.service.GetDashboard(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	loans := make([]loanResponse, 0, len(dashboard.ActiveLoans))
	for _, l := range dashboard.ActiveLoans {
		loans = append(loans, toLoanResponse(l))
	}
	reservations := make([]reservationResponse, 0, len(dashboard.ActiveReservations))
	for _, r := range dashboard.ActiveReservations {
		reservations = append(reservations, toReservationResponse(r))
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Profile:            dashboard.Profile,
		ActiveLoans:        loans,
		ActiveReservations: reservations,
		Reviews:            dashboard.Reviews,
	})
}
