package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

// ReservationHandler handles HTTP requests for holds.
type ReservationHandler struct {
	service ports.ReservationService
}

func NewReservationHandler(service ports.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

type createReservationRequest struct {
	BookID string `json:"book_id" validate:"required"`
}

type reservationResponse struct {
	ID         string `json:"id"`
	BookID     string `json:"book_id"`
	UserID     string `json:"user_id"`
	ReservedAt string `json:"reserved_at"`
	ExpiresAt  string `json:"expires_at"`
	Status     string `json:"status"`
}

func toReservationResponse(r *domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:         r.ID,
		BookID:     r.BookID,
		UserID:     r.UserID,
		ReservedAt: r.ReservedAt.UTC().Format(time.RFC3339),
		ExpiresAt:  r.ExpiresAt.UTC().Format(time.RFC3339),
		Status:     string(r.Status),
	}
}

// Create handles POST /v1/reservations. The book must currently be
// available; placing the hold does not change its availability.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationRequest
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

	reservation, err := h.service.CreateReservation(c.Request().Context(), ports.CreateReservationInput{
		BookID: req.BookID,
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toReservationResponse(reservation))
}

// List handles GET /v1/reservations. Expired holds read as EXPIRED without
// ever being written back.
func (h *ReservationHandler) List(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	activeOnly, _ := strconv.ParseBool(c.QueryParam("active"))

	reservations, err := h.service.ListReservations(c.Request().Context(), ports.ListReservationsInput{
		ActorID:    userID,
		ActorRole:  role,
		ActiveOnly: activeOnly,
	})
	if err != nil {
		return err
	}

	out := make([]reservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, toReservationResponse(r))
	}
	return c.JSON(http.StatusOK, out)
}

// Cancel handles POST /v1/reservations/:id/cancel. Only the holder may
// cancel; anyone else gets a flat 403.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	reservation, err := h.service.CancelReservation(c.Request().Context(), ports.CancelReservationInput{
		ReservationID: c.Param("id"),
		ActorID:       userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toReservationResponse(reservation))
}
