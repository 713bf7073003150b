package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/librisys/library-system/internal/core/ports"
)

// ReviewHandler handles HTTP requests for the review ledger.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type createReviewRequest struct {
	BookID  string `json:"book_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Create handles POST /v1/reviews.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewRequest
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

	review, err := h.service.CreateReview(c.Request().Context(), ports.CreateReviewInput{
		BookID:  req.BookID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, review)
}

// ListForBook handles GET /v1/books/:id/reviews.
func (h *ReviewHandler) ListForBook(c echo.Context) error {
	reviews, err := h.service.ListBookReviews(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// Delete handles DELETE /v1/reviews/:id (admin only).
func (h *ReviewHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteReview(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
