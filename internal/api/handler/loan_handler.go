package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

// LoanHandler handles HTTP requests for the loan lifecycle.
type LoanHandler struct {
	service ports.LendingService
}

func NewLoanHandler(service ports.LendingService) *LoanHandler {
	return &LoanHandler{service: service}
}

type createLoanRequest struct {
	BookID  string `json:"book_id" validate:"required"`
	DueDate string `json:"due_date" validate:"required"` // YYYY-MM-DD
}

type loanResponse struct {
	ID         string `json:"id"`
	BookID     string `json:"book_id"`
	UserID     string `json:"user_id"`
	LoanedAt   string `json:"loaned_at"`
	DueDate    string `json:"due_date"`
	ReturnedAt string `json:"returned_at,omitempty"`
	Status     string `json:"status"`
	Fine       string `json:"fine"`
}

func toLoanResponse(l *domain.Loan) loanResponse {
	resp := loanResponse{
		ID:       l.ID,
		BookID:   l.BookID,
		UserID:   l.UserID,
		LoanedAt: l.LoanedAt.UTC().Format(time.RFC3339),
		DueDate:  l.DueDate.UTC().Format("2006-01-02"),
		Status:   string(l.Status),
		Fine:     l.Fine(),
	}
	if l.ReturnedAt != nil {
		resp.ReturnedAt = l.ReturnedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// Create handles POST /v1/loans.
//
// @Summary      Borrow a book
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLoanRequest  true  "Loan details"
// @Success      201   {object}  loanResponse
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/loans [post]
func (h *LoanHandler) Create(c echo.Context) error {
	var req createLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dueDate, err := time.ParseInLocation("2006-01-02", req.DueDate, time.UTC)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "due_date must be YYYY-MM-DD")
	}

	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	loan, err := h.service.CreateLoan(c.Request().Context(), ports.CreateLoanInput{
		BookID:  req.BookID,
		UserID:  userID,
		DueDate: dueDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toLoanResponse(loan))
}

// List handles GET /v1/loans. Readers see their own loans; staff see all.
func (h *LoanHandler) List(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	activeOnly, _ := strconv.ParseBool(c.QueryParam("active"))

	loans, err := h.service.ListLoans(c.Request().Context(), ports.ListLoansInput{
		ActorID:    userID,
		ActorRole:  role,
		ActiveOnly: activeOnly,
	})
	if err != nil {
		return err
	}

	out := make([]loanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, toLoanResponse(l))
	}
	return c.JSON(http.StatusOK, out)
}

// Return handles POST /v1/loans/:id/return. A second return of the same
// loan yields 409.
//
// @Summary      Return a borrowed book
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Loan id"
// @Success      200  {object}  loanResponse
// @Failure      409  {object}  map[string]string
// @Router       /v1/loans/{id}/return [post]
func (h *LoanHandler) Return(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	loan, err := h.service.ReturnLoan(c.Request().Context(), ports.ReturnLoanInput{
		LoanID:    c.Param("id"),
		ActorID:   userID,
		ActorRole: role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toLoanResponse(loan))
}
