package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

// BookHandler handles HTTP requests for catalog operations. Writes are
// restricted to the librarian role by the RBAC middleware on the route.
type BookHandler struct {
	service ports.CatalogService
}

func NewBookHandler(service ports.CatalogService) *BookHandler {
	return &BookHandler{service: service}
}

type createBookRequest struct {
	Title    string `json:"title" validate:"required"`
	Author   string `json:"author" validate:"required"`
	Category string `json:"category" validate:"required"`
}

type updateBookRequest struct {
	Title    *string `json:"title"`
	Author   *string `json:"author"`
	Category *string `json:"category"`
}

type listBooksResponse struct {
	Items      []*domain.Book `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// List handles GET /v1/books.
//
// @Summary      List catalog entries
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        category   query  string  false  "Filter by category"
// @Param        search     query  string  false  "Partial match on title or author"
// @Param        available  query  bool    false  "Only available books"
// @Success      200  {object}  listBooksResponse
// @Router       /v1/books [get]
func (h *BookHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	availableOnly, _ := strconv.ParseBool(c.QueryParam("available"))

	result, err := h.service.ListBooks(c.Request().Context(), ports.ListBooksInput{
		Category:      c.QueryParam("category"),
		Search:        c.QueryParam("search"),
		AvailableOnly: availableOnly,
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listBooksResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get handles GET /v1/books/:id.
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.service.GetBook(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Create handles POST /v1/books (librarian only).
func (h *BookHandler) Create(c echo.Context) error {
	var req createBookRequest
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

	book, err := h.service.CreateBook(c.Request().Context(), ports.CreateBookInput{
		Title:    req.Title,
		Author:   req.Author,
		Category: req.Category,
		AddedBy:  userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, book)
}

// Update handles PUT /v1/books/:id (librarian only).
func (h *BookHandler) Update(c echo.Context) error {
	var req updateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	book, err := h.service.UpdateBook(c.Request().Context(), ports.UpdateBookInput{
		ID:       c.Param("id"),
		Title:    req.Title,
		Author:   req.Author,
		Category: req.Category,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, book)
}

// Delete handles DELETE /v1/books/:id (librarian only). Deletion is rejected
// with 409 while an active loan references the book.
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteBook(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
