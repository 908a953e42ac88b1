package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/library-lending/library/internal/model"
)

func (h *Handler) Borrow(c echo.Context) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	var req model.BorrowRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	borrowing, err := h.librarySvc.Borrow(c.Request().Context(), userID, req.BookID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, borrowing)
}

func (h *Handler) Return(c echo.Context) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	var req model.ReturnRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	borrowing, err := h.librarySvc.Return(c.Request().Context(), userID, req.BorrowingID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, borrowing)
}

// ActiveBorrowings lists the caller's own open borrowings of a book.
func (h *Handler) ActiveBorrowings(c echo.Context) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	bookID, err := uuidParam(c, "bookId")
	if err != nil {
		return err
	}
	items, err := h.librarySvc.ActiveBorrowingsFor(c.Request().Context(), userID, bookID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) History(c echo.Context) error {
	bookID, err := uuidParam(c, "bookId")
	if err != nil {
		return err
	}
	page, err := intQuery(c, "page", 1)
	if err != nil {
		return err
	}
	limit, err := intQuery(c, "limit", model.DefaultLimit)
	if err != nil {
		return err
	}
	list, err := h.librarySvc.HistoryForBook(c.Request().Context(), bookID, page, limit)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) MostBorrowed(c echo.Context) error {
	limit, err := intQuery(c, "limit", model.DefaultLimit)
	if err != nil {
		return err
	}
	items, err := h.librarySvc.MostBorrowed(c.Request().Context(), limit)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
