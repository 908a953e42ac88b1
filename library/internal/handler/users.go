package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/library-lending/library/internal/model"
)

func (h *Handler) CreateUser(c echo.Context) error {
	var req model.CreateUserRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.librarySvc.CreateUser(c.Request().Context(), req)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.librarySvc.ListUsers(c.Request().Context())
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.librarySvc.FindUserByID(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateUser(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req model.UpdateUserRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.librarySvc.UpdateUserRole(c.Request().Context(), id, req)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) Register(c echo.Context) error {
	var req model.CreateUserRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.librarySvc.Register(c.Request().Context(), req)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	resp, err := h.librarySvc.Login(c.Request().Context(), req)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
